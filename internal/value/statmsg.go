package value

import "tb/internal/fmtcmd"

// StatMsg is a leaf Value rendering a single colored status line. It
// backs TransformManager's error display (a failed transform() call)
// and lets a backend report a non-fatal condition (e.g. an
// "(inaccessible)" meta-node per the children() error-handling
// contract) without writing a custom type.
type StatMsg struct {
	BaseValue
	text  string
	color int
}

// ErrorColor and InfoColor are the RawColor indices StatMsg renders
// with. InfoColor is the built-in muted slot. ErrorColor is the first
// slot after the two built-ins, so it shows as the backend's first
// declared color, or the regular color when the backend declares none;
// the palette has no slot reserved for errors.
const (
	ErrorColor = 2
	InfoColor  = 1
)

// NewError returns a StatMsg reading "Error: " + text, rendered with
// ErrorColor.
func NewError(text string) *StatMsg { return &StatMsg{text: "Error: " + text, color: ErrorColor} }

// NewInfo returns a StatMsg rendered in the muted palette color.
func NewInfo(text string) *StatMsg { return &StatMsg{text: text, color: InfoColor} }

func (s *StatMsg) Content() fmtcmd.Cmd     { return fmtcmd.RawColor(s.color, fmtcmd.Literal(s.text)) }
func (s *StatMsg) Placeholder() fmtcmd.Cmd { return s.Content() }
func (s *StatMsg) Expandable() bool        { return false }
func (s *StatMsg) Children() []Value       { return nil }

// StatSource wraps a StatMsg as a one-node Source, e.g. for a transform
// error (spec error taxonomy class 2).
type StatSource struct{ Msg *StatMsg }

func (s StatSource) Root() Value { return s.Msg }
func (s StatSource) Transform(string) (Source, error) { return s, nil }
