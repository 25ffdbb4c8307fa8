// Package textbackend splits raw text on a configurable separator into
// a flat list of leaf values, with a hidden root per end-to-end
// scenario 4.
package textbackend

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tb/internal/fmtcmd"
	"tb/internal/pipefilter"
	"tb/internal/value"
)

// Name is this backend's factory name; the CLI shell also resolves it
// from an executable named "textb" (Name + "b").
const Name = "text"

type leaf struct {
	value.BaseValue
	text string
}

func (l *leaf) Content() fmtcmd.Cmd     { return fmtcmd.Literal(l.text) }
func (l *leaf) Placeholder() fmtcmd.Cmd { return l.Content() }
func (l *leaf) Expandable() bool        { return false }
func (l *leaf) Children() []value.Value { return nil }

type rootNode struct {
	value.BaseValue
	lines []string
}

func (r *rootNode) Content() fmtcmd.Cmd     { return fmtcmd.Literal("") }
func (r *rootNode) Placeholder() fmtcmd.Cmd { return r.Content() }
func (r *rootNode) Expandable() bool        { return true }
func (r *rootNode) Children() []value.Value {
	children := make([]value.Value, len(r.lines))
	for i, l := range r.lines {
		children[i] = &leaf{text: l}
	}
	return children
}

// Source is a text document split on sep, wrapped as a value.Source.
type Source struct {
	root *rootNode
	sep  string
}

// New splits data on sep and returns a Source over the resulting lines.
// A trailing empty entry produced by a final separator (the common case
// for a file ending in a newline) is dropped.
func New(data []byte, sep string) Source {
	if sep == "" {
		sep = "\n"
	}
	parts := strings.Split(string(data), sep)
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return Source{root: &rootNode{lines: parts}, sep: sep}
}

func (s Source) Root() value.Value { return s.root }

// Transform rejoins the current lines with sep, pipes them through
// query as a shell command, and re-splits the result the same way.
func (s Source) Transform(query string) (value.Source, error) {
	joined := strings.Join(s.root.lines, s.sep)
	if len(s.root.lines) > 0 {
		joined += s.sep
	}
	out, err := pipefilter.Run(context.Background(), query, []byte(joined))
	if err != nil {
		return nil, err
	}
	return New(out, s.sep), nil
}

// Factory instantiates a text Source, parsing its own "-sep" flag ahead
// of an optional file path (stdin otherwise).
type Factory struct {
	ReadFile  func(path string) ([]byte, error)
	ReadStdin func() ([]byte, error)
}

// NewFactory returns a Factory reading from the real filesystem/stdin.
func NewFactory() Factory {
	return Factory{
		ReadFile:  os.ReadFile,
		ReadStdin: func() ([]byte, error) { return io.ReadAll(os.Stdin) },
	}
}

func (Factory) Info() (name, description string) {
	return Name, "browse text split on a separator (default: newline)"
}

func (f Factory) From(args []string) (value.Source, bool, error) {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	sep := fs.String("sep", "\n", "separator to split input on")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, false, nil
		}
		return nil, false, err
	}

	var data []byte
	var err error
	if fs.NArg() > 0 {
		data, err = f.ReadFile(fs.Arg(0))
	} else {
		data, err = f.ReadStdin()
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading text input: %w", err)
	}
	return New(data, *sep), true, nil
}

func (Factory) Colors() []value.ColorPair { return nil }

func (Factory) Settings() value.Settings { return value.Settings{HideRoot: true} }
