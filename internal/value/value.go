// Package value wraps backend-provided value trees, giving every
// reachable node a stable positional identity and a memoized child list,
// and implements document-order cross-tree search.
package value

import "tb/internal/fmtcmd"

// Value is the capability set a backend node must expose. children() is
// only ever called when Expandable() is true; a backend returning
// different children on successive calls (e.g. a live filesystem) is
// supported because the Wrapper's cache can be dropped with Refresh.
type Value interface {
	Content() fmtcmd.Cmd
	Placeholder() fmtcmd.Cmd // default: same as Content()
	Expandable() bool
	Children() []Value // called only when Expandable() is true
	Invoke()            // default: no-op
}

// Source is a backend's root value plus an optional transform pipeline.
type Source interface {
	Root() Value
	// Transform proposes a new Source from a query. Returns an error if
	// the backend has no transform support or the query is invalid.
	Transform(query string) (Source, error)
}

// Settings are per-backend display defaults.
type Settings struct {
	HideRoot bool
}

// Factory discovers and instantiates backends.
type Factory interface {
	Info() (name, description string)
	// From parses args into a Source. ok=false means a clean exit (e.g.
	// --help was handled); err is fatal.
	From(args []string) (src Source, ok bool, err error)
	Colors() []ColorPair
	Settings() Settings
}

// ColorPair is one backend-declared palette entry.
type ColorPair struct {
	ANSI8, ANSI256 int
}

// BaseValue provides the default no-op Invoke, so simple backend values
// only need to implement Content/Placeholder/Expandable/Children (see
// PlaceholderFrom for the default Placeholder).
type BaseValue struct{}

func (BaseValue) Invoke() {}

// PlaceholderFrom returns content as the placeholder, the documented
// default for Placeholder().
func PlaceholderFrom(content fmtcmd.Cmd) fmtcmd.Cmd { return content }
