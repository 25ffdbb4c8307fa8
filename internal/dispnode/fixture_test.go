package dispnode_test

import (
	"fmt"

	"tb/internal/fmtcmd"
	"tb/internal/value"
)

// fakeValue is a minimal in-memory backend value used to exercise the
// display tree without depending on any real backend.
type fakeValue struct {
	value.BaseValue
	name     string
	kids     []*fakeValue
	expanded bool // set once Children() has been called
}

func leaf(name string) *fakeValue { return &fakeValue{name: name} }

func branch(name string, kids ...*fakeValue) *fakeValue {
	return &fakeValue{name: name, kids: kids}
}

// emptyBranch reports Expandable() true but yields zero children, e.g. an
// empty directory.
type emptyBranch struct {
	value.BaseValue
	name string
}

func (f *emptyBranch) Content() fmtcmd.Cmd     { return fmtcmd.Literal(f.name) }
func (f *emptyBranch) Placeholder() fmtcmd.Cmd { return f.Content() }
func (f *emptyBranch) Expandable() bool        { return true }
func (f *emptyBranch) Children() []value.Value { return nil }

func (f *fakeValue) Content() fmtcmd.Cmd     { return fmtcmd.Literal(f.name) }
func (f *fakeValue) Placeholder() fmtcmd.Cmd { return fmtcmd.Literal(fmt.Sprintf("%s: Loading...", f.name)) }
func (f *fakeValue) Expandable() bool        { return len(f.kids) > 0 }
func (f *fakeValue) Children() []value.Value {
	f.expanded = true
	out := make([]value.Value, len(f.kids))
	for i, k := range f.kids {
		out[i] = k
	}
	return out
}

func newFixture() *value.Node {
	root := branch("root",
		branch("a",
			leaf("a0"),
			leaf("a1"),
		),
		leaf("b"),
	)
	return value.NewRoot(root)
}
