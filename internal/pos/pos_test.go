package pos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tb/internal/dispnode"
	"tb/internal/fmtcmd"
	"tb/internal/pos"
	"tb/internal/value"
)

type stringValue struct {
	value.BaseValue
	text string
	kids []*stringValue
}

func (s *stringValue) Content() fmtcmd.Cmd     { return fmtcmd.Literal(s.text) }
func (s *stringValue) Placeholder() fmtcmd.Cmd { return s.Content() }
func (s *stringValue) Expandable() bool        { return len(s.kids) > 0 }
func (s *stringValue) Children() []value.Value {
	out := make([]value.Value, len(s.kids))
	for i, k := range s.kids {
		out[i] = k
	}
	return out
}

func buildTree(t *testing.T) *dispnode.Node {
	t.Helper()
	root := &stringValue{text: "root", kids: []*stringValue{
		{text: "a"},
		{text: "multi\nline\nvalue"},
		{text: "c"},
	}}
	n := dispnode.New(nil, value.NewRoot(root), 80, true, false)
	n.RecursiveExpand(80)
	return n
}

func TestDistFwd_WithinAndAcrossNodes(t *testing.T) {
	root := buildTree(t)
	a, multi, c := root.Children[0], root.Children[1], root.Children[2]

	n, ok := pos.DistFwd(pos.Pos{Node: root, Line: 0}, pos.Pos{Node: a, Line: 0})
	require.True(t, ok)
	require.Equal(t, 1, n)

	n, ok = pos.DistFwd(pos.Pos{Node: multi, Line: 0}, pos.Pos{Node: multi, Line: 2})
	require.True(t, ok)
	require.Equal(t, 2, n)

	n, ok = pos.DistFwd(pos.Pos{Node: a, Line: 0}, pos.Pos{Node: c, Line: 0})
	require.True(t, ok)
	require.Equal(t, 1+3, n, "must sum all of multi's wrapped lines crossing through it")
}

func TestDistFwd_FalseWhenBBeforeA(t *testing.T) {
	root := buildTree(t)
	a, c := root.Children[0], root.Children[2]

	_, ok := pos.DistFwd(pos.Pos{Node: c, Line: 0}, pos.Pos{Node: a, Line: 0})
	require.False(t, ok)
}

func TestFwd_StepsAcrossNodeBoundary(t *testing.T) {
	root := buildTree(t)
	a := root.Children[0]

	p, ok := pos.Fwd(pos.Pos{Node: a, Line: 0}, 1, false)
	require.True(t, ok)
	require.Same(t, root.Children[1], p.Node)
	require.Equal(t, 0, p.Line)
}

func TestFwd_SafeClampsAtDocumentEnd(t *testing.T) {
	root := buildTree(t)
	c := root.Children[2]

	p, ok := pos.Fwd(pos.Pos{Node: c, Line: 0}, 50, true)
	require.True(t, ok)
	require.Same(t, c, p.Node)
	require.Equal(t, c.Lines()-1, p.Line)
}

func TestFwd_UnsafeFailsPastDocumentEnd(t *testing.T) {
	root := buildTree(t)
	c := root.Children[2]

	_, ok := pos.Fwd(pos.Pos{Node: c, Line: 0}, 50, false)
	require.False(t, ok)
}

func TestBwd_IsFwdsInverse(t *testing.T) {
	root := buildTree(t)
	a := root.Children[0]

	fwdPos, ok := pos.Fwd(pos.Pos{Node: a, Line: 0}, 3, false)
	require.True(t, ok)
	back, ok := pos.Bwd(fwdPos, 3, false)
	require.True(t, ok)
	require.Same(t, a, back.Node)
	require.Equal(t, 0, back.Line)
}

func TestSeek_DispatchesBySign(t *testing.T) {
	root := buildTree(t)
	a := root.Children[0]

	p, ok := pos.Seek(pos.Pos{Node: a, Line: 0}, 1, false)
	require.True(t, ok)
	require.Same(t, root.Children[1], p.Node)

	p, ok = pos.Seek(p, -1, false)
	require.True(t, ok)
	require.Same(t, a, p.Node)
}
