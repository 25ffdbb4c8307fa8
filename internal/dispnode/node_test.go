package dispnode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tb/internal/dispnode"
	"tb/internal/fmtcmd"
	"tb/internal/value"
)

func TestNew_RootHasNoPrefix(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	require.Equal(t, "", root.Prefix0)
	require.Equal(t, "", root.Prefix1)
	require.Equal(t, 0, root.Depth)
}

func TestExpand_WiresChildrenInDocumentOrder(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	require.True(t, root.Expand(80))
	require.Len(t, root.Children, 2)

	a, b := root.Children[0], root.Children[1]
	require.False(t, a.Last)
	require.True(t, b.Last)
	require.Same(t, root, a.Prev)
	require.Same(t, a, root.Next)
	require.Same(t, b, a.NextSib)
	require.Nil(t, b.NextSib)
	require.Nil(t, b.Next)

	require.True(t, a.Expand(80))
	require.Len(t, a.Children, 2)
	a0, a1 := a.Children[0], a.Children[1]
	require.Same(t, a, a0.Prev)
	require.Same(t, a1, a0.NextSib)
	require.Same(t, b, a1.NextSib, "last grandchild's nextsib must be a's own nextsib")
	require.Same(t, b, a1.Next, "last grandchild's next must skip to a's nextsib")
	require.Same(t, a1, b.Prev, "b's prev must be repointed at the new last descendant")
}

func TestCollapse_RestoresNextSibLink(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.Expand(80)
	a, b := root.Children[0], root.Children[1]
	a.Expand(80)

	require.True(t, a.Collapse())
	require.Nil(t, a.Children)
	require.Same(t, b, a.Next)
	require.Same(t, a, b.Prev)
}

func TestToggle_RoundTripsState(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	require.Equal(t, dispnode.Collapsed, root.State)
	require.True(t, root.Toggle(80))
	require.Equal(t, dispnode.Expanded, root.State)
	require.True(t, root.Toggle(80))
	require.Equal(t, dispnode.Collapsed, root.State)
}

func TestExpand_RejectsLeaves(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.Expand(80)
	_, b := root.Children[0], root.Children[1]
	require.False(t, b.Expand(80), "leaf nodes must refuse to expand")
}

func TestExpand_NoChildrenStillLinksPastSelf(t *testing.T) {
	n := dispnode.New(nil, value.NewRoot(&emptyBranch{name: "empty"}), 80, true, false)
	require.True(t, n.Expand(80))
	require.Equal(t, dispnode.Expanded, n.State)
	require.Empty(t, n.Children)
	require.Nil(t, n.Next, "an empty expansion has nothing to link to past itself at the root")
}

func TestRecursiveExpand_ReachesEveryExpandableNode(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.RecursiveExpand(80)

	require.Equal(t, dispnode.Expanded, root.State)
	a := root.Children[0]
	require.Equal(t, dispnode.Expanded, a.State)
	require.Len(t, a.Children, 2)
	for _, kid := range a.Children {
		require.Equal(t, dispnode.Collapsed, kid.State, "leaves have nothing to expand into")
	}
}

func TestReformat_WrapsIndentationAtDeepNesting(t *testing.T) {
	// Build a chain 11 levels deep; at 40 columns cols=(40-1)/4=9, so the
	// node at depth 10 must see the same ancestor-prefix budget as the
	// node at depth 1 (maxdepth wraps modulo cols).
	var kid *fakeValue
	leafNode := leaf("leaf")
	kid = leafNode
	for i := 0; i < 10; i++ {
		kid = branch("n", kid)
	}
	root := dispnode.New(nil, value.NewRoot(kid), 40, true, false)
	root.RecursiveExpand(40)

	n := root
	for n.State == dispnode.Expanded && len(n.Children) > 0 {
		n = n.Children[0]
	}
	require.LessOrEqual(t, len(n.Prefix0), 4*9+4, "prefix must stay bounded regardless of true nesting depth")
}

func TestDrawLine_PrefixUsesMutedColorThenResets(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.Expand(80)
	a := root.Children[0]

	ops := a.DrawLine(0, false)
	require.NotEmpty(t, ops)
	require.Equal(t, fmtcmd.OpFg, ops[1].Kind)
	require.Equal(t, fmtcmd.MutedColor, ops[1].Idx)
	require.Equal(t, "├── ", ops[2].Str)
}

func TestIsAncestorOf(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.RecursiveExpand(80)
	a := root.Children[0]
	a0 := a.Children[0]

	require.True(t, dispnode.IsAncestorOf(root, a0))
	require.True(t, dispnode.IsAncestorOf(a, a0))
	require.False(t, dispnode.IsAncestorOf(a0, a))
	require.False(t, dispnode.IsAncestorOf(a0, a0))
}

func TestIsBefore_OrdersByDocumentPosition(t *testing.T) {
	root := dispnode.New(nil, newFixture(), 80, true, false)
	root.RecursiveExpand(80)
	a, b := root.Children[0], root.Children[1]
	a0 := a.Children[0]

	require.True(t, dispnode.IsBefore(root, a))
	require.True(t, dispnode.IsBefore(a, a0))
	require.True(t, dispnode.IsBefore(a0, b))
	require.False(t, dispnode.IsBefore(b, a0))
}
