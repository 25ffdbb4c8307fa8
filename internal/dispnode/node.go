// Package dispnode implements the display tree: one node per
// expanded-or-visible backend node, doubly linked in document order and
// by sibling, lazily expanded, carrying cached prefixes and
// preformatted content.
package dispnode

import (
	"tb/internal/fmtcmd"
	"tb/internal/search"
	"tb/internal/value"
)

// COLWidth is the fixed indentation per nesting level, in columns.
const COLWidth = 4

// State is a node's expansion state.
type State int

const (
	Collapsed State = iota
	Loading
	Expanded
)

// Node is one node of the display tree. Only Parent->Children is a
// strong (owning) edge; Parent/Prev/Next/PrevSib/NextSib are non-owning
// back references, rewoven on every expansion/collapse.
type Node struct {
	Value *value.Node
	State State

	Children []*Node // strong-owned; empty unless Expanded

	Parent  *Node
	Prev    *Node
	Next    *Node
	PrevSib *Node
	NextSib *Node

	Last bool // true if this is the final child of its parent
	Hide bool // true if this node must occupy zero screen lines
	Depth int

	Prefix0 string // first-line prefix (with branch glyph)
	Prefix1 string // continuation-line prefix

	Content     fmtcmd.Preformatted
	Placeholder fmtcmd.Preformatted

	searchQuery string // meaningful only while hasSearch; see setSearch
	hasSearch   bool
	searchIdx   *search.Search

	width int
}

// New constructs a display node for val under parent (nil for the
// root), laying out its content for the given screen width.
func New(parent *Node, val *value.Node, width int, last, hide bool) *Node {
	n := &Node{
		Value: val,
		State: Collapsed,
		Last:  last,
		Hide:  hide,
	}
	if parent != nil {
		n.Parent = parent
		n.Depth = parent.Depth + 1
	}
	n.Reformat(width)
	return n
}

// Reformat recomputes the node's prefixes and lays out its content and
// placeholder for screenWidth columns, clearing any cached search.
func (n *Node) Reformat(screenWidth int) {
	n.width = screenWidth
	n.hasSearch = false
	n.searchIdx = nil

	cols := (screenWidth - 1) / COLWidth
	if cols < 1 {
		cols = 1
	}
	maxdepth := 0
	if n.Parent != nil {
		maxdepth = (n.Depth - 1) % cols
	}

	var ancestors []*Node
	for cur := n.Parent; cur != nil && len(ancestors) < maxdepth; cur = cur.Parent {
		if !cur.Hide {
			ancestors = append(ancestors, cur)
		}
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	branch := ""
	for _, a := range ancestors {
		if a.Last {
			branch += "    "
		} else {
			branch += "│   "
		}
	}

	prefixCols := len(ancestors) * COLWidth
	if n.Parent == nil {
		n.Prefix0 = ""
		n.Prefix1 = ""
	} else {
		prefixCols += COLWidth
		if n.Last {
			n.Prefix0 = branch + "└── "
			n.Prefix1 = branch + "    "
		} else {
			n.Prefix0 = branch + "├── "
			n.Prefix1 = branch + "│   "
		}
	}

	contentWidth := screenWidth - prefixCols
	if contentWidth < 1 {
		contentWidth = 1
	}

	n.Content = fmtcmd.Preformat(n.Value.Value.Content(), contentWidth, 2)
	n.Placeholder = fmtcmd.Preformat(n.Value.Value.Placeholder(), contentWidth, 2)
}

// Lines returns how many screen rows this node currently occupies.
func (n *Node) Lines() int {
	if n.Hide {
		return 0
	}
	if n.State != Collapsed {
		return len(n.Placeholder.Content)
	}
	return len(n.Content.Content)
}

// activePreformatted returns whichever Preformatted block is on screen
// right now: Placeholder while Loading/Expanded, Content while Collapsed.
func (n *Node) activePreformatted() fmtcmd.Preformatted {
	if n.State != Collapsed {
		return n.Placeholder
	}
	return n.Content
}
