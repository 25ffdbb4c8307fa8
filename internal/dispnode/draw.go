package dispnode

import (
	"regexp"

	"tb/internal/fmtcmd"
	"tb/internal/search"
	"tb/internal/value"
)

// bgNormal, bgSelected and bgHighlight are the background palette slots
// DrawLine composes over: 0 for an ordinary row, 1 while selected, 2 for
// a search hit (restoring whichever of the two the row was already in).
const (
	bgNormal    = 0
	bgSelected  = 1
	bgHighlight = 2
)

// DrawLine renders display row lineIdx of n (0 is the node's own
// prefixed first line; any further row is a wrapped continuation) as a
// flat sequence of drawing ops: the prefix in the muted color, then the
// node's content with any cached search ranges highlighted, finished
// with a fill to the node's layout width.
func (n *Node) DrawLine(lineIdx int, selected bool) []fmtcmd.Op {
	bg := bgNormal
	if selected {
		bg = bgSelected
	}

	prefix := n.Prefix1
	if lineIdx == 0 {
		prefix = n.Prefix0
	}

	ops := []fmtcmd.Op{
		{Kind: fmtcmd.OpBg, Idx: bg},
		{Kind: fmtcmd.OpFg, Idx: fmtcmd.MutedColor},
	}
	if prefix != "" {
		ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpStr, Str: prefix})
	}
	ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpFg, Idx: 0})

	pre := n.activePreformatted()
	if lineIdx < len(pre.Content) {
		for segIdx, op := range pre.Content[lineIdx] {
			if op.Kind == fmtcmd.OpStr && n.searchIdx != nil {
				ranges := n.searchIdx.Ranges(lineIdx, segIdx)
				ops = append(ops, search.SplitHighlighted(op.Str, ranges, bgHighlight, bg)...)
				continue
			}
			ops = append(ops, op)
		}
	}
	ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpFill, Fill: ' '})
	return ops
}

// SearchFrom walks |offset| matches of query through the backing value
// tree starting from n (forward for a positive offset, backward for a
// negative one, wrapping at either end), and returns the destination
// node's path, or ok=false if the tree has no other match.
func (n *Node) SearchFrom(query *regexp.Regexp, offset int) ([]int, bool) {
	forward := offset >= 0
	steps := offset
	if steps < 0 {
		steps = -steps
	}
	if steps == 0 {
		steps = 1
	}

	root := n.Value
	for root.Parent != nil {
		root = root.Parent
	}

	cur := n.Value
	for i := 0; i < steps; i++ {
		next, ok := value.SearchFrom(root, cur, query, forward)
		if !ok {
			return cur.Path(), false
		}
		cur = next
	}
	return cur.Path(), true
}
