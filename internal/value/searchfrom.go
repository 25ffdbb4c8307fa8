package value

import (
	"regexp"

	"tb/internal/fmtcmd"
)

// SearchFrom performs an iterative (never recursive — tree depth is
// unbounded) document-order DFS, or reverse DFS when !forward, starting
// just after (or before) from, wrapping around to the opposite end of
// the document, until either a node whose unexpanded Content() matches
// query is found, or the traversal returns to from.
func SearchFrom(root, from *Node, query *regexp.Regexp, forward bool) (*Node, bool) {
	step := stepNext
	wrap := firstNode
	if !forward {
		step = stepPrev
		wrap = lastNode
	}

	cur := step(from)
	if cur == nil {
		cur = wrap(root)
	}
	for cur != nil && cur != from {
		if fmtcmd.Contains(cur.Value.Content(), query) {
			return cur, true
		}
		cur = step(cur)
		if cur == nil {
			cur = wrap(root)
		}
	}
	return nil, false
}

func stepNext(n *Node) *Node {
	if n.Value.Expandable() {
		if kids := n.Children(); len(kids) > 0 {
			return kids[0]
		}
	}
	cur := n
	for cur.Parent != nil {
		sibs := cur.Parent.Children()
		if cur.Index+1 < len(sibs) {
			return sibs[cur.Index+1]
		}
		cur = cur.Parent
	}
	return nil
}

func stepPrev(n *Node) *Node {
	if n.Parent == nil {
		return nil
	}
	sibs := n.Parent.Children()
	if n.Index == 0 {
		return n.Parent
	}
	return lastDescendant(sibs[n.Index-1])
}

func lastDescendant(n *Node) *Node {
	for n.Value.Expandable() {
		kids := n.Children()
		if len(kids) == 0 {
			break
		}
		n = kids[len(kids)-1]
	}
	return n
}

func firstNode(root *Node) *Node { return root }
func lastNode(root *Node) *Node  { return lastDescendant(root) }
