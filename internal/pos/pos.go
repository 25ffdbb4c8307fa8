// Package pos implements line-granular cursor arithmetic over the
// display tree: a Pos names one screen row as (node, line-within-node),
// and every operation walks the tree's document-order links rather than
// recursing, since the visible tree can be arbitrarily deep or wide.
package pos

import "tb/internal/dispnode"

// Pos is a weak reference to one screen row: the line-within-node index
// must be in [0, node.Lines()).
type Pos struct {
	Node *dispnode.Node
	Line int
}

// Zero reports whether p names no position.
func (p Pos) Zero() bool { return p.Node == nil }

// skipZero returns the nearest node at or after n (inclusive) with at
// least one screen line, since a hidden node contributes none and must
// be transparent to line arithmetic.
func skipZero(n *dispnode.Node) *dispnode.Node {
	for n != nil && n.Lines() == 0 {
		n = n.Next
	}
	return n
}

func skipZeroBack(n *dispnode.Node) *dispnode.Node {
	for n != nil && n.Lines() == 0 {
		n = n.Prev
	}
	return n
}

// DistFwd returns the number of screen lines from a to b, counting
// forward through document order, if b is at or after a; ok is false if
// b is never reached (it precedes a, or lies outside a's tree).
func DistFwd(a, b Pos) (n int, ok bool) {
	if a.Node == b.Node {
		if b.Line >= a.Line {
			return b.Line - a.Line, true
		}
		return 0, false
	}

	total := a.Node.Lines() - a.Line
	for cur := a.Node.Next; cur != nil; cur = cur.Next {
		if cur == b.Node {
			if b.Line < cur.Lines() {
				return total + b.Line, true
			}
			return 0, false
		}
		total += cur.Lines()
	}
	return 0, false
}

// Fwd advances pos by n screen lines (n must be >= 0). If safe, running
// off the end of the document clamps to the last valid position;
// otherwise it reports ok=false.
func Fwd(p Pos, n int, safe bool) (Pos, bool) {
	cur := p
	remaining := n
	for remaining > 0 {
		avail := cur.Node.Lines() - cur.Line - 1
		if remaining <= avail {
			cur.Line += remaining
			return cur, true
		}
		remaining -= avail + 1
		next := skipZero(cur.Node.Next)
		if next == nil {
			if safe {
				return lastPosOf(cur.Node), true
			}
			return Pos{}, false
		}
		cur = Pos{Node: next, Line: 0}
	}
	return cur, true
}

// Bwd is Fwd's mirror, walking Prev.
func Bwd(p Pos, n int, safe bool) (Pos, bool) {
	cur := p
	remaining := n
	for remaining > 0 {
		if remaining <= cur.Line {
			cur.Line -= remaining
			return cur, true
		}
		remaining -= cur.Line + 1
		prev := skipZeroBack(cur.Node.Prev)
		if prev == nil {
			if safe {
				// No earlier node has any lines, so cur.Node is already
				// the first visible node in the document.
				return Pos{Node: cur.Node, Line: 0}, true
			}
			return Pos{}, false
		}
		cur = Pos{Node: prev, Line: prev.Lines() - 1}
	}
	return cur, true
}

// Seek dispatches to Fwd or Bwd by the sign of n.
func Seek(p Pos, n int, safe bool) (Pos, bool) {
	if n >= 0 {
		return Fwd(p, n, safe)
	}
	return Bwd(p, -n, safe)
}

func lastPosOf(n *dispnode.Node) Pos {
	return Pos{Node: n, Line: n.Lines() - 1}
}
