package dispnode

import (
	"regexp"

	"tb/internal/search"
	"tb/internal/value"
)

// VisibleNext returns the next node in document order with Hide false,
// skipping any number of hidden nodes (e.g. a hide_root backend's root).
func (n *Node) VisibleNext() *Node {
	for cur := n.Next; cur != nil; cur = cur.Next {
		if !cur.Hide {
			return cur
		}
	}
	return nil
}

// VisiblePrev is VisibleNext's mirror over Prev.
func (n *Node) VisiblePrev() *Node {
	for cur := n.Prev; cur != nil; cur = cur.Prev {
		if !cur.Hide {
			return cur
		}
	}
	return nil
}

// VisibleParent returns the nearest ancestor with Hide false.
func (n *Node) VisibleParent() *Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if !cur.Hide {
			return cur
		}
	}
	return nil
}

// IsBefore reports whether a precedes b in document order.
func IsBefore(a, b *Node) bool {
	return ComparePaths(a, b) < 0
}

// IsAncestorOf reports whether a is a (possibly indirect) ancestor of b.
func IsAncestorOf(a, b *Node) bool {
	pa, pb := a.Value.Path(), b.Value.Path()
	if len(pa) >= len(pb) {
		return false
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return false
		}
	}
	return true
}

// ComparePaths orders two display nodes by their backing value paths.
func ComparePaths(a, b *Node) int {
	return value.ComparePaths(a.Value.Path(), b.Value.Path())
}

// Search rebuilds (or reuses, if query is unchanged) the node's search
// index over whichever Preformatted block is currently on screen, and
// reports whether it has any matches.
func (n *Node) Search(query *regexp.Regexp) bool {
	n.setSearch(query)
	return n.searchIdx != nil && n.searchIdx.Matches()
}

func (n *Node) setSearch(query *regexp.Regexp) {
	q := ""
	if query != nil {
		q = query.String()
	}
	if n.hasSearch && q == n.searchQuery {
		return
	}
	n.hasSearch = true
	n.searchQuery = q
	if query == nil {
		n.searchIdx = nil
		return
	}
	n.searchIdx = search.New(n.activePreformatted(), query)
}
