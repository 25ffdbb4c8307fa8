package dispnode

// Expand transitions a Collapsed, expandable node to Expanded, pulling
// its children from the backend (via the value wrapper's memoized
// Children()) and splicing them into the document-order linked list.
//
// The six-pointer rewiring contract: children[0].Prev becomes n;
// children[i].Next becomes children[i+1] (or n.NextSib for the last
// child, whose own NextSib also becomes n.NextSib); and whatever
// previously held n.NextSib.Prev now points at the new last child.
func (n *Node) Expand(width int) bool {
	if n.State != Collapsed || !n.Value.Value.Expandable() {
		return false
	}
	n.State = Loading

	kids := n.Value.Children()
	children := make([]*Node, len(kids))
	for i, kid := range kids {
		children[i] = New(n, kid, width, i == len(kids)-1, false)
	}
	n.Children = children

	if len(children) == 0 {
		n.Next = n.NextSib
		if n.NextSib != nil {
			n.NextSib.Prev = n
		}
		n.State = Expanded
		return true
	}

	for i, c := range children {
		if i > 0 {
			c.PrevSib = children[i-1]
		}
		if i+1 < len(children) {
			c.NextSib = children[i+1]
			c.Next = children[i+1]
		} else {
			c.NextSib = n.NextSib
			c.Next = n.NextSib
		}
	}
	children[0].Prev = n
	n.Next = children[0]
	last := children[len(children)-1]
	if n.NextSib != nil {
		n.NextSib.Prev = last
	}

	n.State = Expanded
	return true
}

// Collapse transitions an Expanded node back to Collapsed, dropping its
// children and the backend's memoized child list, and restores this.next
// to point directly at this.nextsib.
func (n *Node) Collapse() bool {
	if n.State != Expanded {
		return false
	}
	n.Value.Refresh()
	n.Children = nil
	n.Next = n.NextSib
	if n.NextSib != nil {
		n.NextSib.Prev = n
	}
	n.State = Collapsed
	return true
}

// Toggle collapses an Expanded node or expands a Collapsed one.
func (n *Node) Toggle(width int) bool {
	if n.State == Expanded {
		return n.Collapse()
	}
	return n.Expand(width)
}

// RecursiveExpand expands n and then, depth first, every descendant that
// is itself expandable, stopping at nodes the backend reports as leaves.
func (n *Node) RecursiveExpand(width int) {
	if n.State == Collapsed {
		n.Expand(width)
	}
	for _, c := range n.Children {
		c.RecursiveExpand(width)
	}
}

// Refresh recomputes n's layout for screenWidth and, if n is currently
// Expanded, collapses and re-expands it so stale children are dropped and
// refetched from the backend.
func (n *Node) Refresh(screenWidth int) {
	n.Reformat(screenWidth)
	if n.State == Expanded {
		n.Collapse()
		n.Expand(screenWidth)
	}
}
