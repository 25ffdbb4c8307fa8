package browser

import (
	"tb/internal/dispnode"
	"tb/internal/pos"
)

// Select moves the selection to node, updating offset by the document
// distance traveled, and optionally scrolling the minimum amount to
// bring it fully on screen.
func (c *Controller) Select(node *dispnode.Node, scrollIn bool) {
	old := c.sel
	if node == old {
		if scrollIn {
			c.scrollIntoView()
		}
		return
	}

	if dispnode.IsBefore(old, node) {
		if d, ok := pos.DistFwd(pos.Pos{Node: old}, pos.Pos{Node: node}); ok {
			c.offset += d
		}
	} else {
		if d, ok := pos.DistFwd(pos.Pos{Node: node}, pos.Pos{Node: old}); ok {
			c.offset -= d
		}
	}

	c.sel = node
	c.redrawNode(old)
	c.redrawNode(node)

	if scrollIn {
		c.scrollIntoView()
	}
}

// scrollIntoView brings the current selection fully on screen, scrolling
// the minimum distance so one edge of the selection touches the
// matching viewport edge.
func (c *Controller) scrollIntoView() {
	if c.offset < 0 {
		c.Scroll(c.offset)
		return
	}
	bottom := c.offset + c.sel.Lines()
	if bottom > c.height {
		c.Scroll(bottom - c.height)
	}
}

// redrawNode repaints every screen row node currently occupies, if any
// of them are within the viewport.
func (c *Controller) redrawNode(n *dispnode.Node) {
	d, ok := pos.DistFwd(c.start, pos.Pos{Node: n})
	if !ok || d >= c.height {
		return
	}
	from := d
	if from < 0 {
		from = 0
	}
	to := d + n.Lines()
	c.redrawRows(from, to)
}
