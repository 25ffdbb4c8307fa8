package browser

import (
	"tb/internal/dispnode"
	"tb/internal/pos"
)

// Accordion runs a structure-changing op (expand/collapse/toggle/
// refresh/recursive-expand) on node while keeping the viewport sensible,
// picking one of five strategies depending on node's relationship to
// the current viewport, start, and selection.
func (c *Controller) Accordion(node *dispnode.Node, op string) {
	d := c.signedDistFromStart(node)
	endsAboveViewport := d+node.Lines() <= 0
	belowViewport := d >= c.height
	ancestorOfStart := dispnode.IsAncestorOf(node, c.start.Node)
	ancestorOfSel := dispnode.IsAncestorOf(node, c.sel)

	switch {
	case endsAboveViewport && !ancestorOfStart:
		c.runOp(node, op)

	case belowViewport:
		c.runOp(node, op)

	case ancestorOfSel:
		c.Select(node, false)
		c.runOp(node, op)
		c.Redraw()

	case endsAboveViewport && ancestorOfStart:
		if op == "collapse" {
			c.runOp(node, op)
			newStart, _ := pos.Seek(pos.Pos{Node: c.sel}, -c.offset, true)
			c.start = newStart
			c.Redraw()
		} else {
			pre := c.signedDist(node, c.sel)
			c.runOp(node, op)
			post := c.signedDist(node, c.sel)
			c.Scroll(post - pre)
		}

	default:
		before := c.tailLines(node, c.height)
		c.runOp(node, op)
		after := c.tailLines(node, c.height)
		max := before
		if after > max {
			max = after
		}
		c.redrawRows(d, d+max)
	}
}

func (c *Controller) runOp(node *dispnode.Node, op string) {
	switch op {
	case "expand":
		node.Expand(c.width)
	case "collapse":
		node.Collapse()
	case "toggle":
		node.Toggle(c.width)
	case "refresh":
		node.Refresh(c.width)
	case "recursive-expand":
		node.RecursiveExpand(c.width)
	}
}

// signedDistFromStart returns the signed screen-row distance from
// c.start to n: positive or zero if n is at or after start, negative if
// it precedes it.
func (c *Controller) signedDistFromStart(n *dispnode.Node) int {
	return c.signedDist(c.start.Node, n)
}

// signedDist returns the signed distance from a to b, in either
// direction of document order.
func (c *Controller) signedDist(a, b *dispnode.Node) int {
	if d, ok := pos.DistFwd(pos.Pos{Node: a}, pos.Pos{Node: b}); ok {
		return d
	}
	if d, ok := pos.DistFwd(pos.Pos{Node: b}, pos.Pos{Node: a}); ok {
		return -d
	}
	return 0
}

// tailLines sums screen lines from from through the rest of the
// document, stopping once it reaches cap (the viewport never needs to
// know about lines further away than one screenful).
func (c *Controller) tailLines(from *dispnode.Node, cap int) int {
	total := 0
	for n := from; n != nil && total < cap; n = n.Next {
		total += n.Lines()
	}
	return total
}
