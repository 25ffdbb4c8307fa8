package browser

import "tb/internal/pos"

// Click selects the display row at screen row, and if it's a repeat
// click on the same node within DoubleClickWindow, toggles its
// expansion.
func (c *Controller) Click(row int) {
	p, ok := pos.Fwd(c.start, row, true)
	if !ok {
		return
	}
	node := p.Node
	now := c.clock.Now()
	repeat := node == c.lastClickNode && now.Sub(c.lastClickAt) < DoubleClickWindow

	c.lastClickNode = node
	c.lastClickAt = now
	c.Select(node, false)
	if repeat {
		c.Accordion(node, "toggle")
	}
}
