package browser

import "tb/internal/pos"

// Scroll seeks start by by screen lines (safe, clamping at either end
// of the document), adjusts offset by the actual distance moved, then
// walks the selection forward or backward as needed to keep it on
// screen. Returns the actual number of lines moved.
func (c *Controller) Scroll(by int) int {
	newStart, _ := pos.Seek(c.start, by, true)

	moved := 0
	if by >= 0 {
		if d, ok := pos.DistFwd(c.start, newStart); ok {
			moved = d
		}
	} else {
		if d, ok := pos.DistFwd(newStart, c.start); ok {
			moved = -d
		}
	}
	c.start = newStart
	c.offset -= moved

	if by > 0 {
		for c.offset < 0 {
			next := c.sel.VisibleNext()
			if next == nil {
				break
			}
			c.offset += c.sel.Lines()
			c.sel = next
		}
	} else if by < 0 {
		for c.offset+c.sel.Lines() > c.height {
			prev := c.sel.VisiblePrev()
			if prev == nil {
				break
			}
			c.sel = prev
			c.offset -= c.sel.Lines()
		}
	}

	if moved != 0 && abs(moved) < c.height {
		c.term.Scroll(moved)
		if moved > 0 {
			c.redrawRows(c.height-moved, c.height)
		} else {
			c.redrawRows(0, -moved)
		}
		c.term.Show()
	} else if moved != 0 {
		c.Redraw()
	}
	return moved
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// scrollBy scrolls by lines; the command dispatcher calls Scroll
// directly.
func (c *Controller) scrollBy(lines int) { c.Scroll(lines) }

// PageLines and HalfPageLines give the screen-relative distances for
// page-down/up and half-page scrolling.
func (c *Controller) PageLines() int     { return c.height }
func (c *Controller) HalfPageLines() int { return c.height / 2 }

// Center scrolls so the selection's first line sits at the vertical
// midpoint of the viewport.
func (c *Controller) Center() {
	c.Scroll(c.offset - c.height/2)
}
