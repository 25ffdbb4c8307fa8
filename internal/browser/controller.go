// Package browser implements the Tree Controller: the mutable viewport
// state (start/selection/offset), the TransformManager, and the
// operations the command dispatcher and main loop drive — resize,
// scroll, select, accordion (structural toggles), search, transform,
// yank, invoke, and click handling.
package browser

import (
	"regexp"
	"time"

	"tb/internal/dispnode"
	"tb/internal/fmtcmd"
	"tb/internal/palette"
	"tb/internal/pos"
	"tb/internal/prompt"
	"tb/internal/term"
	"tb/internal/value"
)

// Controller owns one backend session end to end: its TransformManager,
// the viewport over the current display tree, and all terminal I/O.
type Controller struct {
	term term.Terminal
	pal  *palette.Palette
	clip Clipboard
	clock Clock

	tm   *TransformManager
	root *dispnode.Node
	sel  *dispnode.Node

	start  pos.Pos
	offset int // dist_fwd(start, sel); negative if sel precedes start

	width, height int // height excludes the status line

	searchQuery *regexp.Regexp
	searchFwd   bool
	preSearchQuery *regexp.Regexp // query in effect before the current search prompt opened
	searchPrompt    *prompt.Prompt
	transformPrompt *prompt.Prompt
	commandPrompt   *prompt.Prompt

	numbuf string

	statusMsg     string
	quitRequested bool
	activePrompt  PromptKind // which prompt (if any) drawStatus paints over statusMsg/numbuf

	lastClickNode *dispnode.Node
	lastClickAt   time.Time

	pairs map[int]bool // allocated term color pairs, lazily populated
}

// New builds a Controller over src's root, ready for an initial Resize.
func New(src value.Source, hideRoot bool, t term.Terminal, pal *palette.Palette, clip Clipboard) *Controller {
	c := &Controller{
		term:  t,
		pal:   pal,
		clip:  clip,
		clock: realClock{},
		tm:    NewTransformManager(src, hideRoot, 80),
		pairs: make(map[int]bool),
	}
	c.root = c.tm.Root()
	c.sel = firstSelectable(c.root)
	c.start = pos.Pos{Node: c.sel, Line: 0}

	c.searchPrompt = prompt.New("/", 40, func(text string) {
		c.SetQuery(compileQuery(text))
		c.Redraw()
	})
	c.transformPrompt = prompt.New("|", 40, func(text string) {
		c.tm.Propose(text, c.width)
		c.root = c.tm.Root()
		c.rehome()
		c.Redraw()
	})
	c.commandPrompt = prompt.New(":", 40, nil)
	return c
}

// rehome re-anchors start/sel/offset to the current tm.Root() after a
// transform proposal swaps the display tree out from under them.
func (c *Controller) rehome() {
	c.sel = firstSelectable(c.root)
	c.start = pos.Pos{Node: c.sel, Line: 0}
	c.offset = 0
}

// firstSelectable returns n if visible, else its nearest visible
// successor (the common case: a hide_root backend's root).
func firstSelectable(n *dispnode.Node) *dispnode.Node {
	if !n.Hide {
		return n
	}
	if nx := n.VisibleNext(); nx != nil {
		return nx
	}
	return n
}

// walkAll visits every live display node in document order.
func (c *Controller) walkAll(fn func(*dispnode.Node)) {
	for n := c.root; n != nil; n = n.Next {
		fn(n)
	}
}

// Resize re-lays out every live node for the new terminal size,
// recomputes offset, and redraws.
func (c *Controller) Resize(cols, rows int) {
	c.width = cols
	c.height = rows - 1
	if c.height < 1 {
		c.height = 1
	}
	c.walkAll(func(n *dispnode.Node) { n.Reformat(c.width) })
	c.searchPrompt.Width = c.width - 1
	c.transformPrompt.Width = c.width - 1
	c.commandPrompt.Width = c.width - 1

	if d, ok := pos.DistFwd(c.start, pos.Pos{Node: c.sel, Line: 0}); ok {
		c.offset = d
	} else {
		c.offset = -1
	}
	c.Redraw()
}

// Redraw repaints the full viewport and status line.
func (c *Controller) Redraw() {
	c.term.Clear()
	p := c.start
	for row := 0; row < c.height; row++ {
		if p.Zero() {
			break
		}
		c.drawRow(row, p)
		next, ok := pos.Fwd(p, 1, false)
		if !ok {
			break
		}
		p = next
	}
	c.drawStatus()
	c.term.Show()
}

// redrawRows repaints screen rows [from,to) without clearing the rest
// of the viewport.
func (c *Controller) redrawRows(from, to int) {
	if from < 0 {
		from = 0
	}
	if to > c.height {
		to = c.height
	}
	if from >= to {
		return
	}
	p, ok := pos.Fwd(pos.Pos{Node: c.start.Node, Line: c.start.Line}, from, true)
	if !ok {
		return
	}
	for row := from; row < to; row++ {
		if p.Zero() {
			c.term.ClearToEOL(0, row, 0)
			continue
		}
		c.drawRow(row, p)
		next, ok := pos.Fwd(p, 1, false)
		if !ok {
			for r := row + 1; r < to; r++ {
				c.term.ClearToEOL(0, r, 0)
			}
			break
		}
		p = next
	}
	c.drawStatus()
	c.term.Show()
}

func (c *Controller) drawRow(row int, p pos.Pos) {
	ops := p.Node.DrawLine(p.Line, p.Node == c.sel)
	col := 0
	fg, bg := 0, 0
	for _, op := range ops {
		switch op.Kind {
		case fmtcmd.OpFg:
			fg = op.Idx
		case fmtcmd.OpBg:
			bg = op.Idx
		case fmtcmd.OpStr:
			pair := c.allocPair(fg, bg)
			for _, r := range op.Str {
				c.term.SetCell(col, row, r, pair)
				col++
			}
		case fmtcmd.OpFill:
			c.term.ClearToEOL(col, row, c.allocPair(fg, bg))
			col = c.width
		}
	}
}

// allocPair resolves (fg, bg) to a term color pair, allocating it with
// the terminal the first time it's used.
func (c *Controller) allocPair(fg, bg int) int {
	pair := c.pal.Pair(fg, bg)
	if c.pairs[pair] {
		return pair
	}
	rgb := c.pal.Fg(fg)
	c.term.AllocPair(pair, rgb.ANSI8, bg, rgb.ANSI256, bg)
	c.pairs[pair] = true
	return pair
}

func (c *Controller) drawStatus() {
	row := c.height
	c.term.ClearToEOL(0, row, 0)

	if p := c.activePromptWidget(); p != nil {
		c.drawPrompt(row, p)
		return
	}

	col := 0
	for _, r := range c.statusMsg {
		c.term.SetCell(col, row, r, 0)
		col++
	}
	num := c.numbuf
	if num != "" && c.width > 8 {
		start := c.width - 8
		for i, r := range num {
			if start+i >= c.width {
				break
			}
			c.term.SetCell(start+i, row, r, 0)
		}
	}
}

// activePromptWidget returns the prompt matching c.activePrompt, or nil
// when no prompt is open and drawStatus should fall back to
// statusMsg/numbuf.
func (c *Controller) activePromptWidget() *prompt.Prompt {
	switch c.activePrompt {
	case PromptSearchForward, PromptSearchBackward:
		return c.searchPrompt
	case PromptTransform:
		return c.transformPrompt
	case PromptCommandLine:
		return c.commandPrompt
	default:
		return nil
	}
}

// drawPrompt paints an active prompt's label, visible buffer window,
// and cursor onto the status row, so a user typing into "/", "?", "|",
// or ":" sees what they're typing instead of a blank line.
func (c *Controller) drawPrompt(row int, p *prompt.Prompt) {
	col := 0
	for _, r := range p.Label {
		c.term.SetCell(col, row, r, 0)
		col++
	}

	text, cursorCol := p.Visible()
	cursorPair := c.allocPair(palette.FgRegular, palette.BgHighlighted)
	runes := []rune(text)
	for i, r := range runes {
		pair := 0
		if i == cursorCol {
			pair = cursorPair
		}
		c.term.SetCell(col+i, row, r, pair)
	}
	if cursorCol >= len(runes) {
		c.term.SetCell(col+len(runes), row, ' ', cursorPair)
	}
}

// Echo sets the status message; it stays on the status line until the
// next Echo replaces it.
func (c *Controller) Echo(msg string) {
	c.statusMsg = msg
}
