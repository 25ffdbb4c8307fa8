package browser

import (
	"regexp"

	"tb/internal/dispnode"
	"tb/internal/pos"
	"tb/internal/prompt"
)

// compileQuery compiles text as a regular expression; an invalid
// pattern is never surfaced to the user, it's retried as a literal
// string (error taxonomy class 3).
func compileQuery(text string) *regexp.Regexp {
	if text == "" {
		return nil
	}
	if re, err := regexp.Compile(text); err == nil {
		return re
	}
	return regexp.MustCompile(regexp.QuoteMeta(text))
}

// SetQuery installs query (nil clears search highlighting) across every
// node touching the viewport. It draws nothing itself; the new
// highlighting appears on the next Redraw.
func (c *Controller) SetQuery(query *regexp.Regexp) {
	c.searchQuery = query

	p := c.start
	row := 0
	for row < c.height && !p.Zero() {
		p.Node.Search(query)
		next, ok := pos.Fwd(p, p.Node.Lines()-p.Line, false)
		if !ok {
			break
		}
		row += p.Node.Lines() - p.Line
		p = next
	}
}

// SearchNext requires a query. It asks the selection's backing value
// for the offset-th match in the document (forward when searchFwd XOR
// offset is negative), lazily expanding every intermediate display node
// along the returned path, adjusting offset for newly revealed lines,
// and finally selecting the landing node.
func (c *Controller) SearchNext(offset int) {
	if c.searchQuery == nil {
		return
	}
	forward := c.searchFwd
	if offset < 0 {
		forward = !forward
	}
	dir := offset
	if !forward {
		dir = -abs(offset)
	} else {
		dir = abs(offset)
	}

	path, ok := c.sel.SearchFrom(c.searchQuery, dir)
	if !ok {
		return
	}
	target := c.walkPath(path)
	if target == nil {
		return
	}
	target.Search(c.searchQuery)
	c.Select(target, true)
}

// walkPath descends from root following path, lazily expanding each
// intermediate node so the display tree has a node to land on.
func (c *Controller) walkPath(path []int) *dispnode.Node {
	n := c.root
	for _, idx := range path {
		if n.State != dispnode.Expanded {
			n.Expand(c.width)
		}
		if idx < 0 || idx >= len(n.Children) {
			return n
		}
		n = n.Children[idx]
	}
	return n
}

// StartSearch opens the persistent search prompt ("/" forward, "?"
// backward), remembering the query in effect so Escape can restore it.
func (c *Controller) StartSearch(forward bool) *prompt.Prompt {
	c.searchPrompt.Label = "/"
	c.activePrompt = PromptSearchForward
	if !forward {
		c.searchPrompt.Label = "?"
		c.activePrompt = PromptSearchBackward
	}
	c.preSearchQuery = c.searchQuery
	c.searchPrompt.Reset("")
	return c.searchPrompt
}

// FinishSearch applies the prompt's Enter/Escape result: empty restores
// the previous query; otherwise it's recorded in history, searchfwd is
// set, and if the selection doesn't already match, searchnext(1) runs.
func (c *Controller) FinishSearch(forward bool, accepted bool) {
	c.activePrompt = PromptNone
	if !accepted {
		c.searchPrompt.Cancel()
		c.SetQuery(c.preSearchQuery)
		c.Redraw()
		return
	}
	text := c.searchPrompt.Accept()
	if text == "" {
		c.SetQuery(c.preSearchQuery)
		c.Redraw()
		return
	}
	c.searchFwd = forward
	c.SetQuery(compileQuery(text))
	if !c.sel.Search(c.searchQuery) {
		c.SearchNext(1)
	}
	c.Redraw()
}
