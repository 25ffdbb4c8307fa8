package browser

import (
	"strconv"
	"strings"

	"tb/internal/dispnode"
	"tb/internal/fmtcmd"
	"tb/internal/pos"
	"tb/internal/prompt"
)

// PromptKind tells the driving loop which prompt to hand keystrokes to
// after Command returns; PromptNone means the command already ran to
// completion.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptSearchForward
	PromptSearchBackward
	PromptTransform
	PromptCommandLine
)

// Command dispatches one tokenized action. Unknown tokens are echoed
// to the status line without aborting. The numeric prefix is consumed
// by the operations that accept a count and is always cleared before
// returning.
func (c *Controller) Command(tokens []string) PromptKind {
	kind := PromptNone
	if len(tokens) == 0 {
		c.ClearNum()
		return kind
	}

	switch tokens[0] {
	case "select":
		if len(tokens) > 1 {
			c.doSelect(tokens[1], c.getNum())
		}
	case "node":
		if len(tokens) > 1 {
			c.doNode(tokens[1])
		}
	case "scroll":
		if len(tokens) > 1 {
			c.doScroll(tokens[1:])
		}
	case "search":
		if len(tokens) > 1 {
			kind = c.doSearch(tokens[1])
		}
	case "transform":
		if len(tokens) > 1 && tokens[1] == "reset" {
			c.ResetTransform()
		} else {
			kind = PromptTransform
		}
	case "yank":
		c.yank()
	case "invoke":
		c.invoke()
	case "redraw":
		c.Redraw()
	case "command":
		kind = PromptCommandLine
	case "quit":
		c.quitRequested = true
	case "echo":
		c.Echo(strings.Join(tokens[1:], " "))
		c.Redraw()
	default:
		c.Echo("unknown command: " + strings.Join(tokens, " "))
		c.Redraw()
	}

	c.ClearNum()
	return kind
}

// QuitRequested reports whether "quit" has been dispatched.
func (c *Controller) QuitRequested() bool { return c.quitRequested }

func (c *Controller) doSelect(dir string, count int) {
	node := c.sel
	switch dir {
	case "next":
		for i := 0; i < count; i++ {
			n := node.VisibleNext()
			if n == nil {
				break
			}
			node = n
		}
	case "prev":
		for i := 0; i < count; i++ {
			n := node.VisiblePrev()
			if n == nil {
				break
			}
			node = n
		}
	case "nextsib":
		for i := 0; i < count; i++ {
			if node.NextSib == nil {
				break
			}
			node = node.NextSib
		}
	case "prevsib":
		for i := 0; i < count; i++ {
			if node.PrevSib == nil {
				break
			}
			node = node.PrevSib
		}
	case "parent":
		if n := node.VisibleParent(); n != nil {
			node = n
		}
	case "first":
		node = firstSelectable(c.root)
	case "last":
		node = lastVisible(c.root)
	case "top":
		if p, ok := pos.Fwd(c.start, 0, true); ok {
			node = p.Node
		}
	case "middle":
		if p, ok := pos.Fwd(c.start, c.height/2, true); ok {
			node = p.Node
		}
	case "bottom":
		if p, ok := pos.Fwd(c.start, c.height-1, true); ok {
			node = p.Node
		}
	default:
		return
	}
	c.Select(node, true)
}

func lastVisible(root *dispnode.Node) *dispnode.Node {
	last := root
	for n := root; n != nil; n = n.Next {
		if !n.Hide {
			last = n
		}
	}
	return last
}

func (c *Controller) doNode(op string) {
	switch op {
	case "toggle", "expand", "collapse", "recursive-expand":
		c.Accordion(c.sel, op)
	case "refresh":
		c.Accordion(c.sel, "refresh")
	case "refresh-root":
		c.Accordion(c.root, "refresh")
	}
}

func (c *Controller) doScroll(args []string) {
	count := c.getNum()
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	switch args[0] {
	case "page-down":
		c.Scroll(count * c.PageLines())
	case "page-up":
		c.Scroll(-count * c.PageLines())
	case "half-down":
		c.Scroll(count * c.HalfPageLines())
	case "half-up":
		c.Scroll(-count * c.HalfPageLines())
	case "line-down", "down":
		c.Scroll(count)
	case "line-up", "up":
		c.Scroll(-count)
	case "center":
		c.Center()
	}
}

func (c *Controller) doSearch(verb string) PromptKind {
	switch verb {
	case "forward":
		return PromptSearchForward
	case "backward":
		return PromptSearchBackward
	case "next":
		c.SearchNext(c.getNum())
	case "prev":
		c.SearchNext(-c.getNum())
	case "clear":
		c.SetQuery(nil)
		c.Redraw()
	}
	return PromptNone
}

func (c *Controller) yank() {
	if c.clip == nil {
		return
	}
	text := fmtcmd.Render(c.sel.Value.Value.Content(), fmtcmd.ClassYank, "")
	c.clip.WriteAll(text)
}

func (c *Controller) invoke() {
	c.sel.Value.Value.Invoke()
	c.Redraw()
}

// StartCommandLine opens the persistent ":" command-line prompt.
func (c *Controller) StartCommandLine() *prompt.Prompt {
	c.activePrompt = PromptCommandLine
	c.commandPrompt.Reset("")
	return c.commandPrompt
}

// FinishCommandLine tokenizes and dispatches the accepted command line.
func (c *Controller) FinishCommandLine(accepted bool) PromptKind {
	c.activePrompt = PromptNone
	if !accepted {
		c.commandPrompt.Cancel()
		return PromptNone
	}
	text := c.commandPrompt.Accept()
	return c.Command(strings.Fields(text))
}
