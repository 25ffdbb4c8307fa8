package browser

import "tb/internal/prompt"

// StartTransform opens the persistent transform prompt ("|"), primed
// with initial; a non-empty initial is proposed right away.
func (c *Controller) StartTransform(initial string) *prompt.Prompt {
	c.activePrompt = PromptTransform
	c.transformPrompt.Reset(initial)
	if initial != "" {
		c.tm.Propose(initial, c.width)
		c.root = c.tm.Root()
		c.rehome()
	}
	return c.transformPrompt
}

// FinishTransform applies the prompt's Enter/Escape result: empty or
// cancelled rejects the proposal and reverts to cur; otherwise the
// proposal is accepted and recorded in the prompt's own history.
func (c *Controller) FinishTransform(accepted bool) {
	c.activePrompt = PromptNone
	if !accepted {
		c.transformPrompt.Cancel()
		c.tm.Reject()
		c.root = c.tm.Root()
		c.rehome()
		c.Redraw()
		return
	}
	text := c.transformPrompt.Accept()
	if text == "" {
		c.tm.Reject()
	} else {
		c.tm.Accept()
	}
	c.root = c.tm.Root()
	c.rehome()
	c.Redraw()
}

// ResetTransform discards both the accepted and proposed transforms,
// reverting to the backend's original root ("C" in the default keymap).
func (c *Controller) ResetTransform() {
	c.tm.Clear()
	c.root = c.tm.Root()
	c.rehome()
	c.Redraw()
}
