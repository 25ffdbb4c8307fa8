package browser

import (
	"tb/internal/dispnode"
	"tb/internal/prompt"
)

// Selected returns the currently selected display node.
func (c *Controller) Selected() *dispnode.Node { return c.sel }

// Root returns the display tree currently on screen.
func (c *Controller) Root() *dispnode.Node { return c.root }

// Offset returns dist_fwd(start, sel); negative if sel precedes start.
func (c *Controller) Offset() int { return c.offset }

// NumBuf returns the pending numeric prefix buffer, for status-line
// rendering and tests.
func (c *Controller) NumBuf() string { return c.numbuf }

// SearchPrompt returns the persistent search prompt, active between
// StartSearch and FinishSearch.
func (c *Controller) SearchPrompt() *prompt.Prompt { return c.searchPrompt }

// TransformPrompt returns the persistent transform prompt, active
// between StartTransform and FinishTransform.
func (c *Controller) TransformPrompt() *prompt.Prompt { return c.transformPrompt }

// CommandPrompt returns the persistent command-line prompt, active
// between StartCommandLine and FinishCommandLine.
func (c *Controller) CommandPrompt() *prompt.Prompt { return c.commandPrompt }
