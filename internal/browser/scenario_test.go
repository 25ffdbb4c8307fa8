package browser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tb/internal/browser"
	"tb/internal/palette"
)

// Exercises the "/" prompt lifecycle end to end: opening it, typing a
// query, and accepting it lands the selection on the first match and
// highlights it.
func TestSearch_ForwardPromptRoundTripSelectsFirstMatch(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"}) // root -> a, b

	kind := c.Command([]string{"search", "forward"})
	require.Equal(t, browser.PromptSearchForward, kind)

	p := c.StartSearch(true)
	p.Insert("b")
	c.FinishSearch(true, true)

	require.Equal(t, "b", text(c.Selected()))
}

// Escaping a search prompt restores whatever query (or lack of one)
// was active before the prompt opened, leaving the selection alone.
func TestSearch_EscapeRestoresPriorQuery(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"})

	before := c.Selected()
	p := c.StartSearch(true)
	p.Insert("b")
	c.FinishSearch(true, false)

	require.Same(t, before, c.Selected())
}

// The ":" command line can itself type a command that opens another
// prompt (e.g. "search forward"); FinishCommandLine must chain into it
// rather than swallowing the returned PromptKind.
func TestCommandLine_TypedSearchCommandChainsIntoSearchPrompt(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"})

	p := c.StartCommandLine()
	p.Insert("search forward")
	kind := c.FinishCommandLine(true)

	require.Equal(t, browser.PromptSearchForward, kind)
}

// A plain command typed at the ":" prompt (no further prompt) runs to
// completion and reports PromptNone.
func TestCommandLine_TypedQuitRunsImmediately(t *testing.T) {
	c, _ := newController(t, 80, 10)

	p := c.StartCommandLine()
	p.Insert("quit")
	kind := c.FinishCommandLine(true)

	require.Equal(t, browser.PromptNone, kind)
	require.True(t, c.QuitRequested())
}

// Escaping the command line never runs anything, even if text had
// already been typed.
func TestCommandLine_EscapeDiscardsTypedText(t *testing.T) {
	c, _ := newController(t, 80, 10)

	p := c.StartCommandLine()
	p.Insert("quit")
	kind := c.FinishCommandLine(false)

	require.Equal(t, browser.PromptNone, kind)
	require.False(t, c.QuitRequested())
}

// A numeric prefix survives across a scroll command the same way it
// does for "select next": "5" then "scroll down" consumes the prefix
// and clears it afterward.
func TestNumericPrefix_ConsumedByScrollDown(t *testing.T) {
	c, _ := newController(t, 80, 3)
	c.Command([]string{"node", "expand"})
	c.Command([]string{"select", "next"})
	c.Command([]string{"node", "expand"}) // deepen so there's content to scroll through

	before := c.Offset()
	c.PushDigit(5)
	c.Command([]string{"scroll", "down"})

	require.Equal(t, "", c.NumBuf())
	require.NotEqual(t, before, c.Offset())
}
