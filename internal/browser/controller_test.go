package browser_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tb/internal/browser"
	"tb/internal/dispnode"
	"tb/internal/fmtcmd"
	"tb/internal/palette"
)

func newController(t *testing.T, cols, rows int) (*browser.Controller, *fakeTerm) {
	t.Helper()
	term := newFakeTerm(cols, rows)
	pal := palette.New(nil)
	c := browser.New(newFixtureSource(), false, term, pal, &fakeClip{})
	c.Resize(cols, rows)
	return c, term
}

func text(n *dispnode.Node) string {
	return fmtcmd.Render(n.Value.Value.Content(), 0, "")
}

func TestNew_SelectsRoot(t *testing.T) {
	c, _ := newController(t, 80, 10)
	require.Equal(t, "root", text(c.Selected()))
}

func TestSelect_NextWalksDocumentOrder(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"})
	c.Command([]string{"select", "next"})
	require.Equal(t, "a", text(c.Selected()))
}

func TestSelect_NextWithCountConsumesNumericPrefix(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"})
	c.Command([]string{"select", "next"}) // select "a"
	c.Command([]string{"node", "expand"}) // expand "a": a0, a1
	c.PushDigit(2)
	c.Command([]string{"select", "next"})
	require.Equal(t, "a1", text(c.Selected()))
	require.Equal(t, "", c.NumBuf())
}

func TestAccordion_ExpandRevealsChildren(t *testing.T) {
	c, _ := newController(t, 80, 10)
	require.Empty(t, c.Root().Children)
	c.Command([]string{"node", "expand"})
	require.Equal(t, 2, len(c.Root().Children))
}

func TestAccordion_ToggleCollapsesBack(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "toggle"})
	require.NotEmpty(t, c.Root().Children)
	c.Command([]string{"node", "toggle"})
	require.Empty(t, c.Root().Children)
}

func TestScroll_MovesStartAndReturnsActualDistance(t *testing.T) {
	c, _ := newController(t, 80, 3)
	c.Command([]string{"node", "expand"})
	moved := c.Scroll(1)
	require.Equal(t, 1, moved)
}

func TestClick_DoubleClickTogglesExpansion(t *testing.T) {
	c, _ := newController(t, 80, 10)
	clock := &fakeClock{now: time.Unix(0, 0)}
	c.SetClock(clock)

	c.Click(0) // selects root
	require.Empty(t, c.Root().Children)

	clock.now = clock.now.Add(100 * time.Millisecond)
	c.Click(0) // repeat click within window
	require.NotEmpty(t, c.Root().Children)
}

func TestClick_SlowRepeatDoesNotToggle(t *testing.T) {
	c, _ := newController(t, 80, 10)
	clock := &fakeClock{now: time.Unix(0, 0)}
	c.SetClock(clock)

	c.Click(0)
	clock.now = clock.now.Add(500 * time.Millisecond)
	c.Click(0)
	require.Empty(t, c.Root().Children)
}

func TestYank_WritesSelectionContentToClipboard(t *testing.T) {
	term := newFakeTerm(80, 10)
	pal := palette.New(nil)
	clip := &fakeClip{}
	c := browser.New(newFixtureSource(), false, term, pal, clip)
	c.Resize(80, 10)

	c.Command([]string{"yank"})
	require.Equal(t, "root", clip.last)
}

func TestSearch_SetQueryHighlightsMatchingNode(t *testing.T) {
	c, _ := newController(t, 80, 10)
	c.Command([]string{"node", "expand"})
	c.SetQuery(regexp.MustCompile("a"))
	require.True(t, c.Selected().VisibleNext().Search(regexp.MustCompile("a")))
}

func TestCommand_UnknownTokenEchoesWithoutPanicking(t *testing.T) {
	c, _ := newController(t, 80, 10)
	require.NotPanics(t, func() {
		c.Command([]string{"bogus"})
	})
}

func TestCommand_QuitSetsQuitRequested(t *testing.T) {
	c, _ := newController(t, 80, 10)
	require.False(t, c.QuitRequested())
	c.Command([]string{"quit"})
	require.True(t, c.QuitRequested())
}
