package browser_test

import (
	"errors"
	"time"

	"tb/internal/fmtcmd"
	"tb/internal/term"
	"tb/internal/value"
)

// fakeValue is a minimal in-memory backend value, labelled text with
// optional children.
type fakeValue struct {
	value.BaseValue
	text     string
	children []value.Value
}

func leaf(text string) *fakeValue { return &fakeValue{text: text} }

func branch(text string, kids ...value.Value) *fakeValue {
	return &fakeValue{text: text, children: kids}
}

func (v *fakeValue) Content() fmtcmd.Cmd     { return fmtcmd.Literal(v.text) }
func (v *fakeValue) Placeholder() fmtcmd.Cmd { return value.PlaceholderFrom(v.Content()) }
func (v *fakeValue) Expandable() bool        { return v.children != nil }
func (v *fakeValue) Children() []value.Value { return v.children }

// fakeSource is a value.Source over a fixed root, with a trivial
// transform: "good" swaps in a differently labelled root, "bad"
// returns an error, anything else is a no-op passthrough.
type fakeSource struct {
	root value.Value
}

func (s fakeSource) Root() value.Value { return s.root }

func (s fakeSource) Transform(query string) (value.Source, error) {
	switch query {
	case "":
		return s, nil
	case "bad":
		return nil, errors.New("bad query")
	case "good":
		return fakeSource{root: branch("transformed", leaf("x"))}, nil
	default:
		return s, nil
	}
}

func newFixtureSource() fakeSource {
	return fakeSource{root: branch("root",
		branch("a", leaf("a0"), leaf("a1")),
		leaf("b"),
	)}
}

// fakeTerm is an in-memory term.Terminal recording SetCell calls into a
// grid, so tests can assert rendered rows.
type fakeTerm struct {
	cols, rows int
	grid       [][]rune
	pairs      map[int][4]int
}

func newFakeTerm(cols, rows int) *fakeTerm {
	t := &fakeTerm{cols: cols, rows: rows, pairs: map[int][4]int{}}
	t.reset()
	return t
}

func (t *fakeTerm) reset() {
	t.grid = make([][]rune, t.rows)
	for i := range t.grid {
		t.grid[i] = make([]rune, t.cols)
		for j := range t.grid[i] {
			t.grid[i][j] = ' '
		}
	}
}

func (t *fakeTerm) Setup() error    { return nil }
func (t *fakeTerm) Teardown() error { return nil }
func (t *fakeTerm) Size() (int, int) { return t.cols, t.rows }
func (t *fakeTerm) AllocPair(pair, fg8, bg8, fg256, bg256 int) {
	t.pairs[pair] = [4]int{fg8, bg8, fg256, bg256}
}
func (t *fakeTerm) SetCell(x, y int, ch rune, pair int) {
	if y < 0 || y >= t.rows || x < 0 || x >= t.cols {
		return
	}
	t.grid[y][x] = ch
}
func (t *fakeTerm) ClearToEOL(x, y int, pair int) {
	if y < 0 || y >= t.rows {
		return
	}
	for i := x; i < t.cols; i++ {
		t.grid[y][i] = ' '
	}
}
func (t *fakeTerm) Clear() { t.reset() }
func (t *fakeTerm) Scroll(n int) {
	if n > 0 {
		for y := 0; y < t.rows-n; y++ {
			copy(t.grid[y], t.grid[y+n])
		}
	} else if n < 0 {
		for y := t.rows - 1; y >= -n; y-- {
			copy(t.grid[y], t.grid[y+n])
		}
	}
}
func (t *fakeTerm) Show() {}
func (t *fakeTerm) ReadEvent(timeout time.Duration) term.Event {
	return term.Event{Kind: term.EventTimeout}
}

func (t *fakeTerm) row(y int) string {
	return string(t.grid[y])
}

// fakeClip records the last yanked text instead of touching the OS
// clipboard.
type fakeClip struct {
	last string
}

func (c *fakeClip) WriteAll(text string) error {
	c.last = text
	return nil
}

// fakeClock is a Clock whose Now() is set explicitly by the test.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }
