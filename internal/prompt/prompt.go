// Package prompt implements the single-line editor used for search,
// transform, and command-line entry: a text buffer with cursor and
// scroll offset, history, and an incremental callback fired on every
// mutation.
package prompt

import "tb/internal/charwidth"

// Prompt is a single-line text editor anchored at a fixed screen
// location and width.
type Prompt struct {
	Label string // e.g. "/", "?", "|", ":"
	Width int    // display columns available for the buffer (excludes Label)

	buf    []rune
	cursor int // rune index into buf
	offset int // first visible rune index, for horizontal scrolling

	history    []string
	histIdx    int // len(history) means "not browsing history"
	histDraft  string
	onChange   func(text string)
}

// New returns a Prompt anchored with label and width, invoking onChange
// after every buffer mutation (including the initial empty buffer).
func New(label string, width int, onChange func(text string)) *Prompt {
	p := &Prompt{Label: label, Width: width, onChange: onChange}
	p.Reset("")
	return p
}

// Reset clears the buffer to initial, places the cursor at its end, and
// fires onChange.
func (p *Prompt) Reset(initial string) {
	p.buf = []rune(initial)
	p.cursor = len(p.buf)
	p.offset = 0
	p.histIdx = len(p.history)
	p.histDraft = ""
	p.fire()
}

// Text returns the current buffer contents.
func (p *Prompt) Text() string { return string(p.buf) }

func (p *Prompt) fire() {
	p.adjustOffset()
	if p.onChange != nil {
		p.onChange(p.Text())
	}
}

// Insert types s at the cursor.
func (p *Prompt) Insert(s string) {
	runes := []rune(s)
	tail := append([]rune(nil), p.buf[p.cursor:]...)
	p.buf = append(p.buf[:p.cursor], append(runes, tail...)...)
	p.cursor += len(runes)
	p.fire()
}

// Backspace deletes the rune before the cursor.
func (p *Prompt) Backspace() {
	if p.cursor == 0 {
		return
	}
	p.buf = append(p.buf[:p.cursor-1], p.buf[p.cursor:]...)
	p.cursor--
	p.fire()
}

// Delete deletes the rune under the cursor.
func (p *Prompt) Delete() {
	if p.cursor >= len(p.buf) {
		return
	}
	p.buf = append(p.buf[:p.cursor], p.buf[p.cursor+1:]...)
	p.fire()
}

// Left moves the cursor back one rune.
func (p *Prompt) Left() {
	if p.cursor > 0 {
		p.cursor--
		p.adjustOffset()
	}
}

// Right moves the cursor forward one rune.
func (p *Prompt) Right() {
	if p.cursor < len(p.buf) {
		p.cursor++
		p.adjustOffset()
	}
}

// Home moves the cursor to the start of the buffer (Ctrl-A).
func (p *Prompt) Home() {
	p.cursor = 0
	p.adjustOffset()
}

// End moves the cursor to the end of the buffer (Ctrl-E).
func (p *Prompt) End() {
	p.cursor = len(p.buf)
	p.adjustOffset()
}

// HistoryUp recalls the previous history entry, saving the in-progress
// buffer as a draft the first time it's called.
func (p *Prompt) HistoryUp() {
	if p.histIdx == 0 {
		return
	}
	if p.histIdx == len(p.history) {
		p.histDraft = p.Text()
	}
	p.histIdx--
	p.buf = []rune(p.history[p.histIdx])
	p.cursor = len(p.buf)
	p.fire()
}

// HistoryDown recalls the next history entry, or the saved draft once
// history is exhausted.
func (p *Prompt) HistoryDown() {
	if p.histIdx >= len(p.history) {
		return
	}
	p.histIdx++
	if p.histIdx == len(p.history) {
		p.buf = []rune(p.histDraft)
	} else {
		p.buf = []rune(p.history[p.histIdx])
	}
	p.cursor = len(p.buf)
	p.fire()
}

// Accept records the current buffer in history (if non-empty and
// different from the last entry) and returns it (Enter).
func (p *Prompt) Accept() string {
	text := p.Text()
	if text != "" && (len(p.history) == 0 || p.history[len(p.history)-1] != text) {
		p.history = append(p.history, text)
	}
	p.histIdx = len(p.history)
	return text
}

// Cancel returns the empty string, the documented Escape contract.
func (p *Prompt) Cancel() string { return "" }

// stringWidth sums the display width of a rune slice, consistent with
// how the preformatter measures text.
func stringWidth(runes []rune) int {
	w := 0
	for _, cl := range charwidth.Graphemes(string(runes)) {
		w += charwidth.ClusterWidth(cl)
	}
	return w
}

// adjustOffset keeps the cursor within [offset, offset+Width) in display
// columns, scrolling the visible window minimally.
func (p *Prompt) adjustOffset() {
	if p.offset > p.cursor {
		p.offset = p.cursor
	}
	for {
		w := stringWidth(p.buf[p.offset:p.cursor])
		if w < p.Width || p.offset >= p.cursor {
			break
		}
		p.offset++
	}
}

// Visible returns the substring of the buffer currently on screen and
// the cursor's display column within it, for the controller to draw.
func (p *Prompt) Visible() (text string, cursorCol int) {
	end := len(p.buf)
	for end > p.offset && stringWidth(p.buf[p.offset:end]) > p.Width {
		end--
	}
	return string(p.buf[p.offset:end]), stringWidth(p.buf[p.offset:p.cursor])
}
