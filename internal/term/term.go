// Package term abstracts the curses-like terminal surface the core
// needs: raw/cbreak mode, minimal-region drawing, color-pair allocation,
// scrolling, and timed key/mouse reads. The only implementation is
// TCellTerminal, over github.com/gdamore/tcell/v2.
package term

import "time"

// EventKind classifies a ReadEvent result.
type EventKind int

const (
	EventChar EventKind = iota
	EventSpecial
	EventMouse
	EventResize
	EventTimeout
	EventInvalid
)

// Event is one terminal input event. Exactly the fields matching Kind
// are meaningful.
type Event struct {
	Kind EventKind

	Rune rune // EventChar
	Key  Key  // EventSpecial

	MouseX, MouseY int  // EventMouse
	MouseButton    int  // EventMouse: 1=left, 2=middle, 3=right, 4/5=wheel
	MouseRelease   bool // EventMouse

	Width, Height int // EventResize
}

// Key is a named key, disjoint from any Unicode rune: negative, so a
// keybinder trie keyed by plain int can use ASCII/Unicode code points
// for literal characters and Key values for everything else without
// any risk of collision.
type Key int

const (
	KeyUp Key = -(iota + 1)
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
	KeyTab
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
)

// Terminal is the drawing/input surface the controller renders through.
// Coordinates are (column, row), 0-based. Implementations must not block
// ReadEvent past timeout.
type Terminal interface {
	// Setup switches to raw/cbreak/noecho mode, hides the native
	// cursor, enables mouse reporting, and allocates color pair 0 (the
	// terminal default).
	Setup() error
	// Teardown restores cooked mode; must be safe to call more than
	// once and must run even after a panic.
	Teardown() error

	// Size returns the current terminal size in columns and rows.
	Size() (cols, rows int)

	// AllocPair associates a pair index with a foreground/background
	// ANSI color (8 or 256 depending on terminal capability).
	AllocPair(pair int, fg8, bg8, fg256, bg256 int)

	// SetCell draws one rune at (x, y) using the given color pair.
	SetCell(x, y int, ch rune, pair int)
	// ClearToEOL fills from x to the right edge of row y with blanks in
	// the given pair's background.
	ClearToEOL(x, y int, pair int)
	// Clear blanks the entire screen.
	Clear()
	// Scroll shifts the whole screen's content by n rows (positive up,
	// negative down); rows scrolled in must be cleared by the caller.
	Scroll(n int)
	// Show flushes pending draws to the physical terminal.
	Show()

	// ReadEvent blocks for up to timeout for one input event, or
	// returns an EventTimeout event if none arrives.
	ReadEvent(timeout time.Duration) Event
}
