package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TCellTerminal implements Terminal over gdamore/tcell/v2.
type TCellTerminal struct {
	screen tcell.Screen
	styles map[int]tcell.Style
	events chan tcell.Event
	stop   chan struct{}
}

// NewTCellTerminal constructs a terminal without opening it; call Setup
// to enter raw mode.
func NewTCellTerminal() *TCellTerminal {
	return &TCellTerminal{styles: map[int]tcell.Style{0: tcell.StyleDefault}}
}

func (t *TCellTerminal) Setup() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse()
	s.HideCursor()
	s.Clear()

	t.screen = s
	t.events = make(chan tcell.Event, 16)
	t.stop = make(chan struct{})
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.events <- ev:
			case <-t.stop:
				return
			}
		}
	}()
	return nil
}

func (t *TCellTerminal) Teardown() error {
	if t.screen == nil {
		return nil
	}
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.screen.Fini()
	t.screen = nil
	return nil
}

func (t *TCellTerminal) Size() (cols, rows int) {
	return t.screen.Size()
}

// AllocPair only needs one numeric color family per terminal; tcell
// negotiates 256-color support itself, so we always hand it the
// richer value and let it downsample.
func (t *TCellTerminal) AllocPair(pair int, fg8, bg8, fg256, bg256 int) {
	style := tcell.StyleDefault.
		Foreground(tcell.PaletteColor(fg256)).
		Background(tcell.PaletteColor(bg256))
	t.styles[pair] = style
}

func (t *TCellTerminal) styleFor(pair int) tcell.Style {
	if s, ok := t.styles[pair]; ok {
		return s
	}
	return tcell.StyleDefault
}

func (t *TCellTerminal) SetCell(x, y int, ch rune, pair int) {
	t.screen.SetContent(x, y, ch, nil, t.styleFor(pair))
}

func (t *TCellTerminal) ClearToEOL(x, y int, pair int) {
	cols, _ := t.screen.Size()
	style := t.styleFor(pair)
	for col := x; col < cols; col++ {
		t.screen.SetContent(col, y, ' ', nil, style)
	}
}

func (t *TCellTerminal) Clear() {
	t.screen.Clear()
}

// Scroll redraws the whole screen content shifted by n rows; tcell has
// no direct hardware-scroll primitive, so the minimal-region contract
// is honored one level up, in the controller, which only calls Scroll
// for the rows actually vacated and redraws the rest itself.
func (t *TCellTerminal) Scroll(n int) {
	cols, rows := t.screen.Size()
	if n == 0 {
		return
	}
	if n > 0 {
		for y := 0; y < rows-n; y++ {
			for x := 0; x < cols; x++ {
				mainc, combc, style, _ := t.screen.GetContent(x, y+n)
				t.screen.SetContent(x, y, mainc, combc, style)
			}
		}
		for y := rows - n; y < rows; y++ {
			t.ClearToEOL(0, y, 0)
		}
		return
	}
	n = -n
	for y := rows - 1; y >= n; y-- {
		for x := 0; x < cols; x++ {
			mainc, combc, style, _ := t.screen.GetContent(x, y-n)
			t.screen.SetContent(x, y, mainc, combc, style)
		}
	}
	for y := 0; y < n; y++ {
		t.ClearToEOL(0, y, 0)
	}
}

func (t *TCellTerminal) Show() {
	t.screen.Show()
}

func (t *TCellTerminal) ReadEvent(timeout time.Duration) Event {
	select {
	case ev := <-t.events:
		return translate(ev)
	case <-time.After(timeout):
		return Event{Kind: EventTimeout}
	}
}

func translate(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if k, ok := specialKeys[e.Key()]; ok {
			return Event{Kind: EventSpecial, Key: k}
		}
		if e.Key() == tcell.KeyRune {
			return Event{Kind: EventChar, Rune: e.Rune()}
		}
		if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
			return Event{Kind: EventChar, Rune: rune(e.Key())}
		}
		return Event{Kind: EventInvalid}
	case *tcell.EventMouse:
		x, y := e.Position()
		btn := 0
		release := e.Buttons() == tcell.ButtonNone
		switch {
		case e.Buttons()&tcell.Button1 != 0:
			btn = 1
		case e.Buttons()&tcell.Button2 != 0:
			btn = 2
		case e.Buttons()&tcell.Button3 != 0:
			btn = 3
		case e.Buttons()&tcell.WheelUp != 0:
			btn = 4
		case e.Buttons()&tcell.WheelDown != 0:
			btn = 5
		}
		return Event{Kind: EventMouse, MouseX: x, MouseY: y, MouseButton: btn, MouseRelease: release}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Kind: EventResize, Width: w, Height: h}
	default:
		return Event{Kind: EventInvalid}
	}
}

var specialKeys = map[tcell.Key]Key{
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
	tcell.KeyHome:      KeyHome,
	tcell.KeyEnd:       KeyEnd,
	tcell.KeyPgUp:      KeyPageUp,
	tcell.KeyPgDn:      KeyPageDown,
	tcell.KeyBackspace: KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:    KeyDelete,
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyTab:       KeyTab,
	tcell.KeyF1:        KeyF1,
	tcell.KeyF2:        KeyF2,
	tcell.KeyF3:        KeyF3,
	tcell.KeyF4:        KeyF4,
	tcell.KeyF5:        KeyF5,
	tcell.KeyF6:        KeyF6,
	tcell.KeyF7:        KeyF7,
	tcell.KeyF8:        KeyF8,
	tcell.KeyF9:        KeyF9,
	tcell.KeyF10:       KeyF10,
	tcell.KeyF11:       KeyF11,
	tcell.KeyF12:       KeyF12,
	tcell.KeyF13:       KeyF13,
	tcell.KeyF14:       KeyF14,
	tcell.KeyF15:       KeyF15,
}
