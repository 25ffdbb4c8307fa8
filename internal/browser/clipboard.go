package browser

import "github.com/atotto/clipboard"

// Clipboard is the yank destination. Use SystemClipboard for production
// and a stub in tests.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through to the OS clipboard via xclip/pbcopy.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
