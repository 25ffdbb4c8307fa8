package keybinder

import (
	"fmt"
	"strings"
)

// binding pairs a key-sequence spec with the tokenized command it fires.
type binding struct {
	seq    string
	action string
}

// defaultBindings is the illustrative default keymap: vi-ish navigation
// plus the controller's structural, search, transform, and meta
// commands.
var defaultBindings = []binding{
	{"j", "select next"},
	{"Down", "select next"},
	{"k", "select prev"},
	{"Up", "select prev"},
	{"J", "select nextsib"},
	{"K", "select prevsib"},
	{"p", "select parent"},
	{"g", "select first"},
	{"Home", "select first"},
	{"G", "select last"},
	{"End", "select last"},
	{"H", "select top"},
	{"M", "select middle"},
	{"L", "select bottom"},
	{"Space", "node toggle"},
	{"Right", "node expand"},
	{"Left", "node collapse"},
	{"x", "node recursive-expand"},
	{"^F", "scroll page-down"},
	{"^B", "scroll page-up"},
	{"^D", "scroll half-down"},
	{"^U", "scroll half-up"},
	{"^E", "scroll line-down"},
	{"^Y", "scroll line-up"},
	{"z z", "scroll center"},
	{"/", "search forward"},
	{"?", "search backward"},
	{"n", "search next"},
	{"N", "search prev"},
	{"c", "search clear"},
	{"|", "transform"},
	{"C", "transform reset"},
	{"r", "node refresh"},
	{"R", "node refresh-root"},
	{"y", "yank"},
	{"Enter", "invoke"},
	{"^L", "redraw"},
	{":", "command"},
	{"q", "quit"},
}

// DefaultKeybinder builds a Keybinder from defaultBindings. Callers that
// load a user override from config start from this and re-Bind on top.
func DefaultKeybinder() (*Keybinder, error) {
	kb := New()
	for _, b := range defaultBindings {
		seq, err := ParseSequence(b.seq)
		if err != nil {
			return nil, err
		}
		kb.Bind(seq, strings.Fields(b.action))
	}
	return kb, nil
}

// ApplyOverrides re-binds each key-spec/command pair in overrides onto
// kb, in map iteration order. A spec that fails to parse is reported
// with the offending spec in the error so a bad config file entry is
// easy to place.
func ApplyOverrides(kb *Keybinder, overrides map[string]string) error {
	for spec, action := range overrides {
		seq, err := ParseSequence(spec)
		if err != nil {
			return fmt.Errorf("keymap override %q: %w", spec, err)
		}
		kb.Bind(seq, strings.Fields(action))
	}
	return nil
}
