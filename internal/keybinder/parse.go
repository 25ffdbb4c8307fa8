package keybinder

import (
	"fmt"
	"unicode"

	"tb/internal/term"
)

var namedKeys = map[string]term.Key{
	"Up":        term.KeyUp,
	"Down":      term.KeyDown,
	"Left":      term.KeyLeft,
	"Right":     term.KeyRight,
	"Home":      term.KeyHome,
	"End":       term.KeyEnd,
	"PageUp":    term.KeyPageUp,
	"PageDown":  term.KeyPageDown,
	"Backspace": term.KeyBackspace,
	"Delete":    term.KeyDelete,
	"Enter":     term.KeyEnter,
	"Escape":    term.KeyEscape,
	"Tab":       term.KeyTab,
	"F1":        term.KeyF1,
	"F2":        term.KeyF2,
	"F3":        term.KeyF3,
	"F4":        term.KeyF4,
	"F5":        term.KeyF5,
	"F6":        term.KeyF6,
	"F7":        term.KeyF7,
	"F8":        term.KeyF8,
	"F9":        term.KeyF9,
	"F10":       term.KeyF10,
	"F11":       term.KeyF11,
	"F12":       term.KeyF12,
	"F13":       term.KeyF13,
	"F14":       term.KeyF14,
	"F15":       term.KeyF15,
}

// ParseSequence parses a whitespace-separated key-sequence spec into
// key tokens: a single literal character, a backslash escape (\\, \ ),
// a caret-control (^A-^Z, ^?), or a named keysym drawn from namedKeys.
func ParseSequence(spec string) ([]int, error) {
	var toks []int
	for _, field := range splitFields(spec) {
		tok, err := parseToken(field)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("keybinder: empty key sequence")
	}
	return toks, nil
}

// splitFields splits spec on whitespace like strings.Fields, except a
// backslash always pairs with whatever rune follows it (even a space)
// into a single two-rune field, so the \  and \\ escapes reach
// parseToken intact instead of being cut by the separator they escape.
func splitFields(spec string) []string {
	var fields []string
	var cur []rune
	runes := []rune(spec)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			cur = append(cur, r, runes[i+1])
			i++
			continue
		}
		if unicode.IsSpace(r) {
			if len(cur) > 0 {
				fields = append(fields, string(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		fields = append(fields, string(cur))
	}
	return fields
}

func parseToken(field string) (int, error) {
	if field == "Space" {
		return int(' '), nil
	}
	if k, ok := namedKeys[field]; ok {
		return int(k), nil
	}
	runes := []rune(field)
	switch {
	case len(runes) == 2 && runes[0] == '\\':
		return int(runes[1]), nil
	case len(runes) == 2 && runes[0] == '^':
		c := runes[1]
		switch {
		case c == '?':
			return 0x7f, nil
		case c >= 'A' && c <= 'Z':
			return int(c - 'A' + 1), nil
		case c >= 'a' && c <= 'z':
			return int(c - 'a' + 1), nil
		}
		return 0, fmt.Errorf("keybinder: invalid caret-control %q", field)
	case len(runes) == 1:
		return int(runes[0]), nil
	}
	return 0, fmt.Errorf("keybinder: unrecognized key token %q", field)
}
