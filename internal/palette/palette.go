// Package palette computes terminal color-pair indices from a
// foreground/background color model: two built-in foreground colors
// (regular, muted) plus a backend's own list, and three backgrounds
// (regular, selected, highlighted).
package palette

// Built-in foreground slots, reserved ahead of any backend color.
const (
	FgRegular = 0
	FgMuted   = 1
	// FgBackendBase is the first index a backend's own colors occupy.
	FgBackendBase = 2
)

// Built-in background slots.
const (
	BgRegular     = 0
	BgSelected    = 1
	BgHighlighted = 2
)

// RGB is one ANSI-8 / ANSI-256 color pair, as declared by a backend.
type RGB struct {
	ANSI8, ANSI256 int
}

// Palette holds the resolved foreground/background tables for one
// session and computes pair indices from them; it allocates nothing on
// the terminal itself.
type Palette struct {
	fg []RGB // index 0,1 are built-ins; 2.. are backend colors
	bg int   // number of background slots (always 3)
}

// New builds a Palette from a backend's declared foreground colors.
// Regular and muted are fixed grays; the backend's list is appended
// starting at FgBackendBase.
func New(backendColors []RGB) *Palette {
	fg := make([]RGB, 0, len(backendColors)+2)
	fg = append(fg, RGB{ANSI8: 7, ANSI256: 7})  // regular: default terminal foreground
	fg = append(fg, RGB{ANSI8: 8, ANSI256: 244}) // muted: dim gray
	fg = append(fg, backendColors...)
	return &Palette{fg: fg, bg: 3}
}

// SetBuiltin overrides the regular/muted built-in foregrounds, e.g. from
// a user's config file. A zero RGB (both fields 0) leaves that slot
// unchanged, so a config only overriding one of the two doesn't need to
// restate the other.
func (p *Palette) SetBuiltin(regular, muted RGB) {
	if regular != (RGB{}) {
		p.fg[FgRegular] = regular
	}
	if muted != (RGB{}) {
		p.fg[FgMuted] = muted
	}
}

// FgCount returns the total number of foreground slots.
func (p *Palette) FgCount() int { return len(p.fg) }

// Fg returns the RGB for a foreground index (0/1 built-in, 2+ backend).
func (p *Palette) Fg(idx int) RGB {
	if idx < 0 || idx >= len(p.fg) {
		return p.fg[FgRegular]
	}
	return p.fg[idx]
}

// Pair computes the terminal color-pair index for an (fg, bg)
// combination: bg_index * fg_count + fg_index + 1 (pair 0 is reserved
// by most curses-like libraries for the terminal's default pair).
func (p *Palette) Pair(fg, bg int) int {
	return bg*p.FgCount() + fg + 1
}
