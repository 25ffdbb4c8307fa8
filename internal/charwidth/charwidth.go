// Package charwidth computes the on-screen display width of text the way
// the preformatter needs to: grapheme-cluster aware (via uniseg), East
// Asian Width aware (via go-runewidth), with control characters rendered
// as a two-column "^X" escape.
package charwidth

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TabWidth is the fixed tab stop used by the preformatter (spec §4.1).
const TabWidth = 4

// IsControl reports whether r is one of the control characters the
// preformatter must escape (spec §6): 0x00-0x08, 0x0B-0x1F, 0x7F.
func IsControl(r rune) bool {
	switch {
	case r >= 0x00 && r <= 0x08:
		return true
	case r >= 0x0B && r <= 0x1F:
		return true
	case r == 0x7F:
		return true
	default:
		return false
	}
}

// Escape renders a control character as the two-character "^X" form
// used on screen (spec §6).
func Escape(r rune) string {
	if r == 0x7F {
		return "^?"
	}
	return fmt.Sprintf("^%c", r+0x40)
}

// Width returns the display width in columns of a single rune, per the
// standard East-Asian-Width table, with control characters fixed at 2
// (they render as "^X").
func Width(r rune) int {
	if IsControl(r) {
		return 2
	}
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// Graphemes splits s into grapheme clusters in document order, the unit
// the preformatter should treat as a single "character" when deciding
// where to break a line — this keeps combining marks and wide emoji
// sequences from being split across screen positions.
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// ClusterWidth returns the display width of a grapheme cluster: the
// width of its first rune (control escapes, tabs and newlines are never
// multi-rune clusters so this is exact for them; for ordinary text the
// remaining runes are combining marks that add no width).
func ClusterWidth(cluster string) int {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return 0
	}
	return Width(runes[0])
}
