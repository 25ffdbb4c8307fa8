// Package fmtcmd implements the algebraic description of rich, structured
// content ("FmtCmd") that backends build and the core lays out into
// fixed-width, colored, searchable screen lines.
package fmtcmd

// RenderClass is a flag controlling whether an Exclude'd subtree
// contributes to a given output: search indexing, clipboard yank, or
// debug dump.
type RenderClass int

const (
	ClassDebug RenderClass = 1 << iota
	ClassSearch
	ClassYank
)

// Mask is a set of render classes, combined with bitwise or (e.g.
// ClassSearch|ClassYank). Defined as an alias of RenderClass so a single
// class value can be passed anywhere a Mask is expected without an
// explicit conversion at the call site.
type Mask = RenderClass

// Has reports whether c is a member of m.
func (m Mask) Has(c RenderClass) bool { return m&Mask(c) != 0 }

// Cmd is the recursive FmtCmd variant. Exactly one of the fields
// corresponding to Kind is meaningful.
type Cmd struct {
	kind kind

	text string // Literal

	children []Cmd // Container

	color int // Color / RawColor palette index
	child *Cmd // Color, RawColor, NoBreak, Exclude

	mask Mask // Exclude
}

type kind int

const (
	kindLiteral kind = iota
	kindContainer
	kindColor
	kindRawColor
	kindNoBreak
	kindExclude
)

// Literal returns a FmtCmd rendering text verbatim.
func Literal(text string) Cmd {
	return Cmd{kind: kindLiteral, text: text}
}

// Container returns a FmtCmd that concatenates children in order.
func Container(children ...Cmd) Cmd {
	return Cmd{kind: kindContainer, children: children}
}

// Color returns a FmtCmd that renders child using palette index idx plus
// the backend's color offset.
func Color(idx int, child Cmd) Cmd {
	return Cmd{kind: kindColor, color: idx, child: &child}
}

// RawColor is like Color but bypasses the backend color offset.
func RawColor(idx int, child Cmd) Cmd {
	return Cmd{kind: kindRawColor, color: idx, child: &child}
}

// NoBreak returns a FmtCmd whose child must be laid out on a single
// screen line; breaking inside it is forbidden.
func NoBreak(child Cmd) Cmd {
	return Cmd{kind: kindNoBreak, child: &child}
}

// Exclude returns a FmtCmd whose child does not contribute to the render
// classes named in mask.
func Exclude(mask Mask, child Cmd) Cmd {
	return Cmd{kind: kindExclude, mask: mask, child: &child}
}
