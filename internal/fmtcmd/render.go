package fmtcmd

import (
	"regexp"
	"strings"
)

// Preformat lays cmd out into a Preformatted for the given column budget
// (0 = unbounded, used internally for NoBreak) and color offset (added
// to every Color index; RawColor ignores it).
func Preformat(cmd Cmd, width, colorOffset int) Preformatted {
	raw := &rawState{chunks: []strings.Builder{{}}}
	b := newLayout(width, raw)
	b.walk(cmd, true, colorOffset)

	chunks := make([]string, 0, len(raw.chunks))
	for _, c := range raw.chunks {
		chunks = append(chunks, c.String())
	}
	if len(chunks) > 0 && chunks[len(chunks)-1] == "" {
		chunks = chunks[:len(chunks)-1]
	}

	lines := b.lines
	if len(lines) == 0 {
		lines = []Line{{}}
	}

	return Preformatted{
		Width:   width,
		Content: lines,
		Raw:     chunks,
		Mapping: Mapping{entries: raw.mapping},
	}
}

// Render flattens cmd into plain text for the given render class,
// interpolating sep between a Container's children. Subtrees excluded
// for class contribute nothing (but their position still receives sep
// like any other child, matching how Exclude wraps a whole child value).
func Render(cmd Cmd, class RenderClass, sep string) string {
	switch cmd.kind {
	case kindLiteral:
		return cmd.text
	case kindContainer:
		parts := make([]string, len(cmd.children))
		for i, c := range cmd.children {
			parts[i] = Render(c, class, sep)
		}
		return strings.Join(parts, sep)
	case kindColor, kindRawColor, kindNoBreak:
		return Render(*cmd.child, class, sep)
	case kindExclude:
		if cmd.mask.Has(class) {
			return ""
		}
		return Render(*cmd.child, class, sep)
	default:
		return ""
	}
}

// Contains reports whether re matches cmd's Search-class rendering,
// without laying out a Preformatted.
func Contains(cmd Cmd, re *regexp.Regexp) bool {
	return re.MatchString(Render(cmd, ClassSearch, ""))
}
