package fmtcmd

import (
	"sort"
	"strings"

	"tb/internal/charwidth"
)

// MutedColor is the built-in "muted" foreground palette index, used
// unshifted (like RawColor) to render escaped control characters.
const MutedColor = 1

// OpKind identifies a single screen drawing operation.
type OpKind int

const (
	OpStr OpKind = iota
	OpFg
	OpBg
	OpFill
)

// Op is one drawing instruction within a screen line.
type Op struct {
	Kind OpKind
	Str  string // OpStr
	Idx  int    // OpFg, OpBg: palette index
	Fill rune   // OpFill
}

// Line is an ordered sequence of drawing operations.
type Line []Op

// Width returns the cumulative display width of a line's Str operations.
func (l Line) Width() int {
	w := 0
	for _, op := range l {
		if op.Kind == OpStr {
			for _, cl := range charwidth.Graphemes(op.Str) {
				w += charwidth.ClusterWidth(cl)
			}
		}
	}
	return w
}

// MapEntry anchors a raw (chunk, byte-offset) position to a screen
// (line, segment, byte-offset) position. Between two entries, offsets
// translate by adding the raw byte delta to the target byte offset —
// valid only because a single uninterrupted entry->next-entry run is an
// exact byte-for-byte copy of source text into both the raw chunk and
// the segment's Str text (see layout.openRun's doc comment).
type MapEntry struct {
	ChunkIdx   int
	ByteOffset int
	Line       int
	Seg        int
	TargetByte int
}

// Mapping is a sorted sparse map from raw (chunk, offset) to screen
// (line, segment, offset).
type Mapping struct {
	entries []MapEntry
}

func (m Mapping) less(i, j int) bool {
	a, b := m.entries[i], m.entries[j]
	if a.ChunkIdx != b.ChunkIdx {
		return a.ChunkIdx < b.ChunkIdx
	}
	return a.ByteOffset < b.ByteOffset
}

// Lookup finds the greatest entry at or before (chunk, offset) and
// returns the translated screen position.
func (m Mapping) Lookup(chunk, offset int) (line, seg, byteOff int, ok bool) {
	idx := sort.Search(len(m.entries), func(i int) bool {
		e := m.entries[i]
		if e.ChunkIdx != chunk {
			return e.ChunkIdx > chunk
		}
		return e.ByteOffset > offset
	})
	idx--
	if idx < 0 || idx >= len(m.entries) {
		return 0, 0, 0, false
	}
	e := m.entries[idx]
	if e.ChunkIdx != chunk {
		return 0, 0, 0, false
	}
	delta := offset - e.ByteOffset
	return e.Line, e.Seg, e.TargetByte + delta, true
}

// Entries exposes the raw entry list, sorted, for tests.
func (m Mapping) Entries() []MapEntry { return m.entries }

// Preformatted is the layout output of Preformat: a fixed-width grid of
// colored segments plus a searchable raw view with an index translating
// between them.
type Preformatted struct {
	Width   int
	Content []Line
	Raw     []string
	Mapping Mapping
}

type rawState struct {
	chunks  []strings.Builder
	mapping []MapEntry
}

func (r *rawState) currentChunk() int { return len(r.chunks) - 1 }

func (r *rawState) chunkLen(idx int) int { return r.chunks[idx].Len() }

// startChunk begins a fresh searchable chunk, unless the current one is
// still empty (so exclusion of an empty span never produces a spurious
// empty chunk).
func (r *rawState) startChunk() {
	if len(r.chunks) == 0 || r.chunks[r.currentChunk()].Len() > 0 {
		r.chunks = append(r.chunks, strings.Builder{})
	}
}

func (r *rawState) write(s string) {
	r.chunks[r.currentChunk()].WriteString(s)
}

func (r *rawState) mark(line, seg int) {
	r.mapping = append(r.mapping, MapEntry{
		ChunkIdx:   r.currentChunk(),
		ByteOffset: r.chunkLen(r.currentChunk()),
		Line:       line,
		Seg:        seg,
		TargetByte: 0,
	})
}

type layout struct {
	width int
	raw   *rawState

	lines []Line
	col   int

	// openRun is true when the most recent Str op in the current line
	// is an uninterrupted literal run that further literal characters
	// may still be appended to (and, if recording, has a mapping entry
	// anchoring it). Any break, tab expansion, control-character escape,
	// or color change closes the run: subsequent literal text opens a
	// new one (and a new mapping entry), since the byte-for-byte
	// correspondence the mapping relies on would otherwise be violated.
	openRun    bool
	runLine    int
	runSeg     int
	colorStack []int
}

func newLayout(width int, raw *rawState) *layout {
	return &layout{width: width, raw: raw, lines: []Line{{}}}
}

func (b *layout) curLineIdx() int { return len(b.lines) - 1 }

func (b *layout) appendOp(op Op) {
	b.lines[len(b.lines)-1] = append(b.lines[len(b.lines)-1], op)
}

func (b *layout) breakLine() {
	b.openRun = false
	b.lines = append(b.lines, Line{})
	b.col = 0
	if c := b.activeColor(); c != 0 {
		b.appendOp(Op{Kind: OpFg, Idx: c})
	}
}

func (b *layout) activeColor() int {
	if len(b.colorStack) == 0 {
		return 0
	}
	return b.colorStack[len(b.colorStack)-1]
}

func (b *layout) setColor(idx int) {
	b.colorStack = append(b.colorStack, idx)
	b.openRun = false
	b.appendOp(Op{Kind: OpFg, Idx: idx})
}

func (b *layout) popColor() {
	b.colorStack = b.colorStack[:len(b.colorStack)-1]
	b.openRun = false
	b.appendOp(Op{Kind: OpFg, Idx: b.activeColor()})
}

// ensureRoom forces a break if width is bounded and adding w columns to
// the current line would overflow it (unless the line is already empty,
// in which case overflowing content is placed anyway rather than
// looping forever).
func (b *layout) ensureRoom(w int) {
	if b.width > 0 && b.col > 0 && b.col+w > b.width {
		b.breakLine()
	}
}

// openRunFor ensures a literal Str op is open at the current position,
// recording a mapping entry for it when record is true.
func (b *layout) openRunFor(record bool) {
	if b.openRun {
		return
	}
	b.appendOp(Op{Kind: OpStr, Str: ""})
	b.openRun = true
	b.runLine = b.curLineIdx()
	b.runSeg = len(b.lines[b.runLine]) - 1
	if record {
		b.raw.mark(b.runLine, b.runSeg)
	}
}

func (b *layout) appendToRun(s string) {
	line := b.lines[b.runLine]
	op := line[b.runSeg]
	op.Str += s
	line[b.runSeg] = op
	b.lines[b.runLine] = line
}

// closeRun forces the next literal character to open a fresh run (and,
// if recording, a fresh mapping entry) without otherwise changing state.
func (b *layout) closeRun() { b.openRun = false }

// emitUntracked appends s to the content as its own Str op, outside of
// any recorded run (used for tab expansion and control-character
// escapes, whose screen width never matches their source byte length).
func (b *layout) emitUntracked(s string) {
	b.closeRun()
	b.appendOp(Op{Kind: OpStr, Str: s})
	b.closeRun()
}

func (b *layout) literal(text string, record bool) {
	for _, cluster := range charwidth.Graphemes(text) {
		runes := []rune(cluster)
		r := runes[0]
		switch {
		case r == '\n':
			if record {
				b.raw.write("\n")
			}
			b.breakLine()
		case r == '\t':
			n := charwidth.TabWidth
			if b.width > 0 && b.width < charwidth.TabWidth {
				n = b.width
			}
			b.ensureRoom(n)
			if record {
				b.raw.write("\t")
			}
			b.emitUntracked(strings.Repeat(" ", n))
			b.col += n
		case charwidth.IsControl(r):
			b.ensureRoom(2)
			if record {
				b.raw.write(cluster)
			}
			b.setColor(MutedColor)
			b.emitUntracked(charwidth.Escape(r))
			b.popColor()
			b.col += 2
		default:
			w := charwidth.ClusterWidth(cluster)
			b.ensureRoom(w)
			b.openRunFor(record)
			b.appendToRun(cluster)
			if record {
				b.raw.write(cluster)
			}
			b.col += w
		}
	}
}

func (b *layout) walk(cmd Cmd, record bool, colorOffset int) {
	switch cmd.kind {
	case kindLiteral:
		b.literal(cmd.text, record)
	case kindContainer:
		for _, c := range cmd.children {
			b.walk(c, record, colorOffset)
		}
	case kindColor:
		b.setColor(cmd.color + colorOffset)
		b.walk(*cmd.child, record, colorOffset)
		b.popColor()
	case kindRawColor:
		b.setColor(cmd.color)
		b.walk(*cmd.child, record, colorOffset)
		b.popColor()
	case kindNoBreak:
		b.noBreak(*cmd.child, record, colorOffset)
	case kindExclude:
		if cmd.mask.Has(ClassSearch) {
			b.raw.startChunk()
			b.walk(*cmd.child, false, colorOffset)
		} else {
			b.walk(*cmd.child, record, colorOffset)
		}
	}
}

// noBreak lays child into a temporary unbounded sub-layout sharing this
// layout's raw chunk/mapping state, then splices the result — at most
// one line, per the no-break contract — into the current line.
func (b *layout) noBreak(child Cmd, record bool, colorOffset int) {
	sub := newLayout(0, b.raw)
	sub.colorStack = append([]int(nil), b.colorStack...)
	markStart := len(b.raw.mapping)
	sub.walk(child, record, colorOffset)
	newEntries := b.raw.mapping[markStart:]

	if len(sub.lines) == 0 || (len(sub.lines) == 1 && len(sub.lines[0]) == 0) {
		return
	}
	line := sub.lines[0] // multiple lines is a backend design error; take the first.
	w := line.Width()

	b.ensureRoom(w)
	targetLine := b.curLineIdx()
	base := len(b.lines[targetLine])
	b.lines[targetLine] = append(b.lines[targetLine], line...)
	b.col += w
	b.openRun = false

	// Entries recorded while building `line` refer to sub's local line 0;
	// rewrite them onto the spliced parent line and segment offset. Any
	// entry referring to a later local line (an ill-formed multi-line
	// NoBreak) is left untouched and simply becomes stale, matching the
	// "must not panic" contract for that design error.
	for i := range newEntries {
		if newEntries[i].Line == 0 {
			newEntries[i].Line = targetLine
			newEntries[i].Seg += base
		}
	}
}
