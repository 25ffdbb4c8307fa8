// Package search builds per-line, per-segment highlight ranges for a
// Preformatted block against a compiled regular expression.
package search

import (
	"regexp"
	"sort"

	"tb/internal/fmtcmd"
)

// Range is a byte-offset span [Start, End) within one segment's text.
type Range struct {
	Start, End int
}

// Search holds the compiled query and the resulting highlight map.
type Search struct {
	Query *regexp.Regexp
	byLine map[int]map[int][]Range
}

// New builds a Search by matching Query against every chunk of pre's raw
// view, translating hits through pre.Mapping, then splitting each hit
// across every segment it spans.
func New(pre fmtcmd.Preformatted, query *regexp.Regexp) *Search {
	s := &Search{Query: query, byLine: map[int]map[int][]Range{}}
	if query == nil {
		return s
	}

	type hit struct {
		chunk      int
		start, end int
	}
	var hits []hit
	for ci, chunk := range pre.Raw {
		for _, loc := range query.FindAllStringIndex(chunk, -1) {
			hits = append(hits, hit{ci, loc[0], loc[1]})
		}
	}

	for _, h := range hits {
		startLine, startSeg, startByte, ok1 := pre.Mapping.Lookup(h.chunk, h.start)
		endLine, endSeg, endByte, ok2 := pre.Mapping.Lookup(h.chunk, h.end)
		if !ok1 || !ok2 {
			continue
		}
		s.splitAcrossSegments(pre, startLine, startSeg, startByte, endLine, endSeg, endByte)
	}
	return s
}

// splitAcrossSegments walks every Str segment in document order between
// (startLine,startSeg,startByte) and (endLine,endSeg,endByte) inclusive,
// recording the portion of the match that falls within each one.
func (s *Search) splitAcrossSegments(pre fmtcmd.Preformatted, startLine, startSeg, startByte, endLine, endSeg, endByte int) {
	for li := startLine; li <= endLine && li < len(pre.Content); li++ {
		line := pre.Content[li]
		for si, op := range line {
			if op.Kind != fmtcmd.OpStr {
				continue
			}
			if li == startLine && si < startSeg {
				continue
			}
			if li == endLine && si > endSeg {
				continue
			}
			segLen := len(op.Str)
			from := 0
			to := segLen
			if li == startLine && si == startSeg {
				from = startByte
			}
			if li == endLine && si == endSeg {
				to = endByte
			}
			if from >= to {
				continue
			}
			s.add(li, si, Range{from, to})
		}
	}
}

func (s *Search) add(line, seg int, r Range) {
	byseg, ok := s.byLine[line]
	if !ok {
		byseg = map[int][]Range{}
		s.byLine[line] = byseg
	}
	byseg[seg] = append(byseg[seg], r)
	sort.Slice(byseg[seg], func(i, j int) bool { return byseg[seg][i].Start < byseg[seg][j].Start })
}

// MatchLines returns the sorted set of line indices with at least one
// highlight.
func (s *Search) MatchLines() []int {
	lines := make([]int, 0, len(s.byLine))
	for l := range s.byLine {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Matches reports whether any highlight exists at all.
func (s *Search) Matches() bool { return len(s.byLine) > 0 }

// Ranges returns the highlight ranges for (line, segment), if any.
func (s *Search) Ranges(line, seg int) []Range {
	byseg, ok := s.byLine[line]
	if !ok {
		return nil
	}
	return byseg[seg]
}
