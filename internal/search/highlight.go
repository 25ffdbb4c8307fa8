package search

import "tb/internal/fmtcmd"

// SplitHighlighted splits text at the boundaries of ranges, inserting
// Bg(highlightBg) / Bg(savedBg) toggles around each matched span, so
// that a match within a selected row keeps the selection background
// outside the highlighted bytes.
func SplitHighlighted(text string, ranges []Range, highlightBg, savedBg int) []fmtcmd.Op {
	if len(ranges) == 0 {
		return []fmtcmd.Op{{Kind: fmtcmd.OpStr, Str: text}}
	}
	var ops []fmtcmd.Op
	pos := 0
	for _, r := range ranges {
		if r.Start > pos {
			ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpStr, Str: text[pos:r.Start]})
		}
		ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpBg, Idx: highlightBg})
		ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpStr, Str: text[r.Start:r.End]})
		ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpBg, Idx: savedBg})
		pos = r.End
	}
	if pos < len(text) {
		ops = append(ops, fmtcmd.Op{Kind: fmtcmd.OpStr, Str: text[pos:]})
	}
	return ops
}
