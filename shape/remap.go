package shape

import (
	"sort"

	"github.com/gogpu/textc/markup"
)

// SortBySource orders glyphs by their source-text offset. Shaping may
// report glyphs in visual order; the output format requires logical order.
// The sort is stable so glyphs sharing a cluster keep shaping order.
func SortBySource(glyphs []Glyph) {
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].Source < glyphs[j].Source
	})
}

// RemapTags translates user-tag offsets from plain-text byte offsets to
// glyph-array indices. glyphs must already be in source order.
//
// Shaping merges clusters and skips invisible glyphs, so not every text
// offset starts a glyph. Offsets that do are assigned that glyph's index;
// every other offset carries forward the nearest preceding assigned index,
// never the following one, so a range never resolves past its own end.
func RemapTags(glyphs []Glyph, textLen int, tags []markup.Tag) []markup.Tag {
	if len(tags) == 0 {
		return nil
	}

	// Index table over [0, textLen]; the extra slot resolves end offsets
	// that sit at the end of the text.
	index := make([]int, textLen+1)
	for i := range index {
		index[i] = -1
	}
	for i, g := range glyphs {
		if g.Source >= 0 && g.Source <= textLen {
			index[g.Source] = i
		}
	}
	prev := 0
	for i := range index {
		if index[i] < 0 {
			index[i] = prev
		} else {
			prev = index[i]
		}
	}

	out := make([]markup.Tag, len(tags))
	for i, t := range tags {
		out[i] = markup.Tag{
			Label: t.Label,
			Start: index[clamp(t.Start, textLen)],
			End:   index[clamp(t.End, textLen)],
		}
	}
	return out
}

func clamp(off, max int) int {
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}
