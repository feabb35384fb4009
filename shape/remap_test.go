package shape

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/textc/markup"
)

func glyphAt(source int) Glyph {
	return Glyph{Source: source, ID: uint64(source)}
}

func TestSortBySource(t *testing.T) {
	glyphs := []Glyph{glyphAt(4), glyphAt(0), glyphAt(2), glyphAt(4)}
	SortBySource(glyphs)

	for i := 1; i < len(glyphs); i++ {
		if glyphs[i-1].Source > glyphs[i].Source {
			t.Fatalf("glyphs not in source order: %v", glyphs)
		}
	}
}

func TestSortBySourceStable(t *testing.T) {
	// Two glyphs from the same cluster share a source offset; their
	// shaping order must survive the sort.
	glyphs := []Glyph{
		{Source: 2, ID: 100},
		{Source: 0, ID: 7},
		{Source: 2, ID: 200},
	}
	SortBySource(glyphs)

	if glyphs[1].ID != 100 || glyphs[2].ID != 200 {
		t.Errorf("equal-source glyphs reordered: %v", glyphs)
	}
}

func TestRemapTagsDirectHits(t *testing.T) {
	// "ab cd": glyphs at every non-space offset.
	glyphs := []Glyph{glyphAt(0), glyphAt(1), glyphAt(3), glyphAt(4)}
	tags := []markup.Tag{{Label: "x", Start: 1, End: 4}}

	got := RemapTags(glyphs, 5, tags)
	want := []markup.Tag{{Label: "x", Start: 1, End: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemapTags mismatch (-want +got):\n%s", diff)
	}
}

func TestRemapTagsCarriesPrecedingIndex(t *testing.T) {
	// Offsets 2 and 3 produced no glyph (merged cluster); a tag boundary
	// there resolves to the nearest preceding glyph, never the following.
	glyphs := []Glyph{glyphAt(0), glyphAt(1), glyphAt(4)}
	tags := []markup.Tag{
		{Label: "inside-gap", Start: 2, End: 3},
		{Label: "gap-to-end", Start: 3, End: 5},
	}

	got := RemapTags(glyphs, 5, tags)
	want := []markup.Tag{
		{Label: "inside-gap", Start: 1, End: 1},
		{Label: "gap-to-end", Start: 1, End: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RemapTags mismatch (-want +got):\n%s", diff)
	}
}

func TestRemapTagsLeadingGap(t *testing.T) {
	// No glyph before offset 2; earlier offsets fall back to index 0.
	glyphs := []Glyph{glyphAt(2), glyphAt(3)}
	got := RemapTags(glyphs, 4, []markup.Tag{{Label: "t", Start: 0, End: 1}})

	if got[0].Start != 0 || got[0].End != 0 {
		t.Errorf("leading-gap tag = %+v, want [0,0]", got[0])
	}
}

func TestRemapTagsEndOfText(t *testing.T) {
	glyphs := []Glyph{glyphAt(0), glyphAt(1), glyphAt(2)}
	got := RemapTags(glyphs, 3, []markup.Tag{{Label: "t", Start: 0, End: 3}})

	if got[0].End != 2 {
		t.Errorf("end-of-text offset resolved to %d, want last glyph index 2", got[0].End)
	}
}

func TestRemapTagsNoGlyphs(t *testing.T) {
	got := RemapTags(nil, 4, []markup.Tag{{Label: "t", Start: 1, End: 3}})

	if got[0].Start != 0 || got[0].End != 0 {
		t.Errorf("tag on empty glyph run = %+v, want [0,0]", got[0])
	}
}

func TestRemapTagsNoTags(t *testing.T) {
	if got := RemapTags([]Glyph{glyphAt(0)}, 1, nil); got != nil {
		t.Errorf("RemapTags with no tags = %v, want nil", got)
	}
}
