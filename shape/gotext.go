package shape

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textc/fontdir"
	"github.com/gogpu/textc/internal/logging"
)

// GoTextShaper shapes page text with go-text/typesetting's HarfBuzz port,
// resolving face keys through a font catalog. It lays glyphs out left to
// right with greedy word wrapping against the page width and reports each
// glyph's ink quad in page-local, y-down coordinates.
//
// Parsed fonts are cached per face key. GoTextShaper is not safe for
// concurrent use; the pipeline shapes pages sequentially.
type GoTextShaper struct {
	catalog *fontdir.Catalog
	hb      shaping.HarfbuzzShaper
	fonts   map[string]*font.Font
}

// NewGoTextShaper creates a shaper over the given catalog.
func NewGoTextShaper(catalog *fontdir.Catalog) *GoTextShaper {
	return &GoTextShaper{
		catalog: catalog,
		fonts:   make(map[string]*font.Font),
	}
}

// fontFor returns the parsed font for a face key, parsing and caching it
// on first use. font.Font is read-only; the per-call font.Face wrappers
// are what carry mutable state.
func (s *GoTextShaper) fontFor(key string) (*font.Font, error) {
	if f, ok := s.fonts[key]; ok {
		return f, nil
	}
	face, err := s.catalog.Lookup(key)
	if err != nil {
		return nil, err
	}
	parsed, err := font.ParseTTF(bytes.NewReader(face.Data))
	if err != nil {
		return nil, fmt.Errorf("shape: parsing face %q: %w", key, err)
	}
	s.fonts[key] = parsed.Font
	return parsed.Font, nil
}

// placedGlyph is one laid-out glyph buffered until its line assignment is
// final; a word wrap may still move it before it reaches the visitor.
type placedGlyph struct {
	source int
	gid    uint32
	q      Quad
	ink    bool
}

// ShapePage implements Shaper.
//
// Each styled span is shaped as one run so ligatures and kerning apply
// within it. The pen position carries across spans on the same line; a
// style change mid-line does not restart layout. Wrapping moves the
// current word to the next line when a glyph would cross the page width,
// unless the word itself started at the line head, in which case it
// overflows rather than breaking mid-word.
func (s *GoTextShaper) ShapePage(p PageInput, visit Visitor) error {
	runes := []rune(p.Text)

	// Byte offset of each rune and the reverse map; span boundaries and
	// glyph cluster indices need both directions.
	byteOf := make([]int, 0, len(runes)+1)
	runeOf := make(map[int]int, len(runes)+1)
	for bi := range p.Text {
		runeOf[bi] = len(byteOf)
		byteOf = append(byteOf, bi)
	}
	runeOf[len(p.Text)] = len(byteOf)
	byteOf = append(byteOf, len(p.Text))

	penX := 0.0
	baseline := 0.0

	for _, span := range p.Spans {
		if span.Start >= span.End {
			continue
		}
		rs, ok := runeOf[span.Start]
		if !ok {
			return fmt.Errorf("shape: span start %d is not a rune boundary", span.Start)
		}
		re, ok := runeOf[span.End]
		if !ok {
			return fmt.Errorf("shape: span end %d is not a rune boundary", span.End)
		}

		fnt, err := s.fontFor(span.FaceKey)
		if err != nil {
			return err
		}

		lineAdv := span.LineHeight * float64(span.Size)
		if baseline == 0 {
			baseline = lineAdv
		}

		out := s.hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  rs,
			RunEnd:    re,
			Direction: di.DirectionLTR,
			Face:      font.NewFace(fnt),
			Size:      fixed.Int26_6(span.Size * 64),
			Script:    detectScript(runes[rs:re]),
			Language:  language.NewLanguage("en"),
		})

		var buf []placedGlyph
		wordStart := 0
		wordStartX := penX

		for _, g := range out.Glyphs {
			ri := g.TextIndex()
			r := runes[ri]

			if r == '\n' {
				penX = 0
				baseline += lineAdv
				wordStart = len(buf)
				wordStartX = 0
				continue
			}

			adv := fixedToFloat(g.Advance)

			if r == ' ' || r == '\t' {
				penX += adv
				wordStart = len(buf)
				wordStartX = penX
				continue
			}

			if p.Width > 0 && penX+adv > float64(p.Width) && wordStartX > 0 {
				for i := wordStart; i < len(buf); i++ {
					buf[i].q.X0 -= float32(wordStartX)
					buf[i].q.X1 -= float32(wordStartX)
					buf[i].q.Y0 += float32(lineAdv)
					buf[i].q.Y1 += float32(lineAdv)
				}
				penX -= wordStartX
				baseline += lineAdv
				wordStartX = 0
			}

			x := penX + fixedToFloat(g.XOffset)
			y := baseline - fixedToFloat(g.YOffset)

			// Ink rectangle from the shaping metrics. YBearing points up
			// from the dot and Height extends downward from the top edge
			// as a negative distance, so in y-down page coordinates the
			// top is above the baseline and the bottom below the top.
			left := x + fixedToFloat(g.XBearing)
			top := y - fixedToFloat(g.YBearing)
			w := fixedToFloat(g.Width)
			h := fixedToFloat(g.Height)

			buf = append(buf, placedGlyph{
				source: byteOf[ri],
				gid:    uint32(g.GlyphID),
				q: Quad{
					X0: float32(left),
					Y0: float32(top),
					X1: float32(left + w),
					Y1: float32(top - h),
				},
				ink: w != 0 && h != 0,
			})
			penX += adv
		}

		for _, pg := range buf {
			if !pg.ink {
				continue
			}
			visit(pg.source, span.FaceKey, pg.gid, pg.q)
		}
	}

	if p.Height > 0 && baseline > float64(p.Height) {
		logging.Logger().Warn("shape: text overflows page box",
			"baseline", baseline, "height", p.Height)
	}
	return nil
}

// detectScript returns the script of the first non-space rune, falling
// back to Latin. Mixed-script spans shape under the first script seen.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
