// Package document builds and serializes the compiled output: per-string
// page geometry as textured quads, with user tags remapped to glyph
// indices, in the engine's little-endian binary layout.
package document

import (
	"fmt"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/markup"
	"github.com/gogpu/textc/shape"
)

// Magic identifies the format: "TXT" plus a version byte of zero in the
// high bits, read as a little-endian u32.
const Magic uint32 = 0x00545854

// Tag is a labeled range over a page's glyph array, end inclusive of the
// glyph its offset resolved to.
type Tag struct {
	Label string
	Start uint32
	End   uint32
}

// Vertex is one textured quad corner in page-local coordinates.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Page holds one page's tags and quad vertices, four vertices per glyph
// in source order.
type Page struct {
	Tags     []Tag
	Vertices []Vertex
}

// String is one compiled string with its page box and pages.
type String struct {
	Key    string
	Width  uint32
	Height uint32
	Pages  []Page
}

// Document is the full compiled output for one language.
type Document struct {
	Strings []String
}

// ConsistencyError reports a glyph identity that reached serialization
// without an atlas rectangle. It means the registry and the UV table
// disagree, which a correct pipeline never produces.
type ConsistencyError struct {
	Key     string
	Page    int
	GlyphID uint64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("document: string %q page %d: glyph %#x has no atlas rect",
		e.Key, e.Page, e.GlyphID)
}

// PageGeometry is one page's typeset result handed to Build. Glyphs must
// already be in source order with tag offsets remapped to glyph indices.
type PageGeometry struct {
	Glyphs []shape.Glyph
	Tags   []markup.Tag
}

// StringGeometry is one in-scope string's typeset result.
type StringGeometry struct {
	Key    string
	Width  uint32
	Height uint32
	Pages  []PageGeometry
}

// Build resolves every glyph's atlas rectangle through uv and assembles
// the document. Each glyph becomes four vertices, corners in the order
// (x0,y0), (x0,y1), (x1,y1), (x1,y0) with texture coordinates walking the
// UV rectangle the same way. A glyph identity uv cannot resolve aborts
// the build with a ConsistencyError.
func Build(strings []StringGeometry, uv func(id uint64) (atlas.UV, bool)) (*Document, error) {
	doc := &Document{Strings: make([]String, 0, len(strings))}

	for _, sg := range strings {
		out := String{
			Key:    sg.Key,
			Width:  sg.Width,
			Height: sg.Height,
			Pages:  make([]Page, 0, len(sg.Pages)),
		}
		for pi, pg := range sg.Pages {
			page := Page{
				Tags:     make([]Tag, 0, len(pg.Tags)),
				Vertices: make([]Vertex, 0, 4*len(pg.Glyphs)),
			}
			for _, t := range pg.Tags {
				page.Tags = append(page.Tags, Tag{
					Label: t.Label,
					Start: uint32(t.Start),
					End:   uint32(t.End),
				})
			}
			for _, g := range pg.Glyphs {
				rect, ok := uv(g.ID)
				if !ok {
					return nil, &ConsistencyError{Key: sg.Key, Page: pi, GlyphID: g.ID}
				}
				q := g.Quad
				page.Vertices = append(page.Vertices,
					Vertex{X: q.X0, Y: q.Y0, U: rect.U0, V: rect.V0},
					Vertex{X: q.X0, Y: q.Y1, U: rect.U0, V: rect.V1},
					Vertex{X: q.X1, Y: q.Y1, U: rect.U1, V: rect.V1},
					Vertex{X: q.X1, Y: q.Y0, U: rect.U1, V: rect.V0},
				)
			}
			out.Pages = append(out.Pages, page)
		}
		doc.Strings = append(doc.Strings, out)
	}
	return doc, nil
}
