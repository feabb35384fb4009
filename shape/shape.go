// Package shape is the text-shaping boundary of the compiler. It defines
// the collaborator contract (styled plain text in, positioned glyphs out),
// the typeset glyph model shared by later stages, the glyph registry that
// deduplicates (face, glyph) pairs across the document set, and the
// remapping of text offsets to glyph-array indices.
package shape

// Quad is an ink-extent rectangle in page-local coordinates, y-down,
// max edges exclusive.
type Quad struct {
	X0, Y0, X1, Y1 float32
}

// Glyph is one shaped glyph occurrence on a page.
type Glyph struct {
	// Source is the byte offset into the page's plain text that produced
	// this glyph. Used for logical ordering and tag remapping.
	Source int

	// ID is the registry identity of the unique glyph this occurrence
	// references. Many Glyphs may share one ID.
	ID uint64

	// Quad is the glyph's ink extent.
	Quad Quad
}

// StyledSpan is one style-attribute range handed to the shaper.
type StyledSpan struct {
	// Start and End are byte offsets into the page text, end exclusive.
	Start int
	End   int

	// FaceKey selects the font face.
	FaceKey string

	// Size is the point size.
	Size uint32

	// LineHeight is the line height multiplier applied to Size.
	LineHeight float64
}

// PageInput is one page's worth of work for the shaper.
type PageInput struct {
	Text   string
	Spans  []StyledSpan
	Width  uint32
	Height uint32
}

// Visitor receives one positioned glyph from the shaper. Glyphs with no
// ink extent are not reported.
type Visitor func(source int, faceKey string, gid uint32, q Quad)

// Shaper turns a page of styled plain text into positioned glyphs.
// Implementations are external collaborators; the pipeline only depends
// on this contract.
type Shaper interface {
	ShapePage(p PageInput, visit Visitor) error
}
