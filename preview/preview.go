// Package preview renders debug images of typeset pages: each glyph's
// ink rectangle filled white over a transparent background, one PNG per
// page, sized to the string's page box.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/internal/logging"
	"github.com/gogpu/textc/shape"
)

// WritePages writes one image per page as <key>.<page>.png under dir.
func WritePages(dir, key string, width, height uint32, pages [][]shape.Glyph) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("preview: creating %s: %w", dir, err)
	}

	for i, glyphs := range pages {
		img := Render(width, height, glyphs)
		path := filepath.Join(dir, fmt.Sprintf("%s.%d.png", key, i))
		if err := atlas.WritePNG(path, img); err != nil {
			return err
		}
		logging.Logger().Debug("preview: wrote page", "path", path, "glyphs", len(glyphs))
	}
	return nil
}

// Render draws the glyph ink rectangles into a fresh image. Rectangles
// are clipped to the page box; glyphs that overflow it are still shown
// where they intersect.
func Render(width, height uint32, glyphs []shape.Glyph) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	white := image.NewUniform(color.White)

	for _, g := range glyphs {
		r := image.Rect(int(g.Quad.X0), int(g.Quad.Y0), int(g.Quad.X1), int(g.Quad.Y1))
		draw.Draw(img, r.Intersect(img.Bounds()), white, image.Point{}, draw.Src)
	}
	return img
}
