package atlas

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/textc/internal/logging"
)

// UV is a glyph's normalized texture rectangle within the atlas, with the
// padding margin trimmed off.
type UV struct {
	U0, V0, U1, V1 float32
}

// Compose packs the glyph bitmaps into one square RGBA image and returns
// it together with each glyph's UV rectangle, parallel to the input.
//
// bounds[i] selects the occupied sub-rectangle of bitmaps[i]; only that
// region is copied. Bitmap rows are stored bottom-up, so the copy flips
// them into the image's y-down order. The UVs trim padding pixels from
// each edge so sampling at the UV rectangle hits ink, not margin.
func Compose(bitmaps []Bitmap, bounds []Bounds, padding int) (*image.RGBA, []UV, error) {
	if len(bitmaps) != len(bounds) {
		return nil, nil, fmt.Errorf("atlas: %d bitmaps for %d bounds", len(bitmaps), len(bounds))
	}

	sizes := make([]Size, len(bounds))
	for i, b := range bounds {
		// Bounds come from an external collaborator; a rectangle outside
		// the bitmap is malformed output, not a programming error here.
		if b.X0 < 0 || b.Y0 < 0 || b.X1 > bitmaps[i].Side || b.Y1 > bitmaps[i].Side ||
			b.Dx() <= 0 || b.Dy() <= 0 {
			return nil, nil, fmt.Errorf("atlas: glyph %d bounds %+v outside %dpx bitmap",
				i, b, bitmaps[i].Side)
		}
		sizes[i] = Size{W: b.Dx(), H: b.Dy()}
	}
	positions, side := Pack(sizes)
	logging.Logger().Debug("atlas: packed", "glyphs", len(sizes), "side", side)

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	uvs := make([]UV, len(bitmaps))

	for i, bmp := range bitmaps {
		b := bounds[i]
		pos := positions[i]
		w, h := b.Dx(), b.Dy()

		dy := pos.Y
		for y := b.Y1 - 1; y >= b.Y0; y-- {
			src := (y*bmp.Side + b.X0) * 4
			dst := img.PixOffset(pos.X, dy)
			copy(img.Pix[dst:dst+w*4], bmp.Pix[src:src+w*4])
			dy++
		}

		// Trim at most half the rectangle per axis so a glyph narrower
		// than the margin still yields a non-inverted UV rectangle.
		px, py := padding, padding
		if 2*px > w {
			px = w / 2
		}
		if 2*py > h {
			py = h / 2
		}

		fside := float32(side)
		uvs[i] = UV{
			U0: float32(pos.X+px) / fside,
			V0: float32(pos.Y+py) / fside,
			U1: float32(pos.X+w-px) / fside,
			V1: float32(pos.Y+h-py) / fside,
		}
	}

	return img, uvs, nil
}

// WritePNG writes the atlas image as a lossless RGBA PNG.
func WritePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("atlas: creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("atlas: encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("atlas: writing %s: %w", path, err)
	}
	return nil
}
