// Package atlas turns the rasterized bitmaps of the unique glyph set into
// one packed square image plus a normalized UV rectangle per glyph.
//
// Rasterization itself is an external collaborator (the msdfgen tool)
// reached through the Rasterizer interface; this package owns the packing
// algorithm, the composition of the atlas image, and the PNG side artifact.
package atlas

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gogpu/textc/internal/logging"
)

// Sentinel errors for the atlas package.
var (
	// ErrBitmapSize is returned when the rasterizer produces a bitmap of
	// unexpected size.
	ErrBitmapSize = errors.New("atlas: rasterized bitmap has unexpected size")
)

// Bounds is a glyph's occupied pixel rectangle within its bitmap,
// min inclusive, max exclusive, padding already applied.
type Bounds struct {
	X0, Y0, X1, Y1 int
}

// Dx returns the width of the bounds.
func (b Bounds) Dx() int { return b.X1 - b.X0 }

// Dy returns the height of the bounds.
func (b Bounds) Dy() int { return b.Y1 - b.Y0 }

// Bitmap is one glyph's rasterized multi-channel image. Pix holds RGBA
// bytes, row-major, with the row at y = 0 at the glyph's bottom (the
// rasterizer's native orientation; composition flips rows).
type Bitmap struct {
	Pix  []byte
	Side int
}

// Rasterizer produces the bitmap and occupied bounds for one glyph.
// It is an external collaborator; a failure is a CollaboratorFailure and
// aborts the build.
type Rasterizer interface {
	Glyph(faceKey string, gid uint32) (Bounds, Bitmap, error)
}

// ToolError reports a failed or malformed external tool invocation.
type ToolError struct {
	Tool   string
	Reason string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("atlas: %s: %s: %v", e.Tool, e.Reason, e.Err)
	}
	return fmt.Sprintf("atlas: %s: %s", e.Tool, e.Reason)
}

func (e *ToolError) Unwrap() error { return e.Err }

// MSDFGen is the typed client for the external msdfgen rasterization tool.
// Orchestration code never constructs command lines; it asks this client
// for a glyph and gets typed bounds and a bitmap back.
type MSDFGen struct {
	// Tool is the msdfgen executable path.
	Tool string

	// FontsDir holds the font files; the face key plus ".ttf" names the file.
	FontsDir string

	// BitmapSize is the square bitmap side the tool renders into.
	BitmapSize int

	// Padding is added on all sides of the reported glyph bounds.
	Padding int

	// PxRange is the distance-field pixel range.
	PxRange int
}

// emScale is the -scale factor for em-normalized rendering; glyph shapes
// land in a 64px em square.
const emScale = 64

// emTranslate is the -translate offset in em units, centering the shape.
const emTranslate = 0.5

// Glyph implements Rasterizer by invoking the tool twice: once for
// metrics, once for the multi-channel distance-field bitmap.
func (m *MSDFGen) Glyph(faceKey string, gid uint32) (Bounds, Bitmap, error) {
	fontPath := filepath.Join(m.FontsDir, faceKey+".ttf")
	glyphArg := fmt.Sprintf("g%d", gid)

	x0, y0, x1, y1, err := m.metrics(fontPath, glyphArg)
	if err != nil {
		return Bounds{}, Bitmap{}, err
	}

	pix, err := m.render(fontPath, glyphArg)
	if err != nil {
		return Bounds{}, Bitmap{}, err
	}

	// The shape is rendered translated by half an em and scaled to the em
	// square, so pixel bounds sit around the bitmap origin offset.
	origin := int(emTranslate * emScale)
	bounds := Bounds{
		X0: origin + int(math.Floor(emScale*x0)) - m.Padding,
		X1: origin + int(math.Ceil(emScale*x1)) + m.Padding,
		Y0: origin + int(math.Floor(emScale*y0)) - m.Padding,
		Y1: origin + int(math.Ceil(emScale*y1)) + m.Padding,
	}
	if err := checkBounds(bounds, m.BitmapSize); err != nil {
		return Bounds{}, Bitmap{}, &ToolError{Tool: m.Tool, Reason: err.Error()}
	}
	return bounds, Bitmap{Pix: pix, Side: m.BitmapSize}, nil
}

// checkBounds rejects a padded bounds rectangle that is empty or falls
// outside the rendered bitmap. Metrics that place ink there are malformed
// tool output; accepting them would corrupt the atlas blit.
func checkBounds(b Bounds, side int) error {
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("empty glyph bounds %+v", b)
	}
	if b.X0 < 0 || b.Y0 < 0 || b.X1 > side || b.Y1 > side {
		return fmt.Errorf("glyph bounds %+v outside %dpx bitmap", b, side)
	}
	return nil
}

// metrics invokes the tool's metrics mode and parses the bounds line.
func (m *MSDFGen) metrics(fontPath, glyphArg string) (x0, y0, x1, y1 float64, err error) {
	out, runErr := exec.Command(m.Tool, "metrics",
		"-font", fontPath, glyphArg,
		"-emnormalize",
	).Output()
	if runErr != nil {
		return 0, 0, 0, 0, &ToolError{Tool: m.Tool, Reason: "metrics invocation failed", Err: runErr}
	}

	x0, y0, x1, y1, ok := parseBoundsOutput(string(out))
	if !ok {
		return 0, 0, 0, 0, &ToolError{Tool: m.Tool, Reason: "no bounds in metrics output"}
	}
	return x0, y0, x1, y1, nil
}

// parseBoundsOutput scans tool output for the "bounds = l, b, r, t" line.
func parseBoundsOutput(out string) (x0, y0, x1, y1 float64, ok bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "bounds") {
			continue
		}
		if n, err := fmt.Sscanf(line, "bounds = %g, %g, %g, %g", &x0, &y0, &x1, &y1); err == nil && n == 4 {
			return x0, y0, x1, y1, true
		}
	}
	return 0, 0, 0, 0, false
}

// render invokes the tool's mtsdf mode and reads back the raw bitmap.
func (m *MSDFGen) render(fontPath, glyphArg string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "textc-glyph-*.bin")
	if err != nil {
		return nil, fmt.Errorf("atlas: creating temp bitmap file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.Command(m.Tool, "mtsdf",
		"-font", fontPath, glyphArg,
		"-pxrange", fmt.Sprint(m.PxRange),
		"-emnormalize",
		"-translate", fmt.Sprint(emTranslate), fmt.Sprint(emTranslate),
		"-scale", fmt.Sprint(emScale),
		"-dimensions", fmt.Sprint(m.BitmapSize), fmt.Sprint(m.BitmapSize),
		"-format", "bin",
		"-o", tmpPath,
	)
	if err := cmd.Run(); err != nil {
		return nil, &ToolError{Tool: m.Tool, Reason: "mtsdf invocation failed", Err: err}
	}

	pix, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, &ToolError{Tool: m.Tool, Reason: "reading rendered bitmap", Err: err}
	}
	if len(pix) != m.BitmapSize*m.BitmapSize*4 {
		logging.Logger().Debug("atlas: bitmap size mismatch",
			"got", len(pix), "want", m.BitmapSize*m.BitmapSize*4)
		return nil, fmt.Errorf("%w: %d bytes for %d px", ErrBitmapSize, len(pix), m.BitmapSize)
	}
	return pix, nil
}
