// Package fontdir is the font-catalog boundary: it discovers the font
// files available to a compile run and answers lookups by face key or by
// display family name.
//
// A face key is the font file's base name without extension; the family
// name is read from the font's sfnt name table. Shaping reports fonts by
// family, the style table references them by key, so both directions are
// needed.
package fontdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/textc/internal/logging"
)

// ErrFaceNotFound is returned when a face key resolves to no font file,
// neither in the fonts directory nor among the system fonts.
var ErrFaceNotFound = errors.New("fontdir: face not found")

// Face is one discovered font face.
type Face struct {
	// Key is the face identifier used by the style table and by the
	// rasterization tool (file base name, no extension).
	Key string

	// Family is the display family name from the font's name table.
	Family string

	// Path is the font file location.
	Path string

	// Data is the raw font file contents, shared with the shaper.
	Data []byte
}

// Catalog holds the faces discovered for one compile run.
type Catalog struct {
	faces []Face
}

// Load scans dir for *.ttf files and builds the catalog.
// A directory with no font files yields an empty catalog, which only
// becomes an error once a style actually references a face.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fontdir: reading %s: %w", dir, err)
	}

	c := &Catalog{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".ttf") {
			continue
		}
		path := filepath.Join(dir, name)
		face, err := loadFace(path)
		if err != nil {
			return nil, err
		}
		c.faces = append(c.faces, face)
		logging.Logger().Debug("fontdir: loaded face",
			"key", face.Key, "family", face.Family)
	}
	return c, nil
}

func loadFace(path string) (Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Face{}, fmt.Errorf("fontdir: reading %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return Face{}, fmt.Errorf("fontdir: parsing %s: %w", path, err)
	}

	family := ""
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		family = name
	}

	base := filepath.Base(path)
	return Face{
		Key:    strings.TrimSuffix(base, filepath.Ext(base)),
		Family: family,
		Path:   path,
		Data:   data,
	}, nil
}

// Faces returns all discovered faces in scan order.
func (c *Catalog) Faces() []Face {
	return c.faces
}

// ByKey returns the face with the given key.
func (c *Catalog) ByKey(key string) (*Face, bool) {
	for i := range c.faces {
		if c.faces[i].Key == key {
			return &c.faces[i], true
		}
	}
	return nil, false
}

// ByFamily returns the face with the given display family name.
func (c *Catalog) ByFamily(family string) (*Face, bool) {
	for i := range c.faces {
		if c.faces[i].Family == family {
			return &c.faces[i], true
		}
	}
	return nil, false
}

// Lookup returns the face for a key, falling back to a system-font search
// when the key is not present in the fonts directory. A successful
// fallback is added to the catalog so later lookups and the glyph
// registry see one consistent face.
func (c *Catalog) Lookup(key string) (*Face, error) {
	if f, ok := c.ByKey(key); ok {
		return f, nil
	}

	path, err := findfont.Find(key + ".ttf")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFaceNotFound, key)
	}
	face, err := loadFace(path)
	if err != nil {
		return nil, err
	}
	face.Key = key
	logging.Logger().Info("fontdir: resolved face from system fonts",
		"key", key, "path", path)
	c.faces = append(c.faces, face)
	return &c.faces[len(c.faces)-1], nil
}
