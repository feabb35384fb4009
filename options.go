package textc

import (
	"fmt"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/shape"
)

// Config holds one compile run's settings. Zero values of the path and
// tuning fields are filled by DefaultConfig; Language has no default.
type Config struct {
	// Language selects the strings-table column to compile. Required.
	Language string

	// Dir is the working directory holding the input tables and the
	// cache file.
	Dir string

	// StylesFile and StringsFile are the table file names, relative
	// to Dir.
	StylesFile  string
	StringsFile string

	// FontsDir holds the *.ttf faces referenced by the styles table,
	// relative to Dir.
	FontsDir string

	// OutDir receives the document, the atlas image, and any debug
	// pages, relative to Dir.
	OutDir string

	// CacheFile is the incremental cache location, relative to Dir.
	CacheFile string

	// MSDFGenPath locates the external msdfgen binary.
	MSDFGenPath string

	// BitmapSize is the square glyph render resolution in pixels.
	BitmapSize int

	// Padding is the margin added around each glyph's ink bounds, in
	// pixels, trimmed back out of the UV rectangles.
	Padding int

	// PxRange is the msdfgen distance-field range in pixels.
	PxRange int

	// DebugPages enables per-page preview images.
	DebugPages bool

	// Shaper overrides the go-text shaper when non-nil. Tests inject
	// deterministic fakes here.
	Shaper shape.Shaper

	// Rasterizer overrides the msdfgen client when non-nil.
	Rasterizer atlas.Rasterizer
}

// DefaultConfig returns the settings matching the conventional project
// layout: tables and fonts in the working directory, output under bin/.
func DefaultConfig() Config {
	return Config{
		Dir:         ".",
		StylesFile:  "styles.csv",
		StringsFile: "strings.csv",
		FontsDir:    "fonts",
		OutDir:      "bin",
		CacheFile:   ".cache",
		MSDFGenPath: "tool/msdfgen",
		BitmapSize:  128,
		Padding:     2,
		PxRange:     2,
	}
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("textc: config %s %s", e.Field, e.Reason)
}

// Validate checks the configuration before a compile run.
func (c *Config) Validate() error {
	if c.Language == "" {
		return &ConfigError{Field: "Language", Reason: "must be set"}
	}
	if c.Dir == "" {
		return &ConfigError{Field: "Dir", Reason: "must be set"}
	}
	if c.StylesFile == "" {
		return &ConfigError{Field: "StylesFile", Reason: "must be set"}
	}
	if c.StringsFile == "" {
		return &ConfigError{Field: "StringsFile", Reason: "must be set"}
	}
	if c.OutDir == "" {
		return &ConfigError{Field: "OutDir", Reason: "must be set"}
	}
	if c.CacheFile == "" {
		return &ConfigError{Field: "CacheFile", Reason: "must be set"}
	}
	if c.BitmapSize < 16 {
		return &ConfigError{Field: "BitmapSize", Reason: "must be at least 16"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Padding >= c.BitmapSize/2 {
		return &ConfigError{Field: "Padding", Reason: "must be less than half BitmapSize"}
	}
	if c.PxRange < 1 {
		return &ConfigError{Field: "PxRange", Reason: "must be at least 1"}
	}
	return nil
}
