package textc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/cache"
	"github.com/gogpu/textc/document"
	"github.com/gogpu/textc/fontdir"
	"github.com/gogpu/textc/internal/logging"
	"github.com/gogpu/textc/markup"
	"github.com/gogpu/textc/preview"
	"github.com/gogpu/textc/shape"
	"github.com/gogpu/textc/table"
)

// DocumentFile is the serialized document's name under the output
// directory.
const DocumentFile = "strings.txtc"

// AtlasFile is the packed atlas image's name under the output directory.
const AtlasFile = "atlas.png"

// Compile runs one full compilation: read tables, expand markup, shape,
// pack the atlas, and serialize the document for cfg.Language. It returns
// nil on success, including the fast path where the source hash matches
// the cache and nothing needs rebuilding.
func Compile(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.Logger()

	stylesSrc, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.StylesFile))
	if err != nil {
		return fmt.Errorf("textc: reading styles table: %w", err)
	}
	stringsSrc, err := os.ReadFile(filepath.Join(cfg.Dir, cfg.StringsFile))
	if err != nil {
		return fmt.Errorf("textc: reading strings table: %w", err)
	}

	// Gate 1: the hash covers the raw table bytes, computed before any
	// parsing, so even a syntax error in an unchanged file stays cheap.
	srcHash := cache.Accumulate(cache.Accumulate(cache.HashSeed, stylesSrc), stringsSrc)
	cachePath := filepath.Join(cfg.Dir, cfg.CacheFile)
	rec, err := cache.Load(cachePath)
	if err != nil {
		return err
	}
	if rec != nil && rec.SourceHash == srcHash {
		log.Info("sources unchanged, nothing to do", "hash", fmt.Sprintf("%#x", srcHash))
		return nil
	}

	tbl, err := table.Parse(stylesSrc, stringsSrc)
	if err != nil {
		return err
	}
	lang := tbl.LanguageIndex(cfg.Language)
	if lang < 0 {
		return &UnknownLanguageError{
			Key:        cfg.Language,
			Known:      tbl.Languages,
			Suggestion: suggestLanguage(cfg.Language, tbl.Languages),
		}
	}

	fontsDir := filepath.Join(cfg.Dir, cfg.FontsDir)
	shaper := cfg.Shaper
	if shaper == nil {
		catalog, err := fontdir.Load(fontsDir)
		if err != nil {
			return err
		}
		shaper = shape.NewGoTextShaper(catalog)
	}

	log.Info("shaping text", "language", cfg.Language, "strings", len(tbl.Strings))
	reg := shape.NewRegistry()
	expander := markup.New(tbl.Styles)

	var built []document.StringGeometry
	for i := range tbl.Strings {
		entry := &tbl.Strings[i]
		if !entry.InScope() {
			continue
		}
		sg, err := shapeString(entry, entry.Texts[lang], tbl.Styles, expander, shaper, reg)
		if err != nil {
			return err
		}
		built = append(built, sg)
	}

	reg.Sort()
	glyphHash := reg.Hash()
	log.Debug("registry built", "glyphs", reg.Len(), "hash", fmt.Sprintf("%#x", glyphHash))

	outDir := filepath.Join(cfg.Dir, cfg.OutDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("textc: creating output dir: %w", err)
	}

	// Gate 2: an unchanged glyph set keeps its atlas; only the geometry
	// and the document are rebuilt.
	var uvs []atlas.UV
	if rec != nil && rec.GlyphHash == glyphHash && len(rec.UVs) == reg.Len() {
		log.Info("glyph set unchanged, reusing atlas")
		uvs = rec.UVs
	} else {
		uvs, err = bakeAtlas(cfg, reg, filepath.Join(outDir, AtlasFile), fontsDir)
		if err != nil {
			return err
		}
	}

	doc, err := document.Build(built, func(id uint64) (atlas.UV, bool) {
		i, ok := reg.IndexOf(id)
		if !ok || i >= len(uvs) {
			return atlas.UV{}, false
		}
		return uvs[i], true
	})
	if err != nil {
		return err
	}
	if err := document.Write(filepath.Join(outDir, DocumentFile), doc); err != nil {
		return err
	}

	// The record is written only once the document is in place; a failed
	// serialization must not leave a cache that short-circuits the next
	// run.
	if err := cache.Store(cachePath, &cache.Record{
		SourceHash: srcHash,
		GlyphHash:  glyphHash,
		UVs:        uvs,
	}); err != nil {
		return err
	}

	if cfg.DebugPages {
		for _, sg := range built {
			pages := make([][]shape.Glyph, len(sg.Pages))
			for i, p := range sg.Pages {
				pages[i] = p.Glyphs
			}
			if err := preview.WritePages(outDir, sg.Key, sg.Width, sg.Height, pages); err != nil {
				return err
			}
		}
	}

	log.Info("done", "strings", len(built), "glyphs", reg.Len())
	return nil
}

// shapeString expands one string's markup and shapes every page, feeding
// the glyph registry and remapping tag offsets to glyph indices.
func shapeString(entry *table.StringEntry, text string, styles []table.Style,
	expander *markup.Expander, shaper shape.Shaper, reg *shape.Registry,
) (document.StringGeometry, error) {
	sg := document.StringGeometry{
		Key:    entry.Key,
		Width:  entry.Width,
		Height: entry.Height,
	}

	for _, pg := range expander.Expand(entry.Key, text) {
		spans := make([]shape.StyledSpan, 0, len(pg.Spans))
		for _, sp := range pg.Spans {
			st := styles[sp.Style]
			spans = append(spans, shape.StyledSpan{
				Start:      sp.Start,
				End:        sp.End,
				FaceKey:    st.Face,
				Size:       st.Size,
				LineHeight: st.LineHeight,
			})
		}

		var glyphs []shape.Glyph
		err := shaper.ShapePage(shape.PageInput{
			Text:   pg.Text,
			Spans:  spans,
			Width:  entry.Width,
			Height: entry.Height,
		}, func(source int, faceKey string, gid uint32, q shape.Quad) {
			glyphs = append(glyphs, shape.Glyph{
				Source: source,
				ID:     reg.Add(faceKey, gid),
				Quad:   q,
			})
		})
		if err != nil {
			return document.StringGeometry{}, fmt.Errorf("textc: shaping %q: %w", entry.Key, err)
		}

		shape.SortBySource(glyphs)
		sg.Pages = append(sg.Pages, document.PageGeometry{
			Glyphs: glyphs,
			Tags:   shape.RemapTags(glyphs, len(pg.Text), pg.Tags),
		})
	}
	return sg, nil
}

// bakeAtlas rasterizes every registry glyph in sorted order, packs the
// atlas, writes the PNG side artifact, and returns the UV table.
func bakeAtlas(cfg Config, reg *shape.Registry, path, fontsDir string) ([]atlas.UV, error) {
	ras := cfg.Rasterizer
	if ras == nil {
		ras = &atlas.MSDFGen{
			Tool:       cfg.MSDFGenPath,
			FontsDir:   fontsDir,
			BitmapSize: cfg.BitmapSize,
			Padding:    cfg.Padding,
			PxRange:    cfg.PxRange,
		}
	}

	logging.Logger().Info("baking atlas", "glyphs", reg.Len())
	records := reg.Records()
	bitmaps := make([]atlas.Bitmap, len(records))
	bounds := make([]atlas.Bounds, len(records))
	for i, r := range records {
		b, bmp, err := ras.Glyph(r.FaceKey, r.GID)
		if err != nil {
			return nil, err
		}
		bounds[i], bitmaps[i] = b, bmp
	}

	img, uvs, err := atlas.Compose(bitmaps, bounds, cfg.Padding)
	if err != nil {
		return nil, err
	}
	if err := atlas.WritePNG(path, img); err != nil {
		return nil, err
	}
	return uvs, nil
}
