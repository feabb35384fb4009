// Package textc is an offline text-mesh compiler: it turns a tabular
// style/string specification and an inline markup language into a packed
// binary asset of styled glyph-quad geometry plus a glyph atlas, consumed
// by a runtime renderer.
//
// # Pipeline
//
// One call to [Compile] runs the whole build for one language:
//
//   - parse the styles and strings tables (package table)
//   - expand inline markup into plain-text pages with style spans and
//     user tags (package markup)
//   - shape each page into positioned glyphs and deduplicate the glyph
//     set (package shape)
//   - rasterize the unique glyphs with the external msdfgen tool and
//     shelf-pack them into a square atlas (package atlas)
//   - serialize per-string pages of textured quads (package document)
//
// A two-level content-hash cache (package cache) short-circuits the
// middle stages: an unchanged source hash skips the whole compile, an
// unchanged glyph-set hash reuses the packed atlas.
//
// # Determinism
//
// Identical inputs produce byte-identical output. The glyph registry is
// sorted before hashing and packing, packing restarts from scratch on
// overflow rather than resuming partial state, and the document is
// written through a temp file renamed into place.
//
// # Logging
//
// textc is silent by default. Pass a [log/slog.Logger] to [SetLogger] to
// see lifecycle events, per-stage diagnostics, and permissive-markup
// warnings.
package textc
