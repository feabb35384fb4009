package cache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/internal/logging"
)

// Record is the persisted cache state. Layout on disk, little-endian:
//
//	sourceHash  uint32
//	glyphHash   uint32
//	glyphCount  uint32
//	uv          [glyphCount]{u0, v0, u1, v1 float32}
type Record struct {
	// SourceHash covers the raw bytes of both input tables. A match
	// means the entire compilation can be skipped.
	SourceHash uint32

	// GlyphHash covers the sorted glyph registry's identities. A match
	// means rasterization and packing can be skipped and UVs reused.
	GlyphHash uint32

	// UVs is the packed UV table in sorted registry order.
	UVs []atlas.UV
}

// recordHeaderSize is the fixed prefix: two hashes plus the glyph count.
const recordHeaderSize = 12

// uvSize is the encoded size of one UV rectangle.
const uvSize = 16

// Load reads the cache record at path. A missing, short, or otherwise
// corrupt file is a cold start, not an error: Load returns (nil, nil).
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	if len(data) < recordHeaderSize {
		logging.Logger().Warn("cache: short record, treating as cold start", "path", path)
		return nil, nil
	}

	rec := &Record{
		SourceHash: binary.LittleEndian.Uint32(data[0:]),
		GlyphHash:  binary.LittleEndian.Uint32(data[4:]),
	}
	count := binary.LittleEndian.Uint32(data[8:])
	if len(data) != recordHeaderSize+int(count)*uvSize {
		logging.Logger().Warn("cache: truncated UV table, treating as cold start", "path", path)
		return nil, nil
	}

	rec.UVs = make([]atlas.UV, count)
	off := recordHeaderSize
	for i := range rec.UVs {
		rec.UVs[i] = atlas.UV{
			U0: readFloat(data[off:]),
			V0: readFloat(data[off+4:]),
			U1: readFloat(data[off+8:]),
			V1: readFloat(data[off+12:]),
		}
		off += uvSize
	}
	return rec, nil
}

// Store writes the cache record to path, replacing any previous record.
func Store(path string, rec *Record) error {
	var buf bytes.Buffer
	buf.Grow(recordHeaderSize + len(rec.UVs)*uvSize)

	var scratch [recordHeaderSize]byte
	binary.LittleEndian.PutUint32(scratch[0:], rec.SourceHash)
	binary.LittleEndian.PutUint32(scratch[4:], rec.GlyphHash)
	binary.LittleEndian.PutUint32(scratch[8:], uint32(len(rec.UVs)))
	buf.Write(scratch[:])

	for _, uv := range rec.UVs {
		for _, f := range [4]float32{uv.U0, uv.V0, uv.U1, uv.V1} {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
			buf.Write(b[:])
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cache: writing %s: %w", path, err)
	}
	return nil
}

func readFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
