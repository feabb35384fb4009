package document

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// ErrBadMagic is returned when the input does not start with the format
// magic.
var ErrBadMagic = errors.New("document: bad magic")

// ErrTruncated is returned when the input ends before the structure it
// announces.
var ErrTruncated = errors.New("document: truncated input")

// Encode serializes the document. All integers and floats are
// little-endian; strings are length-prefixed with a single byte and
// zero-padded so each field ends on a four-byte boundary.
func Encode(w io.Writer, doc *Document) error {
	var buf bytes.Buffer

	putU32(&buf, Magic)
	putU32(&buf, uint32(len(doc.Strings)))

	for _, s := range doc.Strings {
		putPadded(&buf, s.Key)
		putU32(&buf, s.Width)
		putU32(&buf, s.Height)
		putU32(&buf, uint32(len(s.Pages)))

		for _, p := range s.Pages {
			putU32(&buf, uint32(len(p.Tags)))
			for _, t := range p.Tags {
				putPadded(&buf, t.Label)
				putU32(&buf, t.Start)
				putU32(&buf, t.End)
			}

			putU32(&buf, uint32(len(p.Vertices)))
			for _, v := range p.Vertices {
				putF32(&buf, v.X)
				putF32(&buf, v.Y)
				putF32(&buf, v.U)
				putF32(&buf, v.V)
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Write serializes the document to path through a temporary file in the
// same directory, renaming into place only after a complete write. A
// failed compile never leaves a partial document behind.
func Write(path string, doc *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".document-*")
	if err != nil {
		return fmt.Errorf("document: creating temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("document: writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("document: writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("document: renaming into %s: %w", path, err)
	}
	return nil
}

// Decode parses a serialized document.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: reading input: %w", err)
	}
	d := &decoder{data: data}

	magic := d.u32()
	if d.err != nil {
		return nil, d.err
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	doc := &Document{}
	stringCount := d.u32()
	for i := uint32(0); i < stringCount && d.err == nil; i++ {
		s := String{
			Key:    d.padded(),
			Width:  d.u32(),
			Height: d.u32(),
		}
		pageCount := d.u32()
		for p := uint32(0); p < pageCount && d.err == nil; p++ {
			var page Page
			tagCount := d.u32()
			for t := uint32(0); t < tagCount && d.err == nil; t++ {
				page.Tags = append(page.Tags, Tag{
					Label: d.padded(),
					Start: d.u32(),
					End:   d.u32(),
				})
			}
			vertexCount := d.u32()
			for v := uint32(0); v < vertexCount && d.err == nil; v++ {
				page.Vertices = append(page.Vertices, Vertex{
					X: d.f32(), Y: d.f32(), U: d.f32(), V: d.f32(),
				})
			}
			s.Pages = append(s.Pages, page)
		}
		doc.Strings = append(doc.Strings, s)
	}
	if d.err != nil {
		return nil, d.err
	}
	return doc, nil
}

type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.off+n > len(d.data) {
		d.err = ErrTruncated
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

func (d *decoder) padded() string {
	lb := d.take(1)
	if lb == nil {
		return ""
	}
	n := int(lb[0])
	b := d.take(n + pad(n))
	if b == nil {
		return ""
	}
	return string(b[:n])
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putF32(buf *bytes.Buffer, v float32) {
	putU32(buf, math.Float32bits(v))
}

// putPadded writes a length byte, the string bytes, and zero padding to
// the next four-byte boundary. Strings longer than 255 bytes are
// truncated to fit the length prefix.
func putPadded(buf *bytes.Buffer, s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	for i := 0; i < pad(len(s)); i++ {
		buf.WriteByte(0)
	}
}

// pad returns the zero bytes needed after a length byte plus n string
// bytes to reach four-byte alignment.
func pad(n int) int {
	return -(n + 1) & 3
}
