package shape

import (
	"encoding/binary"
	"sort"

	"github.com/gogpu/textc/cache"
)

// Record is one unique (face, glyph) pair in the registry.
type Record struct {
	FaceKey string
	GID     uint32

	// ID is the derived 64-bit identity: faceHash<<32 | gid. Face name
	// strings are not stable handles across stages; the identity is.
	ID uint64
}

// Identity derives the stable 64-bit identity for a (face, glyph) pair.
func Identity(faceKey string, gid uint32) uint64 {
	return uint64(cache.Hash([]byte(faceKey)))<<32 | uint64(gid)
}

// Registry maintains the set of distinct (face, glyph) pairs seen across
// shaping of every page of every in-scope string. Entries accumulate in
// first-seen order; Sort establishes the canonical (face, gid) order that
// hashing, packing, and serialization all share.
type Registry struct {
	records []Record
	byID    map[uint64]int
	sorted  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uint64]int)}
}

// Add registers a (face, glyph) pair and returns its identity. Adding a
// pair already present is a no-op returning the same identity.
// Add must not be called after Sort.
func (r *Registry) Add(faceKey string, gid uint32) uint64 {
	id := Identity(faceKey, gid)
	if _, ok := r.byID[id]; !ok {
		r.byID[id] = len(r.records)
		r.records = append(r.records, Record{FaceKey: faceKey, GID: gid, ID: id})
	}
	return id
}

// Len returns the number of unique glyphs.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns the registry entries: first-seen order before Sort,
// canonical order after.
func (r *Registry) Records() []Record {
	return r.records
}

// Sort orders the registry by (face key, glyph id) ascending. This order,
// not insertion order, is what cache hashing and atlas packing reproduce
// bit-for-bit between runs.
func (r *Registry) Sort() {
	sort.Slice(r.records, func(i, j int) bool {
		a, b := &r.records[i], &r.records[j]
		if a.FaceKey != b.FaceKey {
			return a.FaceKey < b.FaceKey
		}
		return a.GID < b.GID
	})
	for i := range r.records {
		r.byID[r.records[i].ID] = i
	}
	r.sorted = true
}

// Hash returns the glyph-set content hash: a rolling hash over the sorted
// identities' little-endian bytes. Call after Sort.
func (r *Registry) Hash() uint32 {
	h := uint32(cache.HashSeed)
	var buf [8]byte
	for i := range r.records {
		binary.LittleEndian.PutUint64(buf[:], r.records[i].ID)
		h = cache.Accumulate(h, buf[:])
	}
	return h
}

// IndexOf returns the position of an identity in the current order.
func (r *Registry) IndexOf(id uint64) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}
