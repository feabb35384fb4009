// Package cache implements the compiler's incremental rebuild gate: an
// order-sensitive rolling content hash and a persisted cache record
// holding the source hash, the used-glyph-set hash, and the packed UV
// table from the last full build.
package cache

// HashSeed is the rolling hash's initial value.
const HashSeed uint32 = 5381

// Accumulate folds data into a rolling hash. The hash is order-sensitive
// and byte-wise; it detects change, it is not cryptographic.
func Accumulate(h uint32, data []byte) uint32 {
	for _, b := range data {
		h = (h << 5) + (h ^ uint32(b))
	}
	return h
}

// Hash computes the rolling hash of data from the seed.
func Hash(data []byte) uint32 {
	return Accumulate(HashSeed, data)
}
