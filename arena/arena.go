// Package arena provides growable, index-stable buffers used as the
// allocation substrate for the compiler's per-stage collections.
//
// A Buf hands out stable integer indices instead of pointers, so entries
// can be referenced across stages without pinning memory. Reclaim is
// wholesale: Reset drops every entry at once while keeping the backing
// capacity, which bounds peak memory to one unit of work (one page, one
// string) rather than the whole document set.
package arena

// Buf is a bump-style buffer of T. The zero value is ready to use.
//
// Indices returned by Push remain valid until Reset. Buf is not safe for
// concurrent use; the compiler is strictly single-threaded.
type Buf[T any] struct {
	items []T
}

// Push appends v and returns its index.
func (b *Buf[T]) Push(v T) int {
	b.items = append(b.items, v)
	return len(b.items) - 1
}

// Pop removes and returns the most recently pushed entry.
// It panics if the buffer is empty; callers guard with Len.
func (b *Buf[T]) Pop() T {
	v := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return v
}

// At returns a pointer to the entry at index i.
// The pointer is invalidated by the next Push (the backing slice may move),
// so callers use it immediately rather than holding it across pushes.
func (b *Buf[T]) At(i int) *T {
	return &b.items[i]
}

// Len returns the number of entries.
func (b *Buf[T]) Len() int {
	return len(b.items)
}

// Reset drops all entries, keeping capacity for reuse.
func (b *Buf[T]) Reset() {
	b.items = b.items[:0]
}

// Items returns the underlying slice. The slice is valid until the next
// Push or Reset; callers that need to keep the data copy it out.
func (b *Buf[T]) Items() []T {
	return b.items
}

// Take returns the entries as a copy and resets the buffer. This is the
// boundary between a scratch buffer and long-lived results.
func (b *Buf[T]) Take() []T {
	if len(b.items) == 0 {
		b.Reset()
		return nil
	}
	out := make([]T, len(b.items))
	copy(out, b.items)
	b.Reset()
	return out
}
