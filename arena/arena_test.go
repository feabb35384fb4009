package arena

import "testing"

func TestPushReturnsStableIndices(t *testing.T) {
	var b Buf[int]
	for i := 0; i < 100; i++ {
		idx := b.Push(i * 10)
		if idx != i {
			t.Fatalf("Push #%d returned index %d, want %d", i, idx, i)
		}
	}
	for i := 0; i < 100; i++ {
		if got := *b.At(i); got != i*10 {
			t.Errorf("At(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestPopIsLIFO(t *testing.T) {
	var b Buf[string]
	b.Push("a")
	b.Push("b")
	b.Push("c")

	for _, want := range []string{"c", "b", "a"} {
		if got := b.Pop(); got != want {
			t.Errorf("Pop() = %q, want %q", got, want)
		}
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after popping all, want 0", b.Len())
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	var b Buf[int]
	for i := 0; i < 64; i++ {
		b.Push(i)
	}
	c := cap(b.items)
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after Reset, want 0", b.Len())
	}
	if cap(b.items) != c {
		t.Errorf("cap = %d after Reset, want %d", cap(b.items), c)
	}
}

func TestTakeCopiesAndResets(t *testing.T) {
	var b Buf[int]
	b.Push(1)
	b.Push(2)

	got := b.Take()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Take() = %v, want [1 2]", got)
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d after Take, want 0", b.Len())
	}

	// The copy must not alias the buffer's next generation of entries.
	b.Push(99)
	if got[0] != 1 {
		t.Errorf("Take result mutated by later Push: %v", got)
	}
}

func TestTakeEmpty(t *testing.T) {
	var b Buf[int]
	if got := b.Take(); got != nil {
		t.Errorf("Take() on empty buffer = %v, want nil", got)
	}
}

func TestItemsReflectsContents(t *testing.T) {
	var b Buf[byte]
	b.Push('x')
	b.Push('y')
	items := b.Items()
	if string(items) != "xy" {
		t.Errorf("Items() = %q, want %q", items, "xy")
	}
}
