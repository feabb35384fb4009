package atlas

import (
	"math/rand"
	"testing"
)

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

func checkPacking(t *testing.T, sizes []Size, positions []Pos, side int) {
	t.Helper()
	if !isPow2(side) {
		t.Errorf("side = %d, want power of two", side)
	}
	for i, s := range sizes {
		p := positions[i]
		if p.X < 0 || p.Y < 0 || p.X+s.W > side || p.Y+s.H > side {
			t.Errorf("rect %d (%dx%d at %d,%d) outside [0,%d)²", i, s.W, s.H, p.X, p.Y, side)
		}
	}
	for i := range sizes {
		for j := i + 1; j < len(sizes); j++ {
			a, b := positions[i], positions[j]
			sa, sb := sizes[i], sizes[j]
			if a.X < b.X+sb.W && b.X < a.X+sa.W && a.Y < b.Y+sb.H && b.Y < a.Y+sa.H {
				t.Errorf("rect %d and %d overlap: %v%v vs %v%v", i, j, a, sa, b, sb)
			}
		}
	}
}

func TestPackSingle(t *testing.T) {
	sizes := []Size{{W: 20, H: 30}}
	positions, side := Pack(sizes)

	if side != 32 {
		t.Errorf("side = %d, want 32 (smallest pow2 ≥ 30)", side)
	}
	if positions[0] != (Pos{0, 0}) {
		t.Errorf("position = %v, want origin", positions[0])
	}
}

func TestPackEmpty(t *testing.T) {
	positions, side := Pack(nil)
	if len(positions) != 0 || side != 1 {
		t.Errorf("Pack(nil) = %v, %d; want empty, side 1", positions, side)
	}
}

func TestPackNoOverlapRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(60)
		sizes := make([]Size, n)
		for i := range sizes {
			sizes[i] = Size{W: 1 + rng.Intn(40), H: 1 + rng.Intn(40)}
		}
		positions, side := Pack(sizes)
		checkPacking(t, sizes, positions, side)
	}
}

func TestPackGrowsOnOverflow(t *testing.T) {
	// Sixteen 3x3 rects cannot fit the initial 4-sided canvas.
	sizes := make([]Size, 16)
	for i := range sizes {
		sizes[i] = Size{W: 3, H: 3}
	}
	positions, side := Pack(sizes)

	if side <= 4 {
		t.Errorf("side = %d, want growth beyond initial 4", side)
	}
	checkPacking(t, sizes, positions, side)
}

func TestPackDeterministic(t *testing.T) {
	sizes := []Size{{5, 9}, {3, 9}, {7, 2}, {4, 4}, {9, 9}, {1, 1}}
	pos1, side1 := Pack(sizes)
	pos2, side2 := Pack(sizes)

	if side1 != side2 {
		t.Fatalf("sides differ: %d vs %d", side1, side2)
	}
	for i := range pos1 {
		if pos1[i] != pos2[i] {
			t.Errorf("rect %d position differs: %v vs %v", i, pos1[i], pos2[i])
		}
	}
}
