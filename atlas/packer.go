package atlas

import "sort"

// Size is one rectangle to place, in pixels.
type Size struct {
	W, H int
}

// Pos is a placed rectangle's top-left corner.
type Pos struct {
	X, Y int
}

// Pack arranges rectangles into a square canvas using shelf packing and
// returns their positions, parallel to sizes, plus the canvas side.
//
// Rectangles are placed in descending height order, left to right along a
// shelf; a new shelf starts when the current one would overflow the canvas
// width, and the shelf's height is its tallest rectangle. If any placement
// would overflow the canvas height, the side doubles and packing restarts
// from scratch at the larger size — never resumed from partial state, so
// the layout is a pure function of the input.
//
// The side starts at the smallest power of two that fits the largest
// single dimension, so every rectangle fits a shelf by construction, and
// the retry count is bounded by the doublings up to the final size.
func Pack(sizes []Size) ([]Pos, int) {
	order := make([]int, len(sizes))
	maxDim := 0
	for i, s := range sizes {
		order[i] = i
		if s.W > maxDim {
			maxDim = s.W
		}
		if s.H > maxDim {
			maxDim = s.H
		}
	}

	// Descending height; stable so equal heights keep caller order and
	// the layout stays deterministic.
	sort.SliceStable(order, func(a, b int) bool {
		return sizes[order[a]].H > sizes[order[b]].H
	})

	side := 1
	for side < maxDim {
		side *= 2
	}

	positions := make([]Pos, len(sizes))
	for {
		x, y := 0, 0
		shelfHeight := 0
		overflow := false

		for _, idx := range order {
			s := sizes[idx]
			if x+s.W > side {
				x = 0
				y += shelfHeight
				shelfHeight = 0
			}
			if y+s.H > side {
				overflow = true
				break
			}
			positions[idx] = Pos{X: x, Y: y}
			x += s.W
			if s.H > shelfHeight {
				shelfHeight = s.H
			}
		}

		if !overflow {
			return positions, side
		}
		side *= 2
	}
}
