package game

import (
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// NewRand returns a seeded generator. A zero seed draws a fresh one.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = frand.Uint64n(1<<63) + 1
	}
	return rand.New(rand.NewSource(seed)), seed
}

// RandomFill draws every cell independently and uniformly from the three
// colors. Only experiments use it; it is not a reachable game position.
func RandomFill(rng *rand.Rand) State {
	s := New()
	colors := [3]Color{Empty, White, Black}
	for row := range Size {
		for col := range Size {
			s.cells[row][col] = colors[rng.Intn(len(colors))]
		}
	}
	return s
}

// RandomOpening alternately drops one White and one Black stone on a
// random Empty cell, Size-1 times per color.
func RandomOpening(rng *rand.Rand) State {
	s := New()
	for range Size - 1 {
		for _, color := range [2]Color{White, Black} {
			empty := s.EmptyCells()
			s.Place(empty[rng.Intn(len(empty))], color)
		}
	}
	return s
}
