package game

import "fmt"

// Size is the side length of the board. It is fixed for the whole program.
const Size = 11

type Color uint8

const (
	Empty Color = iota
	White       // Maximizing player
	Black       // Minimizing player
)

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return Empty
	}
}

// Sign returns +1 for White and -1 for Black, the negamax convention.
func (c Color) Sign() int {
	switch c {
	case White:
		return 1
	case Black:
		return -1
	default:
		return 0
	}
}

// ColorOf maps a negamax sign back to the side to move.
func ColorOf(sign int) Color {
	if sign > 0 {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "empty"
	}
}

// Position is a zero-based (row, column) pair into the board.
type Position struct {
	Row int
	Col int
}

// String renders the position the way the board display labels it,
// e.g. column C of the first row is "C1".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(p.Col), p.Row+1)
}

// Evaluates the game state to a score where positive favors White and
// negative favors Black.
type Evaluate func(State) int

// Material is the default evaluation: stones plus growable cells.
func Material(s State) int {
	return s.Evaluate()
}
