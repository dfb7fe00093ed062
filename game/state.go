package game

// State is the full board. It is a value type: assigning or passing a
// State copies every cell, so derived states never alias their parent.
// Whose turn it is lives outside the state.
type State struct {
	cells [Size][Size]Color
}

type offset struct{ dr, dc int }

var (
	orthogonal = [4]offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal   = [4]offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// New returns an empty board.
func New() State {
	return State{}
}

// At returns the color of a cell.
func (s *State) At(pos Position) Color {
	return s.cells[pos.Row][pos.Col]
}

// Place overwrites a cell. It performs no legality check; callers place
// only positions returned by LegalMoves.
func (s *State) Place(pos Position, color Color) {
	s.cells[pos.Row][pos.Col] = color
}

// With returns a copy of the state with one cell changed, leaving s untouched.
func (s State) With(pos Position, color Color) State {
	s.Place(pos, color)
	return s
}

func (s *State) field(row, col int) (Color, bool) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return Empty, false
	}
	return s.cells[row][col], true
}

func (s *State) countAround(pos Position, color Color, offsets [4]offset) int {
	count := 0
	for _, o := range offsets {
		if c, ok := s.field(pos.Row+o.dr, pos.Col+o.dc); ok && c == color {
			count++
		}
	}
	return count
}

// Supports reports whether color can grow into pos: the cell is Empty and
// at least two of its orthogonal neighbors, or at least two of its
// diagonal neighbors, hold color. The two groups are never pooled.
func (s *State) Supports(pos Position, color Color) bool {
	if s.cells[pos.Row][pos.Col] != Empty {
		return false
	}
	return s.countAround(pos, color, orthogonal) >= 2 ||
		s.countAround(pos, color, diagonal) >= 2
}

// EmptyCells returns every Empty cell in row-major order.
func (s *State) EmptyCells() []Position {
	cells := []Position{}
	for row := range Size {
		for col := range Size {
			if s.cells[row][col] == Empty {
				cells = append(cells, Position{Row: row, Col: col})
			}
		}
	}
	return cells
}

// LegalMoves returns the cells color can grow into, in row-major order.
// The order is the tie-break order of every search algorithm.
func (s *State) LegalMoves(color Color) []Position {
	moves := []Position{}
	for row := range Size {
		for col := range Size {
			pos := Position{Row: row, Col: col}
			if s.Supports(pos, color) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

func (s *State) hasMove(color Color) bool {
	for row := range Size {
		for col := range Size {
			if s.Supports(Position{Row: row, Col: col}, color) {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether neither color has a legal move.
func (s *State) IsTerminal() bool {
	return !s.hasMove(White) && !s.hasMove(Black)
}

// Count returns the number of cells holding color.
func (s *State) Count(color Color) int {
	count := 0
	for row := range Size {
		for col := range Size {
			if s.cells[row][col] == color {
				count++
			}
		}
	}
	return count
}
