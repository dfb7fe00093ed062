package game

// Evaluate tallies each color's material: a stone counts for its owner and
// an Empty cell counts for every color that could grow into it. The score
// is white minus black, so White maximizes it and Black minimizes it.
func (s *State) Evaluate() int {
	white, black := 0, 0
	for row := range Size {
		for col := range Size {
			switch s.cells[row][col] {
			case White:
				white++
			case Black:
				black++
			default:
				pos := Position{Row: row, Col: col}
				if s.Supports(pos, White) {
					white++
				}
				if s.Supports(pos, Black) {
					black++
				}
			}
		}
	}
	return white - black
}

// Leader compares raw stone counts and returns the color with strictly
// more stones, or Empty on a tie. Growable cells are not counted.
func (s *State) Leader() Color {
	white, black := s.Count(White), s.Count(Black)
	switch {
	case white > black:
		return White
	case black > white:
		return Black
	default:
		return Empty
	}
}

// IsViable reports whether a position is balanced enough to be worth
// sampling: both colors are established, or their stone counts differ by
// less than two.
func (s *State) IsViable() bool {
	white, black := s.Count(White), s.Count(Black)
	if white > Size-1 && black > Size-1 {
		return true
	}
	return abs(white-black) < 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
