package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedBoard = errors.New("malformed board")

var glyphs = map[Color]byte{
	Empty: '.',
	White: 'o',
	Black: 'x',
}

// String renders the board with lettered columns and numbered rows:
//
//	  |ABCDEFGHIJK
//	--------------
//	 1|o..........
func (s State) String() string {
	var b strings.Builder
	b.WriteString("  |")
	for col := range Size {
		b.WriteByte(byte('A' + col))
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", Size+3))
	b.WriteByte('\n')

	for row := range Size {
		fmt.Fprintf(&b, "%2d|", row+1)
		for col := range Size {
			b.WriteByte(glyphs[s.cells[row][col]])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads a board back from its String rendering. Bare rows of glyphs
// without the header and row numbers are accepted too.
func Parse(text string) (State, error) {
	s := New()
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" || strings.Trim(line, "-") == "" {
			continue
		}
		if label, cells, ok := strings.Cut(line, "|"); ok {
			if strings.TrimSpace(label) == "" { // Column header
				continue
			}
			line = cells
		}
		line = strings.TrimSpace(line)

		if row >= Size {
			return State{}, fmt.Errorf("%w: more than %d rows", ErrMalformedBoard, Size)
		}
		if len(line) != Size {
			return State{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedBoard, row+1, len(line), Size)
		}
		for col := range Size {
			color, err := parseGlyph(line[col])
			if err != nil {
				return State{}, fmt.Errorf("%w: row %d column %c: %v", ErrMalformedBoard, row+1, 'A'+rune(col), err)
			}
			s.cells[row][col] = color
		}
		row++
	}
	if row != Size {
		return State{}, fmt.Errorf("%w: got %d rows, want %d", ErrMalformedBoard, row, Size)
	}
	return s, nil
}

func parseGlyph(g byte) (Color, error) {
	for color, glyph := range glyphs {
		if glyph == g {
			return color, nil
		}
	}
	return Empty, fmt.Errorf("unknown glyph %q", g)
}
