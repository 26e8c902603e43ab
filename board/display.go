package board

import (
	"errors"
	"fmt"
	"strings"
)

// ToDisplayText renders the board one row per line, top row first, with the
// column indices underneath.
func (g *GameBoard) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < NumRows; r++ {
		for c := 0; c < NumCols; c++ {
			sb.WriteByte(' ')
			sb.WriteByte(g.squares[r][c].Marker())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	for c := 0; c < NumCols; c++ {
		fmt.Fprintf(&sb, " %d ", c)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// String is a compact single-line form: rows top to bottom separated by '/'.
func (g *GameBoard) String() string {
	rows := make([]string, NumRows)
	for r := 0; r < NumRows; r++ {
		var sb strings.Builder
		for c := 0; c < NumCols; c++ {
			sb.WriteByte(g.squares[r][c].Marker())
		}
		rows[r] = sb.String()
	}
	return strings.Join(rows, "/")
}

var errBadPicture = errors.New("bad board picture")

// FromRows builds a board from a picture of its rows. rows[0] is the top row.
// Fewer than NumRows rows may be given, in which case they are the bottom
// rows of the board. Each row holds NumCols characters out of '.', 'X' and
// 'O'; spaces are ignored. Floating markers are rejected.
func FromRows(rows []string) (*GameBoard, error) {
	if len(rows) > NumRows {
		return nil, fmt.Errorf("%w: %d rows", errBadPicture, len(rows))
	}
	b := NewGameBoard()
	offset := NumRows - len(rows)
	for i, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != NumCols {
			return nil, fmt.Errorf("%w: row %d has %d cells", errBadPicture, i, len(line))
		}
		for c := 0; c < NumCols; c++ {
			var cell Cell
			switch line[c] {
			case '.', '_':
				cell = Empty
			case 'X', 'x':
				cell = First
			case 'O', 'o':
				cell = Second
			default:
				return nil, fmt.Errorf("%w: unexpected %q", errBadPicture, line[c])
			}
			b.squares[offset+i][c] = cell
		}
	}
	for c := 0; c < NumCols; c++ {
		h := 0
		for r := NumRows - 1; r >= 0; r-- {
			if b.squares[r][c] == Empty {
				break
			}
			h++
		}
		for r := NumRows - 1 - h; r >= 0; r-- {
			if b.squares[r][c] != Empty {
				return nil, fmt.Errorf("%w: floating marker in column %d", errBadPicture, c)
			}
		}
		b.heights[c] = h
		b.tilesPlayed += h
	}
	return b, nil
}

// FromString parses the compact form produced by String.
func FromString(s string) (*GameBoard, error) {
	return FromRows(strings.Split(strings.TrimSpace(s), "/"))
}
