package move

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/dropfour/board"
)

// Move is a single drop. Column is what identifies the move; Row and Side
// record where the marker landed and who dropped it.
type Move struct {
	Column int
	Row    int
	Side   board.Cell
}

func NewMove(col, row int, side board.Cell) *Move {
	return &Move{Column: col, Row: row, Side: side}
}

// ShortDescription is the side's marker followed by the column, e.g. "X 3".
func (m *Move) ShortDescription() string {
	return fmt.Sprintf("%c %d", m.Side.Marker(), m.Column)
}

func (m *Move) String() string {
	return fmt.Sprintf("<%v col %d row %d>", m.Side, m.Column, m.Row)
}

// ColumnsString joins the columns of a sequence of moves, e.g. "4 3 4 5".
func ColumnsString(moves []*Move) string {
	cols := make([]string, len(moves))
	for i, m := range moves {
		cols[i] = strconv.Itoa(m.Column)
	}
	return strings.Join(cols, " ")
}
