package board

import (
	"errors"
	"fmt"
)

const (
	// NumRows is the number of rows on the board. Row 0 is the top edge.
	NumRows = 12
	// NumCols is the number of columns on the board.
	NumCols = 9
	// SeqToWin is the number of consecutive markers a side needs to win.
	SeqToWin = 4
)

var (
	ErrOutOfRange  = errors.New("column is out of range")
	ErrColumnFull  = errors.New("column is full")
	ErrColumnEmpty = errors.New("column is empty")
	ErrInvalidSide = errors.New("invalid side")
)

// A Cell is the content of a single square of the board. First and Second
// double as the identifiers of the two sides.
type Cell uint8

const (
	Empty Cell = iota
	First
	Second
)

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case First:
		return Second
	case Second:
		return First
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return "empty"
}

// Marker is the single character used to draw the cell.
func (c Cell) Marker() byte {
	switch c {
	case First:
		return 'X'
	case Second:
		return 'O'
	}
	return '.'
}

// GameBoard is a gravity-drop grid. Within any column the occupied cells
// form a contiguous block anchored at the bottom edge.
type GameBoard struct {
	squares [NumRows][NumCols]Cell
	// heights[c] is the number of markers in column c.
	heights     [NumCols]int
	tilesPlayed int
}

// NewGameBoard creates an empty board.
func NewGameBoard() *GameBoard {
	return &GameBoard{}
}

// Copy returns a deep copy of the board. The grid is an array, so a value
// copy is already independent of the original.
func (g *GameBoard) Copy() *GameBoard {
	cp := *g
	return &cp
}

// Cell returns the content of the square at (row, col). Coordinates outside
// the board read as Empty.
func (g *GameBoard) Cell(row, col int) Cell {
	if row < 0 || row >= NumRows || col < 0 || col >= NumCols {
		return Empty
	}
	return g.squares[row][col]
}

// Apply drops a marker for side into col. It returns the row the marker
// landed in.
func (g *GameBoard) Apply(col int, side Cell) (int, error) {
	if col < 0 || col >= NumCols {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, col)
	}
	if side != First && side != Second {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSide, side)
	}
	if g.heights[col] == NumRows {
		return 0, fmt.Errorf("%w: %d", ErrColumnFull, col)
	}
	row := NumRows - 1 - g.heights[col]
	g.squares[row][col] = side
	g.heights[col]++
	g.tilesPlayed++
	return row, nil
}

// Undo removes the topmost marker of col. Because of gravity this is the
// marker most recently dropped into that column.
func (g *GameBoard) Undo(col int) error {
	if col < 0 || col >= NumCols {
		return fmt.Errorf("%w: %d", ErrOutOfRange, col)
	}
	if g.heights[col] == 0 {
		return fmt.Errorf("%w: %d", ErrColumnEmpty, col)
	}
	row := NumRows - g.heights[col]
	g.squares[row][col] = Empty
	g.heights[col]--
	g.tilesPlayed--
	return nil
}

// CanApply returns whether a marker can be dropped into col.
func (g *GameBoard) CanApply(col int) bool {
	return col >= 0 && col < NumCols && g.heights[col] < NumRows
}

// LegalMoves returns the columns that still have room, in ascending order.
func (g *GameBoard) LegalMoves() []int {
	moves := make([]int, 0, NumCols)
	for c := 0; c < NumCols; c++ {
		if g.heights[c] < NumRows {
			moves = append(moves, c)
		}
	}
	return moves
}

// ColumnHeight returns the number of markers in col.
func (g *GameBoard) ColumnHeight(col int) int {
	if col < 0 || col >= NumCols {
		return 0
	}
	return g.heights[col]
}

func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

func (g *GameBoard) IsFull() bool {
	return g.tilesPlayed == NumRows*NumCols
}

// Equals compares the cell contents of two boards.
func (g *GameBoard) Equals(other *GameBoard) bool {
	return g.squares == other.squares
}

// Row returns a copy of a single row, left to right.
func (g *GameBoard) Row(row int) [NumCols]Cell {
	return g.squares[row]
}

// Column returns a copy of a single column, top to bottom.
func (g *GameBoard) Column(col int) [NumRows]Cell {
	var line [NumRows]Cell
	for r := 0; r < NumRows; r++ {
		line[r] = g.squares[r][col]
	}
	return line
}
