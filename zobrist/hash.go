package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/move"
)

const bignum = 1<<63 - 2

// Zobrist hashes a position: one random key per (square, side) plus a key
// for the second side being on turn.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	secondToMove uint64
	posTable     [board.NumRows * board.NumCols][2]uint64
}

func (z *Zobrist) Initialize() {
	for i := range z.posTable {
		for j := range z.posTable[i] {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	z.secondToMove = frand.Uint64n(bignum) + 1
}

func sideIdx(side board.Cell) int {
	if side == board.Second {
		return 1
	}
	return 0
}

// Hash computes the key of b from scratch.
func (z *Zobrist) Hash(b *board.GameBoard, onTurn board.Cell) uint64 {
	key := uint64(0)
	for r := 0; r < board.NumRows; r++ {
		for c := 0; c < board.NumCols; c++ {
			cell := b.Cell(r, c)
			if cell == board.Empty {
				continue
			}
			key ^= z.posTable[r*board.NumCols+c][sideIdx(cell)]
		}
	}
	if onTurn == board.Second {
		key ^= z.secondToMove
	}
	return key
}

// AddMove updates key for m being played (or, applied a second time, for m
// being taken back). The side to move always alternates.
func (z *Zobrist) AddMove(key uint64, m *move.Move) uint64 {
	key ^= z.posTable[m.Row*board.NumCols+m.Column][sideIdx(m.Side)]
	key ^= z.secondToMove
	return key
}
