package game

import (
	"github.com/samber/lo"

	"github.com/domino14/dropfour/move"
)

// History returns the moves played so far, oldest first.
func (g *Game) History() []*move.Move {
	return g.history
}

// LastMove returns the most recent move, or nil.
func (g *Game) LastMove() *move.Move {
	if len(g.history) == 0 {
		return nil
	}
	return g.history[len(g.history)-1]
}

// Columns returns the column of every move played so far.
func (g *Game) Columns() []int {
	return lo.Map(g.history, func(m *move.Move, _ int) int {
		return m.Column
	})
}
