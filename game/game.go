// Package game holds the state of a single game: the board, whose turn it
// is, the move history, and whether the game is over.
package game

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/move"
	"github.com/domino14/dropfour/zobrist"
)

var (
	ErrGameOver  = errors.New("cannot play a move on a game that is over")
	ErrNoHistory = errors.New("there are no moves to take back")
)

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	if p == Playing {
		return "playing"
	}
	return "game over"
}

// Game is a two-player game. board.First always moves first.
type Game struct {
	board   *board.GameBoard
	onturn  board.Cell
	playing PlayState
	winner  board.Cell
	history []*move.Move

	zobrist *zobrist.Zobrist
	hash    uint64
}

func NewGame() *Game {
	z := &zobrist.Zobrist{}
	z.Initialize()
	return NewGameWithZobrist(z)
}

// NewGameWithZobrist starts a game hashed with existing keys, so hashes are
// comparable across games.
func NewGameWithZobrist(z *zobrist.Zobrist) *Game {
	g := &Game{
		board:   board.NewGameBoard(),
		onturn:  board.First,
		playing: Playing,
		zobrist: z,
	}
	g.hash = z.Hash(g.board, g.onturn)
	return g
}

// NewGameFromMoves replays a column sequence from the empty board.
func NewGameFromMoves(cols []int) (*Game, error) {
	g := NewGame()
	for _, c := range cols {
		if err := g.PlayMove(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// PlayMove drops a marker for the side on turn. It ends the game if the
// mover completes a run or fills the board.
func (g *Game) PlayMove(col int) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	row, err := g.board.Apply(col, g.onturn)
	if err != nil {
		return err
	}
	m := move.NewMove(col, row, g.onturn)
	g.history = append(g.history, m)
	g.hash = g.zobrist.AddMove(g.hash, m)

	if board.HasWon(g.board, g.onturn) {
		g.playing = GameOver
		g.winner = g.onturn
		log.Debug().Str("winner", g.winner.String()).Int("turn", g.Turn()).Msg("game-won")
		return nil
	}
	if g.board.IsFull() {
		g.playing = GameOver
		log.Debug().Int("turn", g.Turn()).Msg("game-drawn")
		return nil
	}
	g.onturn = g.onturn.Opponent()
	return nil
}

// UnplayLastMove takes back the most recent move, reopening the game if it
// had ended.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	if err := g.board.Undo(last.Column); err != nil {
		return err
	}
	g.history = g.history[:len(g.history)-1]
	g.hash = g.zobrist.AddMove(g.hash, last)
	g.onturn = last.Side
	g.playing = Playing
	g.winner = board.Empty
	return nil
}

// Copy returns an independent copy of the game sharing the zobrist keys.
func (g *Game) Copy() *Game {
	cp := *g
	cp.board = g.board.Copy()
	cp.history = make([]*move.Move, len(g.history))
	copy(cp.history, g.history)
	return &cp
}

func (g *Game) Board() *board.GameBoard {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Cell {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

// Winner is board.Empty while the game is on or if it ended in a draw.
func (g *Game) Winner() board.Cell {
	return g.winner
}

func (g *Game) IsDraw() bool {
	return g.playing == GameOver && g.winner == board.Empty
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) Hash() uint64 {
	return g.hash
}

// Zobrist returns the key tables used for Hash.
func (g *Game) Zobrist() *zobrist.Zobrist {
	return g.zobrist
}
