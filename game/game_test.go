package game

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/dropfour/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestTurnsAlternate(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.Equal(g.PlayerOnTurn(), board.First)
	is.NoErr(g.PlayMove(4))
	is.Equal(g.PlayerOnTurn(), board.Second)
	is.NoErr(g.PlayMove(4))
	is.Equal(g.PlayerOnTurn(), board.First)
	is.Equal(g.Turn(), 2)
	is.Equal(g.Board().Cell(board.NumRows-1, 4), board.First)
	is.Equal(g.Board().Cell(board.NumRows-2, 4), board.Second)
	is.Equal(g.Playing(), Playing)
}

func TestIllegalMoveKeepsTurn(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	err := g.PlayMove(board.NumCols)
	is.True(errors.Is(err, board.ErrOutOfRange))
	is.Equal(g.PlayerOnTurn(), board.First)
	is.Equal(g.Turn(), 0)

	for i := 0; i < board.NumRows; i++ {
		is.NoErr(g.PlayMove(0))
	}
	onturn := g.PlayerOnTurn()
	err = g.PlayMove(0)
	is.True(errors.Is(err, board.ErrColumnFull))
	is.Equal(g.PlayerOnTurn(), onturn)
}

func TestWinEndsGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGameFromMoves([]int{0, 8, 1, 8, 2, 8})
	is.NoErr(err)
	is.NoErr(g.PlayMove(3))
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), board.First)
	is.True(!g.IsDraw())
	is.Equal(g.PlayMove(5), ErrGameOver)
	is.Equal(g.StatusLine(), "Game over after 7 moves: first (X) wins!")
}

func TestSecondSideWins(t *testing.T) {
	is := is.New(t)
	g, err := NewGameFromMoves([]int{0, 5, 1, 5, 0, 5, 1, 5})
	is.NoErr(err)
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), board.Second)
	is.Equal(g.PlayerOnTurn(), board.Second)
}

// fillOrder returns a column sequence that fills the whole board without
// either side ever completing a run. The final position has markers in
// pairs along every row (XXOOXXOOX, then OOXXOOXXO one row up) and
// alternating up every column; column 8 is used to hand the move to the
// side the next column needs at its bottom.
func fillOrder() []int {
	cols := []int{}
	fill := func(c, n int) {
		for i := 0; i < n; i++ {
			cols = append(cols, c)
		}
	}
	fill(0, board.NumRows)
	fill(1, board.NumRows)
	fill(8, 1)
	fill(2, board.NumRows)
	fill(3, board.NumRows)
	fill(8, 1)
	fill(4, board.NumRows)
	fill(5, board.NumRows)
	fill(8, 1)
	fill(6, board.NumRows)
	fill(7, board.NumRows)
	fill(8, board.NumRows-3)
	return cols
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	cols := fillOrder()
	is.Equal(len(cols), board.NumRows*board.NumCols)
	for i, c := range cols {
		is.NoErr(g.PlayMove(c))
		if i < len(cols)-1 {
			is.Equal(g.Playing(), Playing)
		}
	}
	is.Equal(g.Playing(), GameOver)
	is.True(g.IsDraw())
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.StatusLine(), "Game over after 108 moves: draw.")
}

func TestUnplayLastMove(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.Equal(g.UnplayLastMove(), ErrNoHistory)

	h0 := g.Hash()
	is.NoErr(g.PlayMove(2))
	h1 := g.Hash()
	is.NoErr(g.PlayMove(3))
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Hash(), h1)
	is.Equal(g.PlayerOnTurn(), board.Second)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Hash(), h0)
	is.Equal(g.PlayerOnTurn(), board.First)
	is.True(g.Board().IsEmpty())
}

func TestUnplayReopensGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGameFromMoves([]int{0, 8, 1, 8, 2, 8, 3})
	is.NoErr(err)
	is.Equal(g.Playing(), GameOver)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Playing(), Playing)
	is.Equal(g.Winner(), board.Empty)
	is.Equal(g.PlayerOnTurn(), board.First)
}

func TestHashMatchesFromScratch(t *testing.T) {
	is := is.New(t)
	g, err := NewGameFromMoves([]int{4, 4, 3, 5, 2, 6, 6})
	is.NoErr(err)
	is.Equal(g.Hash(), g.Zobrist().Hash(g.Board(), g.PlayerOnTurn()))
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g, err := NewGameFromMoves([]int{4, 4})
	is.NoErr(err)
	cp := g.Copy()
	is.NoErr(cp.PlayMove(5))
	is.Equal(g.Turn(), 2)
	is.Equal(cp.Turn(), 3)
	is.Equal(g.Board().ColumnHeight(5), 0)
	is.Equal(g.Hash(), g.Zobrist().Hash(g.Board(), g.PlayerOnTurn()))
}

func TestStatusLine(t *testing.T) {
	is := is.New(t)
	g := NewGame()
	is.Equal(g.StatusLine(), "Turn 1: first (X) to move.")
	is.NoErr(g.PlayMove(6))
	is.Equal(g.StatusLine(), "Turn 2: second (O) to move. Last move: X 6")
}
