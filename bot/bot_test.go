package bot

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
	"github.com/domino14/dropfour/minimax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestBot(depth int) *Bot {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, depth)
	return NewBotWithSolver(cfg, minimax.NewSolver(nil, nil))
}

func TestBotTakesWin(t *testing.T) {
	is := is.New(t)
	g, err := game.NewGameFromMoves([]int{0, 8, 1, 8, 2, 7})
	is.NoErr(err)
	b := newTestBot(2)
	col, err := b.PlayBestMove(g)
	is.NoErr(err)
	is.Equal(col, 3)
	is.Equal(g.Winner(), board.First)
}

func TestBotBlocksForSecondSide(t *testing.T) {
	is := is.New(t)
	g, err := game.NewGameFromMoves([]int{0, 6, 1, 8, 2})
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.Second)
	b := newTestBot(2)
	col, _, err := b.BestMove(g)
	is.NoErr(err)
	is.Equal(col, 3)
	// BestMove leaves the game alone.
	is.Equal(g.Turn(), 5)
}

func TestBotRefusesFinishedGame(t *testing.T) {
	is := is.New(t)
	g, err := game.NewGameFromMoves([]int{0, 8, 1, 8, 2, 8, 3})
	is.NoErr(err)
	_, _, err = newTestBot(1).BestMove(g)
	is.Equal(err, game.ErrGameOver)
}

func TestSetDepth(t *testing.T) {
	is := is.New(t)
	b := newTestBot(3)
	is.Equal(b.Depth(), 3)
	is.NoErr(b.SetDepth(1))
	is.Equal(b.Depth(), 1)
	is.Equal(b.SetDepth(0), config.ErrBadSearchDepth)
	is.Equal(b.SetDepth(config.MaxSearchDepth+1), config.ErrBadSearchDepth)
	is.Equal(NewBot(config.DefaultConfig()).Depth(), config.DefaultSearchDepth)
}

func TestBotPlaysWholeGame(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	b := newTestBot(1)
	for g.Playing() == game.Playing {
		_, err := b.PlayBestMove(g)
		is.NoErr(err)
	}
	is.True(g.Turn() >= 2*board.SeqToWin-1)
}

func TestTaunt(t *testing.T) {
	is := is.New(t)
	for i := 0; i < 20; i++ {
		is.True(Taunt() != "")
	}
}
