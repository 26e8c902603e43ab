package automatic

import (
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func shallowConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchDepth, 2)
	return cfg
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 1)
	runner := NewGameRunner(logchan, shallowConfig(), nil)
	res, err := runner.PlayGame()
	is.NoErr(err)

	g := runner.Game()
	is.Equal(g.Playing(), game.GameOver)
	is.True(res.Turns >= 2*board.SeqToWin-1)
	is.Equal(res.Turns, g.Turn())
	is.Equal(res.Winner, g.Winner())
	is.Equal(res.Hash, g.Hash())
	is.Equal(res.GameID, gameID(g.Columns()))
	is.Equal(len(strings.Fields(res.Moves)), res.Turns)

	line := <-logchan
	is.Equal(line, res.CSVLine())
	is.Equal(strings.Count(line, ","), 4)
}

func TestRandomPlies(t *testing.T) {
	is := is.New(t)
	runner := NewGameRunner(nil, shallowConfig(), nil)
	runner.SetRandomPlies(200)
	// Every move is random, so the game only ends on a win or a full board.
	res, err := runner.PlayGame()
	is.NoErr(err)
	is.True(res.Turns <= board.NumRows*board.NumCols)
	if res.Winner == board.Empty {
		is.Equal(res.Turns, board.NumRows*board.NumCols)
	}
}

func TestGameIDDependsOnMoves(t *testing.T) {
	is := is.New(t)
	is.Equal(gameID([]int{4, 3, 4}), gameID([]int{4, 3, 4}))
	is.True(gameID([]int{4, 3, 4}) != gameID([]int{3, 4, 4}))
	is.Equal(len(gameID(nil)), 16)
}

func TestSharedZobristMatchesTransposedGames(t *testing.T) {
	is := is.New(t)
	runner := NewGameRunner(nil, shallowConfig(), nil)
	g1 := game.NewGameWithZobrist(runner.zobrist)
	g2 := game.NewGameWithZobrist(runner.zobrist)
	for _, c := range []int{0, 1, 2, 3} {
		is.NoErr(g1.PlayMove(c))
	}
	for _, c := range []int{2, 3, 0, 1} {
		is.NoErr(g2.PlayMove(c))
	}
	is.Equal(g1.Hash(), g2.Hash())
}
