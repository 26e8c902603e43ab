// Package automatic plays games between two copies of the AI, for
// benchmarking the search and gathering statistics about the game.
package automatic

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/bot"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
	"github.com/domino14/dropfour/move"
	"github.com/domino14/dropfour/zobrist"
)

// GameResult is the outcome of one computer vs computer game.
type GameResult struct {
	GameID string
	Winner board.Cell
	Turns  int
	Moves  string
	Hash   uint64
}

// CSVLine formats the result as a line of the autoplay log.
func (r *GameResult) CSVLine() string {
	return fmt.Sprintf("%s,%s,%d,%s,%016x\n", r.GameID, outcome(r.Winner), r.Turns, r.Moves, r.Hash)
}

func outcome(winner board.Cell) string {
	if winner == board.Empty {
		return "draw"
	}
	return winner.String()
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game        *game.Game
	bot         *bot.Bot
	zobrist     *zobrist.Zobrist
	config      *config.Config
	randomPlies int
	logchan     chan string
}

// NewGameRunner creates a runner whose games all hash with the keys in z,
// so final positions of different games can be compared. If z is nil,
// fresh keys are generated.
func NewGameRunner(logchan chan string, cfg *config.Config, z *zobrist.Zobrist) *GameRunner {
	if z == nil {
		z = &zobrist.Zobrist{}
		z.Initialize()
	}
	return &GameRunner{
		bot:         bot.NewBot(cfg),
		zobrist:     z,
		config:      cfg,
		randomPlies: cfg.GetInt(config.ConfigAutoplayRandomPlies),
		logchan:     logchan,
	}
}

// SetRandomPlies sets how many opening moves are chosen at random rather
// than by the search.
func (r *GameRunner) SetRandomPlies(n int) {
	r.randomPlies = max(n, 0)
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayGame plays a full game and returns its result. The result is also
// sent to the log channel, if there is one.
func (r *GameRunner) PlayGame() (*GameResult, error) {
	r.game = game.NewGameWithZobrist(r.zobrist)
	for r.game.Playing() == game.Playing {
		var err error
		if r.game.Turn() < r.randomPlies {
			err = r.playRandomMove()
		} else {
			_, err = r.bot.PlayBestMove(r.game)
		}
		if err != nil {
			return nil, err
		}
	}
	res := &GameResult{
		GameID: gameID(r.game.Columns()),
		Winner: r.game.Winner(),
		Turns:  r.game.Turn(),
		Moves:  move.ColumnsString(r.game.History()),
		Hash:   r.game.Hash(),
	}
	log.Debug().Str("game-id", res.GameID).Str("winner", res.Winner.String()).
		Int("turns", res.Turns).Msg("autoplay-game-over")
	if r.logchan != nil {
		r.logchan <- res.CSVLine()
	}
	return res, nil
}

func (r *GameRunner) playRandomMove() error {
	legal := r.game.Board().LegalMoves()
	return r.game.PlayMove(legal[frand.Intn(len(legal))])
}

// gameID is a digest of the move sequence; identical games share an ID.
func gameID(cols []int) string {
	buf := make([]byte, len(cols))
	for i, c := range cols {
		buf[i] = byte('0' + c)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(buf))
}
