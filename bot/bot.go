// Package bot is the computer player: it runs the minimax search for the
// side on turn and plays the column it picks.
package bot

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/config"
	"github.com/domino14/dropfour/game"
	"github.com/domino14/dropfour/minimax"
	"github.com/domino14/dropfour/worker"
)

type Bot struct {
	cfg    *config.Config
	depth  int
	solver *minimax.Solver
}

// NewBot creates a bot searching cfg's search depth with the process-wide
// worker pool.
func NewBot(cfg *config.Config) *Bot {
	return NewBotWithSolver(cfg, minimax.NewSolver(worker.Default(), nil))
}

func NewBotWithSolver(cfg *config.Config, solver *minimax.Solver) *Bot {
	return &Bot{cfg: cfg, depth: cfg.SearchDepth(), solver: solver}
}

func (b *Bot) Depth() int {
	return b.depth
}

// SetDepth changes the number of plies searched.
func (b *Bot) SetDepth(depth int) error {
	if depth < 1 || depth > config.MaxSearchDepth {
		return config.ErrBadSearchDepth
	}
	b.depth = depth
	return nil
}

// BestMove searches for the side on turn and returns the chosen column and
// its score. The game is not modified.
func (b *Bot) BestMove(g *game.Game) (int, int, error) {
	if g.Playing() == game.GameOver {
		return 0, 0, game.ErrGameOver
	}
	onturn := g.PlayerOnTurn()
	// The first side is always the maximizing one.
	maximizing := onturn == board.First
	score, col := b.solver.Solve(g.Board(), b.depth, maximizing)
	log.Debug().
		Str("side", onturn.String()).
		Int("col", col).
		Int("score", score).
		Uint64("nodes", b.solver.Nodes()).
		Msg("bot-best-move")
	return col, score, nil
}

// PlayBestMove searches and plays the chosen column.
func (b *Bot) PlayBestMove(g *game.Game) (int, error) {
	col, _, err := b.BestMove(g)
	if err != nil {
		return 0, err
	}
	return col, g.PlayMove(col)
}
