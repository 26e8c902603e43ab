// Package minimax implements the fixed-depth minimax search used by the AI.
//
// Convention: the maximizing side is always board.First. Scores are from
// board.First's point of view, so a caller searching for board.Second passes
// maximizing=false and looks for the smallest score.
package minimax

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/equity"
	"github.com/domino14/dropfour/worker"
)

const (
	// WorstForMax is returned by a maximizing node with no legal move.
	WorstForMax = math.MinInt
	// WorstForMin is returned by a minimizing node with no legal move.
	WorstForMin = math.MaxInt
)

type solution struct {
	col   int
	score int
}

// Solver runs the search. Every branch explores its own copy of the board,
// so branches share nothing but the read-only parent position.
type Solver struct {
	pool      *worker.Pool
	evaluator equity.Evaluator

	nodes  atomic.Uint64
	leaves atomic.Uint64
}

// NewSolver creates a solver. A nil pool searches sequentially; a nil
// evaluator uses the heuristic evaluator on the same pool.
func NewSolver(pool *worker.Pool, evaluator equity.Evaluator) *Solver {
	if evaluator == nil {
		evaluator = equity.NewHeuristicEvaluator(pool)
	}
	return &Solver{pool: pool, evaluator: evaluator}
}

// Nodes returns the number of positions visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Leaves returns the number of positions evaluated by the last Solve.
func (s *Solver) Leaves() uint64 {
	return s.leaves.Load()
}

// Solve searches depth plies from b and returns the best score and the
// column that achieves it. b is not modified. At a terminal position the
// column is meaningless and reported as 0.
func (s *Solver) Solve(b *board.GameBoard, depth int, maximizing bool) (int, int) {
	s.nodes.Store(0)
	s.leaves.Store(0)
	tstart := time.Now()

	score, col := s.minimax(b, depth, maximizing)

	log.Debug().
		Int("depth", depth).
		Bool("maximizing", maximizing).
		Int("score", score).
		Int("col", col).
		Uint64("nodes", s.nodes.Load()).
		Uint64("leaves", s.leaves.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return score, col
}

func (s *Solver) minimax(b *board.GameBoard, depth int, maximizing bool) (int, int) {
	s.nodes.Add(1)
	if depth <= 0 || board.HasWon(b, board.First) || board.HasWon(b, board.Second) {
		s.leaves.Add(1)
		return s.evaluator.Score(b), 0
	}

	side := board.Second
	if maximizing {
		side = board.First
	}

	// Indexed by column so the reduction always sees the candidates in
	// ascending column order, however the branches finish.
	var results [board.NumCols]*solution
	batch := s.pool.NewBatch()
	for col := 0; col < board.NumCols; col++ {
		batch.Go(func() error {
			child := b.Copy()
			if _, err := child.Apply(col, side); err != nil {
				// Full column: not a legal move.
				return nil
			}
			score, _ := s.minimax(child, depth-1, !maximizing)
			// Each branch leaves its board the way it found it.
			_ = child.Undo(col)
			results[col] = &solution{col: col, score: score}
			return nil
		})
	}
	// Branches never return an error.
	_ = batch.Wait()

	candidates := lo.Compact(results[:])
	if len(candidates) == 0 {
		if maximizing {
			return WorstForMax, 0
		}
		return WorstForMin, 0
	}
	return reduce(candidates, maximizing)
}

// reduce picks the best candidate for the side to move. Only a strictly
// better score replaces the current choice, so among equal scores the
// lowest column wins, for both sides: an empty board searched one ply deep
// answers column 0.
func reduce(candidates []*solution, maximizing bool) (int, int) {
	var best *solution
	if maximizing {
		best = lo.MaxBy(candidates, func(a, b *solution) bool {
			return a.score > b.score
		})
	} else {
		best = lo.MinBy(candidates, func(a, b *solution) bool {
			return a.score < b.score
		})
	}
	return best.score, best.col
}

// Minimax searches b with the process-wide worker pool and the heuristic
// evaluator. maximizing=true means board.First is to move.
func Minimax(b *board.GameBoard, depth int, maximizing bool) (int, int) {
	pool := worker.Default()
	return NewSolver(pool, equity.NewHeuristicEvaluator(pool)).Solve(b, depth, maximizing)
}
