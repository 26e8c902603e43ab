package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/worker"
)

const (
	// DiagonalWindowValue is what a diagonal window fully owned by one side
	// is worth.
	DiagonalWindowValue = 100
)

// runBonus is the row/column bonus credited for a run of the given length
// after every cell of the scan.
func runBonus(runLength int) int {
	switch runLength {
	case 2:
		return 10
	case 3:
		return 50
	case 4:
		return 100
	}
	return 0
}

// HeuristicEvaluator scores rows and columns by run length and diagonals by
// complete windows of board.SeqToWin cells. The two schedules differ; both
// are kept as they are because the search has been tuned against them.
type HeuristicEvaluator struct {
	pool *worker.Pool
}

// NewHeuristicEvaluator creates an evaluator that fans its work out over
// pool. A nil pool evaluates sequentially.
func NewHeuristicEvaluator(pool *worker.Pool) *HeuristicEvaluator {
	return &HeuristicEvaluator{pool: pool}
}

// Score returns the sum of the row, column and diagonal subscores.
func (h *HeuristicEvaluator) Score(b *board.GameBoard) int {
	var rows, cols, diags int
	batch := h.pool.NewBatch()
	batch.Go(func() error {
		rows = h.evaluateRows(b)
		return nil
	})
	batch.Go(func() error {
		cols = h.evaluateCols(b)
		return nil
	})
	batch.Go(func() error {
		diags = h.evaluateDiagonals(b)
		return nil
	})
	// None of the tasks fail.
	_ = batch.Wait()
	return rows + cols + diags
}

func (h *HeuristicEvaluator) evaluateRows(b *board.GameBoard) int {
	var subs [board.NumRows]int
	batch := h.pool.NewBatch()
	for r := 0; r < board.NumRows; r++ {
		batch.Go(func() error {
			line := b.Row(r)
			subs[r] = evaluateLine(line[:])
			return nil
		})
	}
	_ = batch.Wait()
	return lo.Sum(subs[:])
}

func (h *HeuristicEvaluator) evaluateCols(b *board.GameBoard) int {
	var subs [board.NumCols]int
	batch := h.pool.NewBatch()
	for c := 0; c < board.NumCols; c++ {
		batch.Go(func() error {
			line := b.Column(c)
			subs[c] = evaluateLine(line[:])
			return nil
		})
	}
	_ = batch.Wait()
	return lo.Sum(subs[:])
}

// evaluateDiagonals scores length-4 windows in both diagonal families,
// walking from start rows 0..NumRows-SeqToWin in each. The falling family
// goes down and to the right, so every such window is complete. The rising
// family goes up and to the right from the same start rows: windows starting
// above row SeqToWin-1 leave the board and never score, and rising windows
// anchored in the bottom SeqToWin-1 rows are not visited at all. Win
// detection still sees those; only the evaluator ignores them. Work is split
// per start row.
func (h *HeuristicEvaluator) evaluateDiagonals(b *board.GameBoard) int {
	const startRows = board.NumRows - board.SeqToWin + 1
	var falling, rising [startRows]int
	batch := h.pool.NewBatch()
	for i := 0; i < startRows; i++ {
		batch.Go(func() error {
			falling[i] = diagonalRowScore(b, i, 1)
			return nil
		})
		batch.Go(func() error {
			rising[i] = diagonalRowScore(b, i, -1)
			return nil
		})
	}
	_ = batch.Wait()
	return lo.Sum(falling[:]) + lo.Sum(rising[:])
}

// diagonalRowScore sums the windows starting on startRow, stepping dr rows
// per column.
func diagonalRowScore(b *board.GameBoard, startRow, dr int) int {
	score := 0
	for col := 0; col <= board.NumCols-board.SeqToWin; col++ {
		first, second := 0, 0
		for i := 0; i < board.SeqToWin; i++ {
			switch b.Cell(startRow+dr*i, col+i) {
			case board.First:
				first++
			case board.Second:
				second++
			}
		}
		score += windowScore(first, second)
	}
	return score
}

func windowScore(first, second int) int {
	if first == board.SeqToWin {
		return DiagonalWindowValue
	} else if second == board.SeqToWin {
		return -DiagonalWindowValue
	}
	return 0
}

// evaluateLine scans a row or a column keeping one run counter per side.
// After each cell the first side's current run earns its bonus and the
// second side's run costs the same.
func evaluateLine(line []board.Cell) int {
	score := 0
	first, second := 0, 0
	for _, cell := range line {
		switch cell {
		case board.First:
			first++
			second = 0
		case board.Second:
			second++
			first = 0
		default:
			first, second = 0, 0
		}
		score += runBonus(first)
		score -= runBonus(second)
	}
	return score
}

// Score evaluates b with an evaluator bound to the process-wide worker pool.
func Score(b *board.GameBoard) int {
	return NewHeuristicEvaluator(worker.Default()).Score(b)
}
