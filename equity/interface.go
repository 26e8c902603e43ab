package equity

import (
	"github.com/domino14/dropfour/board"
)

// Evaluator assigns a static value to a position. Positive values favor
// board.First, negative values favor board.Second. Implementations must be
// safe to call concurrently on boards nobody is mutating.
type Evaluator interface {
	Score(b *board.GameBoard) int
}
