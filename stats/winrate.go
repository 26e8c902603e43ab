package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WinRate counts outcomes of games from one side's point of view. A draw
// counts as half a win.
type WinRate struct {
	Wins   int
	Draws  int
	Losses int
}

func (w *WinRate) Games() int {
	return w.Wins + w.Draws + w.Losses
}

// Rate is the fraction of points won, between 0 and 1.
func (w *WinRate) Rate() float64 {
	n := w.Games()
	if n == 0 {
		return 0
	}
	return (float64(w.Wins) + 0.5*float64(w.Draws)) / float64(n)
}

// ConfidenceInterval returns the normal-approximation interval around Rate
// at the given confidence (in percent), clamped to [0, 1].
func (w *WinRate) ConfidenceInterval(confidence float64) (float64, float64) {
	n := w.Games()
	if n == 0 {
		return 0, 1
	}
	p := w.Rate()
	half := ZVal(confidence) * math.Sqrt(p*(1-p)/float64(n))
	return math.Max(0, p-half), math.Min(1, p+half)
}
