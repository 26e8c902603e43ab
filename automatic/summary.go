package automatic

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/domino14/dropfour/board"
	"github.com/domino14/dropfour/stats"
)

const (
	histogramBins  = 12
	histogramWidth = 40
	confidence     = 95.0
)

// Summary aggregates the results of a batch of games. The exported fields
// are kept current by Add.
type Summary struct {
	Games             int     `yaml:"games"`
	FirstWins         int     `yaml:"first_wins"`
	SecondWins        int     `yaml:"second_wins"`
	Draws             int     `yaml:"draws"`
	MeanLength        float64 `yaml:"mean_length"`
	StdevLength       float64 `yaml:"stdev_length"`
	ShortestGame      int     `yaml:"shortest_game"`
	LongestGame       int     `yaml:"longest_game"`
	DistinctPositions int     `yaml:"distinct_final_positions"`
	FirstWinRate      float64 `yaml:"first_win_rate"`
	FirstWinRateLow   float64 `yaml:"first_win_rate_low"`
	FirstWinRateHigh  float64 `yaml:"first_win_rate_high"`

	lengths   stats.Statistic
	values    []float64
	positions map[uint64]struct{}
}

func NewSummary() *Summary {
	return &Summary{positions: make(map[uint64]struct{})}
}

func (s *Summary) Add(r *GameResult) {
	s.Games++
	switch r.Winner {
	case board.First:
		s.FirstWins++
	case board.Second:
		s.SecondWins++
	default:
		s.Draws++
	}
	s.lengths.Push(float64(r.Turns))
	s.values = append(s.values, float64(r.Turns))
	s.positions[r.Hash] = struct{}{}
	s.refresh()
}

// Merge folds the games of another summary into this one.
func (s *Summary) Merge(o *Summary) {
	if o.Games == 0 {
		return
	}
	s.Games += o.Games
	s.FirstWins += o.FirstWins
	s.SecondWins += o.SecondWins
	s.Draws += o.Draws
	s.lengths.Merge(&o.lengths)
	s.values = append(s.values, o.values...)
	for h := range o.positions {
		s.positions[h] = struct{}{}
	}
	s.refresh()
}

// refresh recomputes the exported fields from the raw data.
func (s *Summary) refresh() {
	s.MeanLength = s.lengths.Mean()
	s.StdevLength = s.lengths.Stdev()
	s.ShortestGame = int(s.lengths.Min())
	s.LongestGame = int(s.lengths.Max())
	s.DistinctPositions = len(s.positions)

	wr := s.FirstPlayerRecord()
	s.FirstWinRate = wr.Rate()
	s.FirstWinRateLow, s.FirstWinRateHigh = wr.ConfidenceInterval(confidence)
}

// FirstPlayerRecord is the record of the side that moves first.
func (s *Summary) FirstPlayerRecord() *stats.WinRate {
	return &stats.WinRate{Wins: s.FirstWins, Draws: s.Draws, Losses: s.SecondWins}
}

// Histogram returns the distribution of game lengths.
func (s *Summary) Histogram() histogram.Histogram {
	return histogram.Hist(histogramBins, s.values)
}

func (s *Summary) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Fprint writes a human-readable report followed by the length histogram.
func (s *Summary) Fprint(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		_, err := io.WriteString(w, sb.String())
		return err
	}
	pct := func(n int) float64 { return 100.0 * float64(n) / float64(s.Games) }
	fmt.Fprintf(&sb, "First (X) wins: %d (%.3f%%)\n", s.FirstWins, pct(s.FirstWins))
	fmt.Fprintf(&sb, "Second (O) wins: %d (%.3f%%)\n", s.SecondWins, pct(s.SecondWins))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", s.Draws, pct(s.Draws))
	fmt.Fprintf(&sb, "First player score rate: %.3f (%.0f%% CI %.3f - %.3f)\n",
		s.FirstWinRate, confidence, s.FirstWinRateLow, s.FirstWinRateHigh)
	fmt.Fprintf(&sb, "Game length: mean %.2f  stdev %.2f  shortest %d  longest %d\n",
		s.MeanLength, s.StdevLength, s.ShortestGame, s.LongestGame)
	fmt.Fprintf(&sb, "Distinct final positions: %d\n\n", s.DistinctPositions)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	return histogram.Fprintf(w, s.Histogram(), histogram.Linear(histogramWidth),
		func(v float64) string { return fmt.Sprintf("%.0f", v) })
}
