package automatic

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/dropfour/board"
)

func sampleSummary() *Summary {
	s := NewSummary()
	s.Add(&GameResult{GameID: "a", Winner: board.First, Turns: 7, Hash: 1})
	s.Add(&GameResult{GameID: "b", Winner: board.Second, Turns: 20, Hash: 2})
	s.Add(&GameResult{GameID: "c", Winner: board.First, Turns: 9, Hash: 1})
	s.Add(&GameResult{GameID: "d", Winner: board.Empty, Turns: 108, Hash: 3})
	return s
}

func TestSummaryAdd(t *testing.T) {
	is := is.New(t)
	s := sampleSummary()
	is.Equal(s.Games, 4)
	is.Equal(s.FirstWins, 2)
	is.Equal(s.SecondWins, 1)
	is.Equal(s.Draws, 1)
	is.Equal(s.DistinctPositions, 3)
	is.Equal(s.ShortestGame, 7)
	is.Equal(s.LongestGame, 108)
	assert.InDelta(t, 36.0, s.MeanLength, 1e-9)
	// two wins and a draw out of four games
	assert.InDelta(t, 0.625, s.FirstWinRate, 1e-9)
	is.True(s.FirstWinRateLow < s.FirstWinRate)
	is.True(s.FirstWinRateHigh > s.FirstWinRate)
}

func TestSummaryMerge(t *testing.T) {
	is := is.New(t)
	whole := sampleSummary()

	left, right := NewSummary(), NewSummary()
	left.Add(&GameResult{GameID: "a", Winner: board.First, Turns: 7, Hash: 1})
	left.Add(&GameResult{GameID: "b", Winner: board.Second, Turns: 20, Hash: 2})
	right.Add(&GameResult{GameID: "c", Winner: board.First, Turns: 9, Hash: 1})
	right.Add(&GameResult{GameID: "d", Winner: board.Empty, Turns: 108, Hash: 3})

	merged := NewSummary()
	merged.Merge(left)
	merged.Merge(NewSummary())
	merged.Merge(right)

	is.Equal(merged.Games, whole.Games)
	is.Equal(merged.FirstWins, whole.FirstWins)
	is.Equal(merged.SecondWins, whole.SecondWins)
	is.Equal(merged.Draws, whole.Draws)
	is.Equal(merged.DistinctPositions, 3)
	is.Equal(merged.ShortestGame, 7)
	is.Equal(merged.LongestGame, 108)
	assert.InDelta(t, whole.MeanLength, merged.MeanLength, 1e-9)
	assert.InDelta(t, whole.StdevLength, merged.StdevLength, 1e-9)
	assert.InDelta(t, whole.FirstWinRate, merged.FirstWinRate, 1e-9)
	is.Equal(merged.Histogram().Count, 4)
}

func TestSummaryHistogram(t *testing.T) {
	is := is.New(t)
	h := sampleSummary().Histogram()
	is.Equal(h.Count, 4)
	is.Equal(len(h.Buckets), histogramBins)

	is.Equal(NewSummary().Histogram().Count, 0)
}

func TestSummaryYAML(t *testing.T) {
	is := is.New(t)
	out, err := sampleSummary().YAML()
	is.NoErr(err)
	is.True(strings.Contains(out, "games: 4\n"))
	is.True(strings.Contains(out, "first_wins: 2\n"))
	is.True(strings.Contains(out, "distinct_final_positions: 3\n"))
	is.True(!strings.Contains(out, "values"))
}

func TestSummaryFprint(t *testing.T) {
	is := is.New(t)
	var sb strings.Builder
	is.NoErr(sampleSummary().Fprint(&sb))
	out := sb.String()
	is.True(strings.HasPrefix(out, "Games played: 4\n"))
	is.True(strings.Contains(out, "Draws: 1 (25.000%)"))
	is.True(strings.Contains(out, "7-15"))

	sb.Reset()
	is.NoErr(NewSummary().Fprint(&sb))
	is.Equal(sb.String(), "Games played: 0\n")
}

func TestAnalyzeLogErrors(t *testing.T) {
	is := is.New(t)
	_, err := AnalyzeLog(strings.NewReader(logHeader + "abc,nobody,7,0 1 0 1 0 1 0,00000000000000ff\n"))
	is.True(err != nil)
	_, err = AnalyzeLog(strings.NewReader("abc,first,seven,0,ff\n"))
	is.True(err != nil)
	_, err = AnalyzeLog(strings.NewReader("abc,first,7\n"))
	is.True(err != nil)

	s, err := AnalyzeLog(strings.NewReader(logHeader + "abc,second,8,0 1 0 1 0 1 2 1,00000000000000ff\n"))
	is.NoErr(err)
	is.Equal(s.SecondWins, 1)
}
