package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/dropfour/board"
)

// AnalyzeLogFile reads an autoplay log back and summarizes it.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

// AnalyzeLog summarizes autoplay log lines read from r.
func AnalyzeLog(rd io.Reader) (*Summary, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = 5

	// Record looks like:
	// gameID,winner,turns,moves,hash
	summary := NewSummary()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		res, err := parseRecord(record)
		if err != nil {
			return nil, err
		}
		summary.Add(res)
	}
	return summary, nil
}

func parseRecord(record []string) (*GameResult, error) {
	res := &GameResult{GameID: record[0], Moves: record[3]}
	switch record[1] {
	case "first":
		res.Winner = board.First
	case "second":
		res.Winner = board.Second
	case "draw":
		res.Winner = board.Empty
	default:
		return nil, fmt.Errorf("game %s: unknown winner %q", record[0], record[1])
	}
	turns, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", record[0], err)
	}
	res.Turns = turns
	res.Hash, err = strconv.ParseUint(record[4], 16, 64)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", record[0], err)
	}
	return res, nil
}
