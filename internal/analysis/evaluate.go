package analysis

import (
	"fmt"
	"math"
)

// Summary is the result of checking a prop line against a player's recent games.
type Summary struct {
	Stat       StatSpec     `json:"stat"`
	Line       float64      `json:"prop_line"`
	Requested  int          `json:"requested"`
	WindowSize int          `json:"window_size"`
	Results    []GameResult `json:"results"`
	Tally
	Values ValueStats `json:"values"`
}

// Evaluate parses statToken, selects the n most recent games from history
// and classifies each against line.
//
// A game in the window with a missing or invalid field aborts the whole
// evaluation with ErrMissingFieldData; it is never skipped or counted as
// zero. Games outside the window are not inspected.
func Evaluate(statToken string, line float64, history []GameRecord, n int) (Summary, error) {
	spec, err := ParseStat(statToken)
	if err != nil {
		return Summary{}, err
	}

	if err := ValidateLine(line); err != nil {
		return Summary{}, err
	}

	window, err := SelectWindow(history, n)
	if err != nil {
		return Summary{}, err
	}
	if len(window) == 0 {
		return Summary{}, ErrEmptyWindow
	}

	results := make([]GameResult, 0, len(window))
	for _, game := range window {
		value, err := Resolve(game, spec)
		if err != nil {
			return Summary{}, fmt.Errorf("resolving %s: %w", spec.Token, err)
		}
		results = append(results, GameResult{
			Game:    game,
			Value:   value,
			Outcome: Classify(value, line),
		})
	}

	return Summary{
		Stat:       spec,
		Line:       line,
		Requested:  n,
		WindowSize: len(results),
		Results:    results,
		Tally:      Summarize(results),
		Values:     DescribeValues(results),
	}, nil
}

// ValidateLine rejects negative, NaN and infinite prop lines.
func ValidateLine(line float64) error {
	if math.IsNaN(line) || math.IsInf(line, 0) || line < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPropLine, line)
	}
	return nil
}
