package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatToken is returned when a stat abbreviation is not supported.
	ErrUnknownStatToken = errors.New("unknown stat token")

	// ErrEmptyStatSpec is returned when a stat token names no fields.
	ErrEmptyStatSpec = errors.New("empty stat specification")

	// ErrInvalidStatCombination is returned for repeated fields or too many fields.
	ErrInvalidStatCombination = errors.New("invalid stat combination")

	// ErrInvalidPropLine is returned for a negative or non-finite prop line.
	ErrInvalidPropLine = errors.New("invalid prop line")

	// ErrInvalidWindowSize is returned when the requested game count is not a positive integer.
	ErrInvalidWindowSize = errors.New("invalid window size")

	// ErrMissingFieldData is returned when a game record lacks a usable value
	// for a required field. It points at upstream data quality, not user input.
	ErrMissingFieldData = errors.New("missing field data")

	// ErrEmptyWindow is returned when no games are available to evaluate.
	ErrEmptyWindow = errors.New("no games available")
)

// FieldDataError describes the game and field that could not be resolved.
type FieldDataError struct {
	GameID int
	Field  Field
	Reason string
}

func (e *FieldDataError) Error() string {
	return fmt.Sprintf("%s: game %d field %s: %s", ErrMissingFieldData, e.GameID, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrMissingFieldData) match.
func (e *FieldDataError) Is(target error) bool {
	return target == ErrMissingFieldData
}
