package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SelectWindow returns the n most recent games, newest first.
// The input may be in any order and is not modified. Fewer than n
// available games is not an error: all of them are returned.
func SelectWindow(games []GameRecord, n int) ([]GameRecord, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}

	sorted := make([]GameRecord, len(games))
	copy(sorted, games)
	SortNewestFirst(sorted)

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// SortNewestFirst orders games by date descending, then game ID descending.
func SortNewestFirst(games []GameRecord) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.After(games[j].Date)
		}
		return games[i].GameID > games[j].GameID
	})
}

// ParseWindowSize parses a user-supplied game count such as "10".
// Zero, negative and fractional values are rejected.
func ParseWindowSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindowSize, s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWindowSize, n)
	}
	return n, nil
}
