package analysis

import (
	"github.com/montanaflynn/stats"
)

// Streak is a run of consecutive games with the same non-push outcome.
type Streak struct {
	Outcome Outcome `json:"outcome"`
	Length  int     `json:"length"`
}

// Tally is the outcome breakdown of a window. Nil pointers mean undefined:
// HitRate when no game was decided, CurrentStreak when the latest game
// pushed, LongestStreak when every game pushed.
type Tally struct {
	Hits          int      `json:"hits"`
	Misses        int      `json:"misses"`
	Pushes        int      `json:"pushes"`
	HitRate       *float64 `json:"hit_rate"`
	CurrentStreak *Streak  `json:"current_streak"`
	LongestStreak *Streak  `json:"longest_streak"`
}

// Decided returns the number of games that were not pushes.
func (t Tally) Decided() int {
	return t.Hits + t.Misses
}

// Summarize folds results ordered most recent first.
func Summarize(results []GameResult) Tally {
	var t Tally
	for _, r := range results {
		switch r.Outcome {
		case Over:
			t.Hits++
		case Under:
			t.Misses++
		case Push:
			t.Pushes++
		}
	}

	if d := t.Decided(); d > 0 {
		rate := float64(t.Hits) / float64(d)
		t.HitRate = &rate
	}

	t.CurrentStreak = currentStreak(results)
	t.LongestStreak = longestStreak(results)
	return t
}

func currentStreak(results []GameResult) *Streak {
	if len(results) == 0 || results[0].Outcome == Push {
		return nil
	}

	anchor := results[0].Outcome
	length := 0
	for _, r := range results {
		if r.Outcome != anchor {
			break
		}
		length++
	}
	return &Streak{Outcome: anchor, Length: length}
}

// longestStreak scans from the most recent game, so replacing the best
// run only on a strictly longer one keeps the most recent of equal runs.
func longestStreak(results []GameResult) *Streak {
	var best *Streak
	var run Streak

	for _, r := range results {
		switch {
		case r.Outcome == Push:
			run = Streak{}
			continue
		case r.Outcome == run.Outcome:
			run.Length++
		default:
			run = Streak{Outcome: r.Outcome, Length: 1}
		}

		if best == nil || run.Length > best.Length {
			s := run
			best = &s
		}
	}
	return best
}

// ValueStats describes the per-game values in a window.
type ValueStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// DescribeValues returns mean, median, min and max of the result values.
// An empty input yields the zero ValueStats.
func DescribeValues(results []GameResult) ValueStats {
	if len(results) == 0 {
		return ValueStats{}
	}

	data := make(stats.Float64Data, len(results))
	for i, r := range results {
		data[i] = r.Value
	}

	// Errors only occur on empty input, which is handled above.
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)

	return ValueStats{Mean: mean, Median: median, Min: lo, Max: hi}
}
