package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-prop-checker/internal/analysis"
)

const playersJSON = `{
  "data": [
    {"id": 115, "first_name": "Stephen", "last_name": "Curry", "position": "G",
     "team": {"id": 10, "abbreviation": "GSW", "city": "Golden State", "name": "Warriors", "full_name": "Golden State Warriors"}},
    {"id": 666, "first_name": "Seth", "last_name": "Curry", "position": "G",
     "team": {"id": 4, "abbreviation": "CHA", "city": "Charlotte", "name": "Hornets", "full_name": "Charlotte Hornets"}}
  ],
  "meta": {"per_page": 25}
}`

const statsPage1 = `{
  "data": [
    {"id": 1, "min": "34", "pts": 31, "reb": 5, "dreb": 4, "oreb": 1, "ast": 7, "blk": 0, "stl": 2, "turnover": 3,
     "fg3m": 6, "fg3a": 12, "fga": 21, "ftm": 5, "game": {"id": 900, "date": "2025-01-10", "season": 2024}},
    {"id": 2, "min": "00", "pts": 0, "reb": 0, "dreb": 0, "oreb": 0, "ast": 0, "blk": 0, "stl": 0, "turnover": 0,
     "fg3m": 0, "fg3a": 0, "fga": 0, "ftm": 0, "game": {"id": 901, "date": "2025-01-12", "season": 2024}}
  ],
  "meta": {"next_cursor": 2, "per_page": 100}
}`

const statsPage2 = `{
  "data": [
    {"id": 3, "min": "29", "pts": 18, "reb": null, "dreb": 3, "oreb": 0, "ast": 9, "blk": 1, "stl": 1, "turnover": 2,
     "fg3m": 2, "fg3a": 8, "fga": 14, "ftm": 6, "game": {"id": 902, "date": "2025-01-14T00:00:00.000Z", "season": 2024}}
  ],
  "meta": {"per_page": 100}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "nobody" {
			w.Write([]byte(`{"data": [], "meta": {}}`))
			return
		}
		w.Write([]byte(playersJSON))
	})
	mux.HandleFunc("/players/115", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"id": 115, "first_name": "Stephen", "last_name": "Curry"}}`))
	})
	mux.HandleFunc("/players/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("player_ids[]") != "115" || len(q["seasons[]"]) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if q.Get("cursor") == "2" {
			w.Write([]byte(statsPage2))
			return
		}
		w.Write([]byte(statsPage1))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *BallDontLieClient {
	now := func() time.Time { return time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC) }
	return NewBallDontLieClient("test-key", 600, WithBaseURL(srv.URL), WithClock(now))
}

func TestFindPlayerPrefersExactMatch(t *testing.T) {
	c := newTestClient(newTestServer(t))

	p, err := c.FindPlayer(context.Background(), "seth  curry")
	require.NoError(t, err)
	assert.Equal(t, 666, p.ID)
	assert.Equal(t, "Seth Curry", p.FullName())

	p, err = c.FindPlayer(context.Background(), "curry")
	require.NoError(t, err)
	assert.Equal(t, 115, p.ID, "falls back to first result")
	assert.Equal(t, "GSW", p.Team.Abbreviation)
}

func TestFindPlayerNotFound(t *testing.T) {
	c := newTestClient(newTestServer(t))

	_, err := c.FindPlayer(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestGetPlayer(t *testing.T) {
	c := newTestClient(newTestServer(t))

	p, err := c.GetPlayer(context.Background(), 115)
	require.NoError(t, err)
	assert.Equal(t, "Stephen Curry", p.FullName())

	_, err = c.GetPlayer(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestGetPlayerStatsFollowsCursor(t *testing.T) {
	c := newTestClient(newTestServer(t))

	lines, err := c.GetPlayerStats(context.Background(), 115, []int{2023, 2024})
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

func TestRecentGames(t *testing.T) {
	c := newTestClient(newTestServer(t))

	games, err := c.RecentGames(context.Background(), 115, 10)
	require.NoError(t, err)
	require.Len(t, games, 2, "DNP line is dropped")

	// Newest first.
	assert.Equal(t, 902, games[0].GameID)
	assert.Equal(t, 900, games[1].GameID)
	assert.True(t, games[0].Date.Equal(time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC)))

	// Null rebounds stay missing.
	_, ok := games[0].Value(analysis.Rebounds)
	assert.False(t, ok)
	assert.Equal(t, 9.0, games[0].Values[analysis.Assists])
	assert.Equal(t, 31.0, games[1].Values[analysis.Points])
	assert.Len(t, games[1].Values, 12)

	_, err = analysis.Evaluate("pts+reb", 20, games, 2)
	assert.True(t, errors.Is(err, analysis.ErrMissingFieldData))

	trimmed, err := c.RecentGames(context.Background(), 115, 1)
	require.NoError(t, err)
	assert.Len(t, trimmed, 1)
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected int
	}{
		{time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.October, 22, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), 2024},
	}

	for _, tt := range tests {
		if got := SeasonFor(tt.date); got != tt.expected {
			t.Errorf("SeasonFor(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.expected)
		}
	}
}

func TestStatLinePlayed(t *testing.T) {
	for _, min := range []string{"", "0", "00", "0:00", " 00:00 "} {
		if (StatLine{Min: min}).Played() {
			t.Errorf("Played() with min=%q should be false", min)
		}
	}
	for _, min := range []string{"1", "34", "12:30"} {
		if !(StatLine{Min: min}).Played() {
			t.Errorf("Played() with min=%q should be true", min)
		}
	}
}
