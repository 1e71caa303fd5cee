package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nba-prop-checker/internal/analysis"
)

const (
	defaultBaseURL = "https://api.balldontlie.io/v1"
	requestTimeout = 10 * time.Second
	maxRetries     = 3
	searchPageSize = 25
	statsPageSize  = 100
)

// ErrPlayerNotFound is returned when a lookup matches no player.
var ErrPlayerNotFound = errors.New("player not found")

// BallDontLieClient handles API communication with balldontlie.io
type BallDontLieClient struct {
	apiKey  string
	baseURL string
	client  *RateLimitedClient
	now     func() time.Time
}

// Option configures a BallDontLieClient.
type Option func(*BallDontLieClient)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *BallDontLieClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithClock overrides the clock used to pick the current season.
func WithClock(now func() time.Time) Option {
	return func(c *BallDontLieClient) {
		c.now = now
	}
}

// NewBallDontLieClient creates a new API client
func NewBallDontLieClient(apiKey string, requestsPerMinute int, opts ...Option) *BallDontLieClient {
	c := &BallDontLieClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  NewRateLimitedClient(requestsPerMinute, requestTimeout, maxRetries),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Meta contains pagination info
type Meta struct {
	NextCursor int `json:"next_cursor"`
	PerPage    int `json:"per_page"`
}

// Team represents an NBA team
type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
}

// Player represents a player in the API
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      Team   `json:"team"`
}

// FullName returns "First Last".
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Game contains basic game info
type Game struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	Season     int    `json:"season"`
	Status     string `json:"status"`
	Postseason bool   `json:"postseason"`
}

// ParseDate reads the game date. The API has returned both a bare date
// and a full timestamp over time.
func (g Game) ParseDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", g.Date); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, g.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing game date %q: %w", g.Date, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// StatLine is one player's box score for one game. Nil means the API
// reported null for that stat.
type StatLine struct {
	ID       int      `json:"id"`
	Min      string   `json:"min"`
	Pts      *float64 `json:"pts"`
	Reb      *float64 `json:"reb"`
	Dreb     *float64 `json:"dreb"`
	Oreb     *float64 `json:"oreb"`
	Ast      *float64 `json:"ast"`
	Blk      *float64 `json:"blk"`
	Stl      *float64 `json:"stl"`
	Turnover *float64 `json:"turnover"`
	Fg3m     *float64 `json:"fg3m"`
	Fg3a     *float64 `json:"fg3a"`
	Fga      *float64 `json:"fga"`
	Ftm      *float64 `json:"ftm"`
	Player   Player   `json:"player"`
	Game     Game     `json:"game"`
}

// Played reports whether the player logged minutes.
func (s StatLine) Played() bool {
	switch strings.TrimSpace(s.Min) {
	case "", "0", "00", "0:00", "00:00":
		return false
	}
	return true
}

// Record converts the stat line into an engine game record. Null stats
// are left out of Values so the engine reports them as missing.
func (s StatLine) Record() (analysis.GameRecord, error) {
	date, err := s.Game.ParseDate()
	if err != nil {
		return analysis.GameRecord{}, err
	}

	values := make(map[analysis.Field]float64, 12)
	for f, v := range map[analysis.Field]*float64{
		analysis.Points:              s.Pts,
		analysis.Rebounds:            s.Reb,
		analysis.DefensiveRebounds:   s.Dreb,
		analysis.OffensiveRebounds:   s.Oreb,
		analysis.Assists:             s.Ast,
		analysis.Blocks:              s.Blk,
		analysis.Steals:              s.Stl,
		analysis.Turnovers:           s.Turnover,
		analysis.ThreesMade:          s.Fg3m,
		analysis.ThreesAttempted:     s.Fg3a,
		analysis.FieldGoalsAttempted: s.Fga,
		analysis.FreeThrowsMade:      s.Ftm,
	} {
		if v != nil {
			values[f] = *v
		}
	}

	return analysis.GameRecord{GameID: s.Game.ID, Date: date, Values: values}, nil
}

type playersResponse struct {
	Data []Player `json:"data"`
	Meta Meta     `json:"meta"`
}

type playerResponse struct {
	Data Player `json:"data"`
}

type statsResponse struct {
	Data []StatLine `json:"data"`
	Meta Meta       `json:"meta"`
}

func (c *BallDontLieClient) headers() map[string]string {
	return map[string]string{
		"Authorization": c.apiKey,
	}
}

// SearchPlayers returns players whose name matches name.
func (c *BallDontLieClient) SearchPlayers(ctx context.Context, name string) ([]Player, error) {
	q := url.Values{}
	q.Set("search", strings.TrimSpace(name))
	q.Set("per_page", strconv.Itoa(searchPageSize))

	body, err := c.client.Get(ctx, c.baseURL+"/players?"+q.Encode(), c.headers())
	if err != nil {
		return nil, fmt.Errorf("searching players: %w", err)
	}

	var resp playersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing players response: %w", err)
	}

	return resp.Data, nil
}

// FindPlayer resolves a name to a single player: an exact full-name match
// if there is one, otherwise the first search result.
func (c *BallDontLieClient) FindPlayer(ctx context.Context, name string) (Player, error) {
	players, err := c.SearchPlayers(ctx, name)
	if err != nil {
		return Player{}, err
	}
	if len(players) == 0 {
		return Player{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}

	want := strings.ToLower(strings.Join(strings.Fields(name), " "))
	for _, p := range players {
		if strings.ToLower(p.FullName()) == want {
			return p, nil
		}
	}
	return players[0], nil
}

// GetPlayer fetches a player by ID.
func (c *BallDontLieClient) GetPlayer(ctx context.Context, id int) (Player, error) {
	body, err := c.client.Get(ctx, fmt.Sprintf("%s/players/%d", c.baseURL, id), c.headers())
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return Player{}, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
		}
		return Player{}, fmt.Errorf("fetching player: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Player{}, fmt.Errorf("parsing player response: %w", err)
	}
	return resp.Data, nil
}

// GetPlayerStats fetches every stat line for a player in the given seasons,
// following cursor pagination.
func (c *BallDontLieClient) GetPlayerStats(ctx context.Context, playerID int, seasons []int) ([]StatLine, error) {
	var all []StatLine
	cursor := 0

	for {
		q := url.Values{}
		q.Add("player_ids[]", strconv.Itoa(playerID))
		for _, s := range seasons {
			q.Add("seasons[]", strconv.Itoa(s))
		}
		q.Set("per_page", strconv.Itoa(statsPageSize))
		if cursor > 0 {
			q.Set("cursor", strconv.Itoa(cursor))
		}

		body, err := c.client.Get(ctx, c.baseURL+"/stats?"+q.Encode(), c.headers())
		if err != nil {
			return nil, fmt.Errorf("fetching stats: %w", err)
		}

		var resp statsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parsing stats response: %w", err)
		}

		all = append(all, resp.Data...)

		if resp.Meta.NextCursor == 0 {
			break
		}
		cursor = resp.Meta.NextCursor
	}

	return all, nil
}

// RecentGames returns the games a player appeared in over the current and
// previous season, newest first. n is a hint: callers still select their
// own window, and fewer than n games may come back.
func (c *BallDontLieClient) RecentGames(ctx context.Context, playerID, n int) ([]analysis.GameRecord, error) {
	season := SeasonFor(c.now())
	lines, err := c.GetPlayerStats(ctx, playerID, []int{season - 1, season})
	if err != nil {
		return nil, err
	}

	games := make([]analysis.GameRecord, 0, len(lines))
	for _, line := range lines {
		if !line.Played() {
			continue
		}
		rec, err := line.Record()
		if err != nil {
			return nil, fmt.Errorf("stat line %d: %w", line.ID, err)
		}
		games = append(games, rec)
	}

	analysis.SortNewestFirst(games)
	if n > 0 && len(games) > n {
		games = games[:n]
	}
	return games, nil
}

// SeasonFor returns the season year the API uses for t. Seasons start in
// October, so 2025-01-15 belongs to season 2024.
func SeasonFor(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year()
	}
	return t.Year() - 1
}
