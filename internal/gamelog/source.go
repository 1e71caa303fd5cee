package gamelog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nba-prop-checker/internal/analysis"
)

// Source supplies a player's recent games, newest first. n <= 0 means
// everything the source has.
type Source interface {
	RecentGames(ctx context.Context, playerID, n int) ([]analysis.GameRecord, error)
}

// CachedSource is a read-through Source backed by a Store.
type CachedSource struct {
	store    *Store
	upstream Source
	ttl      time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewCachedSource serves games from store while they are younger than ttl
// and refreshes them from upstream otherwise. A zero ttl refreshes on
// every call.
func NewCachedSource(store *Store, upstream Source, ttl time.Duration, log *zap.SugaredLogger) *CachedSource {
	return &CachedSource{
		store:    store,
		upstream: upstream,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// RecentGames returns up to n games for playerID.
func (c *CachedSource) RecentGames(ctx context.Context, playerID, n int) ([]analysis.GameRecord, error) {
	cached, fetchedAt, err := c.store.LoadGames(ctx, playerID)
	if err != nil {
		c.log.Warnw("loading cached games", "player_id", playerID, "error", err)
		cached, fetchedAt = nil, time.Time{}
	}

	if !fetchedAt.IsZero() && c.now().Sub(fetchedAt) < c.ttl {
		return trim(cached, n), nil
	}

	fresh, err := c.upstream.RecentGames(ctx, playerID, 0)
	if err != nil {
		if len(cached) > 0 {
			c.log.Warnw("upstream failed, serving stale games",
				"player_id", playerID,
				"fetched_at", fetchedAt,
				"error", err,
			)
			return trim(cached, n), nil
		}
		return nil, err
	}

	analysis.SortNewestFirst(fresh)
	if err := c.store.SaveGames(ctx, playerID, fresh, c.now()); err != nil {
		c.log.Warnw("saving games", "player_id", playerID, "error", err)
	}
	return trim(fresh, n), nil
}

func trim(games []analysis.GameRecord, n int) []analysis.GameRecord {
	if n > 0 && len(games) > n {
		return games[:n]
	}
	return games
}
