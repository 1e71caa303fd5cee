package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nba-prop-checker/internal/api"
)

// DefaultPlayerTTL is how long a name lookup stays cached.
const DefaultPlayerTTL = 24 * time.Hour

// PlayerCache stores player-name lookups in Redis.
type PlayerCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlayerCache creates a cache writing entries with the given TTL
func NewPlayerCache(client *redis.Client, ttl time.Duration) *PlayerCache {
	if ttl <= 0 {
		ttl = DefaultPlayerTTL
	}
	return &PlayerCache{
		client: client,
		ttl:    ttl,
	}
}

// Key returns the Redis key for a search name. Case and spacing do not
// matter: "  LeBron   james" and "lebron james" share a key.
func Key(name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), " "))
	return fmt.Sprintf("player:search:%s", normalized)
}

// Get returns the cached player for name. ok is false on a miss.
func (c *PlayerCache) Get(ctx context.Context, name string) (player api.Player, ok bool, err error) {
	data, err := c.client.Get(ctx, Key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return api.Player{}, false, nil
	}
	if err != nil {
		return api.Player{}, false, fmt.Errorf("reading player cache: %w", err)
	}

	if err := json.Unmarshal(data, &player); err != nil {
		return api.Player{}, false, fmt.Errorf("decoding cached player: %w", err)
	}
	return player, true, nil
}

// Set stores player under name
func (c *PlayerCache) Set(ctx context.Context, name string, player api.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("marshaling player: %w", err)
	}
	return c.client.Set(ctx, Key(name), data, c.ttl).Err()
}

// Finder resolves players by name or id.
type Finder interface {
	FindPlayer(ctx context.Context, name string) (api.Player, error)
	GetPlayer(ctx context.Context, id int) (api.Player, error)
}

// CachedFinder answers name lookups from a PlayerCache before asking
// upstream. Cache failures are logged and skipped.
type CachedFinder struct {
	cache    *PlayerCache
	upstream Finder
	log      *zap.SugaredLogger
}

// NewCachedFinder wraps upstream with cache
func NewCachedFinder(cache *PlayerCache, upstream Finder, log *zap.SugaredLogger) *CachedFinder {
	return &CachedFinder{
		cache:    cache,
		upstream: upstream,
		log:      log,
	}
}

// FindPlayer returns the cached match for name, or looks it up and caches it.
// Not-found results are not cached.
func (f *CachedFinder) FindPlayer(ctx context.Context, name string) (api.Player, error) {
	player, ok, err := f.cache.Get(ctx, name)
	if err != nil {
		f.log.Warnw("player cache read failed", "name", name, "error", err)
	}
	if ok {
		return player, nil
	}

	player, err = f.upstream.FindPlayer(ctx, name)
	if err != nil {
		return api.Player{}, err
	}

	if err := f.cache.Set(ctx, name, player); err != nil {
		f.log.Warnw("player cache write failed", "name", name, "error", err)
	}
	return player, nil
}

// GetPlayer is not cached.
func (f *CachedFinder) GetPlayer(ctx context.Context, id int) (api.Player, error) {
	return f.upstream.GetPlayer(ctx, id)
}
