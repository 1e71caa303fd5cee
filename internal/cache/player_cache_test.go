package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nba-prop-checker/internal/api"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"LeBron James", "player:search:lebron james"},
		{"  lebron   JAMES ", "player:search:lebron james"},
		{"curry", "player:search:curry"},
	}

	for _, tt := range tests {
		if got := Key(tt.name); got != tt.expected {
			t.Errorf("Key(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

type stubFinder struct {
	player api.Player
	err    error
	calls  int
}

func (s *stubFinder) FindPlayer(ctx context.Context, name string) (api.Player, error) {
	s.calls++
	return s.player, s.err
}

func (s *stubFinder) GetPlayer(ctx context.Context, id int) (api.Player, error) {
	s.calls++
	return s.player, s.err
}

// unreachableClient points at a port nothing listens on so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
		MaxRetries:   -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCachedFinderBypassesBrokenCache(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	upstream := &stubFinder{player: api.Player{ID: 237, FirstName: "LeBron", LastName: "James"}}
	finder := NewCachedFinder(NewPlayerCache(unreachableClient(t), time.Hour), upstream, zap.New(core).Sugar())

	p, err := finder.FindPlayer(context.Background(), "lebron james")
	require.NoError(t, err)
	assert.Equal(t, 237, p.ID)
	assert.Equal(t, 1, upstream.calls)

	messages := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "player cache read failed")
	assert.Contains(t, messages, "player cache write failed")
}

func TestCachedFinderPropagatesUpstreamErrors(t *testing.T) {
	upstream := &stubFinder{err: api.ErrPlayerNotFound}
	finder := NewCachedFinder(NewPlayerCache(unreachableClient(t), time.Hour), upstream, zap.NewNop().Sugar())

	_, err := finder.FindPlayer(context.Background(), "nobody")
	assert.ErrorIs(t, err, api.ErrPlayerNotFound)
}

func TestCachedFinderGetPlayerPassesThrough(t *testing.T) {
	upstream := &stubFinder{player: api.Player{ID: 115}}
	finder := NewCachedFinder(NewPlayerCache(unreachableClient(t), time.Hour), upstream, zap.NewNop().Sugar())

	p, err := finder.GetPlayer(context.Background(), 115)
	require.NoError(t, err)
	assert.Equal(t, 115, p.ID)
}

func TestNewPlayerCacheDefaultsTTL(t *testing.T) {
	c := NewPlayerCache(unreachableClient(t), 0)
	assert.Equal(t, DefaultPlayerTTL, c.ttl)
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestPlayerCacheRoundTrip(t *testing.T) {
	mr, client := newMiniredisClient(t)
	c := NewPlayerCache(client, 2*time.Hour)
	ctx := context.Background()
	want := api.Player{
		ID:        237,
		FirstName: "LeBron",
		LastName:  "James",
		Position:  "F",
		Team:      api.Team{ID: 14, Abbreviation: "LAL", FullName: "Los Angeles Lakers"},
	}

	_, ok, err := c.Get(ctx, "LeBron James")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Set(ctx, "LeBron James", want))

	raw, err := mr.Get("player:search:lebron james")
	require.NoError(t, err)
	var stored api.Player
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, want, stored)
	assert.Equal(t, 2*time.Hour, mr.TTL("player:search:lebron james"))

	got, ok, err := c.Get(ctx, "  lebron   JAMES")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(3 * time.Hour)
	_, ok, err = c.Get(ctx, "lebron james")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with its TTL")
}

func TestPlayerCacheCorruptEntry(t *testing.T) {
	mr, client := newMiniredisClient(t)
	require.NoError(t, mr.Set(Key("curry"), "not json"))

	_, ok, err := NewPlayerCache(client, time.Hour).Get(context.Background(), "curry")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCachedFinderHitSkipsUpstream(t *testing.T) {
	_, client := newMiniredisClient(t)
	upstream := &stubFinder{player: api.Player{ID: 115, FirstName: "Stephen", LastName: "Curry"}}
	finder := NewCachedFinder(NewPlayerCache(client, time.Hour), upstream, zap.NewNop().Sugar())
	ctx := context.Background()

	first, err := finder.FindPlayer(ctx, "Stephen Curry")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls)

	upstream.player = api.Player{ID: 999}
	second, err := finder.FindPlayer(ctx, "stephen curry")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.calls, "second lookup should come from the cache")
	assert.Equal(t, first, second)
}

func TestCachedFinderDoesNotCacheNotFound(t *testing.T) {
	mr, client := newMiniredisClient(t)
	upstream := &stubFinder{err: api.ErrPlayerNotFound}
	finder := NewCachedFinder(NewPlayerCache(client, time.Hour), upstream, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := finder.FindPlayer(ctx, "nobody")
	assert.ErrorIs(t, err, api.ErrPlayerNotFound)
	assert.False(t, mr.Exists(Key("nobody")))

	_, err = finder.FindPlayer(ctx, "nobody")
	assert.ErrorIs(t, err, api.ErrPlayerNotFound)
	assert.Equal(t, 2, upstream.calls, "misses are retried upstream")
}
