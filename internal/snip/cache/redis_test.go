package cache_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/snip/internal/snip/cache"
	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCache(t *testing.T) (*cache.Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := cache.DefaultConfig()
	cfg.TTL = time.Minute
	return cache.NewWithClient(rdb, cfg, quietLogger()), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, mr := newCache(t)
	ctx := t.Context()

	owner := "user-1"
	link := domain.URL{
		ID:        "url-1",
		URL:       "https://example.com",
		Slug:      "1bF",
		UserID:    &owner,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	_, err := c.GetURL(ctx, "1bF")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, c.SetURL(ctx, link))
	require.True(t, mr.Exists("snip:slug:1bF"))
	require.Equal(t, time.Minute, mr.TTL("snip:slug:1bF"))

	got, err := c.GetURL(ctx, "1bF")
	require.NoError(t, err)
	require.Equal(t, link.ID, got.ID)
	require.Equal(t, owner, *got.UserID)
	require.True(t, link.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, c.DeleteSlugs(ctx, "1bF", "other"))
	_, err = c.GetURL(ctx, "1bF")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newCache(t)
	ctx := t.Context()

	require.NoError(t, c.SetURL(ctx, domain.URL{ID: "u", Slug: "abc"}))
	mr.FastForward(2 * time.Minute)

	_, err := c.GetURL(ctx, "abc")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheCorruptEntry(t *testing.T) {
	c, mr := newCache(t)

	require.NoError(t, mr.Set("snip:slug:bad", "{not json"))

	_, err := c.GetURL(t.Context(), "bad")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
	require.False(t, mr.Exists("snip:slug:bad"))
}

func TestCacheDisabled(t *testing.T) {
	c, err := cache.NewService(t.Context(), cache.DefaultConfig(), quietLogger())
	require.NoError(t, err)

	require.NoError(t, c.SetURL(t.Context(), domain.URL{Slug: "abc"}))
	_, err = c.GetURL(t.Context(), "abc")
	require.ErrorIs(t, err, cache.ErrCacheMiss)
	require.NoError(t, c.Ping(t.Context()))
}

func TestCacheUnreachable(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.Addr = "127.0.0.1:1"

	_, err := cache.NewService(t.Context(), cfg, quietLogger())
	require.Error(t, err)
}
