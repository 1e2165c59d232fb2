package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer        = "snip-test"
	testAccessMaster  = "access-master"
	testRefreshMaster = "refresh-master"
)

var testEpoch = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st store.Store, providerID, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:         idx.New().String(),
		Email:      email,
		Name:       "Grace Hopper",
		ProviderID: providerID,
		AvatarURL:  "https://example.com/avatar.png",
		CreatedAt:  testEpoch,
		UpdatedAt:  testEpoch,
	}
	require.NoError(t, st.Users().CreateUser(t.Context(), u))
	return u
}

// clock is a settable time source shared by services under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock { return &clock{now: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTokenService(c *clock) *TokenService {
	s := NewTokenService(testIssuer, testAccessMaster, testRefreshMaster)
	s.Now = c.Now
	return s
}

// lookupFunc adapts a function to UserLookup.
type lookupFunc func(ctx context.Context, id string) (domain.User, error)

func (f lookupFunc) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return f(ctx, id)
}

// memCache is an in-process URLCache recording evictions.
type memCache struct {
	mu      sync.Mutex
	entries map[string]domain.URL
	evicted []string
}

func newMemCache() *memCache { return &memCache{entries: map[string]domain.URL{}} }

func (c *memCache) GetURL(_ context.Context, slug string) (domain.URL, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.entries[slug]
	if !ok {
		return domain.URL{}, store.ErrNotFound
	}
	return u, nil
}

func (c *memCache) SetURL(_ context.Context, u domain.URL) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[u.Slug] = u
	return nil
}

func (c *memCache) DeleteSlugs(_ context.Context, slugs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range slugs {
		delete(c.entries, s)
		c.evicted = append(c.evicted, s)
	}
	return nil
}
