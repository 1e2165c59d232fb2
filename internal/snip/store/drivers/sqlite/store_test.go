package sqlite_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st store.Store, providerID, email string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := domain.User{
		ID:         idx.New().String(),
		Email:      email,
		Name:       "Ada",
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, st.Users().CreateUser(t.Context(), u))
	return u
}

func TestSequenceStartsAtFloor(t *testing.T) {
	t.Parallel()
	st := newStore(t)

	first, err := st.Sequences().NextValue(t.Context())
	require.NoError(t, err)
	require.EqualValues(t, store.SlugSequenceStart, first)

	second, err := st.Sequences().NextValue(t.Context())
	require.NoError(t, err)
	require.Equal(t, first+1, second)
}

func TestSequenceConcurrent(t *testing.T) {
	t.Parallel()
	st := newStore(t)

	const n = 64
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{}, n)
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := st.Sequences().NextValue(t.Context())
			assert.NoError(t, err)
			mu.Lock()
			seen[v] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, n)
}

func TestUsers(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	ctx := t.Context()

	u := seedUser(t, st, "google-1", "ada@example.com")

	got, err := st.Users().GetUserByProviderID(ctx, "google-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Millisecond)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("duplicate provider id", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		dup.Email = "other@example.com"
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		dup.ProviderID = "google-2"
		require.ErrorIs(t, st.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update profile", func(t *testing.T) {
		upd := u
		upd.Name = "Ada Lovelace"
		upd.AvatarURL = "https://example.com/a.png"
		upd.UpdatedAt = time.Now().UTC()
		require.NoError(t, st.Users().UpdateUserProfile(ctx, upd))

		got, err := st.Users().GetUserByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "Ada Lovelace", got.Name)
		require.Equal(t, "https://example.com/a.png", got.AvatarURL)
		require.Equal(t, "google-1", got.ProviderID)
	})
}

func TestURLs(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	ctx := t.Context()

	owner := seedUser(t, st, "google-1", "ada@example.com")
	base := time.Now().UTC().Add(-time.Hour)

	mk := func(slug string, userID *string, at time.Time) domain.URL {
		u := domain.URL{
			ID:        idx.New().String(),
			URL:       "https://example.com/" + slug,
			Slug:      slug,
			UserID:    userID,
			CreatedAt: at,
			UpdatedAt: at,
		}
		require.NoError(t, st.URLs().CreateURL(ctx, u))
		return u
	}

	older := mk("aaa", &owner.ID, base)
	newer := mk("bbb", &owner.ID, base.Add(time.Minute))
	anon := mk("ccc", nil, base)

	t.Run("slug is unique among live links", func(t *testing.T) {
		dup := domain.URL{ID: idx.New().String(), URL: "https://x.io", Slug: "aaa", CreatedAt: base, UpdatedAt: base}
		require.ErrorIs(t, st.URLs().CreateURL(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("anonymous link", func(t *testing.T) {
		got, err := st.URLs().GetURLBySlug(ctx, "ccc")
		require.NoError(t, err)
		require.Equal(t, anon.ID, got.ID)
		require.Nil(t, got.UserID)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, err := st.URLs().ListURLsByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, newer.ID, list[0].ID)
		require.Equal(t, older.ID, list[1].ID)
	})

	t.Run("update slug", func(t *testing.T) {
		require.NoError(t, st.URLs().UpdateURLSlug(ctx, newer.ID, "bbb2", time.Now()))
		_, err := st.URLs().GetURLBySlug(ctx, "bbb")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, st.URLs().UpdateURLSlug(ctx, newer.ID, "aaa", time.Now()), store.ErrAlreadyExists)
	})

	t.Run("soft delete needs the owner", func(t *testing.T) {
		require.ErrorIs(t, st.URLs().SoftDeleteURL(ctx, older.ID, "someone-else", time.Now()), store.ErrNotFound)
		require.ErrorIs(t, st.URLs().SoftDeleteURL(ctx, anon.ID, owner.ID, time.Now()), store.ErrNotFound)

		require.NoError(t, st.URLs().SoftDeleteURL(ctx, older.ID, owner.ID, time.Now()))
		require.ErrorIs(t, st.URLs().SoftDeleteURL(ctx, older.ID, owner.ID, time.Now()), store.ErrNotFound)

		_, err := st.URLs().GetURLByID(ctx, older.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		list, err := st.URLs().ListURLsByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("deleted slug can be reused", func(t *testing.T) {
		mk("aaa", nil, time.Now().UTC())
	})

	t.Run("purge", func(t *testing.T) {
		n, err := st.URLs().PurgeDeletedURLs(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Zero(t, n)

		n, err = st.URLs().PurgeDeletedURLs(ctx, time.Now().Add(time.Minute))
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}

func TestVisits(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	ctx := t.Context()

	now := time.Now().UTC()
	link := domain.URL{ID: idx.New().String(), URL: "https://example.com", Slug: "v1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.URLs().CreateURL(ctx, link))

	for i, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-2 * time.Hour), now.Add(-time.Minute)} {
		require.NoError(t, st.Visits().CreateVisit(ctx, domain.Visit{
			ID:          idx.NewAt(at).String(),
			URLID:       link.ID,
			Browser:     "Firefox",
			DeviceType:  domain.DeviceDesktop,
			VisitorHash: string(rune('a' + i)),
			CreatedAt:   at,
		}))
	}

	visits, err := st.Visits().ListVisitsByURL(ctx, link.ID, now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	require.True(t, visits[0].CreatedAt.Before(visits[1].CreatedAt))
	require.Equal(t, "Firefox", visits[0].Browser)
	require.Empty(t, visits[0].ReferrerDomain)

	n, err := st.Visits().DeleteVisitsBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestWithTxRollback(t *testing.T) {
	t.Parallel()
	st := newStore(t)
	ctx := t.Context()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Sequences().NextValue(ctx); err != nil {
			return err
		}
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	v, err := st.Sequences().NextValue(ctx)
	require.NoError(t, err)
	require.EqualValues(t, store.SlugSequenceStart, v, "rolled back increment must not be visible")
}
