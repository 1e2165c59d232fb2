package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceFunc func(ctx context.Context) (int64, error)

func (f sequenceFunc) NextValue(ctx context.Context) (int64, error) { return f(ctx) }

func TestGenerateFollowsSequence(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	g := &SlugGenerator{Sequence: st.Sequences()}

	first, err := g.Generate(t.Context())
	require.NoError(t, err)
	require.Equal(t, "1bF", first)

	second, err := g.Generate(t.Context())
	require.NoError(t, err)
	require.Equal(t, "1bG", second)
}

func TestGenerateConcurrentSlugsAreDistinct(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	g := &SlugGenerator{Sequence: st.Sequences()}

	const n = 100
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		slugs = make(map[string]struct{}, n)
	)

	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slug, err := g.Generate(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			slugs[slug] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, slugs, n)
}

func TestGenerateSequenceFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	g := &SlugGenerator{Sequence: sequenceFunc(func(context.Context) (int64, error) {
		return 0, cause
	})}

	_, err := g.Generate(t.Context())
	require.ErrorIs(t, err, errx.ErrUpstream)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to generate slug", errx.MessageOf(err))
}

func TestValidateCustomSlug(t *testing.T) {
	t.Parallel()

	g := &SlugGenerator{}
	deletedAt := testEpoch

	lookup := func(u domain.URL, err error) SlugLookup {
		return func(context.Context, string) (domain.URL, error) { return u, err }
	}

	tests := []struct {
		name    string
		slug    string
		lookup  SlugLookup
		wantErr error
	}{
		{"free slug", "my-link", lookup(domain.URL{}, store.ErrNotFound), nil},
		{"taken slug", "taken", lookup(domain.URL{ID: "u1", Slug: "taken"}, nil), errx.ErrConflict},
		{"soft deleted holder", "old", lookup(domain.URL{ID: "u1", Slug: "old", DeletedAt: &deletedAt}, nil), nil},
		{"lookup failure", "my-link", lookup(domain.URL{}, errors.New("boom")), errx.ErrUpstream},
		{"empty", "", lookup(domain.URL{}, store.ErrNotFound), errx.ErrValidation},
		{"bad charset", "a/b", lookup(domain.URL{}, store.ErrNotFound), errx.ErrValidation},
		{"whitespace", "a b", lookup(domain.URL{}, store.ErrNotFound), errx.ErrValidation},
		{"reserved", "Health", lookup(domain.URL{}, store.ErrNotFound), errx.ErrValidation},
		{"too long", string(make([]byte, MaxSlugLength+1)), lookup(domain.URL{}, store.ErrNotFound), errx.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidateCustomSlug(t.Context(), tt.slug, tt.lookup)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCustomSlugSkipsLookupOnBadFormat(t *testing.T) {
	t.Parallel()

	called := false
	err := (&SlugGenerator{}).ValidateCustomSlug(t.Context(), "no spaces", func(context.Context, string) (domain.URL, error) {
		called = true
		return domain.URL{}, store.ErrNotFound
	})
	require.ErrorIs(t, err, errx.ErrValidation)
	require.False(t, called)
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"example.com", "https://example.com", true},
		{"  example.com/path  ", "https://example.com/path", true},
		{"http://example.com/a?b=c#d", "http://example.com/a?b=c#d", true},
		{"HTTPS://Sub.Example.co.uk:8443/x", "HTTPS://Sub.Example.co.uk:8443/x", true},
		{"192.168.1.10:8080/admin", "https://192.168.1.10:8080/admin", true},
		{"", "", false},
		{"   ", "", false},
		{"localhost", "", false},
		{"not a url", "", false},
		{"ftp://example.com", "", false},
		{"256.1.1.1", "", false},
		{"example.com/has space", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ValidateURL(tt.raw)
			if !tt.ok {
				require.ErrorIs(t, err, errx.ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
