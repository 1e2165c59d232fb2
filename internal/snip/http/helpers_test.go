package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	sniphttp "github.com/aussiebroadwan/snip/internal/snip/http"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite"
	"github.com/aussiebroadwan/snip/pkg/cryptox"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
	"github.com/stretchr/testify/require"
)

const goodCode = "good-code"

// clock is a settable time source shared by the services under test.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

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

// fakeProvider accepts goodCode and reports a fixed profile.
type fakeProvider struct {
	profile domain.OAuthProfile
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (domain.OAuthProfile, error) {
	if code != goodCode {
		return domain.OAuthProfile{}, errx.Unauthorized("authorization code rejected")
	}
	return p.profile, nil
}

type fixture struct {
	srv    *httptest.Server
	client *snipsdk.Client
	store  store.Store
	clock  *clock
	tokens *service.TokenService
	users  *service.UserService
	visits *service.VisitService
}

func newFixture(t *testing.T, opts ...func(*sniphttp.Router)) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clk := &clock{now: time.Now().UTC().Truncate(time.Second)}

	tokens := service.NewTokenService("snip-test", "access-master", "refresh-master")
	tokens.Now = clk.Now

	hasher, err := cryptox.NewVisitorHasher([]byte("visitor-key"))
	require.NoError(t, err)

	users := &service.UserService{Store: st, Now: clk.Now}
	visits := &service.VisitService{Store: st, Hasher: hasher, Now: clk.Now}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := sniphttp.NewRouter("test", st, nil, logger)
	router.TokenService = tokens
	router.SessionService = &service.SessionCoordinator{Tokens: tokens, Users: users}
	router.UserService = users
	router.URLService = &service.URLService{
		Store: st,
		Slugs: &service.SlugGenerator{Sequence: st.Sequences()},
		Now:   clk.Now,
	}
	router.VisitService = visits
	router.OAuthProvider = &fakeProvider{profile: domain.OAuthProfile{
		ProviderID: "google-1234",
		Email:      "ada@example.com",
		Name:       "Ada Lovelace",
		AvatarURL:  "https://example.com/ada.png",
	}}
	for _, opt := range opts {
		opt(router)
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		visits.Wait()
	})

	return &fixture{
		srv:    srv,
		client: snipsdk.NewClient(srv.URL),
		store:  st,
		clock:  clk,
		tokens: tokens,
		users:  users,
		visits: visits,
	}
}

// signIn creates (or refreshes) a user the way the OAuth callback does and
// returns a client holding their tokens.
func (f *fixture) signIn(t *testing.T, providerID, email string) (*snipsdk.Client, domain.User) {
	t.Helper()

	u, err := f.users.SignInWithOAuth(t.Context(), domain.OAuthProfile{
		ProviderID: providerID,
		Email:      email,
		Name:       "Test User",
	})
	require.NoError(t, err)

	resp, err := f.tokens.IssueAuthResponse(u, true)
	require.NoError(t, err)

	return f.client.WithTokens(resp.AccessToken.Token, resp.RefreshToken.Token), u
}

// noRedirect is a plain client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *snipsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	if code != "" {
		require.Equal(t, code, apiErr.Code)
	}
}
