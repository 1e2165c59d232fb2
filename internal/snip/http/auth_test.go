package http_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/aussiebroadwan/snip/pkg/idx"
	"github.com/aussiebroadwan/snip/pkg/snipsdk"
	"github.com/stretchr/testify/require"
)

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestGoogleSignIn(t *testing.T) {
	f := newFixture(t)
	hc := noRedirect()

	start, err := hc.Get(f.srv.URL + "/v1/auth/oauth/google")
	require.NoError(t, err)
	start.Body.Close()
	require.Equal(t, http.StatusFound, start.StatusCode)

	stateCookie := findCookie(start, "oauth_state")
	require.NotNil(t, stateCookie)
	require.True(t, stateCookie.HttpOnly)

	location, err := url.Parse(start.Header.Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.Equal(t, stateCookie.Value, state)

	callback := func(t *testing.T, code, state string, withCookie bool) *http.Response {
		t.Helper()
		q := url.Values{"code": {code}, "state": {state}}
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet,
			f.srv.URL+"/v1/auth/oauth/google/callback?"+q.Encode(), nil)
		require.NoError(t, err)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: "oauth_state", Value: stateCookie.Value})
		}
		resp, err := hc.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	t.Run("state must match the cookie", func(t *testing.T) {
		resp := callback(t, goodCode, "forged-state", true)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = callback(t, goodCode, state, false)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejected code", func(t *testing.T) {
		resp := callback(t, "bad-code", state, true)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("success sets both cookies", func(t *testing.T) {
		resp := callback(t, goodCode, state, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var auth snipsdk.AuthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
		require.Equal(t, "google-1234", auth.User.ProviderID)
		require.Equal(t, "ada@example.com", auth.User.Email)
		require.Equal(t, int64(900), auth.AccessToken.ExpiresInSeconds)
		require.NotNil(t, auth.RefreshToken)
		require.Equal(t, int64(30*24*3600), auth.RefreshToken.ExpiresInSeconds)

		access := findCookie(resp, "access_token")
		require.NotNil(t, access)
		require.Equal(t, "Bearer "+auth.AccessToken.Token, access.Value)
		require.True(t, access.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, access.SameSite)
		require.Equal(t, "/", access.Path)

		refresh := findCookie(resp, "refresh_token")
		require.NotNil(t, refresh)
		require.Equal(t, "Bearer "+auth.RefreshToken.Token, refresh.Value)

		cleared := findCookie(resp, "oauth_state")
		require.NotNil(t, cleared)
		require.Negative(t, cleared.MaxAge)

		profile, err := f.client.WithTokens(auth.AccessToken.Token, "").GetProfile(t.Context())
		require.NoError(t, err)
		require.Equal(t, auth.User.ID, profile.ID)
	})
}

func TestSilentRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	client, user := f.signIn(t, "google-refresh", "refresh@example.com")
	originalAccess, originalRefresh := client.AccessToken(), client.RefreshToken()

	_, err := client.Shorten(ctx, snipsdk.ShortenRequest{URL: "example.com"})
	require.NoError(t, err)

	// Past the access token lifetime, well within the refresh token's.
	f.clock.Advance(16 * time.Minute)

	links, err := client.ListURLs(ctx)
	require.NoError(t, err, "expired access token is replaced on the same request")
	require.Len(t, links, 1)
	require.Equal(t, user.ID, *links[0].UserID)

	require.NotEqual(t, originalAccess, client.AccessToken())
	require.Equal(t, originalRefresh, client.RefreshToken(), "refresh token is not rotated")

	// The refreshed access token works on its own.
	alone := f.client.WithTokens(client.AccessToken(), "")
	profile, err := alone.GetProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.ID)

	t.Run("expired refresh token leaves the caller anonymous", func(t *testing.T) {
		f.clock.Advance(31 * 24 * time.Hour)

		_, err := client.ListURLs(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)

		link, err := client.Shorten(ctx, snipsdk.ShortenRequest{URL: "example.com"})
		require.NoError(t, err, "public routes still work")
		require.Nil(t, link.UserID)
	})
}

func TestRejectedSessionOnPublicRoute(t *testing.T) {
	f := newFixture(t)

	// Tokens for a subject the store has never seen.
	ghost := domain.User{ID: idx.New().String(), ProviderID: "google-ghost", Email: "ghost@example.com"}
	resp, err := f.tokens.IssueAuthResponse(ghost, true)
	require.NoError(t, err)
	client := f.client.WithTokens(resp.AccessToken.Token, resp.RefreshToken.Token)

	// Only the refresh token is left to go on.
	f.clock.Advance(16 * time.Minute)

	_, err = client.Shorten(t.Context(), snipsdk.ShortenRequest{URL: "example.com"})
	requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)
}

func TestRefreshEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	client, user := f.signIn(t, "google-explicit", "explicit@example.com")
	before := client.AccessToken()
	f.clock.Advance(time.Minute)

	auth, err := client.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, auth.User.ID)
	require.Nil(t, auth.RefreshToken, "only the access token is re-issued")
	require.Equal(t, auth.AccessToken.Token, client.AccessToken())
	require.NotEqual(t, before, client.AccessToken())

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := f.client.WithTokens("", client.AccessToken()).Refresh(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		_, err := f.client.Refresh(ctx)
		requireAPIError(t, err, http.StatusUnauthorized, snipsdk.ErrorCodeUnauthorized)
	})
}

func TestRefreshAcceptsAuthorizationHeader(t *testing.T) {
	f := newFixture(t)
	client, _ := f.signIn(t, "google-header", "header@example.com")

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, f.srv.URL+"/v1/auth/refresh", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+client.RefreshToken())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthorizedCarriesChallenge(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/v1/users/profile")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")

	var body snipsdk.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, snipsdk.ErrorCodeUnauthorized, body.Error)
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)
	client, _ := f.signIn(t, "google-bye", "bye@example.com")

	require.NoError(t, client.SignOut(t.Context()))
	require.Empty(t, client.AccessToken())
	require.Empty(t, client.RefreshToken())

	_, err := client.GetProfile(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, "")
}
