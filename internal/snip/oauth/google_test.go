package oauth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/snip/internal/snip/oauth"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/stretchr/testify/require"
)

// fakeGoogle serves the token and userinfo endpoints.
func fakeGoogle(t *testing.T, verified bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":            "1098765",
			"email":          "ada@example.com",
			"email_verified": verified,
			"name":           "Ada Lovelace",
			"picture":        "https://example.com/ada.png",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(srv *httptest.Server) *oauth.Google {
	return oauth.NewGoogle(oauth.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/v1/auth/oauth/google/callback",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func TestAuthCodeURL(t *testing.T) {
	g := oauth.NewGoogle(oauth.GoogleConfig{ClientID: "client-id", RedirectURL: "http://localhost/cb"})

	raw := g.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "accounts.google.com", u.Host)

	q := u.Query()
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "client-id", q.Get("client_id"))
	require.Equal(t, "http://localhost/cb", q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Contains(t, q.Get("scope"), "email")
}

func TestExchange(t *testing.T) {
	srv := fakeGoogle(t, true)
	g := newProvider(srv)

	profile, err := g.Exchange(t.Context(), "good-code")
	require.NoError(t, err)
	require.Equal(t, "1098765", profile.ProviderID)
	require.Equal(t, "ada@example.com", profile.Email)
	require.Equal(t, "Ada Lovelace", profile.Name)
	require.Equal(t, "https://example.com/ada.png", profile.AvatarURL)
}

func TestExchangeRejectedCode(t *testing.T) {
	g := newProvider(fakeGoogle(t, true))

	_, err := g.Exchange(t.Context(), "bad-code")
	require.ErrorIs(t, err, errx.ErrUnauthorized)

	_, err = g.Exchange(t.Context(), " ")
	require.ErrorIs(t, err, errx.ErrValidation)
}

func TestExchangeUnverifiedEmail(t *testing.T) {
	g := newProvider(fakeGoogle(t, false))

	_, err := g.Exchange(t.Context(), "good-code")
	require.ErrorIs(t, err, errx.ErrUnauthorized)
}

func TestExchangeProviderDown(t *testing.T) {
	srv := fakeGoogle(t, true)
	g := newProvider(srv)
	srv.Close()

	_, err := g.Exchange(t.Context(), "good-code")
	require.ErrorIs(t, err, errx.ErrUpstream)
}
