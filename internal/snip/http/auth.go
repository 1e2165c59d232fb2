package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/oauth"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/cryptox"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
	oauthCookiePath  = "/v1/auth/oauth"
)

// AuthHandler serves sign-in, refresh and sign-out.
type AuthHandler struct {
	Provider oauth.ProfileProvider
	Users    *service.UserService
	Tokens   *service.TokenService
	Sessions *service.SessionCoordinator

	// AppURL is where the browser lands after signing in. When empty the
	// callback answers with the auth response as JSON instead.
	AppURL string
}

// HandleGoogleStart godoc
//
//	@Summary		Start Google sign-in
//	@Description	Sets a short lived state cookie and redirects to the Google consent page
//	@Tags			Auth
//	@Success		302	"Redirect to the provider"
//	@Failure		500	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/oauth/google [get].
func (h *AuthHandler) HandleGoogleStart(w http.ResponseWriter, r *http.Request) {
	state, err := cryptox.GenerateState(cryptox.StateSize)
	if err != nil {
		writeError(w, r, errx.Upstream("failed to start sign-in", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     oauthCookiePath,
		MaxAge:   int(oauthStateTTL / time.Second),
		HttpOnly: true,
		Secure:   httpx.RequestHost(r) != "localhost",
		SameSite: http.SameSiteLaxMode,
	})

	httpx.NoCache(w)
	http.Redirect(w, r, h.Provider.AuthCodeURL(state), http.StatusFound)
}

// HandleGoogleCallback godoc
//
//	@Summary		Complete Google sign-in
//	@Description	Checks the state, exchanges the code, signs the user in (creating the account on first use)
//	@Description	and sets the access and refresh cookies.
//	@Tags			Auth
//	@Produce		json
//	@Param			code	query		string					true	"Authorization code"
//	@Param			state	query		string					true	"State echoed by the provider"
//	@Success		200		{object}	snipsdk.AuthResponse	"Returned when no app URL is configured"
//	@Success		302		"Redirect to the app"
//	@Failure		400		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/oauth/google/callback [get].
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	// The state is single use whatever happens next.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Path:     oauthCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   httpx.RequestHost(r) != "localhost",
		SameSite: http.SameSiteLaxMode,
	})

	if reason := q.Get("error"); reason != "" {
		log.Info("sign-in declined at provider", "reason", reason)
		writeError(w, r, errx.Unauthorized("sign-in was not completed"))
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || !cryptox.EqualState(stateCookie.Value, q.Get("state")) {
		log.Warn("oauth state mismatch")
		writeError(w, r, errx.Unauthorized("invalid sign-in state"))
		return
	}

	profile, err := h.Provider.Exchange(ctx, q.Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Users.SignInWithOAuth(ctx, profile)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.Tokens.IssueAuthResponse(user, true)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.SetTokenCookie(w, r, httpx.AccessTokenCookie, resp.AccessToken.Token,
		time.Duration(resp.AccessToken.ExpiresInSeconds)*time.Second)
	httpx.SetTokenCookie(w, r, httpx.RefreshTokenCookie, resp.RefreshToken.Token,
		time.Duration(resp.RefreshToken.ExpiresInSeconds)*time.Second)

	log.Info("user signed in", "user_id", user.ID)

	if h.AppURL == "" {
		httpx.WriteJSON(w, http.StatusOK, resp)
		return
	}
	httpx.NoCache(w)
	http.Redirect(w, r, h.AppURL, http.StatusFound)
}

// HandleRefresh godoc
//
//	@Summary		Refresh the access token
//	@Description	Verifies the refresh token (cookie, or Authorization header) and issues a new access token.
//	@Description	The refresh token itself is not rotated.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	snipsdk.AuthResponse	"user and access token"
//	@Failure		401	{object}	snipsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	raw := httpx.TokenFromRequest(r, httpx.RefreshTokenCookie)

	resp, err := h.Sessions.Refresh(r.Context(), raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.SetTokenCookie(w, r, httpx.AccessTokenCookie, resp.AccessToken.Token,
		time.Duration(resp.AccessToken.ExpiresInSeconds)*time.Second)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSignOut godoc
//
//	@Summary		Sign out
//	@Description	Clears both session cookies. Tokens already handed out stay valid until they expire.
//	@Tags			Auth
//	@Success		204	"Cookies cleared"
//	@Router			/v1/auth/signout [post].
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	httpx.ClearTokenCookies(w, r)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
