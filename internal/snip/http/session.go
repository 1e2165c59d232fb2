package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
)

// SessionMiddleware resolves the request's cookies into a principal. When
// the access token is gone but the refresh token is good, a new access
// cookie is set on the response and the principal is attached to this same
// request, so the handler sees the user without a second round trip.
//
// A refresh token whose subject can no longer be loaded is answered with
// 401 even when the route allows anonymous callers.
func SessionMiddleware(sessions *service.SessionCoordinator, required bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			access := httpx.TokenFromRequest(r, httpx.AccessTokenCookie)
			refresh := httpx.CookieToken(r, httpx.RefreshTokenCookie)

			sess, err := sessions.Resolve(ctx, access, refresh)
			switch sess.State {
			case service.SessionRejected:
				slogx.FromContext(ctx).Warn("session rejected", "error", err)
				writeError(w, r, err)
				return

			case service.SessionRefreshedJustNow:
				tok := sess.Refreshed.AccessToken
				httpx.SetTokenCookie(w, r, httpx.AccessTokenCookie, tok.Token,
					time.Duration(tok.ExpiresInSeconds)*time.Second)
			}

			slogx.Annotate(ctx, "session", sess.State.String())

			if !sess.Authenticated() {
				if required {
					writeError(w, r, errx.Unauthorized("authentication required"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx = httpx.WithUserID(ctx, sess.User.ID)
			ctx = slogx.With(ctx, "user_id", sess.User.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
