package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/oauth"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/slogx"

	_ "github.com/aussiebroadwan/snip/api/snip" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	cache Pinger // nil when caching is disabled

	TokenService   *service.TokenService
	SessionService *service.SessionCoordinator
	UserService    *service.UserService
	URLService     *service.URLService
	VisitService   *service.VisitService
	OAuthProvider  oauth.ProfileProvider

	// AppURL is where the browser is sent after signing in.
	AppURL string

	// Limits and Proxies are read when routes are applied.
	Limits  httpx.RateLimits
	Proxies httpx.TrustedProxies
}

func NewRouter(buildVersion string, st store.Store, cache Pinger, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        cache,
		logger:       logger,
		Limits:       httpx.DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerURLs()
	r.registerTracking()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Last: every other single segment path is a slug.
	r.registerRedirect()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						snip URL Shortener API
//	@version					0.1.0
//	@description				Short links with optional custom slugs, per-link visit analytics and Google sign-in.
//	@description
//	@description				Sessions travel in httpOnly cookies holding "Bearer {jwt}". An expired access token is
//	@description				silently replaced while the refresh token is valid.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/snip
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						access_token
//	@description				Access token cookie. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) optionalSession() httpx.Middleware {
	return SessionMiddleware(r.SessionService, false)
}

func (r *Router) requiredSession() httpx.Middleware {
	return SessionMiddleware(r.SessionService, true)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Provider: r.OAuthProvider,
		Users:    r.UserService,
		Tokens:   r.TokenService,
		Sessions: r.SessionService,
		AppURL:   r.AppURL,
	}

	// Sign-in is only offered when a provider is configured
	if r.OAuthProvider != nil {
		r.Mux.Handle("GET /v1/auth/oauth/google",
			httpx.Chain(http.HandlerFunc(h.HandleGoogleStart),
				httpx.RateLimitByIP(r.Limits.Strict, r.Proxies),
			),
		)
		r.Mux.Handle("GET /v1/auth/oauth/google/callback",
			httpx.Chain(http.HandlerFunc(h.HandleGoogleCallback),
				httpx.RateLimitByIP(r.Limits.Strict, r.Proxies),
			),
		)
	}

	// Refresh verifies the refresh token itself, no session middleware
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.Limits.Strict, r.Proxies),
		),
	)
	r.Mux.Handle("POST /v1/auth/signout",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			httpx.RateLimitByIP(r.Limits.Moderate, r.Proxies),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Users: r.UserService}

	r.Mux.Handle("GET /v1/users/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			r.requiredSession(),
			httpx.RateLimitByUser(r.Limits.Lenient, r.Proxies),
		),
	)
}

func (r *Router) registerURLs() {
	h := &URLsHandler{URLs: r.URLService, Visits: r.VisitService, Proxies: r.Proxies}

	// POST /v1/urls - anonymous or signed in, limited per IP either way
	r.Mux.Handle("POST /v1/urls",
		httpx.Chain(http.HandlerFunc(h.HandleShorten),
			httpx.RateLimitByIP(r.Limits.Moderate, r.Proxies),
			r.optionalSession(),
		),
	)

	r.Mux.Handle("GET /v1/urls/{slug}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(r.Limits.Lenient, r.Proxies),
		),
	)

	r.Mux.Handle("GET /v1/urls",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.requiredSession(),
			httpx.RateLimitByUser(r.Limits.Lenient, r.Proxies),
		),
	)
	r.Mux.Handle("PATCH /v1/urls/{id}/slug",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateSlug),
			r.requiredSession(),
			httpx.RateLimitByUser(r.Limits.Moderate, r.Proxies),
		),
	)
	r.Mux.Handle("DELETE /v1/urls/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.requiredSession(),
			httpx.RateLimitByUser(r.Limits.Moderate, r.Proxies),
		),
	)
}

func (r *Router) registerTracking() {
	h := &TrackingHandler{Visits: r.VisitService, Proxies: r.Proxies}

	r.Mux.Handle("POST /v1/urls/trackings/{urlId}",
		httpx.Chain(http.HandlerFunc(h.HandleTrack),
			httpx.RateLimitByIP(r.Limits.Lenient, r.Proxies),
		),
	)
	r.Mux.Handle("GET /v1/urls/trackings/{urlId}",
		httpx.Chain(http.HandlerFunc(h.HandleAnalytics),
			r.requiredSession(),
			httpx.RateLimitByUser(r.Limits.Moderate, r.Proxies),
		),
	)
}

func (r *Router) registerRedirect() {
	h := &URLsHandler{URLs: r.URLService, Visits: r.VisitService, Proxies: r.Proxies}

	r.Mux.Handle("GET /{slug}",
		httpx.Chain(http.HandlerFunc(h.HandleRedirect),
			httpx.RateLimitByIP(r.Limits.Public, r.Proxies),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient, r.Proxies),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache),
			httpx.RateLimitByIP(r.Limits.Lenient, r.Proxies),
		),
	)
	r.Mux.Handle("GET /health",
		httpx.Chain(http.HandlerFunc(HealthHandler),
			httpx.RateLimitByIP(r.Limits.Lenient, r.Proxies),
		),
	)
}
