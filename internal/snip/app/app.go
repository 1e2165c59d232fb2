package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/cache"
	httpapi "github.com/aussiebroadwan/snip/internal/snip/http"
	"github.com/aussiebroadwan/snip/internal/snip/oauth"
	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/internal/snip/store"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/postgres"
	"github.com/aussiebroadwan/snip/internal/snip/store/drivers/sqlite"
	"github.com/aussiebroadwan/snip/pkg/cryptox"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/aussiebroadwan/snip/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the snip service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	cache *cache.Service

	// Services
	tokenService        *service.TokenService
	userService         *service.UserService
	sessionService      *service.SessionCoordinator
	urlService          *service.URLService
	visitService        *service.VisitService
	housekeepingService *service.HousekeepingService
	oauthProvider       oauth.ProfileProvider // nil without Google credentials

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "snip",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initCache(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeResources()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("snip starting", "port", app.cfg.Port, "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.housekeepingService.Run(gctx)
	})

	// Either a signal or a failed sibling ends the group.
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			app.logger.Info("shutdown signal received")
		}
		return app.Shutdown()
	})

	err := g.Wait()
	app.closeResources()
	app.logger.Info("snip stopped")
	return err
}

// Shutdown stops accepting requests and drains in-flight work. Store and
// cache stay open so background visit writes can finish.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down snip...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	var shutdownErr error
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
		shutdownErr = fmt.Errorf("graceful shutdown failed: %w", err)
	}

	done := make(chan struct{})
	go func() {
		app.visitService.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Warn("gave up waiting for visit writes")
	}

	return shutdownErr
}

func (app *Application) closeResources() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing cache", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
	}
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, postgres.Config{URL: app.cfg.DatabaseURL})
	default:
		host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(host)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initCache(ctx context.Context) error {
	if !app.cfg.Cache.Enabled() {
		app.logger.Info("slug cache disabled")
		return nil
	}

	c, err := cache.NewService(ctx, app.cfg.Cache, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	app.cache = c

	app.logger.Info("slug cache enabled", "addr", app.cfg.Cache.Addr, "ttl", app.cfg.Cache.TTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	app.tokenService = service.NewTokenService(
		app.cfg.TokenIssuer,
		app.cfg.AccessTokenSecret,
		app.cfg.RefreshTokenSecret,
	)

	app.userService = &service.UserService{Store: app.db}
	app.sessionService = &service.SessionCoordinator{
		Tokens: app.tokenService,
		Users:  app.userService,
	}

	app.urlService = &service.URLService{
		Store: app.db,
		Slugs: &service.SlugGenerator{Sequence: app.db.Sequences()},
	}
	if app.cache != nil {
		app.urlService.Cache = app.cache
	}

	if app.cfg.VisitorHashKey == "" {
		app.logger.Warn("VISITOR_HASH_KEY not set, visitor hashes are unkeyed")
	}
	hasher, err := cryptox.NewVisitorHasher([]byte(app.cfg.VisitorHashKey))
	if err != nil {
		return fmt.Errorf("failed to initialize visitor hasher: %w", err)
	}
	app.visitService = &service.VisitService{Store: app.db, Hasher: hasher}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.VisitRetention = app.cfg.VisitRetention
	app.housekeepingService.DeletedURLRetention = app.cfg.DeletedURLRetention

	if app.cfg.GoogleEnabled() {
		app.oauthProvider = oauth.NewGoogle(oauth.GoogleConfig{
			ClientID:     app.cfg.GoogleClientID,
			ClientSecret: app.cfg.GoogleClientSecret,
			RedirectURL:  app.cfg.GoogleRedirectURL(),
		})
		app.logger.Info("google sign-in enabled", "redirect_url", app.cfg.GoogleRedirectURL())
	} else {
		app.logger.Warn("GOOGLE_CLIENT_ID not set, sign-in routes are disabled")
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	var pinger httpapi.Pinger
	if app.cache != nil {
		pinger = app.cache
	}

	router := httpapi.NewRouter(BuildVersion, app.db, pinger, app.logger)

	// Wire services to router
	router.TokenService = app.tokenService
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.URLService = app.urlService
	router.VisitService = app.visitService
	router.OAuthProvider = app.oauthProvider
	router.AppURL = app.cfg.AppURL
	router.Limits = app.cfg.RateLimits
	router.Proxies, _ = httpx.ParseTrustedProxies(app.cfg.TrustedProxies) // checked by Validate
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
