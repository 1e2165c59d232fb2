package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/cache"
	"github.com/aussiebroadwan/snip/pkg/httpx"
)

// Supported DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        // Environment (development, production) (default: production)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // SQLite database file (default: snip.db)
	DatabaseURL    string // Postgres DSN, required for the postgres driver

	AccessTokenSecret  string // Required: master secret for access tokens
	RefreshTokenSecret string // Required: master secret for refresh tokens
	TokenIssuer        string // iss claim (default: snip)

	Cache cache.Config // Redis slug cache, disabled when Addr is empty

	GoogleClientID     string // Optional: enables Google sign-in
	GoogleClientSecret string
	SelfDomain         string // Public base URL, used for the OAuth callback
	AppURL             string // Where the browser lands after signing in

	VisitorHashKey string // Key for hashing visitor addresses (at most 64 bytes)

	RateLimits     httpx.RateLimits // RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_{REQUESTS,WINDOW_SEC,BURST}
	TrustedProxies string           // Addresses and CIDRs whose X-Forwarded-For is believed (default: none)

	HousekeepingInterval time.Duration // default: 1h
	VisitRetention       time.Duration // Visits older than this are deleted, 0 keeps them (default: 1 year)
	DeletedURLRetention  time.Duration // Soft deleted links are purged after this, 0 keeps them (default: 90 days)
}

func LoadConfig() Config {
	cacheCfg := cache.DefaultConfig()
	cacheCfg.Addr = os.Getenv("REDIS_ADDR")
	cacheCfg.Password = os.Getenv("REDIS_PASSWORD")
	cacheCfg.DB = getEnvIntOrDefault("REDIS_DB", cacheCfg.DB)
	cacheCfg.TTL = getEnvDurationOrDefault("CACHE_TTL", cacheCfg.TTL)
	cacheCfg.Prefix = getEnvOrDefault("CACHE_PREFIX", cacheCfg.Prefix)

	return Config{
		Env:                 getEnvOrDefault("ENV", "production"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "snip.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		AccessTokenSecret:  os.Getenv("JWT_ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("JWT_REFRESH_TOKEN_SECRET"),
		TokenIssuer:        getEnvOrDefault("JWT_TOKEN_ISSUER", "snip"),

		Cache: cacheCfg,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		SelfDomain:         strings.TrimSuffix(os.Getenv("SELF_DOMAIN"), "/"),
		AppURL:             os.Getenv("APP_URL"),

		VisitorHashKey: os.Getenv("VISITOR_HASH_KEY"),

		RateLimits:     httpx.RateLimitsFromEnv(httpx.DefaultRateLimits()),
		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
		VisitRetention:       getEnvDurationOrDefault("VISIT_RETENTION", 365*24*time.Hour),
		DeletedURLRetention:  getEnvDurationOrDefault("DELETED_URL_RETENTION", 90*24*time.Hour),
	}
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c Config) GoogleEnabled() bool { return c.GoogleClientID != "" }

// GoogleRedirectURL is the callback registered with Google.
func (c Config) GoogleRedirectURL() string {
	return c.SelfDomain + "/v1/auth/oauth/google/callback"
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.AccessTokenSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_TOKEN_SECRET is required"))
	}
	if c.RefreshTokenSecret == "" {
		errs = append(errs, errors.New("JWT_REFRESH_TOKEN_SECRET is required"))
	}
	if c.AccessTokenSecret != "" && c.AccessTokenSecret == c.RefreshTokenSecret {
		errs = append(errs, errors.New("access and refresh token secrets must differ"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.GoogleEnabled() {
		if c.GoogleClientSecret == "" {
			errs = append(errs, errors.New("GOOGLE_CLIENT_SECRET is required when GOOGLE_CLIENT_ID is set"))
		}
		if c.SelfDomain == "" {
			errs = append(errs, errors.New("SELF_DOMAIN is required when GOOGLE_CLIENT_ID is set"))
		}
	}

	if len(c.VisitorHashKey) > 64 {
		errs = append(errs, errors.New("VISITOR_HASH_KEY must be at most 64 bytes"))
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		errs = append(errs, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
