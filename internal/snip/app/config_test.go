package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "PORT", "DATABASE_DRIVER", "DATABASE_FILE", "JWT_TOKEN_ISSUER",
		"REDIS_ADDR", "CACHE_TTL", "HOUSEKEEPING_INTERVAL", "VISIT_RETENTION",
		"RATELIMIT_STRICT_REQUESTS", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "snip.db", cfg.DatabaseFile)
	require.Equal(t, "snip", cfg.TokenIssuer)
	require.False(t, cfg.Cache.Enabled())
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, 365*24*time.Hour, cfg.VisitRetention)
	require.Equal(t, 5, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://snip@localhost/snip")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("VISIT_RETENTION", "0")
	t.Setenv("HOUSEKEEPING_INTERVAL", "15") // bare minutes
	t.Setenv("SELF_DOMAIN", "https://snip.example.com/")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.True(t, cfg.Cache.Enabled())
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
	require.Zero(t, cfg.VisitRetention)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, "https://snip.example.com/v1/auth/oauth/google/callback", cfg.GoogleRedirectURL())
	require.Equal(t, 50, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, 20, cfg.RateLimits.Moderate.RequestsPerWindow)
	require.Equal(t, "10.0.0.0/8", cfg.TrustedProxies)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Port:               8080,
		DatabaseDriver:     DriverSQLite,
		DatabaseFile:       "snip.db",
		AccessTokenSecret:  "access",
		RefreshTokenSecret: "refresh",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing access secret", func(c *Config) { c.AccessTokenSecret = "" }, "JWT_ACCESS_TOKEN_SECRET"},
		{"missing refresh secret", func(c *Config) { c.RefreshTokenSecret = "" }, "JWT_REFRESH_TOKEN_SECRET"},
		{"shared secret", func(c *Config) { c.RefreshTokenSecret = c.AccessTokenSecret }, "must differ"},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "unknown DATABASE_DRIVER"},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "DATABASE_URL"},
		{"google without secret", func(c *Config) {
			c.GoogleClientID = "id"
			c.SelfDomain = "https://snip.example.com"
		}, "GOOGLE_CLIENT_SECRET"},
		{"google without self domain", func(c *Config) {
			c.GoogleClientID = "id"
			c.GoogleClientSecret = "secret"
		}, "SELF_DOMAIN"},
		{"bad trusted proxy", func(c *Config) { c.TrustedProxies = "10.0.0.0/8, lb.internal" }, "TRUSTED_PROXIES"},
		{"long hash key", func(c *Config) { c.VisitorHashKey = string(make([]byte, 65)) }, "VISITOR_HASH_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
