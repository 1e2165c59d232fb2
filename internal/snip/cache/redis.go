// Package cache keeps resolved short links in redis so redirects skip the
// database. A disabled cache behaves as a permanent miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/domain"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when the slug is not cached.
var ErrCacheMiss = errors.New("cache: miss")

// Config holds Redis cache configuration
type Config struct {
	Addr     string        // Redis server address, empty disables the cache
	Password string        // Redis password
	DB       int           // Redis database number
	PoolSize int           // Connection pool size
	Prefix   string        // Key prefix for namespacing
	TTL      time.Duration // Lifetime of a cached link
}

// DefaultConfig returns default Redis configuration
func DefaultConfig() Config {
	return Config{
		PoolSize: 10,
		Prefix:   "snip:",
		TTL:      10 * time.Minute,
	}
}

// Enabled reports whether a redis address was configured.
func (c Config) Enabled() bool { return c.Addr != "" }

// clientInterface abstracts Redis operations we actually use
type clientInterface interface {
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	get(ctx context.Context, key string) ([]byte, error)
	del(ctx context.Context, keys ...string) error
	ping(ctx context.Context) error
	close() error
}

// Service caches slug -> link lookups.
type Service struct {
	client clientInterface
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

// NewService connects to redis, or returns a no-op cache when cfg has no
// address.
func NewService(ctx context.Context, cfg Config, logger *slog.Logger) (*Service, error) {
	if !cfg.Enabled() {
		logger.Info("redis cache disabled")
		return &Service{client: noOpClient{}, logger: logger, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: connect to redis at %s: %w", cfg.Addr, err)
	}

	logger.Info("connected to redis cache", "addr", cfg.Addr, "db", cfg.DB)
	return NewWithClient(rdb, cfg, logger), nil
}

// NewWithClient wraps an existing client, used by tests against miniredis.
func NewWithClient(rdb *redis.Client, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		client: &redisClientWrapper{client: rdb},
		logger: logger,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}
}

func (s *Service) slugKey(slug string) string {
	return s.prefix + "slug:" + slug
}

// GetURL returns the cached link for slug or ErrCacheMiss.
func (s *Service) GetURL(ctx context.Context, slug string) (domain.URL, error) {
	raw, err := s.client.get(ctx, s.slugKey(slug))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cache get failed", "slug", slug, "error", err)
		}
		return domain.URL{}, err
	}

	var u domain.URL
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.WarnContext(ctx, "cache entry unreadable", "slug", slug, "error", err)
		_ = s.client.del(ctx, s.slugKey(slug))
		return domain.URL{}, ErrCacheMiss
	}
	return u, nil
}

// SetURL caches u under its slug.
func (s *Service) SetURL(ctx context.Context, u domain.URL) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache: marshal url: %w", err)
	}

	if err := s.client.set(ctx, s.slugKey(u.Slug), raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache set failed", "slug", u.Slug, "error", err)
		return err
	}
	return nil
}

// DeleteSlugs drops cached entries, used when a slug changes or a link is
// deleted.
func (s *Service) DeleteSlugs(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, s.slugKey(slug))
	}

	if err := s.client.del(ctx, keys...); err != nil {
		s.logger.WarnContext(ctx, "cache delete failed", "slugs", slugs, "error", err)
		return err
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error { return s.client.ping(ctx) }

func (s *Service) Close() error { return s.client.close() }

type redisClientWrapper struct {
	client *redis.Client
}

func (r *redisClientWrapper) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisClientWrapper) get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return val, err
}

func (r *redisClientWrapper) del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisClientWrapper) ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClientWrapper) close() error { return r.client.Close() }

// noOpClient is used when caching is disabled.
type noOpClient struct{}

func (noOpClient) set(context.Context, string, []byte, time.Duration) error { return nil }
func (noOpClient) get(context.Context, string) ([]byte, error)              { return nil, ErrCacheMiss }
func (noOpClient) del(context.Context, ...string) error                     { return nil }
func (noOpClient) ping(context.Context) error                               { return nil }
func (noOpClient) close() error                                             { return nil }
