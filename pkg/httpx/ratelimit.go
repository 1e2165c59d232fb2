package httpx

import (
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/snip/pkg/slogx"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// RateLimitConfig is one token bucket profile: RequestsPerWindow refill over
// Window, with up to Burst requests at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

func (c RateLimitConfig) limit() rate.Limit {
	if c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// RateLimits are the profiles routes choose from.
type RateLimits struct {
	Strict   RateLimitConfig // sign-in and token refresh
	Moderate RateLimitConfig // link creation and changes
	Lenient  RateLimitConfig // lookups, tracking, health checks
	Public   RateLimitConfig // slug redirects
}

// DefaultRateLimits: 5, 20, 100 and 1000 requests per minute, all available
// as a burst.
func DefaultRateLimits() RateLimits {
	perMinute := func(n int) RateLimitConfig {
		return RateLimitConfig{RequestsPerWindow: n, Window: time.Minute, Burst: n}
	}
	return RateLimits{
		Strict:   perMinute(5),
		Moderate: perMinute(20),
		Lenient:  perMinute(100),
		Public:   perMinute(1000),
	}
}

// RateLimitsFromEnv applies RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_*
// overrides on top of base.
func RateLimitsFromEnv(base RateLimits) RateLimits {
	return RateLimits{
		Strict:   ParseRateLimitFromEnv("STRICT", base.Strict),
		Moderate: ParseRateLimitFromEnv("MODERATE", base.Moderate),
		Lenient:  ParseRateLimitFromEnv("LENIENT", base.Lenient),
		Public:   ParseRateLimitFromEnv("PUBLIC", base.Public),
	}
}

// ParseRateLimitFromEnv reads RATELIMIT_<prefix>_REQUESTS, _WINDOW_SEC and
// _BURST. Missing, malformed or non-positive values keep the default.
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	cfg := defaultConfig
	key := "RATELIMIT_" + prefix + "_"

	if n, ok := positiveEnvInt(key + "REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnvInt(key + "WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt(key + "BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnvInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor groups requests into buckets. An empty key skips limiting.
type KeyExtractor func(*http.Request) string

// UserIDKeyExtractor buckets by the signed in user; empty when anonymous.
func UserIDKeyExtractor(r *http.Request) string {
	return UserID(r.Context())
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep,
// e.g. "user-1:192.168.1.1".
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// DefaultLimiterCapacity bounds the number of keys tracked per limiter.
const DefaultLimiterCapacity = 10_000

// buckets keeps one token bucket per key. A bucket idle for longer than
// its full refill time is dropped, since a fresh one behaves the same.
type buckets struct {
	mu    sync.Mutex
	byKey *expirable.LRU[string, *rate.Limiter]
	limit rate.Limit
	burst int
}

func newBuckets(limit rate.Limit, burst, capacity int) *buckets {
	idle := time.Minute
	if limit > 0 && limit != rate.Inf {
		if refill := time.Duration(float64(burst) / float64(limit) * float64(time.Second)); refill > idle {
			idle = refill
		}
	}

	return &buckets{
		byKey: expirable.NewLRU[string, *rate.Limiter](capacity, nil, idle),
		limit: limit,
		burst: burst,
	}
}

// get returns the bucket for key, creating it on first use, and pushes
// back its expiry.
func (b *buckets) get(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.byKey.Get(key)
	if !ok {
		l = rate.NewLimiter(b.limit, b.burst)
	}
	b.byKey.Add(key, l)
	return l
}

// retryAfter is how long until one token is available, in whole seconds.
func (b *buckets) retryAfter(l *rate.Limiter) int {
	missing := 1 - l.Tokens()
	if missing <= 0 || b.limit <= 0 {
		return 1
	}
	return max(int(math.Ceil(missing/float64(b.limit))), 1)
}

// RateLimitMiddleware limits requests per key. Every reply carries
// X-RateLimit-Limit and X-RateLimit-Remaining; refused requests get 429 with
// Retry-After.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	b := newBuckets(config.limit(), config.Burst, DefaultLimiterCapacity)
	limitHeader := strconv.Itoa(config.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyExtractor(r)
			if key == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key, request not limited")
				next.ServeHTTP(w, r)
				return
			}

			l := b.get(key)
			allowed := l.Allow()

			h := w.Header()
			h.Set("X-RateLimit-Limit", limitHeader)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(int(l.Tokens()), 0)))

			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			retry := b.retryAfter(l)
			h.Set("Retry-After", strconv.Itoa(retry))
			h.Set("X-RateLimit-Window", config.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"endpoint", r.URL.Path,
				"retry_after", retry,
			)

			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded",
				"Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client address, as resolved through proxies.
func RateLimitByIP(config RateLimitConfig, proxies TrustedProxies) Middleware {
	return RateLimitMiddleware(config, proxies.ClientIP)
}

// RateLimitByUser limits by user and address together, so anonymous callers
// still get per address buckets. Put it after the session middleware.
func RateLimitByUser(config RateLimitConfig, proxies TrustedProxies) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		UserIDKeyExtractor,
		proxies.ClientIP,
	))
}
