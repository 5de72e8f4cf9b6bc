// AngelaMos | 2026
// ratelimit.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/carterperez-dev/internhub/internal/core"
)

const CodeRateLimited = "RATE_LIMITED"

type RateLimitConfig struct {
	Limit     redis_rate.Limit
	KeyFunc   func(*http.Request) string
	FailOpen  bool
	KeyPrefix string
}

// allower is satisfied by *redis_rate.Limiter.
type allower interface {
	Allow(
		ctx context.Context,
		key string,
		limit redis_rate.Limit,
	) (*redis_rate.Result, error)
}

// RateLimiter enforces a shared Redis budget and falls back to an
// in-process token bucket per key when Redis is unreachable.
type RateLimiter struct {
	limiter  allower
	fallback *localLimiter
	config   RateLimitConfig
}

func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	var limiter allower
	if rdb != nil {
		limiter = redis_rate.NewLimiter(rdb)
	}
	return newRateLimiter(limiter, cfg)
}

func newRateLimiter(limiter allower, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}

	return &RateLimiter{
		limiter:  limiter,
		fallback: newLocalLimiter(),
		config:   cfg,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.config.KeyPrefix + rl.config.KeyFunc(r)
		res, err := rl.allow(r.Context(), key)
		if err != nil {
			if rl.config.FailOpen {
				slog.Warn("rate limiter error, failing open",
					"error", err,
					"key", key,
				)
				next.ServeHTTP(w, r)
				return
			}
			core.JSON(w, http.StatusServiceUnavailable, core.ErrorResponse{
				Message: "service unavailable",
				Code:    CodeRateLimited,
			})
			return
		}

		setRateLimitHeaders(w, res, rl.config.Limit)

		if res.Allowed == 0 {
			writeRateLimitExceeded(w, res)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(
	ctx context.Context,
	key string,
) (*redis_rate.Result, error) {
	if rl.limiter == nil {
		return rl.fallback.allow(key, rl.config.Limit)
	}

	res, err := rl.limiter.Allow(ctx, key, rl.config.Limit)
	if err != nil {
		return rl.fallback.allow(key, rl.config.Limit)
	}
	return res, nil
}

func KeyByIP(r *http.Request) string {
	return "ratelimit:ip:" + ClientIP(r)
}

// KeyByUser keys by the authenticated caller and falls back to the client IP.
func KeyByUser(r *http.Request) string {
	if userID := GetUserID(r.Context()); userID != "" {
		return "ratelimit:user:" + userID
	}
	return KeyByIP(r)
}

func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

func setRateLimitHeaders(
	w http.ResponseWriter,
	res *redis_rate.Result,
	limit redis_rate.Limit,
) {
	h := w.Header()

	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(
		time.Now().Add(res.ResetAfter).Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, res *redis_rate.Result) {
	retryAfter := int(res.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	core.JSON(w, http.StatusTooManyRequests, core.ErrorResponse{
		Message: fmt.Sprintf(
			"Rate limit exceeded. Retry after %d seconds.",
			retryAfter,
		),
		Code: CodeRateLimited,
	})
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	lastGC   time.Time
	now      func() time.Time
}

const entryTTL = 10 * time.Minute

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
}

func (l *localLimiter) allow(
	key string,
	limit redis_rate.Limit,
) (*redis_rate.Result, error) {
	if limit.Period <= 0 || limit.Rate <= 0 {
		return nil, fmt.Errorf("invalid rate limit %v", limit)
	}

	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictLocked(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(ratePerSec), max(limit.Burst, 1)),
		}
		l.limiters[key] = entry
	}
	entry.lastAccess = now

	allowed := entry.limiter.AllowN(now, 1)
	remaining := max(int(entry.limiter.TokensAt(now)), 0)

	interval := time.Duration(float64(time.Second) / ratePerSec)
	res := &redis_rate.Result{
		Limit:      limit,
		Remaining:  remaining,
		RetryAfter: -1,
		ResetAfter: interval,
	}
	if allowed {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}

	return res, nil
}

func (l *localLimiter) evictLocked(now time.Time) {
	if now.Sub(l.lastGC) < entryTTL {
		return
	}
	l.lastGC = now

	cutoff := now.Add(-entryTTL)
	for key, entry := range l.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(l.limiters, key)
		}
	}
}

// NewLimit allows rate requests per period with the given burst. A
// non-positive period means one minute.
func NewLimit(rate, burst int, period time.Duration) redis_rate.Limit {
	if period <= 0 {
		period = time.Minute
	}
	return redis_rate.Limit{
		Rate:   rate,
		Burst:  burst,
		Period: period,
	}
}

func PerMinute(rate, burst int) redis_rate.Limit {
	return NewLimit(rate, burst, time.Minute)
}
