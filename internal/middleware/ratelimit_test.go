// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAllower struct{ calls int }

func (f *failingAllower) Allow(context.Context, string, redis_rate.Limit) (*redis_rate.Result, error) {
	f.calls++
	return nil, errors.New("redis down")
}

type countingAllower struct{ keys []string }

func (c *countingAllower) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	c.keys = append(c.keys, key)
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Burst - 1}, nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_FallbackEnforcesBurst(t *testing.T) {
	redis := &failingAllower{}
	rl := newRateLimiter(redis, RateLimitConfig{Limit: NewLimit(2, 2, time.Hour)})
	h := rl.Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1234").Code)

	rec := hit(h, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, CodeRateLimited, code(t, rec))

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1234").Code, "other clients keep their own budget")
	assert.Equal(t, 4, redis.calls)
}

func TestRateLimiter_NilRedisUsesLocal(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Limit: PerMinute(1, 1)})
	h := rl.Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1").Code)
}

func TestRateLimiter_KeyPrefix(t *testing.T) {
	a := &countingAllower{}
	rl := newRateLimiter(a, RateLimitConfig{
		Limit:     PerMinute(10, 10),
		KeyFunc:   KeyByUser,
		KeyPrefix: "apply:",
	})

	rec := hit(rl.Handler(okHandler), "10.0.0.9:80")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	require.Len(t, a.keys, 1)
	assert.Equal(t, "apply:ratelimit:ip:10.0.0.9", a.keys[0])
}

func TestKeyByUser_Authenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "u-7", Role: "USER"}))
	assert.Equal(t, "ratelimit:user:u-7", KeyByUser(req))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	assert.Equal(t, "198.51.100.7", ClientIP(req))
}

func TestLocalLimiter_EvictsIdleKeys(t *testing.T) {
	now := time.Now()
	l := newLocalLimiter()
	l.now = func() time.Time { return now }

	_, err := l.allow("a", PerMinute(5, 5))
	require.NoError(t, err)
	require.Len(t, l.limiters, 1)

	now = now.Add(2 * entryTTL)
	_, err = l.allow("b", PerMinute(5, 5))
	require.NoError(t, err)

	assert.Len(t, l.limiters, 1)
	assert.Contains(t, l.limiters, "b")
}

func TestLocalLimiter_InvalidLimit(t *testing.T) {
	_, err := newLocalLimiter().allow("a", redis_rate.Limit{})
	assert.Error(t, err)
}

func TestNewLimit_DefaultsPeriod(t *testing.T) {
	assert.Equal(t, time.Minute, NewLimit(5, 5, 0).Period)
}
