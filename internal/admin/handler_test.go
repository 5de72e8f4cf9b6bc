// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/company"
)

type userCount int

func (c userCount) Count(context.Context) (int, error) { return int(c), nil }

type listingCount company.Counts

func (c listingCount) Counts(context.Context) (company.Counts, error) { return company.Counts(c), nil }

type appCount struct {
	counts application.StatusCounts
	err    error
}

func (c appCount) Counts(context.Context) (application.StatusCounts, error) { return c.counts, c.err }

func passthrough(next http.Handler) http.Handler { return next }

func stats(t *testing.T, cfg HandlerConfig) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, passthrough, passthrough)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	return rec
}

func TestGetStats(t *testing.T) {
	rec := stats(t, HandlerConfig{
		DBStats:      func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 10, InUse: 2} },
		RedisStats:   func() *redis.PoolStats { return &redis.PoolStats{Hits: 7, TotalConns: 5, IdleConns: 4} },
		DBPing:       func(context.Context) error { return nil },
		RedisPing:    func(context.Context) error { return errors.New("down") },
		Users:        userCount(3),
		Listings:     listingCount{Total: 12, Active: 10},
		Applications: appCount{counts: application.StatusCounts{Total: 4, Pending: 2, Applied: 1, Rejected: 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body.Counts.Users)
	assert.Equal(t, 10, body.Counts.Listings.Active)
	assert.Equal(t, 2, body.Counts.Applications.Pending)
	assert.True(t, body.Database.Healthy)
	require.NotNil(t, body.Database.Pool)
	assert.Equal(t, 10, body.Database.Pool.Max)
	assert.Equal(t, 2, body.Database.Pool.InUse)
	assert.False(t, body.Redis.Healthy)
	require.NotNil(t, body.Redis.Pool)
	assert.EqualValues(t, 7, body.Redis.Pool.Hits)
	assert.Equal(t, 1, body.Redis.Pool.InUse)
}

func TestGetStats_CountFailure(t *testing.T) {
	rec := stats(t, HandlerConfig{Applications: appCount{err: errors.New("db down")}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetStats_MissingDependencies(t *testing.T) {
	rec := stats(t, HandlerConfig{})
	require.Equal(t, http.StatusOK, rec.Code)

	var body StatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Database.Healthy)
	assert.Nil(t, body.Database.Pool)
}
