// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/core"
)

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type ListingCounter interface {
	Counts(ctx context.Context) (company.Counts, error)
}

type ApplicationCounter interface {
	Counts(ctx context.Context) (application.StatusCounts, error)
}

type HandlerConfig struct {
	DBStats      func() sql.DBStats
	RedisStats   func() *redis.PoolStats
	DBPing       func(ctx context.Context) error
	RedisPing    func(ctx context.Context) error
	Users        UserCounter
	Listings     ListingCounter
	Applications ApplicationCounter
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetStats)
	})
}

// GetStats reports entity counts and the health of both connection pools.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	counts, err := h.counts(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	resp := StatsResponse{
		Counts:   counts,
		Database: DependencyStatus{Healthy: pingOK(ctx, "database", h.cfg.DBPing)},
		Redis:    DependencyStatus{Healthy: pingOK(ctx, "redis", h.cfg.RedisPing)},
	}

	if h.cfg.DBStats != nil {
		s := h.cfg.DBStats()
		resp.Database.Pool = &PoolStats{
			Max:   s.MaxOpenConnections,
			Open:  s.OpenConnections,
			InUse: s.InUse,
			Idle:  s.Idle,
			Waits: s.WaitCount,
		}
	}

	if h.cfg.RedisStats != nil {
		s := h.cfg.RedisStats()
		resp.Redis.Pool = &PoolStats{
			Open:     int(s.TotalConns),
			InUse:    int(s.TotalConns) - int(s.IdleConns),
			Idle:     int(s.IdleConns),
			Hits:     int64(s.Hits),
			Misses:   int64(s.Misses),
			Timeouts: int64(s.Timeouts),
		}
	}

	core.OK(w, resp)
}

func (h *Handler) counts(ctx context.Context) (Counts, error) {
	var out Counts
	var err error

	if h.cfg.Users != nil {
		if out.Users, err = h.cfg.Users.Count(ctx); err != nil {
			return out, err
		}
	}
	if h.cfg.Listings != nil {
		if out.Listings, err = h.cfg.Listings.Counts(ctx); err != nil {
			return out, err
		}
	}
	if h.cfg.Applications != nil {
		if out.Applications, err = h.cfg.Applications.Counts(ctx); err != nil {
			return out, err
		}
	}

	return out, nil
}

func pingOK(ctx context.Context, name string, ping func(context.Context) error) bool {
	if ping == nil {
		return false
	}
	if err := ping(ctx); err != nil {
		slog.WarnContext(ctx, "stats ping failed", "dependency", name, "error", err)
		return false
	}
	return true
}

type StatsResponse struct {
	Counts   Counts           `json:"counts"`
	Database DependencyStatus `json:"database"`
	Redis    DependencyStatus `json:"redis"`
}

type Counts struct {
	Users        int                      `json:"users"`
	Listings     company.Counts           `json:"listings"`
	Applications application.StatusCounts `json:"applications"`
}

type DependencyStatus struct {
	Healthy bool       `json:"healthy"`
	Pool    *PoolStats `json:"pool,omitempty"`
}

// PoolStats is the common subset of sql.DBStats and redis.PoolStats. Fields
// a pool does not track stay zero.
type PoolStats struct {
	Max      int   `json:"max,omitempty"`
	Open     int   `json:"open"`
	InUse    int   `json:"inUse"`
	Idle     int   `json:"idle"`
	Waits    int64 `json:"waits,omitempty"`
	Hits     int64 `json:"hits,omitempty"`
	Misses   int64 `json:"misses,omitempty"`
	Timeouts int64 `json:"timeouts,omitempty"`
}
