// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

const checkTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// Handler serves the legacy /health probe plus liveness and readiness.
// Readiness pings every registered dependency concurrently.
type Handler struct {
	checks   map[string]Checker
	order    []string
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Checker) *Handler {
	h := &Handler{checks: make(map[string]Checker)}
	h.Register("database", db)
	h.Register("redis", redis)
	h.ready.Store(true)
	return h
}

// Register adds a named readiness check. A nil checker always reports
// unhealthy.
func (h *Handler) Register(name string, c Checker) {
	if _, exists := h.checks[name]; !exists {
		h.order = append(h.order, name)
	}
	h.checks[name] = c
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, http.StatusOK, StatusResponse{Status: "OK"})
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	switch {
	case h.shutdown.Load():
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	case !h.ready.Load():
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "not_ready",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := h.runChecks(ctx)

	status, code := "ok", http.StatusOK
	for _, check := range checks {
		if !check.Healthy {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	h.writeStatus(w, code, ReadinessResponse{Status: status, Checks: checks})
}

func (h *Handler) runChecks(ctx context.Context) []HealthCheck {
	results := make([]HealthCheck, len(h.order))

	var wg sync.WaitGroup
	for i, name := range h.order {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runCheck(ctx, name, h.checks[name])
		}()
	}
	wg.Wait()

	return results
}

func runCheck(ctx context.Context, name string, c Checker) HealthCheck {
	check := HealthCheck{Name: name, Healthy: true}

	if c == nil {
		check.Healthy = false
		check.Message = name + " checker not configured"
		return check
	}

	start := time.Now()
	err := c.Ping(ctx)
	check.Latency = time.Since(start).String()

	if err != nil {
		check.Healthy = false
		check.Message = "ping failed"
	}

	return check
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status string        `json:"status"`
	Checks []HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
