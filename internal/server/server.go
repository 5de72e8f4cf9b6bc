// AngelaMos | 2026
// server.go

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/core"
)

type ShutdownNotifier interface {
	SetShutdown(shutdown bool)
}

type Config struct {
	ServerConfig  config.ServerConfig
	HealthHandler ShutdownNotifier
	Logger        *slog.Logger
}

type Server struct {
	router  *chi.Mux
	http    *http.Server
	health  ShutdownNotifier
	logger  *slog.Logger
	sleepFn func(time.Duration)
}

func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		core.NotFound(w, "Route")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		core.JSON(w, http.StatusMethodNotAllowed, core.ErrorResponse{
			Message: "method not allowed",
			Code:    "METHOD_NOT_ALLOWED",
		})
	})

	addr := net.JoinHostPort(
		cfg.ServerConfig.Host,
		strconv.Itoa(cfg.ServerConfig.Port),
	)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadTimeout:       cfg.ServerConfig.ReadTimeout,
			ReadHeaderTimeout: cfg.ServerConfig.ReadTimeout,
			WriteTimeout:      cfg.ServerConfig.WriteTimeout,
			IdleTimeout:       cfg.ServerConfig.IdleTimeout,
		},
		health:  cfg.HealthHandler,
		logger:  logger,
		sleepFn: time.Sleep,
	}
}

// Router exposes the mux so middleware and routes can be mounted before
// Start.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP. A graceful shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)

	err := s.http.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown fails readiness first, waits drainDelay for load balancers to
// notice, then stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context, drainDelay time.Duration) error {
	if s.health != nil {
		s.health.SetShutdown(true)
	}

	if drainDelay > 0 {
		s.logger.Info("draining before shutdown", "delay", drainDelay)
		s.sleepFn(drainDelay)
	}

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}
