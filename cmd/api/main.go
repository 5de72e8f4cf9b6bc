// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/internhub/internal/admin"
	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/auth"
	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/health"
	"github.com/carterperez-dev/internhub/internal/middleware"
	"github.com/carterperez-dev/internhub/internal/server"
	"github.com/carterperez-dev/internhub/internal/user"
)

const (
	drainDelay   = 5 * time.Second
	closeTimeout = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)
	logger.Info("starting internhub api",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"addr", cfg.Server.Address(),
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer closeWith(logger, "telemetry", func() error {
		return telemetry.Shutdown(context.Background())
	})

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeWith(logger, "database", db.Close)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeWith(logger, "redis", rdb.Close)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}

	if cfg.Auth.AdminCode == "" {
		logger.Warn("ADMIN_SECRET_CODE not set, ADMIN registration will fail")
	}

	healthHandler := health.NewHandler(db, rdb)
	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})
	mount(srv.Router(), cfg, logger, db, rdb, jwtManager, healthHandler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	logger.Info("internhub api stopped")
	return nil
}

// mount wires the stores, services and handlers onto r.
func mount(
	r chi.Router,
	cfg *config.Config,
	logger *slog.Logger,
	db *core.Database,
	rdb *core.Redis,
	verifier *auth.JWTManager,
	healthHandler *health.Handler,
) {
	users := user.NewService(user.NewRepository(db.DB))
	credentials := auth.NewService(verifier, users, cfg.Auth.AdminCode)
	listings := company.NewService(
		company.NewRepository(db.DB),
		company.NewRedisCache(rdb.Client, cfg.Listings.CacheTTL),
	)
	ledger := application.NewService(application.NewRepository(db.DB), listings)

	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit:    middleware.NewLimit(cfg.RateLimit.Requests, cfg.RateLimit.Burst, cfg.RateLimit.Window),
		FailOpen: true,
	}).Handler)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	authenticate := middleware.Authenticator(verifier)
	adminOnly := middleware.RequireAdmin
	applyLimit := middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit:     middleware.PerMinute(cfg.RateLimit.ApplyRequests, cfg.RateLimit.ApplyRequests),
		KeyFunc:   middleware.KeyByUser,
		KeyPrefix: "apply:",
		FailOpen:  true,
	}).Handler

	healthHandler.RegisterRoutes(r)
	auth.NewHandler(credentials).RegisterRoutes(r)
	user.NewHandler(users).RegisterRoutes(r, authenticate)
	company.NewHandler(listings).RegisterRoutes(r, authenticate, adminOnly)
	application.NewHandler(ledger).RegisterRoutes(r, authenticate, adminOnly, applyLimit)
	admin.NewHandler(admin.HandlerConfig{
		DBStats:      db.Stats,
		RedisStats:   rdb.PoolStats,
		DBPing:       db.Ping,
		RedisPing:    rdb.Ping,
		Users:        users,
		Listings:     listings,
		Applications: ledger,
	}).RegisterRoutes(r, authenticate, adminOnly)
}

func closeWith(logger *slog.Logger, name string, closeFn func() error) {
	done := make(chan error, 1)
	go func() { done <- closeFn() }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("close "+name, "error", err)
		}
	case <-time.After(closeTimeout):
		logger.Error("close " + name + " timed out")
	}
}
