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

	"github.com/carterperez-dev/internhub/internal/company"
	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/core"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	force := flag.Bool("force", false, "replace existing listings")
	flag.Parse()

	if err := run(*configPath, *force); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, force bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	var cache company.Cache
	if redis, redisErr := core.NewRedis(ctx, cfg.Redis); redisErr != nil {
		logger.Warn("redis unavailable, listing cache not invalidated", "error", redisErr)
	} else {
		defer redis.Close() //nolint:errcheck // process exit
		cache = company.NewRedisCache(redis.Client, cfg.Listings.CacheTTL)
	}

	svc := company.NewService(company.NewRepository(db.DB), cache)

	result, err := svc.Seed(ctx, force)
	if err != nil {
		return err
	}

	if result.Skipped {
		logger.Info("listings already present, nothing seeded (use -force to replace)")
		return nil
	}

	logger.Info("listings seeded",
		"deleted", result.Deleted,
		"inserted", result.Inserted,
	)
	return nil
}
