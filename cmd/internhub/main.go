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

	"github.com/pkg/browser"

	"github.com/carterperez-dev/internhub/internal/applyflow"
	"github.com/carterperez-dev/internhub/internal/cli"
	"github.com/carterperez-dev/internhub/internal/client"
	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/localstore"
)

func main() {
	configPath := flag.String("config", "", "path to client config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("internhub failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return err
	}

	logger := core.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	db, err := localstore.OpenSQLite(ctx, cfg.StatePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("local store close error", "error", closeErr)
		}
	}()

	store := localstore.NewStore(localstore.NewSQLiteRepository(db))

	api, err := client.New(cfg.APIURL, client.WithTokenSource(store.Token))
	if err != nil {
		return err
	}

	if err := api.Health(ctx); err != nil {
		logger.Warn("api unreachable", "url", cfg.APIURL, "error", err)
	}

	// pkg/browser echoes the child's output by default
	browser.Stdout = os.Stderr

	app := cli.NewApp(
		api,
		store,
		applyflow.OpenerFunc(browser.OpenURL),
		os.Stdin,
		os.Stdout,
		logger,
	)
	app.Run(ctx)

	return nil
}
