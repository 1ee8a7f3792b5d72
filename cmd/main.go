package main

import (
	"context"
	"errors"
	"os"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/repositories"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var cache catalog.Cache
	if queryCache, db, err := repositories.OpenCache(config.Cache); err == nil {
		cache = queryCache
		defer db.Close()
	} else {
		logger.Warn("query cache unavailable, reads go straight to the service", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Cache:  cache,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "navajuvala",
		Usage:    "Browse and manage the community library catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
