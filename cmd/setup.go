package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akasheyy/navajuvala-frontend/internal/repositories"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupCache initializes the query cache database and runs migrations,
// creating a config file from the template when none exists.
func (r *Runner) SetupCache(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing query cache", "path", config.Cache.Path)

	cache, db, err := repositories.OpenCache(config.Cache)
	if err != nil {
		return fmt.Errorf("failed to open query cache: %w", err)
	}
	defer db.Close()

	if err := cache.InvalidateAll(); err != nil {
		return fmt.Errorf("failed to reset query cache: %w", err)
	}

	r.logger.Infof("setup complete for query cache: %v", config.Cache.Path)
	return nil
}
