package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:5000/api" {
			t.Errorf("expected base URL http://localhost:5000/api, got %s", config.API.BaseURL)
		}

		if config.API.RateLimit != 10.0 {
			t.Errorf("expected rate limit 10.0, got %f", config.API.RateLimit)
		}

		if config.Cache.Path != "navajuvala/query_cache.db" {
			t.Errorf("expected cache path navajuvala/query_cache.db, got %s", config.Cache.Path)
		}

		if config.Storage.FavoritesPath != "navajuvala/liked_books.json" {
			t.Errorf("expected favorites path navajuvala/liked_books.json, got %s", config.Storage.FavoritesPath)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://library.example.org/api"
rate_limit = 2.5

[storage]
favorites_path = "/custom/liked.json"
token_path = "/custom/token"

[cache]
path = "/custom/cache.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://library.example.org/api" {
			t.Errorf("expected base URL https://library.example.org/api, got %s", config.API.BaseURL)
		}

		if config.Storage.TokenPath != "/custom/token" {
			t.Errorf("expected token path /custom/token, got %s", config.Storage.TokenPath)
		}

		if config.Cache.MaxOpenConns != 20 {
			t.Errorf("expected max open conns 20, got %d", config.Cache.MaxOpenConns)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("loading a missing config file should fail")
		}
	})

	t.Run("StateDir", func(t *testing.T) {
		if got := StateDir("/abs/path.json"); got != "/abs/path.json" {
			t.Errorf("absolute paths should pass through, got %s", got)
		}

		if got := StateDir(""); got != "" {
			t.Errorf("empty path should pass through, got %s", got)
		}

		got := StateDir("navajuvala/liked_books.json")
		if got == "navajuvala/liked_books.json" {
			// UserConfigDir unavailable in this environment; passthrough is fine
			return
		}
		if filepath.Base(got) != "liked_books.json" {
			t.Errorf("expected resolved path ending in liked_books.json, got %s", got)
		}
	})
}
