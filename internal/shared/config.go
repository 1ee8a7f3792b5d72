package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
}

// APIConfig describes the remote catalog service.
//
// BaseURL comes from deployment configuration; it is never hardcoded.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	SiteURL   string  `toml:"site_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// StorageConfig locates device-local state files.
type StorageConfig struct {
	FavoritesPath string `toml:"favorites_path"`
	TokenPath     string `toml:"token_path"`
}

// CacheConfig contains query cache database settings.
type CacheConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// StateDir resolves relative storage paths against the user config directory
// (XDG_CONFIG_HOME or the platform equivalent). Absolute paths pass through.
func StateDir(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return path
	}
	return filepath.Join(base, path)
}
