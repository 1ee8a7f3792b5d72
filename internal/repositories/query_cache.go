package repositories

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/shared"
)

// QueryCache stores fetched catalog payloads in SQLite, keyed by query
// name. It satisfies the catalog package's Cache interface.
type QueryCache struct {
	db *sql.DB
}

// NewQueryCache creates a cache over an open, migrated database.
func NewQueryCache(db *sql.DB) *QueryCache {
	return &QueryCache{db: db}
}

// OpenCache opens (creating parent directories as needed), configures,
// and migrates the cache database at the configured path. Relative paths
// resolve under the user config directory.
func OpenCache(cfg shared.CacheConfig) (*QueryCache, *sql.DB, error) {
	path := cfg.Path
	if path != ":memory:" {
		path = shared.StateDir(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	if cfg.MaxOpenConns > 0 {
		shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return NewQueryCache(db), db, nil
}

// Get returns the stored payload for key. A missing key or a read error
// both report a cache miss.
func (c *QueryCache) Get(key string) ([]byte, bool) {
	var payload []byte
	err := c.db.QueryRow("SELECT payload FROM query_cache WHERE key = ?", key).Scan(&payload)
	if err != nil {
		return nil, false
	}
	return payload, true
}

// FetchedAt returns when the payload for key was stored.
func (c *QueryCache) FetchedAt(key string) (time.Time, bool) {
	var fetchedAt time.Time
	err := c.db.QueryRow("SELECT fetched_at FROM query_cache WHERE key = ?", key).Scan(&fetchedAt)
	if err != nil {
		return time.Time{}, false
	}
	return fetchedAt, true
}

// Put stores or replaces the payload for key.
func (c *QueryCache) Put(key string, payload []byte) error {
	query := `
		INSERT INTO query_cache (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`
	if _, err := c.db.Exec(query, key, payload, time.Now()); err != nil {
		return fmt.Errorf("failed to store cache payload: %w", err)
	}
	return nil
}

// Invalidate removes the given keys. Absent keys are ignored.
func (c *QueryCache) Invalidate(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin invalidation: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.Exec("DELETE FROM query_cache WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to invalidate key %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invalidation: %w", err)
	}
	return nil
}

// InvalidateAll empties the cache.
func (c *QueryCache) InvalidateAll() error {
	if _, err := c.db.Exec("DELETE FROM query_cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
