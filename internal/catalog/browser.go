package catalog

import (
	"context"
	"encoding/json"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/log"
)

// Query cache keys. Mutation flows invalidate these after success.
const (
	KeyPublicBooks   = "public-books"
	KeyAdminBooks    = "admin-books"
	KeyBorrowRecords = "borrow-records"
)

// Cache stores fetched payloads keyed by query name. Implemented by the
// repositories package; a nil Cache makes every read a direct fetch.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte) error
	Invalidate(keys ...string) error
}

// Browser stitches the remote catalog and the query cache into the reads
// the views consume. Cached list reads serve the stored payload until a
// mutation invalidates the key; single-record reads always hit the
// service so entity freshness follows the server.
type Browser struct {
	catalog services.Catalog
	cache   Cache
	logger  *log.Logger
}

// NewBrowser creates a Browser. cache may be nil.
func NewBrowser(catalog services.Catalog, cache Cache, logger *log.Logger) *Browser {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Browser{catalog: catalog, cache: cache, logger: logger}
}

// Books returns the public book list, read through the cache.
func (b *Browser) Books(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := b.cached(ctx, KeyPublicBooks, &books, func() (any, error) {
		return b.catalog.PublicBooks(ctx)
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// AdminBooks returns the book list through the admin endpoint, read
// through the cache.
func (b *Browser) AdminBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := b.cached(ctx, KeyAdminBooks, &books, func() (any, error) {
		return b.catalog.Books(ctx)
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// Records returns the borrow-record list, read through the cache.
func (b *Browser) Records(ctx context.Context) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord
	err := b.cached(ctx, KeyBorrowRecords, &records, func() (any, error) {
		return b.catalog.BorrowRecords(ctx)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Book fetches one book without credentials. Not-found surfaces as
// [shared.ErrBookNotFound], distinct from a request failure.
func (b *Browser) Book(ctx context.Context, id string) (*models.Book, error) {
	return b.catalog.PublicBook(ctx, id)
}

// AdminBook fetches one book through the admin endpoint.
func (b *Browser) AdminBook(ctx context.Context, id string) (*models.Book, error) {
	return b.catalog.Book(ctx, id)
}

// Record fetches one borrow record joined with its book.
func (b *Browser) Record(ctx context.Context, id string) (*models.BorrowDetail, error) {
	return b.catalog.BorrowRecord(ctx, id)
}

// cached serves key from the cache when present, otherwise fetches and
// stores. Cache failures degrade to a direct fetch.
func (b *Browser) cached(ctx context.Context, key string, result any, fetch func() (any, error)) error {
	if b.cache != nil {
		if payload, ok := b.cache.Get(key); ok {
			if err := json.Unmarshal(payload, result); err == nil {
				return nil
			}
			b.logger.Debug("discarding malformed cache payload", "key", key)
			_ = b.cache.Invalidate(key)
		}
	}

	fetched, err := fetch()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(fetched)
	if err != nil {
		return err
	}
	if b.cache != nil {
		if err := b.cache.Put(key, payload); err != nil {
			b.logger.Debug("failed to store cache payload", "key", key, "err", err)
		}
	}

	return json.Unmarshal(payload, result)
}
