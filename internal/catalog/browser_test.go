package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	tu "github.com/akasheyy/navajuvala-frontend/internal/testing"
)

var _ Cache = (*tu.MemoryCache)(nil)

func TestBrowser(t *testing.T) {
	ctx := context.Background()

	t.Run("Books Read Through Cache", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(context.Context) ([]models.Book, error) {
				return []models.Book{{ID: "b1", Title: "Gitanjali"}}, nil
			},
		}
		cache := tu.NewMemoryCache()
		browser := NewBrowser(mock, cache, nil)

		first, err := browser.Books(ctx)
		if err != nil {
			t.Fatalf("first read failed: %v", err)
		}
		second, err := browser.Books(ctx)
		if err != nil {
			t.Fatalf("second read failed: %v", err)
		}

		if len(first) != 1 || len(second) != 1 || second[0].ID != "b1" {
			t.Errorf("unexpected payloads: %v / %v", first, second)
		}
		if got := mock.CallCount("PublicBooks"); got != 1 {
			t.Errorf("second read should come from the cache, service called %d times", got)
		}
	})

	t.Run("Invalidated Key Refetches", func(t *testing.T) {
		calls := 0
		mock := &tu.MockCatalog{
			PublicBooksFn: func(context.Context) ([]models.Book, error) {
				calls++
				return []models.Book{{ID: "b1", Available: calls}}, nil
			},
		}
		cache := tu.NewMemoryCache()
		browser := NewBrowser(mock, cache, nil)

		if _, err := browser.Books(ctx); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if err := cache.Invalidate(KeyPublicBooks); err != nil {
			t.Fatalf("invalidate failed: %v", err)
		}

		books, err := browser.Books(ctx)
		if err != nil {
			t.Fatalf("read after invalidation failed: %v", err)
		}
		if books[0].Available != 2 {
			t.Errorf("expected refetched payload, got %+v", books[0])
		}
	})

	t.Run("Nil Cache Fetches Directly", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		browser := NewBrowser(mock, nil, nil)

		if _, err := browser.Books(ctx); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if _, err := browser.Books(ctx); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if got := mock.CallCount("PublicBooks"); got != 2 {
			t.Errorf("expected direct fetches, service called %d times", got)
		}
	})

	t.Run("Malformed Cache Payload Refetches", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		cache := tu.NewMemoryCache()
		cache.Put(KeyPublicBooks, []byte("{{{"))
		browser := NewBrowser(mock, cache, nil)

		if _, err := browser.Books(ctx); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if got := mock.CallCount("PublicBooks"); got != 1 {
			t.Errorf("malformed payload should trigger a fetch, service called %d times", got)
		}
	})

	t.Run("Fetch Failure Propagates", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(context.Context) ([]models.Book, error) {
				return nil, errors.New("failed to fetch books")
			},
		}
		browser := NewBrowser(mock, tu.NewMemoryCache(), nil)

		if _, err := browser.Books(ctx); err == nil {
			t.Error("expected fetch failure to propagate")
		}
	})

	t.Run("Single Record Reads Skip The Cache", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		cache := tu.NewMemoryCache()
		browser := NewBrowser(mock, cache, nil)

		if _, err := browser.Book(ctx, "b1"); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if _, err := browser.Book(ctx, "b1"); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if got := mock.CallCount("PublicBook"); got != 2 {
			t.Errorf("record reads should always fetch, service called %d times", got)
		}
	})

	t.Run("Not Found Passes Through", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBookFn: func(context.Context, string) (*models.Book, error) {
				return nil, shared.ErrBookNotFound
			},
		}
		browser := NewBrowser(mock, nil, nil)

		if _, err := browser.Book(ctx, "gone"); !errors.Is(err, shared.ErrBookNotFound) {
			t.Errorf("expected ErrBookNotFound, got %v", err)
		}
	})

	t.Run("Records Read Through Cache", func(t *testing.T) {
		mock := &tu.MockCatalog{
			BorrowRecordsFn: func(context.Context) ([]models.BorrowRecord, error) {
				return []models.BorrowRecord{{ID: "r1", BookTitle: "Gitanjali"}}, nil
			},
		}
		browser := NewBrowser(mock, tu.NewMemoryCache(), nil)

		if _, err := browser.Records(ctx); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		records, err := browser.Records(ctx)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(records) != 1 || records[0].BookTitle != "Gitanjali" {
			t.Errorf("unexpected records payload: %v", records)
		}
		if got := mock.CallCount("BorrowRecords"); got != 1 {
			t.Errorf("second read should come from the cache, service called %d times", got)
		}
	})
}
