// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
)

// MockCatalog is a configurable test double for [services.Catalog].
//
// Unset function fields succeed with zero values. Every invocation is
// recorded in Calls for order assertions.
type MockCatalog struct {
	mu    sync.Mutex
	Calls []string

	LoginFn              func(ctx context.Context, email, password string) (*models.LoginResponse, error)
	BooksFn              func(ctx context.Context) ([]models.Book, error)
	BookFn               func(ctx context.Context, id string) (*models.Book, error)
	PublicBooksFn        func(ctx context.Context) ([]models.Book, error)
	PublicBookFn         func(ctx context.Context, id string) (*models.Book, error)
	CreateBookFn         func(ctx context.Context, input services.BookInput) (*models.Book, error)
	UpdateBookFn         func(ctx context.Context, id string, patch services.BookPatch) (*models.Book, error)
	DeleteBookFn         func(ctx context.Context, id string) error
	StatsFn              func(ctx context.Context) (*models.DashboardStats, error)
	BorrowBookFn         func(ctx context.Context, id string) error
	ReturnBookFn         func(ctx context.Context, id string) error
	CreateBorrowRecordFn func(ctx context.Context, bookID string, req models.BorrowRequest) (*models.BorrowRecord, error)
	BorrowRecordsFn      func(ctx context.Context) ([]models.BorrowRecord, error)
	BorrowRecordFn       func(ctx context.Context, id string) (*models.BorrowDetail, error)
	ReturnBorrowRecordFn func(ctx context.Context, id string) error
	DeleteBorrowRecordFn func(ctx context.Context, id string) error
}

func (m *MockCatalog) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallCount returns how many times the named operation was invoked.
func (m *MockCatalog) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.Calls {
		if call == name {
			count++
		}
	}
	return count
}

func (m *MockCatalog) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	m.record("Login")
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return &models.LoginResponse{}, nil
}

func (m *MockCatalog) Books(ctx context.Context) ([]models.Book, error) {
	m.record("Books")
	if m.BooksFn != nil {
		return m.BooksFn(ctx)
	}
	return []models.Book{}, nil
}

func (m *MockCatalog) Book(ctx context.Context, id string) (*models.Book, error) {
	m.record("Book")
	if m.BookFn != nil {
		return m.BookFn(ctx, id)
	}
	return &models.Book{ID: id}, nil
}

func (m *MockCatalog) PublicBooks(ctx context.Context) ([]models.Book, error) {
	m.record("PublicBooks")
	if m.PublicBooksFn != nil {
		return m.PublicBooksFn(ctx)
	}
	return []models.Book{}, nil
}

func (m *MockCatalog) PublicBook(ctx context.Context, id string) (*models.Book, error) {
	m.record("PublicBook")
	if m.PublicBookFn != nil {
		return m.PublicBookFn(ctx, id)
	}
	return &models.Book{ID: id}, nil
}

func (m *MockCatalog) CreateBook(ctx context.Context, input services.BookInput) (*models.Book, error) {
	m.record("CreateBook")
	if m.CreateBookFn != nil {
		return m.CreateBookFn(ctx, input)
	}
	return &models.Book{Title: input.Title}, nil
}

func (m *MockCatalog) UpdateBook(ctx context.Context, id string, patch services.BookPatch) (*models.Book, error) {
	m.record("UpdateBook")
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, id, patch)
	}
	return &models.Book{ID: id}, nil
}

func (m *MockCatalog) DeleteBook(ctx context.Context, id string) error {
	m.record("DeleteBook")
	if m.DeleteBookFn != nil {
		return m.DeleteBookFn(ctx, id)
	}
	return nil
}

func (m *MockCatalog) Stats(ctx context.Context) (*models.DashboardStats, error) {
	m.record("Stats")
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return &models.DashboardStats{}, nil
}

func (m *MockCatalog) BorrowBook(ctx context.Context, id string) error {
	m.record("BorrowBook")
	if m.BorrowBookFn != nil {
		return m.BorrowBookFn(ctx, id)
	}
	return nil
}

func (m *MockCatalog) ReturnBook(ctx context.Context, id string) error {
	m.record("ReturnBook")
	if m.ReturnBookFn != nil {
		return m.ReturnBookFn(ctx, id)
	}
	return nil
}

func (m *MockCatalog) CreateBorrowRecord(ctx context.Context, bookID string, req models.BorrowRequest) (*models.BorrowRecord, error) {
	m.record("CreateBorrowRecord")
	if m.CreateBorrowRecordFn != nil {
		return m.CreateBorrowRecordFn(ctx, bookID, req)
	}
	return &models.BorrowRecord{BookID: bookID}, nil
}

func (m *MockCatalog) BorrowRecords(ctx context.Context) ([]models.BorrowRecord, error) {
	m.record("BorrowRecords")
	if m.BorrowRecordsFn != nil {
		return m.BorrowRecordsFn(ctx)
	}
	return []models.BorrowRecord{}, nil
}

func (m *MockCatalog) BorrowRecord(ctx context.Context, id string) (*models.BorrowDetail, error) {
	m.record("BorrowRecord")
	if m.BorrowRecordFn != nil {
		return m.BorrowRecordFn(ctx, id)
	}
	return &models.BorrowDetail{}, nil
}

func (m *MockCatalog) ReturnBorrowRecord(ctx context.Context, id string) error {
	m.record("ReturnBorrowRecord")
	if m.ReturnBorrowRecordFn != nil {
		return m.ReturnBorrowRecordFn(ctx, id)
	}
	return nil
}

func (m *MockCatalog) DeleteBorrowRecord(ctx context.Context, id string) error {
	m.record("DeleteBorrowRecord")
	if m.DeleteBorrowRecordFn != nil {
		return m.DeleteBorrowRecordFn(ctx, id)
	}
	return nil
}

// MemoryCache is an in-memory catalog.Cache for tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// Invalidated records every key passed to Invalidate, in order.
	Invalidated []string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *MemoryCache) Put(key string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *MemoryCache) Invalidate(keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.Invalidated = append(c.Invalidated, key)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
