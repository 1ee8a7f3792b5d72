// package flows implements the inventory mutation flows: book
// create/update/delete, borrow/return, and borrow-record management.
//
// Every operation shares one shape: local validation, a single
// request/response round trip, then on success a user-visible notification
// plus invalidation of every cached query whose result set could have
// changed. Failures notify and refresh nothing, so the caller's input
// survives for a retry. Nothing here retries automatically.
package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/log"
)

var (
	// ErrInFlight rejects a duplicate submission while one is running.
	ErrInFlight = errors.New("submission already in flight")

	// ErrConfirmationRequired gates irreversible deletions.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Destinations reported to navigating callers after a successful mutation.
const (
	RouteManageBooks = "/admin/books"
	RouteRecords     = "/admin/borrow-records"
)

// Notice is a user-visible outcome signal.
type Notice struct {
	Success bool
	Title   string
	Detail  string
}

// Notifier receives outcome signals. Presentation (toast, status bar,
// plain text) is the caller's concern.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Invalidator drops cached query results after a mutation. Satisfied by
// the repositories query cache.
type Invalidator interface {
	Invalidate(keys ...string) error
}

// Flow is the per-mutation submission guard. The owning view transitions
// it to Submitting while a request is in flight and disables the
// triggering control for the duration.
type Flow struct {
	mu         sync.Mutex
	submitting bool
}

// Submitting reports whether a submission is in flight.
func (f *Flow) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Run executes fn unless a submission is already in flight, in which case
// it returns [ErrInFlight] without invoking fn.
func (f *Flow) Run(fn func() error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrInFlight
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	return fn()
}

// Engine carries the dependencies every mutation shares.
type Engine struct {
	catalog  services.Catalog
	cache    Invalidator
	notifier Notifier
	logger   *log.Logger
}

// NewEngine creates a mutation engine. cache and notifier may be nil.
func NewEngine(cat services.Catalog, cache Invalidator, notifier Notifier, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{catalog: cat, cache: cache, notifier: notifier, logger: logger}
}

func (e *Engine) notify(n Notice) {
	if e.notifier != nil {
		e.notifier.Notify(n)
	}
}

func (e *Engine) invalidate(keys ...string) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Invalidate(keys...); err != nil {
		e.logger.Debug("cache invalidation failed", "keys", keys, "err", err)
	}
}

// fail converts an operation error into a failure notification and
// returns the error unchanged. No cached state is touched.
func (e *Engine) fail(title string, err error) error {
	e.notify(Notice{Title: title, Detail: err.Error()})
	return err
}

// CreateBook validates the draft, creates the book, and refreshes the
// book lists. The caller navigates to [RouteManageBooks] on success.
func (e *Engine) CreateBook(ctx context.Context, draft BookDraft) (*models.Book, error) {
	input, err := draft.Input()
	if err != nil {
		return nil, e.fail("Book not added", err)
	}

	book, err := e.catalog.CreateBook(ctx, input)
	if err != nil {
		return nil, e.fail("Book not added", err)
	}

	e.invalidate(catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Book added", Detail: fmt.Sprintf("%q added successfully", book.Title)})
	return book, nil
}

// UpdateBook applies a patch of only the fields the admin changed.
// title names the book in notifications.
func (e *Engine) UpdateBook(ctx context.Context, id, title string, patch services.BookPatch) (*models.Book, error) {
	if err := validatePatch(patch); err != nil {
		return nil, e.fail("Book not updated", err)
	}

	book, err := e.catalog.UpdateBook(ctx, id, patch)
	if err != nil {
		return nil, e.fail("Book not updated", err)
	}

	e.invalidate(catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Book updated", Detail: fmt.Sprintf("%q updated successfully", title)})
	return book, nil
}

// DeleteBook removes a book after explicit confirmation.
func (e *Engine) DeleteBook(ctx context.Context, id, title string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := e.catalog.DeleteBook(ctx, id); err != nil {
		return e.fail("Book not deleted", err)
	}

	e.invalidate(catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Book deleted", Detail: fmt.Sprintf("%q removed from the catalog", title)})
	return nil
}

// BorrowBook decrements availability without borrower details (legacy).
func (e *Engine) BorrowBook(ctx context.Context, id, title string) error {
	if err := e.catalog.BorrowBook(ctx, id); err != nil {
		return e.fail("Borrow failed", err)
	}

	e.invalidate(catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Book borrowed", Detail: fmt.Sprintf("%q borrowed", title)})
	return nil
}

// ReturnBook restores availability without a ledger entry (legacy).
func (e *Engine) ReturnBook(ctx context.Context, id, title string) error {
	if err := e.catalog.ReturnBook(ctx, id); err != nil {
		return e.fail("Return failed", err)
	}

	e.invalidate(catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Book returned", Detail: fmt.Sprintf("%q returned", title)})
	return nil
}

// CreateBorrowRecord opens a ledger entry against a book. Missing dates
// take their defaults (today, today+14d); a past due date is accepted and
// the record simply fetches back as Overdue.
func (e *Engine) CreateBorrowRecord(ctx context.Context, bookID, bookTitle string, draft RecordDraft) (*models.BorrowRecord, error) {
	req, err := draft.Request()
	if err != nil {
		return nil, e.fail("Borrow record not created", err)
	}

	record, err := e.catalog.CreateBorrowRecord(ctx, bookID, req)
	if err != nil {
		return nil, e.fail("Borrow record not created", err)
	}

	// The server decrements the book's available count, so the book
	// lists are stale too.
	e.invalidate(catalog.KeyBorrowRecords, catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Borrow record created", Detail: fmt.Sprintf("%q borrowed by %s", bookTitle, req.BorrowerName)})
	return record, nil
}

// ReturnBorrowRecord marks a ledger entry returned.
func (e *Engine) ReturnBorrowRecord(ctx context.Context, id, bookTitle string) error {
	if err := e.catalog.ReturnBorrowRecord(ctx, id); err != nil {
		return e.fail("Return not recorded", err)
	}

	e.invalidate(catalog.KeyBorrowRecords, catalog.KeyAdminBooks, catalog.KeyPublicBooks)
	e.notify(Notice{Success: true, Title: "Marked as returned", Detail: fmt.Sprintf("%q marked as returned", bookTitle)})
	return nil
}

// DeleteBorrowRecord removes a ledger entry after explicit confirmation.
// The book's available count is never restored locally.
func (e *Engine) DeleteBorrowRecord(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := e.catalog.DeleteBorrowRecord(ctx, id); err != nil {
		return e.fail("Borrow record not deleted", err)
	}

	e.invalidate(catalog.KeyBorrowRecords)
	e.notify(Notice{Success: true, Title: "Borrow record deleted", Detail: "record removed from the ledger"})
	return nil
}
