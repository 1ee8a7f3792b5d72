// package services defines interface Catalog for interacting with the
// community-library HTTP service.
package services

import (
	"context"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"golang.org/x/oauth2"
)

// Catalog defines the operations of the remote catalog/borrow-records
// service. All entity identifiers are opaque server-assigned strings.
type Catalog interface {
	// Login authenticates the administrator and persists the returned
	// bearer token in the configured token store.
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)

	// Books retrieves the full book list through the admin endpoint.
	Books(ctx context.Context) ([]models.Book, error)

	// Book retrieves a single book through the admin endpoint.
	Book(ctx context.Context, id string) (*models.Book, error)

	// PublicBooks retrieves the book list without credentials.
	PublicBooks(ctx context.Context) ([]models.Book, error)

	// PublicBook retrieves a single book without credentials.
	PublicBook(ctx context.Context, id string) (*models.Book, error)

	// CreateBook creates a book from a multipart form, including the
	// optional cover image.
	CreateBook(ctx context.Context, input BookInput) (*models.Book, error)

	// UpdateBook applies a partial patch; only supplied fields are sent.
	UpdateBook(ctx context.Context, id string, patch BookPatch) (*models.Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, id string) error

	// Stats retrieves aggregate counts for the admin dashboard.
	Stats(ctx context.Context) (*models.DashboardStats, error)

	// BorrowBook decrements a book's available count without borrower
	// details (legacy operation).
	BorrowBook(ctx context.Context, id string) error

	// ReturnBook restores a book's available count (legacy operation).
	ReturnBook(ctx context.Context, id string) error

	// CreateBorrowRecord opens a borrow ledger entry against a book. The
	// server decrements the book's available count.
	CreateBorrowRecord(ctx context.Context, bookID string, req models.BorrowRequest) (*models.BorrowRecord, error)

	// BorrowRecords retrieves all borrow ledger entries.
	BorrowRecords(ctx context.Context) ([]models.BorrowRecord, error)

	// BorrowRecord retrieves one ledger entry joined with its book.
	BorrowRecord(ctx context.Context, id string) (*models.BorrowDetail, error)

	// ReturnBorrowRecord marks a ledger entry returned.
	ReturnBorrowRecord(ctx context.Context, id string) error

	// DeleteBorrowRecord removes a ledger entry. The book's available
	// count is not restored locally.
	DeleteBorrowRecord(ctx context.Context, id string) error
}

// TokenStore supplies the bearer credential for outgoing requests and
// persists a fresh one after login. Implemented by the session store.
type TokenStore interface {
	oauth2.TokenSource
	Set(token string) error
}

// CoverFile is an in-memory cover image attached to a book create/update.
type CoverFile struct {
	Name string
	Data []byte
}

// BookInput carries the fields of a book creation. All fields except the
// cover are required; validation happens before the request is built.
type BookInput struct {
	Title       string
	Author      string
	ISBN        string
	Year        string
	Qty         int
	Description string
	Categories  []string
	Cover       *CoverFile
}

// BookPatch carries a partial book update. Nil pointers are omitted from
// the form entirely; a pointer to the empty string transmits the empty
// value, which is how a field is cleared.
type BookPatch struct {
	Title       *string
	Author      *string
	ISBN        *string
	Year        *string
	Qty         *int
	Description *string
	Categories  []string // nil leaves categories untouched
	Cover       *CoverFile
}
