package models

import (
	"strings"
	"time"
)

// DateLayout is the wire format for borrow and return dates.
const DateLayout = "2006-01-02"

// Book represents a catalog entry as returned by the service.
//
// Available is qty minus outstanding borrow records and is computed
// server-side; the client never recomputes it locally.
type Book struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ISBN        string   `json:"isbn"`
	Year        string   `json:"year"`
	Qty         int      `json:"qty"`
	Available   int      `json:"available"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Cover       string   `json:"cover,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// InStock reports whether at least one copy is currently loanable.
func (b Book) InStock() bool {
	return b.Available > 0
}

// PrimaryCategory returns the first category, or "General" when the book
// carries none.
func (b Book) PrimaryCategory() string {
	if len(b.Categories) > 0 && b.Categories[0] != "" {
		return b.Categories[0]
	}
	return "General"
}

// BorrowRecord represents a single borrow ledger entry.
//
// BookTitle is denormalized by the server so lists render without a join.
type BorrowRecord struct {
	ID           string `json:"_id"`
	BookID       string `json:"bookId"`
	BookTitle    string `json:"bookTitle"`
	BorrowerName string `json:"borrowerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	BorrowDate   string `json:"borrowDate"`
	ReturnDate   string `json:"returnDate"`
	Notes        string `json:"notes,omitempty"`
	Returned     bool   `json:"returned"`
	ReturnedAt   string `json:"returnedAt,omitempty"`
}

// Status is the derived three-valued state of a borrow record.
type Status int

const (
	StatusBorrowed Status = iota
	StatusOverdue
	StatusReturned
)

func (s Status) String() string {
	switch s {
	case StatusReturned:
		return "Returned"
	case StatusOverdue:
		return "Overdue"
	default:
		return "Borrowed"
	}
}

// DueDate parses the record's return date. The zero time is returned for
// unparseable values, which renders as Borrowed rather than Overdue.
func (r BorrowRecord) DueDate() time.Time {
	due, err := time.Parse(DateLayout, r.ReturnDate)
	if err != nil {
		return time.Time{}
	}
	return due
}

// RecordStatus derives the status of a record at the given instant.
// Returned wins over Overdue, Overdue over Borrowed.
func RecordStatus(r BorrowRecord, now time.Time) Status {
	if r.Returned {
		return StatusReturned
	}
	if due := r.DueDate(); !due.IsZero() && due.Before(now) {
		return StatusOverdue
	}
	return StatusBorrowed
}

// Overdue reports whether the record is unreturned and past its due date.
func (r BorrowRecord) Overdue(now time.Time) bool {
	return RecordStatus(r, now) == StatusOverdue
}

// Admin describes the authenticated administrator returned by login.
type Admin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the payload of a successful admin login.
type LoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// DashboardStats carries aggregate counts for the admin dashboard.
type DashboardStats struct {
	TotalBooks     int `json:"totalBooks"`
	TotalUsers     int `json:"totalUsers"`
	BorrowedBooks  int `json:"borrowedBooks"`
	AvailableBooks int `json:"availableBooks"`
}

// BorrowDetail is a borrow record joined with the book it references.
type BorrowDetail struct {
	Record BorrowRecord `json:"record"`
	Book   Book         `json:"book"`
}

// BorrowRequest is the payload for creating a borrow record against a book.
type BorrowRequest struct {
	BorrowerName string `json:"borrowerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address,omitempty"`
	BorrowDate   string `json:"borrowDate,omitempty"`
	ReturnDate   string `json:"returnDate"`
	Notes        string `json:"notes,omitempty"`
}

// ParseCategories splits a comma-separated category input, trimming
// whitespace and discarding empty segments.
func ParseCategories(input string) []string {
	var categories []string
	for _, segment := range strings.Split(input, ",") {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			categories = append(categories, segment)
		}
	}
	return categories
}
