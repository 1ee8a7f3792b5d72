package flows

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
)

// MaxCoverBytes is the upload ceiling for cover images.
const MaxCoverBytes = 2 << 20 // 2 MiB

// LoanPeriod is the default borrow duration when the admin does not
// override the due date.
const LoanPeriod = 14 * 24 * time.Hour

// BookDraft is the admin's book-creation input before validation.
// Categories is the raw comma-separated field.
type BookDraft struct {
	Title       string
	Author      string
	ISBN        string
	Year        string
	Qty         int
	Description string
	Categories  string
	Cover       *services.CoverFile
}

// Input validates the draft and converts it to the wire input. All
// violations are reported before any network call is made.
func (d BookDraft) Input() (services.BookInput, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", d.Title},
		{"author", d.Author},
		{"isbn", d.ISBN},
		{"year", d.Year},
		{"description", d.Description},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return services.BookInput{}, fmt.Errorf("%s is required: %w", field.name, shared.ErrInvalidInput)
		}
	}

	if d.Qty < 1 {
		return services.BookInput{}, fmt.Errorf("qty must be a positive integer: %w", shared.ErrInvalidInput)
	}

	categories := models.ParseCategories(d.Categories)
	if len(categories) == 0 {
		return services.BookInput{}, fmt.Errorf("at least one category is required: %w", shared.ErrInvalidInput)
	}

	if err := ValidateCover(d.Cover); err != nil {
		return services.BookInput{}, err
	}

	return services.BookInput{
		Title:       strings.TrimSpace(d.Title),
		Author:      strings.TrimSpace(d.Author),
		ISBN:        strings.TrimSpace(d.ISBN),
		Year:        strings.TrimSpace(d.Year),
		Qty:         d.Qty,
		Description: d.Description,
		Categories:  categories,
		Cover:       d.Cover,
	}, nil
}

// validatePatch checks the supplied fields of a partial update; nil
// fields are untouched and skip validation.
func validatePatch(patch services.BookPatch) error {
	if patch.Qty != nil && *patch.Qty < 1 {
		return fmt.Errorf("qty must be a positive integer: %w", shared.ErrInvalidInput)
	}
	if patch.Categories != nil && len(patch.Categories) == 0 {
		return fmt.Errorf("at least one category is required: %w", shared.ErrInvalidInput)
	}
	return ValidateCover(patch.Cover)
}

// ValidateCover enforces the cover contract: image MIME type, at most
// [MaxCoverBytes]. A nil cover is valid, the field is optional.
func ValidateCover(cover *services.CoverFile) error {
	if cover == nil {
		return nil
	}
	if len(cover.Data) > MaxCoverBytes {
		return fmt.Errorf("cover image must be 2 MiB or smaller: %w", shared.ErrInvalidInput)
	}
	if !strings.HasPrefix(http.DetectContentType(cover.Data), "image/") {
		return fmt.Errorf("cover must be an image file: %w", shared.ErrInvalidInput)
	}
	return nil
}

// LoadCover reads and validates a cover image from disk.
func LoadCover(path string) (*services.CoverFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover file: %w", err)
	}

	cover := &services.CoverFile{Name: filepath.Base(path), Data: data}
	if err := ValidateCover(cover); err != nil {
		return nil, err
	}
	return cover, nil
}

// RecordDraft is the borrow-record form input before validation. Dates
// use the wire layout; empty dates take their defaults.
type RecordDraft struct {
	BorrowerName string
	Phone        string
	Address      string
	BorrowDate   string
	ReturnDate   string
	Notes        string

	// now overrides the clock for date defaults in tests.
	now func() time.Time
}

// Request validates the draft and fills date defaults: borrow date
// "today", due date 14 days out. A due date in the past is accepted.
func (d RecordDraft) Request() (models.BorrowRequest, error) {
	if strings.TrimSpace(d.BorrowerName) == "" {
		return models.BorrowRequest{}, fmt.Errorf("borrower name is required: %w", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Phone) == "" {
		return models.BorrowRequest{}, fmt.Errorf("phone is required: %w", shared.ErrInvalidInput)
	}

	now := time.Now
	if d.now != nil {
		now = d.now
	}

	borrowDate := d.BorrowDate
	if borrowDate == "" {
		borrowDate = now().Format(models.DateLayout)
	}
	returnDate := d.ReturnDate
	if returnDate == "" {
		returnDate = now().Add(LoanPeriod).Format(models.DateLayout)
	}

	for _, date := range []string{borrowDate, returnDate} {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return models.BorrowRequest{}, fmt.Errorf("dates must use YYYY-MM-DD: %w", shared.ErrInvalidInput)
		}
	}

	return models.BorrowRequest{
		BorrowerName: strings.TrimSpace(d.BorrowerName),
		Phone:        strings.TrimSpace(d.Phone),
		Address:      d.Address,
		BorrowDate:   borrowDate,
		ReturnDate:   returnDate,
		Notes:        d.Notes,
	}, nil
}
