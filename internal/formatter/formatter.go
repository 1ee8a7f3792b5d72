// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
)

// BooksToCSV converts a book list to CSV with columns: ID, Title, Author, ISBN, Year, Qty, Available, Categories
func BooksToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "ISBN", "Year", "Qty", "Available", "Categories"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		record := []string{
			book.ID,
			book.Title,
			book.Author,
			book.ISBN,
			book.Year,
			strconv.Itoa(book.Qty),
			strconv.Itoa(book.Available),
			strings.Join(book.Categories, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecordsToCSV converts borrow records to CSV. Status is derived against
// now, matching what every list view shows.
func RecordsToCSV(records []models.BorrowRecord, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Book", "Borrower", "Phone", "BorrowDate", "ReturnDate", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.BookTitle,
			record.BorrowerName,
			record.Phone,
			record.BorrowDate,
			record.ReturnDate,
			models.RecordStatus(record, now).String(),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// BooksToMarkdown converts a book list to a Markdown document.
func BooksToMarkdown(books []models.Book, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Catalog"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Books**: %d\n\n", len(books)))

	for i, book := range books {
		avail := "out of stock"
		if book.InStock() {
			avail = fmt.Sprintf("%d available", book.Available)
		}
		categoryPart := ""
		if len(book.Categories) > 0 {
			categoryPart = fmt.Sprintf(" (%s)", strings.Join(book.Categories, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, book.Author, book.Title, categoryPart, avail))
	}

	return buf.Bytes(), nil
}

// BooksToText converts a book list to plain text.
func BooksToText(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Books: %d\n\n", len(books)))
	for i, book := range books {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, book.Author, book.Title))
	}

	return buf.Bytes(), nil
}

// WriteBooksExport writes a book list in the given format (csv, md or txt).
//
// Defaults to catalog.{ext} when path is empty; returns the written path.
func WriteBooksExport(books []models.Book, format, path string) (string, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "csv", "":
		data, err = BooksToCSV(books)
		ext = "csv"
	case "md", "markdown":
		data, err = BooksToMarkdown(books, "")
		ext = "md"
	case "txt", "text":
		data, err = BooksToText(books)
		ext = "txt"
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "catalog." + ext
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// WriteRecordsExport writes the borrow-record ledger as CSV.
//
// Defaults to borrow_records.csv when path is empty; returns the written path.
func WriteRecordsExport(records []models.BorrowRecord, path string, now time.Time) (string, error) {
	data, err := RecordsToCSV(records, now)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "borrow_records.csv"
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
