package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

// RecordsList prints the full borrow-record ledger with derived status.
func (r *Runner) RecordsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	records, err := r.browser.Records(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	now := time.Now()
	r.writePlainHeader(fmt.Sprintf("Borrow Records (%d)", len(records)))
	for _, record := range records {
		r.writePlain("%-14s %-8s %s — %s (due %s)\n",
			record.ID, models.RecordStatus(record, now), record.BookTitle, record.BorrowerName, record.ReturnDate)
	}
	return nil
}

// RecordsShow prints one record joined with the book it references.
func (r *Runner) RecordsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: record id", shared.ErrMissingArgument)
	}

	detail, err := r.browser.Record(ctx, id)
	if errors.Is(err, shared.ErrRecordNotFound) {
		return r.writePlain("Record %s is no longer in the ledger.\n", id)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	record := detail.Record
	r.writePlainHeader(fmt.Sprintf("%s — %s", record.BookTitle, record.BorrowerName))
	r.writePlain("Status: %s\n", models.RecordStatus(record, time.Now()))
	r.writePlain("Phone: %s\n", record.Phone)
	if record.Address != "" {
		r.writePlain("Address: %s\n", record.Address)
	}
	r.writePlain("Borrowed: %s\n", record.BorrowDate)
	r.writePlain("Due: %s\n", record.ReturnDate)
	if record.Returned && record.ReturnedAt != "" {
		r.writePlain("Returned: %s\n", record.ReturnedAt)
	}
	if record.Notes != "" {
		r.writePlainln("Notes: %s", record.Notes)
	}
	if detail.Book.ID != "" {
		r.writePlainln("Book: %s by %s (%s)", detail.Book.Title, detail.Book.Author, detail.Book.ISBN)
	}
	return nil
}

// RecordsCreate lends a book to a borrower.
func (r *Runner) RecordsCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	bookID := cmd.StringArg("book-id")
	if bookID == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}

	draft := flows.RecordDraft{
		BorrowerName: cmd.String("borrower"),
		Phone:        cmd.String("phone"),
		Address:      cmd.String("address"),
		BorrowDate:   cmd.String("borrow-date"),
		ReturnDate:   cmd.String("return-date"),
		Notes:        cmd.String("notes"),
	}

	record, err := r.engine.CreateBorrowRecord(ctx, bookID, r.bookTitle(ctx, bookID), draft)
	if err != nil {
		return err
	}

	r.logger.Info("borrow record created", "id", record.ID, "due", record.ReturnDate)
	return nil
}

// RecordsReturn marks a record as returned.
func (r *Runner) RecordsReturn(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: record id", shared.ErrMissingArgument)
	}
	return r.engine.ReturnBorrowRecord(ctx, id, r.recordTitle(ctx, id))
}

// recordTitle resolves the borrowed book's name for return notices,
// falling back to the record id when the lookup fails.
func (r *Runner) recordTitle(ctx context.Context, id string) string {
	detail, err := r.browser.Record(ctx, id)
	if err != nil || detail.Record.BookTitle == "" {
		return id
	}
	return detail.Record.BookTitle
}

// RecordsDelete removes a record after an explicit --yes.
func (r *Runner) RecordsDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: record id", shared.ErrMissingArgument)
	}

	if err := r.engine.DeleteBorrowRecord(ctx, id, cmd.Bool("yes")); err != nil {
		if errors.Is(err, flows.ErrConfirmationRequired) {
			return fmt.Errorf("%w: re-run with --yes to delete %s", err, id)
		}
		return err
	}
	return nil
}

// Stats prints the dashboard counters.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	stats, err := r.catalog.Stats(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Dashboard")
	r.writePlain("Books: %d\n", stats.TotalBooks)
	r.writePlain("Users: %d\n", stats.TotalUsers)
	r.writePlain("Borrowed: %d\n", stats.BorrowedBooks)
	r.writePlain("Available: %d\n", stats.AvailableBooks)
	return nil
}
