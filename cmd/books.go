package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

// BooksList prints the full inventory, including availability columns the
// public browse view also shows.
func (r *Runner) BooksList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	books, err := r.browser.AdminBooks(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(books, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Inventory (%d books)", len(books)))
	for _, book := range books {
		r.printBookLine(book)
	}
	return nil
}

// BooksAdd creates a book from the command flags.
func (r *Runner) BooksAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	draft := flows.BookDraft{
		Title:       cmd.String("title"),
		Author:      cmd.String("author"),
		ISBN:        cmd.String("isbn"),
		Year:        cmd.String("year"),
		Qty:         int(cmd.Int("qty")),
		Description: cmd.String("description"),
		Categories:  cmd.String("categories"),
	}

	if path := cmd.String("cover"); path != "" {
		cover, err := flows.LoadCover(path)
		if err != nil {
			return err
		}
		draft.Cover = cover
	}

	book, err := r.engine.CreateBook(ctx, draft)
	if err != nil {
		return err
	}

	r.logger.Info("book created", "id", book.ID, "title", book.Title)
	return nil
}

// BooksEdit builds a partial update from the flags that were explicitly
// set. An omitted flag leaves the field untouched; an explicitly empty one
// clears it.
func (r *Runner) BooksEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}

	var patch services.BookPatch
	patched := false

	setString := func(flag string, dest **string) {
		if cmd.IsSet(flag) {
			value := cmd.String(flag)
			*dest = &value
			patched = true
		}
	}
	setString("title", &patch.Title)
	setString("author", &patch.Author)
	setString("isbn", &patch.ISBN)
	setString("year", &patch.Year)
	setString("description", &patch.Description)

	if cmd.IsSet("qty") {
		qty := int(cmd.Int("qty"))
		patch.Qty = &qty
		patched = true
	}
	if cmd.IsSet("categories") {
		patch.Categories = models.ParseCategories(cmd.String("categories"))
		patched = true
	}
	if cmd.IsSet("cover") {
		cover, err := flows.LoadCover(cmd.String("cover"))
		if err != nil {
			return err
		}
		patch.Cover = cover
		patched = true
	}

	if !patched {
		return fmt.Errorf("%w: nothing to update, set at least one field flag", shared.ErrInvalidFlag)
	}

	book, err := r.engine.UpdateBook(ctx, id, r.bookTitle(ctx, id), patch)
	if err != nil {
		return err
	}

	r.logger.Info("book updated", "id", book.ID, "title", book.Title)
	return nil
}

// BooksDelete removes a book after an explicit --yes.
func (r *Runner) BooksDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}

	// The title is only fetched when the deletion will actually run.
	title := id
	if cmd.Bool("yes") {
		title = r.bookTitle(ctx, id)
	}
	if err := r.engine.DeleteBook(ctx, id, title, cmd.Bool("yes")); err != nil {
		if errors.Is(err, flows.ErrConfirmationRequired) {
			return fmt.Errorf("%w: re-run with --yes to delete %s", err, id)
		}
		return err
	}
	return nil
}

// BooksBorrow decrements availability without creating a borrower record.
func (r *Runner) BooksBorrow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}
	return r.engine.BorrowBook(ctx, id, r.bookTitle(ctx, id))
}

// BooksReturn increments availability without touching the ledger.
func (r *Runner) BooksReturn(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}
	return r.engine.ReturnBook(ctx, id, r.bookTitle(ctx, id))
}

// bookTitle resolves the display name for mutation notices so they name
// the book rather than its id. A failed or empty lookup falls back to
// the id.
func (r *Runner) bookTitle(ctx context.Context, id string) string {
	book, err := r.browser.AdminBook(ctx, id)
	if err != nil || book.Title == "" {
		return id
	}
	return book.Title
}
