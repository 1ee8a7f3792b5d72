package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

// Browse lists the public catalog filtered by the active facets.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	facets := catalog.FacetState{
		Query:    cmd.String("query"),
		Category: cmd.String("category"),
	}
	if facets.Category == "" {
		facets.Category = catalog.AllCategories
	}

	books, err := r.browser.Books(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("categories") {
		for _, category := range catalog.Vocabulary(books) {
			r.writePlain("%s\n", category)
		}
		return nil
	}

	if cmd.Bool("share") || cmd.Bool("open") {
		url, err := facets.ShareURL(r.config.API.SiteURL)
		if err != nil {
			return fmt.Errorf("failed to build share URL: %w", err)
		}
		r.writePlain("%s\n", url)
		if cmd.Bool("open") {
			return shared.OpenBrowser(url)
		}
		return nil
	}

	filtered := catalog.Filter(books, facets)

	if cmd.Bool("json") {
		return r.writeJSON(filtered, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Catalog (%d of %d books)", len(filtered), len(books)))
	for _, book := range filtered {
		r.printBookLine(book)
	}
	return nil
}

// Book shows a single public book.
func (r *Runner) Book(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}

	book, err := r.browser.Book(ctx, id)
	if errors.Is(err, shared.ErrBookNotFound) {
		return r.writePlain("Book %s is no longer in the catalog.\n", id)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, cmd.Bool("pretty"))
	}

	r.writePlainHeader(book.Title)
	r.writePlain("Author: %s\n", book.Author)
	if book.ISBN != "" {
		r.writePlain("ISBN: %s\n", book.ISBN)
	}
	if book.Year != "" {
		r.writePlain("Year: %s\n", book.Year)
	}
	if len(book.Categories) > 0 {
		r.writePlain("Categories: %s\n", strings.Join(book.Categories, ", "))
	}
	if book.InStock() {
		r.writePlain("Available: %d of %d\n", book.Available, book.Qty)
	} else {
		r.writePlain("Out of stock\n")
	}
	if r.favorites.IsLiked(book.ID) {
		r.writePlain("♥ liked\n")
	}
	if book.Description != "" {
		r.writePlainln("%s", book.Description)
	}
	return nil
}

// LikedList prints the liked subset of the public catalog.
func (r *Runner) LikedList(ctx context.Context, cmd *cli.Command) error {
	ids := r.favorites.LikedIDs()
	if len(ids) == 0 {
		return r.writePlain("No liked books yet. Use 'liked toggle <id>' while browsing.\n")
	}

	books, err := r.browser.Books(ctx)
	if err != nil {
		return err
	}

	liked := make([]models.Book, 0, len(ids))
	for _, book := range books {
		if r.favorites.IsLiked(book.ID) {
			liked = append(liked, book)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(liked, false)
	}

	r.writePlainHeader(fmt.Sprintf("Liked Books (%d)", len(liked)))
	for _, book := range liked {
		r.printBookLine(book)
	}

	// Liked ids can outlive the books they point at.
	if len(liked) < len(ids) {
		r.writePlain("\n%d liked id(s) no longer match a catalog book.\n", len(ids)-len(liked))
	}
	return nil
}

// LikedToggle flips a book's liked state on this device.
func (r *Runner) LikedToggle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}

	r.favorites.Toggle(id)
	if r.favorites.IsLiked(id) {
		return r.writePlain("♥ Liked %s\n", id)
	}
	return r.writePlain("Removed %s from liked books\n", id)
}

func (r *Runner) printBookLine(book models.Book) {
	liked := " "
	if r.favorites.IsLiked(book.ID) {
		liked = "♥"
	}
	avail := "out of stock"
	if book.InStock() {
		avail = fmt.Sprintf("%d available", book.Available)
	}
	r.writePlain("%s %-14s %s — %s (%s)\n", liked, book.ID, book.Title, book.Author, avail)
}
