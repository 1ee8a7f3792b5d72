package ui

import (
	"fmt"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = bookItem{}
	_ list.Item = recordItem{}
)

// timeNow is swapped out in tests that pin status derivation.
var timeNow = time.Now

// bookItem wraps [models.Book] to implement [list.Item]. The liked badge
// reflects the local favorites store at build time; the list is rebuilt
// whenever the store broadcasts a change.
type bookItem struct {
	book  models.Book
	liked bool
}

func (i bookItem) FilterValue() string { return i.book.Title }

func (i bookItem) Title() string {
	if i.liked {
		return fmt.Sprintf("%s %s", i.book.Title, styles.liked.Render("♥"))
	}
	return i.book.Title
}

func (i bookItem) Description() string {
	avail := styles.err.Render("out of stock")
	if i.book.InStock() {
		avail = styles.ok.Render(fmt.Sprintf("%d available", i.book.Available))
	}
	desc := fmt.Sprintf("%s • %s", i.book.Author, avail)
	if i.book.Year != "" {
		desc = fmt.Sprintf("%s • %s • %s", i.book.Author, i.book.Year, avail)
	}
	return desc
}

// recordItem wraps [models.BorrowRecord] to implement [list.Item]. Status
// is derived at render time, never trusted from a stored field.
type recordItem struct {
	record models.BorrowRecord
	now    time.Time
}

func (i recordItem) FilterValue() string { return i.record.BorrowerName }
func (i recordItem) Title() string {
	return fmt.Sprintf("%s — %s", i.record.BookTitle, i.record.BorrowerName)
}

func (i recordItem) Description() string {
	var badge string
	switch models.RecordStatus(i.record, i.now) {
	case models.StatusReturned:
		badge = styles.ok.Render("returned")
	case models.StatusOverdue:
		badge = styles.err.Render("overdue")
	default:
		badge = styles.warn.Render("borrowed")
	}
	return fmt.Sprintf("due %s • %s", i.record.ReturnDate, badge)
}
