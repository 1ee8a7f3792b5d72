package ui

import (
	"slices"
	"sync"

	"github.com/akasheyy/navajuvala-frontend/internal/favorites"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
)

// BookCard is a self-contained presentation of one book's liked state. Each
// card owns a favorites subscription: a toggle flips the card immediately,
// writes through the store under the card's origin token, and the store's
// broadcast of that same write is suppressed exactly once so the card does
// not re-apply its own change. Broadcasts from anywhere else (another card,
// another view) land normally, keeping every card in sync.
type BookCard struct {
	mu     sync.Mutex
	store  *favorites.Store
	book   models.Book
	origin string
	liked  bool
	echoes int
	cancel func()
}

// NewBookCard builds a card seeded from the store's current state.
func NewBookCard(store *favorites.Store, book models.Book) *BookCard {
	return &BookCard{
		store:  store,
		book:   book,
		origin: shared.GenerateID(),
		liked:  store.IsLiked(book.ID),
	}
}

// Mount subscribes the card to store broadcasts and reports each applied
// change through notify. Call Unmount when the card leaves the screen.
func (c *BookCard) Mount(notify func(favorites.Change)) {
	_, cancel := c.store.Subscribe(func(change favorites.Change) {
		if c.apply(change) && notify != nil {
			notify(change)
		}
	})

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
}

// Unmount cancels the subscription. Safe to call on an unmounted card.
func (c *BookCard) Unmount() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Liked reports the card's current badge state.
func (c *BookCard) Liked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liked
}

// Book returns the book the card presents.
func (c *BookCard) Book() models.Book {
	return c.book
}

// Toggle flips the badge optimistically, then persists through the store.
// The store echoes the write back to every subscriber; the pending counter
// swallows this card's own echo.
func (c *BookCard) Toggle() bool {
	c.mu.Lock()
	c.liked = !c.liked
	c.echoes++
	liked := c.liked
	c.mu.Unlock()

	c.store.ToggleFrom(c.origin, c.book.ID)
	return liked
}

// apply folds a broadcast into the card and reports whether the card
// changed in response.
func (c *BookCard) apply(change favorites.Change) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if change.Origin == c.origin && c.echoes > 0 {
		c.echoes--
		return false
	}

	c.liked = slices.Contains(change.IDs, c.book.ID)
	return true
}
