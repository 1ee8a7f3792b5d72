// package favorites maintains the device-local liked-book set and the
// broadcast that keeps independently-mounted views consistent.
//
// Discipline: writers persist then broadcast, and every live subscriber
// receives the broadcast, including the one that triggered the change. A
// triggering view applies its own optimistic update immediately and then
// suppresses exactly one broadcast carrying its own origin token, so a
// single toggle is never applied twice. All other subscribers apply the
// broadcast unconditionally.
package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/log"
)

// Change describes one toggle applied to the liked set.
type Change struct {
	IDs    []string // snapshot of the set after the change
	Origin string   // registration token of the subscriber that toggled, "" for external writers
}

// Store owns the liked-book id set. Persistence is best-effort: read
// failures and malformed content degrade to an empty set, write failures
// are logged and the in-memory broadcast still fires.
type Store struct {
	mu          sync.Mutex
	path        string
	logger      *log.Logger
	subscribers map[string]func(Change)
}

// NewStore creates a favorites store persisted at path.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		path:        path,
		logger:      logger,
		subscribers: make(map[string]func(Change)),
	}
}

// LikedIDs reads the persisted set. Missing or malformed content yields an
// empty set; nothing propagates past this boundary.
func (s *Store) LikedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// IsLiked reports membership of id in the liked set.
func (s *Store) IsLiked(id string) bool {
	for _, liked := range s.LikedIDs() {
		if liked == id {
			return true
		}
	}
	return false
}

// Count returns the size of the liked set.
func (s *Store) Count() int {
	return len(s.LikedIDs())
}

// Toggle adds id if absent, removes it if present, persists the result, and
// broadcasts to every subscriber. It returns the new set.
func (s *Store) Toggle(id string) []string {
	return s.ToggleFrom("", id)
}

// ToggleFrom is Toggle with an origin token attached to the broadcast, so
// the triggering subscriber can recognize and suppress its own echo.
func (s *Store) ToggleFrom(origin, id string) []string {
	s.mu.Lock()

	current := s.read()
	updated := make([]string, 0, len(current)+1)
	found := false
	for _, liked := range current {
		if liked == id {
			found = true
			continue
		}
		updated = append(updated, liked)
	}
	if !found {
		updated = append(updated, id)
	}

	s.write(updated)

	listeners := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	// Deliver outside the lock so callbacks may re-read the store.
	change := Change{IDs: updated, Origin: origin}
	for _, fn := range listeners {
		fn(change)
	}

	return updated
}

// Subscribe registers fn to run on every toggle anywhere in the running
// client. It returns the subscriber's origin token, for use with
// [Store.ToggleFrom], and a cancel function that removes the registration.
func (s *Store) Subscribe(fn func(Change)) (string, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	origin := shared.GenerateID()
	s.subscribers[origin] = fn

	return origin, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, origin)
	}
}

// read loads the persisted id list. Callers must hold s.mu.
func (s *Store) read() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Debug("malformed favorites content, treating as empty", "path", s.path, "err", err)
		return []string{}
	}
	return ids
}

// write persists the id list best-effort. Callers must hold s.mu.
func (s *Store) write(ids []string) {
	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Debug("failed to encode favorites", "err", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Debug("failed to create favorites directory", "path", s.path, "err", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Debug("failed to persist favorites", "path", s.path, "err", err)
	}
}
