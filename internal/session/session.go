// package session owns the admin bearer credential and the view guard built on it.
//
// The token is an opaque string persisted device-local between login and
// logout. The guard is presence-only: authorization failures surface
// per-request, never by pre-validating the token.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"golang.org/x/oauth2"
)

// Routes the guard hands back to navigating callers.
const (
	LoginRoute   = "/admin/login"
	LandingRoute = "/"
)

var _ oauth2.TokenSource = (*Store)(nil)

// Store persists the admin bearer token as a raw string file.
//
// It implements [oauth2.TokenSource] so the catalog client can attach the
// Authorization header through the standard transport plumbing.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a token store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the persisted bearer token, or [shared.ErrNotAuthenticated]
// when none is stored.
func (s *Store) Token() (*oauth2.Token, error) {
	raw := s.Raw()
	if raw == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}, nil
}

// Raw returns the persisted token string, or "" when absent or unreadable.
func (s *Store) Raw() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Present reports whether a token is currently stored.
func (s *Store) Present() bool {
	return s.Raw() != ""
}

// Set persists the token, creating parent directories as needed.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Session is the result of a guard check.
type Session struct {
	Authenticated bool
}

// Guard gates entry to admin-only views.
type Guard struct {
	store *Store
}

// NewGuard creates a guard over the given token store.
func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// RequireSession re-checks token presence. Callers seeing an
// unauthenticated session must redirect to [LoginRoute] before rendering
// privileged content. The check runs on every admin view entry, so a token
// removed elsewhere takes effect on the next navigation.
func (g *Guard) RequireSession() Session {
	return Session{Authenticated: g.store.Present()}
}

// Logout clears the token and returns the public landing destination.
func (g *Guard) Logout() (string, error) {
	if err := g.store.Clear(); err != nil {
		return "", err
	}
	return LandingRoute, nil
}
