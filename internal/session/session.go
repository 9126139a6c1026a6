// Package session holds the authenticated state of the client: the bearer
// token and the user it authenticates. The token is mirrored to one durable
// file so a session survives process restarts; the user is memory-only and
// re-derived from the API on startup.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/carelfelix2/scrapper/internal/models"
)

// Store is the single source of truth for "is a user logged in, and as whom".
// It is constructed explicitly and injected wherever needed; there is no
// package-level instance.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
	user  *models.User
}

// New creates a Store backed by the durable token file at path, rehydrating
// any previously persisted token. A missing or unreadable file simply yields
// an unauthenticated store.
func New(path string) *Store {
	s := &Store{path: path}
	if b, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(b))
	}
	return s
}

// SetToken stores the token in memory and in the durable file. The two are
// updated together under the lock so a reader never observes one without the
// other. The durable write is best-effort: an I/O failure leaves the in-memory
// token authoritative for the life of the process and is not reported.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if token == "" {
		_ = os.Remove(s.path)
		return
	}
	s.persist(token)
}

// SetUser replaces the cached user profile. Memory only.
func (s *Store) SetUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Logout clears token and user and removes the durable copy.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	_ = os.Remove(s.path)
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the cached user profile, or nil when none is known.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether a token is held.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// persist writes the token atomically: temp file in the same directory, then
// rename. Callers hold s.mu.
func (s *Store) persist(token string) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return
	}
	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(name)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return
	}
	if err := os.Chmod(name, 0o600); err != nil {
		os.Remove(name)
		return
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
	}
}
