// Package session owns the persisted login state: the authenticated user's
// identity and bearer token, stored together in ~/.hrctl/session.yaml. The
// pair is written and cleared as a unit; a file carrying only one of the two
// is treated as logged out and discarded.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.yaml.in/yaml/v3"
)

const fileName = "session.yaml"

// Identity describes the logged-in user as returned by the login handshake.
// Role stays a plain string here; the auth package owns its interpretation.
type Identity struct {
	UserID    string `yaml:"user_id"`
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

// Session is the persisted identity+token pair.
type Session struct {
	Identity Identity `yaml:"identity"`
	Token    string   `yaml:"token"`
}

func (s *Session) valid() bool {
	return s != nil && s.Token != "" && (s.Identity.UserID != "" || s.Identity.Email != "")
}

// Store reads and writes the session file. Clear hooks registered with
// OnClear fire once per logged-in → logged-out transition, so a forced
// expiry detected anywhere lands the whole application logged out.
type Store struct {
	path string

	mu    sync.Mutex
	hooks []func()
}

// NewStore returns a store persisting to dir/session.yaml.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, fileName)}
}

// OnClear registers a hook invoked whenever a live session is torn down.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// load reads the session file. Any unreadable, unparseable, or half-present
// state behaves as logged out; load never returns an error to callers.
func (s *Store) load() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		// Malformed storage is treated as absent.
		_ = os.Remove(s.path)
		return nil
	}
	if !sess.valid() {
		// Fail safe: never half logged in.
		_ = os.Remove(s.path)
		return nil
	}
	return &sess
}

// Token returns the persisted bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.load(); sess != nil {
		return sess.Token
	}
	return ""
}

// Current returns the persisted identity and whether a session exists.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.load(); sess != nil {
		return sess.Identity, true
	}
	return Identity{}, false
}

// Set persists the identity and token together. The file is written whole,
// so readers never observe a partial pair.
func (s *Store) Set(id Identity, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{Identity: id, Token: token}
	if !sess.valid() {
		return fmt.Errorf("refusing to persist incomplete session")
	}

	data, err := yaml.Marshal(&sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	// 0600: the file holds a bearer token.
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session. It is idempotent; hooks fire only when a live
// session was actually torn down.
func (s *Store) Clear() error {
	s.mu.Lock()
	hadSession := s.load() != nil
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return fmt.Errorf("removing session file: %w", err)
	}
	hooks := make([]func(), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	if hadSession {
		for _, fn := range hooks {
			fn()
		}
	}
	return nil
}

// ExpiresAt peeks the token's exp claim without verifying the signature.
// Display-only; the backend remains the authority on token validity.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
