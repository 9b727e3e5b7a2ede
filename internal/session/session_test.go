package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testIdentity() Identity {
	return Identity{
		UserID:    "u1",
		Email:     "jane@company.com",
		FirstName: "Jane",
		LastName:  "Smith",
		Role:      "HR_MANAGER",
	}
}

func TestStore_SetThenRead(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Set(testIdentity(), "tok-123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if got := s.Token(); got != "tok-123" {
		t.Errorf("Token() = %q, want %q", got, "tok-123")
	}
	id, ok := s.Current()
	if !ok {
		t.Fatal("Current() reported logged out after Set")
	}
	if id.Email != "jane@company.com" || id.Role != "HR_MANAGER" {
		t.Errorf("Current() = %+v, want persisted identity", id)
	}
}

func TestStore_EmptyDirIsLoggedOut(t *testing.T) {
	s := NewStore(t.TempDir())

	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() reported logged in with no session file")
	}
}

func TestStore_MalformedFileIsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("not: [valid: yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q for malformed file, want empty", got)
	}
	// The broken file is discarded, not left around.
	if _, err := os.Stat(filepath.Join(dir, fileName)); !os.IsNotExist(err) {
		t.Error("malformed session file was not removed")
	}
}

func TestStore_HalfPairIsLoggedOut(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"token without identity", "token: tok-123\n"},
		{"identity without token", "identity:\n  user_id: u1\n  email: jane@company.com\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, fileName), []byte(tt.body), 0600); err != nil {
				t.Fatal(err)
			}

			s := NewStore(dir)
			if got := s.Token(); got != "" {
				t.Errorf("Token() = %q, want empty for half-present pair", got)
			}
			if _, ok := s.Current(); ok {
				t.Error("Current() reported logged in for half-present pair")
			}
		})
	}
}

func TestStore_SetRejectsIncompletePair(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Set(testIdentity(), ""); err == nil {
		t.Error("Set with empty token should fail")
	}
	if err := s.Set(Identity{}, "tok-123"); err == nil {
		t.Error("Set with empty identity should fail")
	}
}

func TestStore_ClearFiresHooksOncePerTeardown(t *testing.T) {
	s := NewStore(t.TempDir())

	var fired int
	s.OnClear(func() { fired++ })

	// Clearing while logged out is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if fired != 0 {
		t.Fatalf("hook fired %d times with no session", fired)
	}

	if err := s.Set(testIdentity(), "tok-123"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times, want 1", fired)
	}
	if got := s.Token(); got != "" {
		t.Errorf("Token() = %q after Clear, want empty", got)
	}

	// Second clear is idempotent and silent.
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if fired != 1 {
		t.Fatalf("hook fired %d times after double clear, want 1", fired)
	}
}

// unsignedJWT builds a JWT-shaped token with the given claims and a dummy
// signature, enough for unverified parsing.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return fmt.Sprintf("%s.%s.%s", header, body, base64.RawURLEncoding.EncodeToString([]byte("sig")))
}

func TestStore_ExpiresAt(t *testing.T) {
	s := NewStore(t.TempDir())

	exp := time.Now().Add(8 * time.Hour).Truncate(time.Second)
	token := unsignedJWT(t, map[string]any{"sub": "u1", "exp": exp.Unix()})
	if err := s.Set(testIdentity(), token); err != nil {
		t.Fatal(err)
	}

	got, ok := s.ExpiresAt()
	if !ok {
		t.Fatal("ExpiresAt() not ok for token with exp claim")
	}
	if !got.Equal(exp) {
		t.Errorf("ExpiresAt() = %v, want %v", got, exp)
	}
}

func TestStore_ExpiresAt_OpaqueToken(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Set(testIdentity(), "opaque-token"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.ExpiresAt(); ok {
		t.Error("ExpiresAt() ok for non-JWT token")
	}
}
