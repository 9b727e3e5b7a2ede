// Package auth performs the login handshake, password changes, and logout,
// and owns the role/capability rules. Login talks to the backend directly
// rather than through the authenticated client: no token exists yet, and a
// 401 from bad credentials must not read as an expired session.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hrctl-labs/hrctl/internal/api"
	"github.com/hrctl-labs/hrctl/internal/session"
)

const (
	loginPath          = "/api/Auth/login"
	changePasswordPath = "/api/Auth/change-password"
)

// ErrCredentialsRejected marks a login failure caused by the backend
// refusing the credentials, as opposed to the server being unreachable.
var ErrCredentialsRejected = errors.New("credentials rejected")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service drives the authentication endpoints and the session store.
type Service struct {
	client *api.Client
	http   *http.Client
}

// NewService returns a Service sharing the api client's base URL and store.
func NewService(client *api.Client) *Service {
	return &Service{client: client, http: &http.Client{}}
}

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	Role         string `json:"role"`
	ExpiresAt    string `json:"expiresAt"`
}

// SplitFullName normalizes the backend's single full-name string: the final
// whitespace-separated token is the last name, everything before it the
// first name. A single token is all first name; an empty string is neither.
func SplitFullName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}

// Login posts the credentials (unauthenticated), persists the returned
// identity and token on success, and reports true. Rejected credentials
// return false with an error wrapping ErrCredentialsRejected that carries
// the backend's reason; transport and parse failures return an unwrapped
// error so callers can tell the two apart.
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	creds := credentials{Username: username, Password: password}
	if err := validate.Struct(creds); err != nil {
		return false, fmt.Errorf("%w: username and password are required", ErrCredentialsRejected)
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return false, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.BaseURL()+loginPath, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return false, api.WrapTransportError(err, s.client.BaseURL())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading login response: %w", err)
	}

	var env api.Envelope[loginData]
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := fmt.Sprintf("login failed: %s", resp.Status)
		if jsonErr := json.Unmarshal(raw, &env); jsonErr == nil && env.Message != "" {
			reason = env.Message
		} else if text := strings.TrimSpace(string(raw)); text != "" {
			reason = text
		}
		return false, fmt.Errorf("%w: %s", ErrCredentialsRejected, reason)
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("parsing login response: %w", err)
	}
	if !env.Success || env.Data == nil {
		reason := env.Message
		if reason == "" {
			reason = "login failed"
		}
		return false, fmt.Errorf("%w: %s", ErrCredentialsRejected, reason)
	}

	firstName, lastName := SplitFullName(env.Data.FullName)
	id := session.Identity{
		UserID:    env.Data.UserID,
		Email:     env.Data.Email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      env.Data.Role,
	}
	if err := s.client.Store().Set(id, env.Data.Token); err != nil {
		return false, fmt.Errorf("persisting session: %w", err)
	}
	return true, nil
}

// Logout tears down the session unconditionally; calling it while logged
// out is safe.
func (s *Service) Logout() error {
	return s.client.Store().Clear()
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"CurrentPassword"`
	NewPassword        string `json:"NewPassword"`
	ConfirmNewPassword string `json:"ConfirmNewPassword"`
}

// ChangePassword posts the authenticated password-change request. Success is
// a void result; failures surface the backend's message, joining the
// envelope error list when present.
func (s *Service) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	body, err := json.Marshal(changePasswordRequest{
		CurrentPassword:    current,
		NewPassword:        newPassword,
		ConfirmNewPassword: confirm,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	resp, err := s.client.Do(ctx, http.MethodPost, changePasswordPath, nil, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env api.Envelope[json.RawMessage]
	parsed := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("password change failed: %s", resp.Status)
		if parsed {
			if len(env.Errors) > 0 {
				msg = strings.Join(env.Errors, ", ")
			} else if env.Message != "" {
				msg = env.Message
			}
		} else if text := strings.TrimSpace(string(raw)); text != "" {
			msg = text
		}
		return &api.ResponseError{Status: resp.StatusCode, Message: msg}
	}

	if parsed && !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "password change failed"
		}
		return &api.ResponseError{Status: resp.StatusCode, Message: msg}
	}
	return nil
}

// CurrentRole returns the logged-in user's role, or false when logged out.
func (s *Service) CurrentRole() (Role, bool) {
	id, ok := s.client.Store().Current()
	if !ok {
		return "", false
	}
	return Role(id.Role), true
}
