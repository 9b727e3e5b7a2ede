package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionExpired is returned for any authenticated call answered with 401.
// The session has already been torn down by the time callers see it.
var ErrSessionExpired = errors.New("your session has expired, please log in again")

// FieldError is one backend-reported validation problem, addressed to a form
// field by name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationError carries the structured field-error list from a rejected
// write. Callers route the field messages individually and show Message as
// the summary.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string { return e.Message }

// ResponseError is a message-only failure from the backend: a non-2xx status
// or an envelope with success=false.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string { return e.Message }

var (
	certKeywords = []string{"certificate", "x509", "tls", "ssl"}
	connKeywords = []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"dial tcp",
		"timeout",
		"timed out",
	}
)

// WrapTransportError maps a network-level failure to an actionable message.
// The classification is textual, matching on the error string: certificate
// trouble gets certificate guidance, connection-level failures get a
// reachability hint with the base URL, everything else passes through
// unchanged. The original error stays in the chain for errors.Is/As.
func WrapTransportError(err error, baseURL string) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range certKeywords {
		if strings.Contains(msg, kw) {
			return fmt.Errorf("certificate error: the API server at %s may use an untrusted or self-signed certificate; trust it or switch to HTTP during development: %w", baseURL, err)
		}
	}
	for _, kw := range connKeywords {
		if strings.Contains(msg, kw) {
			return fmt.Errorf("unable to connect to the API server at %s; check that it is running and that the configured URL is correct: %w", baseURL, err)
		}
	}
	return err
}
