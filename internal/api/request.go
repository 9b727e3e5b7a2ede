package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const jsonContentType = "application/json"

// Envelope is the wrapper every backend response carries.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data"`
	Errors  []string `json:"errors"`
}

type requestOptions struct {
	allowNotFound bool
}

// RequestOption tweaks one request issued through the generic helpers.
type RequestOption func(*requestOptions)

// AllowNotFound makes a 404 read return (nil, nil) instead of an error, for
// by-id lookups that probe existence.
func AllowNotFound() RequestOption {
	return func(o *requestOptions) { o.allowNotFound = true }
}

// Get issues a GET and unwraps the envelope. success=false or a null data
// payload is a failure using the envelope message as the reason.
func Get[T any](ctx context.Context, c *Client, endpoint string, query url.Values, opts ...RequestOption) (*T, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := c.Do(ctx, http.MethodGet, endpoint, query, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && o.allowNotFound {
		return nil, nil
	}
	return decodeEnvelope[T](resp)
}

// Post marshals payload as JSON, issues a POST, and unwraps the envelope.
func Post[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	return send[T](ctx, c, http.MethodPost, endpoint, payload)
}

// Put marshals payload as JSON, issues a PUT, and unwraps the envelope.
func Put[T any](ctx context.Context, c *Client, endpoint string, payload any) (*T, error) {
	return send[T](ctx, c, http.MethodPut, endpoint, payload)
}

// Delete issues a DELETE. A 2xx is success; when the body carries an
// envelope with success=false, its message is surfaced.
func Delete(ctx context.Context, c *Client, endpoint string) error {
	resp, err := c.Do(ctx, http.MethodDelete, endpoint, nil, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DecodeError(resp)
	}

	body, _ := io.ReadAll(resp.Body)
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && !env.Success && env.Message != "" {
		return &ResponseError{Status: resp.StatusCode, Message: env.Message}
	}
	return nil
}

// PostVoid issues a POST whose success carries no payload. A 2xx with
// success=true (or no parseable envelope) is success; success=false
// surfaces the envelope message.
func PostVoid(ctx context.Context, c *Client, endpoint string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, endpoint, nil, bytes.NewReader(raw), jsonContentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return DecodeError(resp)
	}

	body, _ := io.ReadAll(resp.Body)
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err == nil && !env.Success && env.Message != "" {
		return &ResponseError{Status: resp.StatusCode, Message: env.Message}
	}
	return nil
}

// PostMultipart sends a pre-built multipart body. contentType must be the
// writer-generated value carrying the boundary.
func PostMultipart[T any](ctx context.Context, c *Client, endpoint string, body io.Reader, contentType string) (*T, error) {
	resp, err := c.Do(ctx, http.MethodPost, endpoint, nil, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeEnvelope[T](resp)
}

func send[T any](ctx context.Context, c *Client, method, endpoint string, payload any) (*T, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	resp, err := c.Do(ctx, method, endpoint, nil, bytes.NewReader(raw), jsonContentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeEnvelope[T](resp)
}

func decodeEnvelope[T any](resp *http.Response) (*T, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, DecodeError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env Envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("parsing response JSON: %w", err)
	}
	if !env.Success || env.Data == nil {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &ResponseError{Status: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

// DecodeError builds an error from a non-2xx response. A body carrying a
// structured data.errors list becomes a *ValidationError; otherwise the best
// available human-readable message wins: the envelope message, then the raw
// body text, then the HTTP status line.
func DecodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Message string `json:"message"`
		Data    struct {
			Errors []FieldError `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Data.Errors) > 0 {
			msg := parsed.Message
			if msg == "" {
				msg = "Validation failed"
			}
			return &ValidationError{Message: msg, Fields: parsed.Data.Errors}
		}
		if parsed.Message != "" {
			return &ResponseError{Status: resp.StatusCode, Message: parsed.Message}
		}
	}

	if text := string(bytes.TrimSpace(body)); text != "" {
		return &ResponseError{Status: resp.StatusCode, Message: text}
	}
	return &ResponseError{Status: resp.StatusCode, Message: resp.Status}
}
