// Package api is the single choke point for authenticated backend calls. It
// attaches the bearer token and JSON content type, classifies transport
// failures, and converts any 401 into a session teardown plus
// ErrSessionExpired, so no caller handles expiry individually.
package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/hrctl-labs/hrctl/internal/config"
	"github.com/hrctl-labs/hrctl/internal/session"
)

// Client issues authenticated requests against the backend. Each call is
// independent: no retries, no queueing, no deduplication.
type Client struct {
	base  func() string
	store *session.Store
	http  *http.Client
	log   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL replaces the base-URL resolver (tests point it at a mock server).
func WithBaseURL(fn func() string) Option {
	return func(c *Client) { c.base = fn }
}

// WithLogger enables request logging.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a Client bound to the given session store. The base URL
// is resolved per call so config overrides take effect immediately.
func NewClient(store *session.Store, opts ...Option) *Client {
	c := &Client{
		base:  config.APIBaseURL,
		store: store,
		http:  &http.Client{Timeout: 0},
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the currently resolved backend base URL.
func (c *Client) BaseURL() string { return c.base() }

// Store exposes the session store backing this client.
func (c *Client) Store() *session.Store { return c.store }

// Do sends one authenticated request. contentType is set verbatim when
// non-empty; multipart callers pass the writer-generated value so the
// boundary stays intact, JSON callers pass "application/json". A token is
// attached only when one exists; a logged-out call still goes out, just
// without the Authorization header.
//
// A 401 response clears the session and fails with ErrSessionExpired; the
// response is never handed back.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.base() + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.Error(err))
		return nil, WrapTransportError(err, c.base())
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		_ = c.store.Clear()
		return nil, ErrSessionExpired
	}

	return resp, nil
}
