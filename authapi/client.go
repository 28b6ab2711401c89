// Package authapi implements sessions.Backend over HTTP against the
// backend's authentication endpoints. It deliberately uses a plain
// http.Client rather than the interceptor pipeline: login happens before a
// session exists, and a rejected login must surface to the caller instead
// of tearing the session down.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/sessions"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	refreshPath  = "/auth/refresh"
)

// Client talks to the backend's auth endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ sessions.Backend = (*Client)(nil)

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates an auth API client for baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session payload. A 401 (or 400)
// from the backend surfaces as ErrInvalidCredentials; the caller is shown
// a generic invalid-credentials message either way.
func (c *Client) Login(ctx context.Context, credentials sessions.Credentials) (*sessions.LoginResult, error) {
	var result sessions.LoginResult
	if err := c.post(ctx, loginPath, credentials, &result, apperrors.ErrInvalidCredentials); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account; the response shape matches Login's.
func (c *Client) Register(ctx context.Context, registration sessions.Registration) (*sessions.LoginResult, error) {
	var result sessions.LoginResult
	if err := c.post(ctx, registerPath, registration, &result, apperrors.ErrInvalidCredentials); err != nil {
		return nil, err
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*sessions.TokenPair, error) {
	payload := map[string]string{"refreshToken": refreshToken}
	var pair sessions.TokenPair
	if err := c.post(ctx, refreshPath, payload, &pair, apperrors.ErrInvalidRefreshToken); err != nil {
		return nil, err
	}
	return &pair, nil
}

// post sends a JSON payload and decodes a JSON response. rejectionErr is
// the sentinel returned when the backend refuses the exchange (401/400).
func (c *Client) post(ctx context.Context, path string, payload, out any, rejectionErr error) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("[post] failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("[post] %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "[post] request to %s failed", path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		io.Copy(io.Discard, resp.Body)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("Auth exchange rejected")
		return rejectionErr
	case resp.StatusCode >= 400:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("[post] %s returned status %d: %w", path, resp.StatusCode, apperrors.ErrInternal)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, "[post] failed to decode %s response", path)
	}
	return nil
}
