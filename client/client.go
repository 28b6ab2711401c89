// Package client is the HTTP façade for callers outside the interceptor
// pipeline: it resolves relative paths against the configured base URL and
// attaches the bearer header from the same source of truth the pipeline
// uses, so a call site is correct whichever way its request leaves the
// process.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-tenant-client/transport"
)

// Client issues requests against a single backend base URL.
type Client struct {
	baseURL string
	tokens  transport.TokenSource
	http    *http.Client
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client; pass the
// pipeline's client to route façade calls through the interceptor chain as
// well.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New creates a façade bound to baseURL. tokens is the same session store
// the identity interceptor reads.
func New(baseURL string, tokens transport.TokenSource, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BuildURL resolves path against the base URL. Leading-slash and bare
// relative paths are both tolerated; an already absolute URL passes through
// untouched.
func (c *Client) BuildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// NewRequest builds a request for path with the bearer header attached and
// a fresh X-Request-Id for correlation.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), body)
	if err != nil {
		return nil, fmt.Errorf("[NewRequest] %w", err)
	}
	if accessToken := c.tokens.CurrentAccessToken(); accessToken != "" {
		req.Header.Set(transport.HeaderAuthorization, transport.BearerValue(accessToken))
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// Do executes a request built by NewRequest.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

// GetJSON issues a GET for path and decodes the response body into out.
// out may be nil to discard the body.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// PostJSON issues a POST with a JSON-encoded payload and decodes the
// response into out.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("[PostJSON] failed to encode payload: %w", err)
	}
	req, err := c.NewRequest(ctx, http.MethodPost, path, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request to %s failed with status %d", req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
