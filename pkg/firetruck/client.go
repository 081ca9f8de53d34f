// Package firetruck is a client for the FireTruck REST API.
//
// Every request carries the API key as the apikey query parameter and the
// configured header set. Responses with a status other than 200 are returned
// together with a *ResponseError so the status and body remain inspectable.
package firetruck

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/firetruck-io/firetruck-go/pkg/httpclient"
)

// Client issues requests against the FireTruck API.
type Client struct {
	mu        sync.RWMutex
	cfg       Config
	transport httpclient.Client
	log       Logger
}

// New creates a client with the default configuration for apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewWithConfig(DefaultConfig(apiKey), opts...)
}

// NewWithConfig creates a client from an explicit configuration. The config is copied.
func NewWithConfig(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		cfg: cfg.clone(),
		log: Discard,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	if c.transport == nil {
		c.transport = httpclient.NewRestyClient(c.cfg.Timeout)
	}
	return c, nil
}

// Get performs a GET request. See Do for error semantics.
func (c *Client) Get(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, opts).Unwrap()
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, opts).Unwrap()
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, opts).Unwrap()
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, opts).Unwrap()
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts *Options) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, opts).Unwrap()
}

// Do performs a request and returns its tagged outcome.
//
// A non-200 status yields both the Response and a *ResponseError. Status errors
// raised by the transport are normalized the same way. Network and decode
// failures are wrapped in a *TransportError.
func (c *Client) Do(ctx context.Context, method, path string, opts *Options) Result {
	cfg := c.Config()

	req, err := buildRequest(cfg, method, path, opts)
	if err != nil {
		return Result{Err: err}
	}

	start := time.Now()
	raw, err := c.transport.Do(ctx, req)
	if err != nil {
		var statusErr *httpclient.StatusError
		if !errors.As(err, &statusErr) || statusErr.Response == nil {
			c.log.ErrorObj("firetruck request failed", "firetruck_request", map[string]any{
				"method": method,
				"path":   path,
				"error":  err.Error(),
			})
			return Result{Err: &TransportError{Err: err}}
		}
		raw = statusErr.Response
	}

	resp, err := normalize(raw)
	meta := map[string]any{
		"method":     method,
		"path":       path,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}
	if resp != nil {
		meta["status"] = resp.StatusCode
	}
	switch {
	case err == nil:
		c.log.DebugObj("firetruck request completed", "firetruck_request", meta)
	case errors.Is(err, ErrResponse):
		c.log.WarnObj("firetruck request returned non-200 status", "firetruck_request", meta)
	default:
		meta["error"] = err.Error()
		c.log.ErrorObj("firetruck response decode failed", "firetruck_request", meta)
	}
	return Result{Response: resp, Err: err}
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.clone()
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.APIKey
}

// SetAPIKey replaces the API key.
func (c *Client) SetAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return invalidArgument("SetAPIKey", "api key must not be empty")
	}
	c.mu.Lock()
	c.cfg.APIKey = apiKey
	c.mu.Unlock()
	return nil
}

// APIVersion returns the version segment, e.g. v1.
func (c *Client) APIVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Version
}

// SetAPIVersion replaces the version segment.
func (c *Client) SetAPIVersion(version string) error {
	if strings.Trim(version, "/ ") == "" {
		return invalidArgument("SetAPIVersion", "api version must not be empty")
	}
	c.mu.Lock()
	c.cfg.Version = version
	c.mu.Unlock()
	return nil
}

// APIURL returns the versioned API root.
func (c *Client) APIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.APIURL()
}

// Headers returns a copy of the configured headers.
func (c *Client) Headers() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyMap(c.cfg.Headers)
}

// Header returns a single configured header, or "" if unset. The name is case-insensitive.
func (c *Client) Header(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Headers[http.CanonicalHeaderKey(key)]
}

// SetHeader sets a single default header.
func (c *Client) SetHeader(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return invalidArgument("SetHeader", "header name must not be empty")
	}
	c.mu.Lock()
	c.cfg.Headers[http.CanonicalHeaderKey(key)] = value
	c.mu.Unlock()
	return nil
}

// SetHeaders sets each header in headers. Nothing is applied if any name is empty.
func (c *Client) SetHeaders(headers map[string]string) error {
	for k := range headers {
		if strings.TrimSpace(k) == "" {
			return invalidArgument("SetHeaders", "header name must not be empty")
		}
	}
	c.mu.Lock()
	c.cfg.Headers = mergeHeaders(c.cfg.Headers, headers)
	c.mu.Unlock()
	return nil
}

// Verify reports whether TLS peers are verified.
func (c *Client) Verify() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Verify
}

// SetVerify toggles TLS peer verification.
func (c *Client) SetVerify(verify bool) {
	c.mu.Lock()
	c.cfg.Verify = verify
	c.mu.Unlock()
}
