package firetruck

import (
	"time"

	"github.com/firetruck-io/firetruck-go/pkg/httpclient"
)

// Option configures a Client during construction. Options run after the
// config is copied and before it is validated.
type Option func(*Client) error

// WithBaseURL overrides the API root (without version).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.cfg.BaseURL = baseURL
		return nil
	}
}

// WithVersion overrides the API version segment.
func WithVersion(version string) Option {
	return func(c *Client) error {
		c.cfg.Version = version
		return nil
	}
}

// WithHeaders sets headers on top of the configured ones, key by key.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) error {
		c.cfg.Headers = mergeHeaders(c.cfg.Headers, headers)
		return nil
	}
}

// WithVerify toggles TLS peer verification.
func WithVerify(verify bool) Option {
	return func(c *Client) error {
		c.cfg.Verify = verify
		return nil
	}
}

// WithTimeout sets the per-request timeout applied to every call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return invalidArgument("WithTimeout", "timeout must be positive")
		}
		c.cfg.Timeout = d
		return nil
	}
}

// WithTransport replaces the default resty transport.
func WithTransport(t httpclient.Client) Option {
	return func(c *Client) error {
		if t == nil {
			return invalidArgument("WithTransport", "transport must not be nil")
		}
		c.transport = t
		return nil
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		c.log = OrDiscard(log)
		return nil
	}
}
