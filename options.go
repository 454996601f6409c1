package plunk

import (
	"log/slog"
	"net/http"
)

// DefaultUserAgent identifies this client to the API.
const DefaultUserAgent = "plunk-go (https://github.com/dmitrymomot/plunk)"

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger. If nil, logging stays disabled.
// Build it with SendIDExtractor to get the send ID on every record.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the lazily built single-connection client.
// Useful for tests and proxies. The client is copied and its CheckRedirect
// replaced, so redirects are never followed.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}
