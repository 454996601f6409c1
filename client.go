package plunk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/plunk/pkg/logger"
)

const (
	sendPath = "/v1/send"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client sends mail through the Plunk API.
// It is safe for concurrent use; sends share a single connection to the API host.
type Client struct {
	config     Config
	endpoint   string
	userAgent  string
	logger     *slog.Logger
	httpClient *http.Client
	once       sync.Once
}

// New creates a client. Missing host and port take their defaults;
// an invalid config returns a KindInvalidArgument error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		endpoint:  "https://" + net.JoinHostPort(cfg.APIHost, strconv.Itoa(cfg.APIPort)) + sendPath,
		userAgent: DefaultUserAgent,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the URL sends are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send delivers payload and returns the API result.
// A nil payload fails with KindInvalidArgument without any network call.
// Transport failures wrap ErrRequestFailed; API failures are *Error values.
func (c *Client) Send(ctx context.Context, payload Payload) (*SendResult, error) {
	var wire *WireMessage
	if payload != nil {
		wire = payload.Wire()
	}
	if wire == nil {
		return nil, invalidArgument("payload is nil")
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, invalidArgument(fmt.Sprintf("encode payload: %v", err))
	}

	ctx, _ = ensureSendID(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.DebugContext(ctx, "plunk: sending",
		slog.Int("recipients", len(wire.To)+len(wire.Cc)+len(wire.Bcc)),
		slog.Int("attachments", len(wire.Attachments)),
		slog.Bool("template", wire.TemplateUUID != ""),
	)

	start := time.Now()
	resp, err := c.client().Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "plunk: request failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.ErrorContext(ctx, "plunk: read response failed",
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: read response: %w", ErrRequestFailed, err)
	}

	result, err := classify(resp.StatusCode, respBody)
	if err != nil {
		c.logger.WarnContext(ctx, "plunk: send rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	c.logger.InfoContext(ctx, "plunk: sent",
		slog.Int("emails", len(result.Emails)),
		slog.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// client returns the HTTP client, building it on first use.
// Redirects are never followed: a 3xx is classified like any other status.
func (c *Client) client() *http.Client {
	c.once.Do(func() {
		if c.httpClient != nil {
			hc := *c.httpClient
			hc.CheckRedirect = noRedirect
			c.httpClient = &hc
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.MaxConnsPerHost = 1
		transport.MaxIdleConnsPerHost = 1
		c.httpClient = &http.Client{
			Transport:     transport,
			CheckRedirect: noRedirect,
		}
	})
	return c.httpClient
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}
