package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gridwatch-in/capharvest/pkg/capharvest/models"
)

// TransportError wraps the last failure of an exhausted download.
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client downloads report files sequentially with fixed retry. No
// concurrent requests are issued, out of deference to the source
// server.
type Client struct {
	base     string
	http     *http.Client
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithRetry sets the attempt count and the fixed delay between
// attempts.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(cl *Client) {
		if attempts > 0 {
			cl.attempts = attempts
		}
		cl.delay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient constructs a client for the given report root.
func NewClient(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		base:     base,
		http:     &http.Client{Timeout: 30 * time.Second},
		attempts: 3,
		delay:    2 * time.Second,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the report URL for a region and month under the
// client's base.
func (c *Client) URL(region string, year int, month time.Month) string {
	return ReportURL(c.base, region, year, month)
}

// Available probes whether reports for the month have been published,
// using a header-only request on the Northern region file as a proxy
// for the whole month. Any transport error or non-2xx status means
// "not available".
func (c *Client) Available(ctx context.Context, year int, month time.Month) bool {
	url := c.URL(models.Regions[0], year, month)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("availability probe failed", "url", url, "err", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Download fetches url into dest, retrying up to the configured
// attempt count with a fixed delay. The caller owns cleanup of dest
// on every path once Download returns nil.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		c.logger.Debug("download attempt", "attempt", attempt, "of", c.attempts, "url", url)

		lastErr = c.fetch(ctx, url, dest)
		if lastErr == nil {
			return nil
		}
		c.logger.Debug("download attempt failed", "attempt", attempt, "err", lastErr)

		if attempt < c.attempts {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return &TransportError{URL: url, Attempts: attempt, Err: ctx.Err()}
			}
		}
	}

	return &TransportError{URL: url, Attempts: c.attempts, Err: lastErr}
}

func (c *Client) fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}
