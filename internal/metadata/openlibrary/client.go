// Package openlibrary provides a client for the Open Library search API,
// used to find cover images for detected and recommended books.
package openlibrary

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://openlibrary.org"

// PlaceholderCoverURL is used when no cover can be found or the lookup
// fails. Cover lookups are best-effort and never fail an analysis.
const PlaceholderCoverURL = "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=2000&auto=format,compress"

// Client provides access to the Open Library search API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewClient creates a new Open Library client.
// Rate limited to roughly one request per second with a small burst, in
// line with Open Library's published guidance for anonymous clients.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
