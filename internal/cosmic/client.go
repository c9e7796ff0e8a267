// Package cosmic provides a client for the Cosmic headless CMS bucket API.
//
// Reads authenticate with the bucket read key as a query parameter; writes
// authenticate with the write key as a bearer token. Media uploads go to the
// dedicated upload host.
package cosmic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIURL    = "https://api.cosmicjs.com/v3"
	defaultUploadURL = "https://workers.cosmicjs.com/v3"
)

// Config holds bucket credentials and endpoint overrides.
type Config struct {
	BucketSlug string
	ReadKey    string
	WriteKey   string
	APIURL     string // Optional; defaults to the public API host
	UploadURL  string // Optional; defaults to the public upload host
}

// Client provides access to one Cosmic bucket.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new bucket client. Returns an error if any required
// credential is missing, so misconfiguration fails at startup rather than on
// the first request.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BucketSlug == "" {
		return nil, fmt.Errorf("cosmic: bucket slug is required")
	}
	if cfg.ReadKey == "" {
		return nil, fmt.Errorf("cosmic: read key is required")
	}
	if cfg.WriteKey == "" {
		return nil, fmt.Errorf("cosmic: write key is required")
	}

	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.UploadURL == "" {
		cfg.UploadURL = defaultUploadURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.UploadURL = strings.TrimRight(cfg.UploadURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// 10 requests per second, burst of 20. Analysis fan-out creates
		// records one at a time, so this only guards against runaway loops.
		rateLimiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:      logger,
	}, nil
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}

// objectsURL returns the objects collection endpoint for the bucket.
func (c *Client) objectsURL() string {
	return fmt.Sprintf("%s/buckets/%s/objects", c.cfg.APIURL, c.cfg.BucketSlug)
}

// mediaURL returns the media upload endpoint for the bucket.
func (c *Client) mediaURL() string {
	return fmt.Sprintf("%s/buckets/%s/media", c.cfg.UploadURL, c.cfg.BucketSlug)
}
