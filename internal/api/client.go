// Package api provides the HTTP client for the Books Adda backend service.
//
// The client issues one attempt per call: failed requests surface as
// *errors.ServiceError and are never retried here. Retrying is a caller
// decision, and the purchase flow explicitly forbids it.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/booksadda/storefront/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://books-adda-backend.onrender.com"
	defaultTimeout       = 10 * time.Second
	defaultRatePerSecond = 4
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Books Adda API client.
type Client struct {
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Books Adda API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("BooksAdda", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the backend.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
// It has no effect when a custom HTTPDoer is installed.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if hc, ok := client.httpClient.(*http.Client); ok && timeout > 0 {
			hc.Timeout = timeout
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}
