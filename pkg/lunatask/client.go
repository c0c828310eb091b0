package lunatask

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
)

// Client is an HTTP client for the Lunatask API. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	baseURL string
	tokens  oauth2.TokenSource
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a new Lunatask API client.
//
// Required options (one of):
//   - WithAccessToken: sets the access token
//   - WithTokenSource: sets a token source
//
// Optional options:
//   - WithBaseURL: overrides the API endpoint (default: DefaultBaseURL)
//   - WithTimeout: sets the HTTP client timeout (default: 30s)
//   - WithHTTPClient: replaces the HTTP client
//   - WithLogger: sets the diagnostic logger (default: stderr)
//
// Example:
//
//	client, err := lunatask.NewClient(
//	    lunatask.WithAccessToken(os.Getenv("LUNATASK_ACCESS_TOKEN")),
//	)
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.tokens == nil {
		return nil, errors.New("access token is required: use WithAccessToken or WithTokenSource option")
	}
	if cfg.baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	logger := cfg.logger
	if !cfg.loggerSet {
		logger = log.New(os.Stderr, "[lunatask] ", log.LstdFlags)
	} else if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		tokens:  cfg.tokens,
		http:    hc,
		logger:  logger,
	}, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping calls the health endpoint and returns an error unless the server
// answers with "pong".
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return c.fail("ping", err)
	}

	var body pingResponse
	if err := c.do(req, "ping", &body); err != nil {
		return c.fail("ping", err)
	}

	if body.Message != "pong" {
		return c.fail("ping", ErrUnexpectedPong)
	}

	return nil
}

// CheckConnection reports whether the API is reachable with the configured
// token. Unlike every other method it never returns an error: failures are
// logged and reported as false.
func (c *Client) CheckConnection(ctx context.Context) bool {
	return c.Ping(ctx) == nil
}
