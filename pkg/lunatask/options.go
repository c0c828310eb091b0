package lunatask

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Lunatask API endpoint.
const DefaultBaseURL = "https://api.lunatask.app/v1"

// DefaultTimeout bounds each request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	baseURL    string
	tokens     oauth2.TokenSource
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	loggerSet  bool
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
}

// WithAccessToken sets the access token sent on every request.
func WithAccessToken(token string) ClientOption {
	return func(c *clientConfig) {
		if token == "" {
			c.tokens = nil
			return
		}
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
}

// WithTokenSource sets a source the access token is read from on every
// request. Only the token's AccessToken is used.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *clientConfig) {
		c.tokens = ts
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used to issue requests. WithTimeout is
// ignored when a client is supplied.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger failures are reported to. A nil logger
// discards them.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
		c.loggerSet = true
	}
}
