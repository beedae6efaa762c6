package bluefox

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/JamalLyons/bluefox-email/internal/api"
)

// Request is the mutable request description passed to a
// RequestInterceptor before execution.
type Request = api.Request

// Response describes a completed HTTP exchange, passed to a
// ResponseInterceptor.
type Response = api.Response

// RequestInterceptor runs before each request is sent and may mutate it
// in place. A returned error aborts the call without retry.
type RequestInterceptor = api.RequestInterceptor

// ResponseInterceptor runs after each successful response. A returned
// error fails the call without retry.
type ResponseInterceptor = api.ResponseInterceptor

// clientConfig holds configuration for the client. It is immutable
// after New returns.
type clientConfig struct {
	baseURL         string
	timeout         time.Duration
	maxRetries      int
	debug           bool
	httpClient      *http.Client
	logger          zerolog.Logger
	loggerSet       bool
	webhookKeys     []string
	reqInterceptor  RequestInterceptor
	respInterceptor ResponseInterceptor
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL overrides the API base URL.
// Default: https://api.bluefox.email/v1
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-attempt request timeout.
// Default: 15 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of attempts per call, counting
// the first. Only server errors and network errors consume retries.
// Default: 3
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) {
		c.maxRetries = n
	}
}

// WithDebug enables debug logging to stderr. Ignored when WithLogger
// is also given.
func WithDebug() Option {
	return func(c *clientConfig) {
		c.debug = true
	}
}

// WithLogger sets a structured logger for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
		c.loggerSet = true
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithWebhookKeys sets the accepted bearer tokens for inbound webhook
// validation. Use this during key rotation to accept both the old and
// the new key. When unset, the client's API key is the only accepted
// token.
func WithWebhookKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.webhookKeys = keys
	}
}

// WithRequestInterceptor sets a hook invoked before every request.
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *clientConfig) {
		c.reqInterceptor = fn
	}
}

// WithResponseInterceptor sets a hook invoked after every successful
// response.
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *clientConfig) {
		c.respInterceptor = fn
	}
}
