package bluefox

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/JamalLyons/bluefox-email/internal/api"
)

// Client is the main Bluefox client. One client holds one API key and
// one shared rate limiter; the feature services hang off it.
type Client struct {
	apiClient *api.Client
	logger    zerolog.Logger

	// Subscribers manages subscriber-list membership.
	Subscribers *SubscriberService
	// Emails sends transactional and triggered email.
	Emails *EmailService
	// Webhooks validates, parses and dispatches inbound webhook events.
	Webhooks *WebhookService
}

// New creates a new Bluefox client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:    api.DefaultBaseURL,
		timeout:    api.DefaultTimeout,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.Nop()
	switch {
	case cfg.loggerSet:
		logger = cfg.logger
	case cfg.debug:
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithTimeout(cfg.timeout),
		api.WithMaxRetries(cfg.maxRetries),
		api.WithLogger(logger),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.reqInterceptor != nil {
		apiOpts = append(apiOpts, api.WithRequestInterceptor(cfg.reqInterceptor))
	}
	if cfg.respInterceptor != nil {
		apiOpts = append(apiOpts, api.WithResponseInterceptor(cfg.respInterceptor))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	webhookKeys := cfg.webhookKeys
	if len(webhookKeys) == 0 {
		webhookKeys = []string{apiKey}
	}

	c := &Client{
		apiClient: apiClient,
		logger:    logger,
	}
	c.Subscribers = &SubscriberService{client: c}
	c.Emails = &EmailService{client: c}
	c.Webhooks = &WebhookService{
		client:     c,
		keys:       webhookKeys,
		httpClient: apiClient.HTTPClient(),
		handlers:   make(map[EventType]Handler),
	}

	return c, nil
}

// RateLimit returns the advisory quota counters from the most recent
// server response. Remaining is -1 until the server has reported a
// quota. The server stays authoritative; these values only drive the
// client-side pre-flight gate.
func (c *Client) RateLimit() (limit, remaining int64, reset time.Time) {
	limit, remaining, resetMillis := c.apiClient.RateLimiter().Snapshot()
	return limit, remaining, time.UnixMilli(resetMillis)
}

// do executes a request through the shared execution core and converts
// the error to the public type.
func (c *Client) do(ctx context.Context, method, path string, body, result any) (*Response, error) {
	resp, err := c.apiClient.Do(ctx, method, path, body, result)
	if err != nil {
		return nil, wrapError(err)
	}
	return resp, nil
}
