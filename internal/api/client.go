package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for client construction.
const (
	DefaultBaseURL = "https://api.bluefox.email/v1"
	DefaultTimeout = 15 * time.Second
)

// Request is the mutable request description passed to a request
// interceptor before execution.
type Request struct {
	Method  string
	Path    string
	Headers http.Header
	Body    any
}

// Response describes a successful HTTP exchange.
type Response struct {
	Status    int
	Headers   http.Header
	Timestamp time.Time
}

// RequestInterceptor runs before a request is sent. It may mutate the
// request in place. A returned error aborts the call without retry.
type RequestInterceptor func(*Request) error

// ResponseInterceptor runs after a successful response is decoded. A
// returned error fails the call without retry.
type ResponseInterceptor func(*Response) error

// Client executes authenticated requests against the Bluefox API.
type Client struct {
	baseURL         string
	apiKey          string
	httpClient      *http.Client
	timeout         time.Duration
	retry           RetryPolicy
	limiter         *RateLimiter
	reqInterceptor  RequestInterceptor
	respInterceptor ResponseInterceptor
	logger          zerolog.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of attempts per call,
// counting the first.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retry.MaxAttempts = n
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestInterceptor sets the request interceptor.
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *Client) {
		c.reqInterceptor = fn
	}
}

// WithResponseInterceptor sets the response interceptor.
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) {
		c.respInterceptor = fn
	}
}

// WithLogger sets the structured logger used for debug diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		retry:      DefaultRetryPolicy(),
		limiter:    NewRateLimiter(),
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// RateLimiter exposes the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.limiter
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Do executes a request against the API and decodes the JSON response
// into result (which may be nil for operations without a body).
//
// Transient failures (server and network errors) are retried with
// exponential backoff up to the configured attempt budget; every other
// failure returns immediately as an *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) (*Response, error) {
	req := &Request{
		Method:  method,
		Path:    path,
		Headers: make(http.Header),
		Body:    cleanBody(body),
	}
	req.Headers.Set("Authorization", "Bearer "+c.apiKey)
	req.Headers.Set("Content-Type", "application/json")
	req.Headers.Set("Accept", "application/json")

	if c.reqInterceptor != nil {
		if err := c.reqInterceptor(req); err != nil {
			return nil, &Error{
				Code:    CodeUnknownError,
				Message: fmt.Sprintf("request interceptor: %v", err),
				Err:     err,
			}
		}
	}

	if err := c.limiter.Check(); err != nil {
		return nil, err
	}

	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{
				Code:    CodeValidationError,
				Message: fmt.Sprintf("failed to encode request body: %v", err),
				Err:     err,
			}
		}
		payload = data
	}

	var lastErr *Error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		resp, apiErr := c.attempt(ctx, req, payload, result)
		if apiErr == nil {
			return resp, nil
		}

		c.logger.Debug().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("attempt", attempt+1).
			Str("code", string(apiErr.Code)).
			Int("status", apiErr.Status).
			Msg("request failed")

		lastErr = apiErr
		if !apiErr.Retryable() || attempt == c.retry.MaxAttempts-1 {
			break
		}
		if err := c.retry.Wait(ctx, attempt); err != nil {
			return nil, newTimeoutError(req.Method, req.Path)
		}
	}

	return nil, lastErr
}

// attempt performs a single HTTP exchange with a per-attempt timeout.
func (c *Client) attempt(ctx context.Context, req *Request, payload []byte, result any) (*Response, *Error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, bodyReader)
	if err != nil {
		return nil, &Error{
			Code:    CodeUnknownError,
			Message: fmt.Sprintf("failed to build request: %v", err),
			Err:     err,
		}
	}
	httpReq.Header = req.Headers.Clone()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, newTimeoutError(req.Method, req.Path)
		}
		return nil, newNetworkError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, newTimeoutError(req.Method, req.Path)
		}
		return nil, newNetworkError(err)
	}

	// Quota counters follow every server response, success or not.
	c.limiter.UpdateFromHeaders(httpResp.Header)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, parseErrorResponse(httpResp.StatusCode, http.StatusText(httpResp.StatusCode), respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			// A malformed 2xx body will not improve on retry.
			return nil, &Error{
				Code:    CodeUnknownError,
				Status:  httpResp.StatusCode,
				Message: fmt.Sprintf("failed to decode response: %v", err),
				Err:     err,
			}
		}
	}

	resp := &Response{
		Status:    httpResp.StatusCode,
		Headers:   httpResp.Header,
		Timestamp: time.Now(),
	}

	if c.respInterceptor != nil {
		if err := c.respInterceptor(resp); err != nil {
			return nil, &Error{
				Code:    CodeUnknownError,
				Status:  httpResp.StatusCode,
				Message: fmt.Sprintf("response interceptor: %v", err),
				Err:     err,
			}
		}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.Status).
		Msg("request completed")

	return resp, nil
}

// cleanBody strips nil-valued keys from map bodies. Slices and typed
// structs pass through unchanged; only the top level of a map is
// cleaned.
func cleanBody(body any) any {
	m, ok := body.(map[string]any)
	if !ok {
		return body
	}

	cleaned := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		cleaned[k] = v
	}
	return cleaned
}
