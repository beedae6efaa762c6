package bluefox

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handler processes a single webhook event. A returned error is logged
// and swallowed; it never reaches the webhook sender.
type Handler func(ctx context.Context, event *Event) error

// WebhookTestResult reports the outcome of posting a synthetic event to
// an arbitrary endpoint.
type WebhookTestResult struct {
	StatusCode   int
	ResponseTime time.Duration
}

// WebhookService validates, parses and dispatches inbound webhook
// requests. Bluefox authenticates webhooks with a bearer token (the
// account API key, or a rotation key set), not an HMAC signature.
type WebhookService struct {
	client     *Client
	keys       []string
	httpClient *http.Client

	mu       sync.RWMutex
	handlers map[EventType]Handler
}

// On registers the handler for an event type, replacing any previous
// one. Events with no registered handler are still parsed and returned
// by Handle.
func (s *WebhookService) On(t EventType, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == nil {
		delete(s.handlers, t)
		return
	}
	s.handlers[t] = h
}

// ValidateRequest authenticates an inbound webhook request by comparing
// its bearer token against the configured key set.
func (s *WebhookService) ValidateRequest(r *http.Request) error {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || token == "" {
		return &Error{
			Code:    CodeAuthenticationError,
			Status:  http.StatusUnauthorized,
			Message: "missing bearer token",
			Err:     ErrInvalidWebhookKey,
		}
	}

	for _, key := range s.keys {
		if subtle.ConstantTimeCompare([]byte(token), []byte(key)) == 1 {
			return nil
		}
	}

	return &Error{
		Code:    CodeAuthenticationError,
		Status:  http.StatusUnauthorized,
		Message: "webhook bearer token matches no configured key",
		Err:     ErrInvalidWebhookKey,
	}
}

// ParseEvent decodes the request body into an Event. Unknown event type
// strings are preserved as-is so that new server-side types do not
// break parsing; a missing type is a validation failure.
func (s *WebhookService) ParseEvent(r *http.Request) (*Event, error) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		return nil, newValidationError(
			fmt.Sprintf("malformed webhook payload: %v", err), nil)
	}
	if event.Type == "" {
		return nil, newValidationError("webhook payload has no event type", nil)
	}
	return &event, nil
}

// Handle runs the full inbound pipeline: authenticate, parse, dispatch.
// Handler errors are logged and swallowed so the webhook can always be
// acknowledged; validation and parse failures are returned. The parsed
// event is returned in either case once parsing succeeded.
func (s *WebhookService) Handle(ctx context.Context, r *http.Request) (*Event, error) {
	if err := s.ValidateRequest(r); err != nil {
		return nil, err
	}

	event, err := s.ParseEvent(r)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	handler := s.handlers[event.Type]
	s.mu.RUnlock()

	if handler == nil {
		s.client.logger.Debug().
			Str("type", string(event.Type)).
			Msg("no handler registered for webhook event")
		return event, nil
	}

	if err := handler(ctx, event); err != nil {
		s.client.logger.Error().
			Err(err).
			Str("type", string(event.Type)).
			Msg("webhook handler failed")
	}

	return event, nil
}

// Test posts a synthetic event of the given type to an arbitrary URL.
// Useful for verifying an endpoint before pointing Bluefox at it.
func (s *WebhookService) Test(ctx context.Context, url string, eventType EventType) (*WebhookTestResult, error) {
	if err := requireFields(map[string]string{
		"url":  url,
		"type": string(eventType),
	}); err != nil {
		return nil, err
	}

	event := &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
		EmailData: &EventEmailData{
			To:      "test@example.com",
			Subject: "Bluefox webhook test",
		},
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, wrapError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("invalid webhook URL: %v", err), nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if len(s.keys) > 0 {
		req.Header.Set("Authorization", "Bearer "+s.keys[0])
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Code:    CodeNetworkError,
			Message: fmt.Sprintf("webhook test request failed: %v", err),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	return &WebhookTestResult{
		StatusCode:   resp.StatusCode,
		ResponseTime: time.Since(start),
	}, nil
}
