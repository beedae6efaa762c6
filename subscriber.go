package bluefox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SubscriberStatus is the membership state of a subscriber within a
// list. Transitions are server-authoritative; the SDK only issues the
// transition request and reflects the returned status.
type SubscriberStatus string

// Subscriber statuses.
const (
	StatusActive       SubscriberStatus = "active"
	StatusPaused       SubscriberStatus = "paused"
	StatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber is a member of a subscriber list.
type Subscriber struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Status      SubscriberStatus `json:"status"`
	PausedUntil *time.Time       `json:"pausedUntil,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// SubscriberList is a page of subscribers in a list.
type SubscriberList struct {
	Items []Subscriber `json:"items"`
	Count int          `json:"count"`
}

// UpdateSubscriberParams describes a partial update. Only non-nil
// fields are sent.
type UpdateSubscriberParams struct {
	Name  *string
	Email *string
}

// SubscriberService manages subscriber-list membership.
type SubscriberService struct {
	client *Client
}

func subscriberListPath(listID string) string {
	return "/subscriber-lists/" + url.PathEscape(listID)
}

func subscriberPath(listID, email string) string {
	return fmt.Sprintf("/subscriber-lists/%s/%s", url.PathEscape(listID), url.PathEscape(email))
}

// Add subscribes a new member to a list.
func (s *SubscriberService) Add(ctx context.Context, listID, name, email string) (*Subscriber, error) {
	if err := requireFields(map[string]string{
		"listId": listID,
		"name":   name,
		"email":  email,
	}); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	body := map[string]any{"name": name, "email": email}
	var sub Subscriber
	if _, err := s.client.do(ctx, http.MethodPost, subscriberListPath(listID), body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Remove unsubscribes a member from a list.
func (s *SubscriberService) Remove(ctx context.Context, listID, email string) (*Subscriber, error) {
	return s.setStatus(ctx, listID, email, map[string]any{"status": StatusUnsubscribed})
}

// Pause suspends delivery to a member until the given time. The time
// must be in the future.
func (s *SubscriberService) Pause(ctx context.Context, listID, email string, until time.Time) (*Subscriber, error) {
	if !until.After(time.Now()) {
		return nil, &Error{
			Code:    CodeInvalidDate,
			Status:  400,
			Message: fmt.Sprintf("pausedUntil must be in the future, got %s", until.Format(time.RFC3339)),
			Details: map[string]any{"pausedUntil": until},
		}
	}

	return s.setStatus(ctx, listID, email, map[string]any{
		"status":      StatusPaused,
		"pausedUntil": until.UTC().Format(time.RFC3339),
	})
}

// Activate resumes delivery to a paused or unsubscribed member.
func (s *SubscriberService) Activate(ctx context.Context, listID, email string) (*Subscriber, error) {
	return s.setStatus(ctx, listID, email, map[string]any{"status": StatusActive})
}

// setStatus issues a status transition and returns the server's view of
// the subscriber.
func (s *SubscriberService) setStatus(ctx context.Context, listID, email string, body map[string]any) (*Subscriber, error) {
	if err := requireFields(map[string]string{
		"listId": listID,
		"email":  email,
	}); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var sub Subscriber
	if _, err := s.client.do(ctx, http.MethodPatch, subscriberPath(listID, email), body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns the members of a list.
func (s *SubscriberService) List(ctx context.Context, listID string) (*SubscriberList, error) {
	if err := requireFields(map[string]string{"listId": listID}); err != nil {
		return nil, err
	}

	var list SubscriberList
	if _, err := s.client.do(ctx, http.MethodGet, subscriberListPath(listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single member of a list by email.
func (s *SubscriberService) Get(ctx context.Context, listID, email string) (*Subscriber, error) {
	if err := requireFields(map[string]string{
		"listId": listID,
		"email":  email,
	}); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	var sub Subscriber
	if _, err := s.client.do(ctx, http.MethodGet, subscriberPath(listID, email), nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update applies a partial update to a member. Only the supplied fields
// are sent to the server.
func (s *SubscriberService) Update(ctx context.Context, listID, email string, params UpdateSubscriberParams) (*Subscriber, error) {
	if err := requireFields(map[string]string{
		"listId": listID,
		"email":  email,
	}); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	body := make(map[string]any)
	if params.Name != nil {
		body["name"] = *params.Name
	}
	if params.Email != nil {
		if err := validateEmail(*params.Email); err != nil {
			return nil, err
		}
		body["email"] = *params.Email
	}
	if len(body) == 0 {
		return nil, newValidationError("no fields to update", nil)
	}

	var sub Subscriber
	if _, err := s.client.do(ctx, http.MethodPatch, subscriberPath(listID, email), body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
