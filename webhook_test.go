package bluefox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func webhookRequest(t *testing.T, token, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func newWebhookClient(t *testing.T) *Client {
	t.Helper()
	client, err := New("hook-key")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestWebhooks_ValidateRequest(t *testing.T) {
	client := newWebhookClient(t)

	if err := client.Webhooks.ValidateRequest(webhookRequest(t, "hook-key", "{}")); err != nil {
		t.Errorf("ValidateRequest() = %v, want nil", err)
	}

	err := client.Webhooks.ValidateRequest(webhookRequest(t, "wrong-key", "{}"))
	if !errors.Is(err, ErrInvalidWebhookKey) {
		t.Errorf("ValidateRequest() = %v, want ErrInvalidWebhookKey", err)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("ValidateRequest() = %v, should match ErrUnauthorized", err)
	}

	if err := client.Webhooks.ValidateRequest(webhookRequest(t, "", "{}")); err == nil {
		t.Error("missing token must fail validation")
	}
}

func TestWebhooks_ParseEvent(t *testing.T) {
	client := newWebhookClient(t)

	body := `{"type":"click","createdAt":"2026-03-01T10:00:00Z",
		"emailData":{"to":"ada@example.com","subject":"Hi"},"link":"https://example.com"}`
	event, err := client.Webhooks.ParseEvent(webhookRequest(t, "hook-key", body))
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}

	if !event.IsClick() {
		t.Errorf("Type = %s, want click", event.Type)
	}
	if event.Link != "https://example.com" {
		t.Errorf("Link = %s", event.Link)
	}
	if event.EmailData == nil || event.EmailData.To != "ada@example.com" {
		t.Errorf("EmailData = %+v", event.EmailData)
	}
}

func TestWebhooks_ParseEventRejectsMalformed(t *testing.T) {
	client := newWebhookClient(t)

	_, err := client.Webhooks.ParseEvent(webhookRequest(t, "hook-key", `{not json`))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}

	_, err = client.Webhooks.ParseEvent(webhookRequest(t, "hook-key", `{"createdAt":"2026-03-01T10:00:00Z"}`))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("missing type: error = %v, want validation error", err)
	}
}

func TestWebhooks_HandleDispatches(t *testing.T) {
	client := newWebhookClient(t)

	var handled *Event
	client.Webhooks.On(EventOpen, func(ctx context.Context, event *Event) error {
		handled = event
		return nil
	})

	body := `{"type":"open","createdAt":"2026-03-01T10:00:00Z","emailData":{"to":"ada@example.com"}}`
	event, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "hook-key", body))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if handled == nil {
		t.Fatal("handler was not invoked")
	}
	if handled != event {
		t.Error("handler received a different event than the one returned")
	}
}

func TestWebhooks_HandleSwallowsHandlerErrors(t *testing.T) {
	client := newWebhookClient(t)

	client.Webhooks.On(EventBounce, func(ctx context.Context, event *Event) error {
		return errors.New("handler exploded")
	})

	body := `{"type":"bounce","createdAt":"2026-03-01T10:00:00Z","reason":"mailbox full"}`
	event, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "hook-key", body))
	if err != nil {
		t.Fatalf("Handle() error = %v, handler errors must be swallowed", err)
	}
	if event == nil || !event.IsBounce() {
		t.Errorf("event = %+v, want parsed bounce event", event)
	}
	if event.Reason != "mailbox full" {
		t.Errorf("Reason = %q", event.Reason)
	}
}

func TestWebhooks_HandleUnknownTypeReturnsEvent(t *testing.T) {
	client := newWebhookClient(t)

	var invoked bool
	client.Webhooks.On(EventOpen, func(ctx context.Context, event *Event) error {
		invoked = true
		return nil
	})

	body := `{"type":"brand-new-event","createdAt":"2026-03-01T10:00:00Z"}`
	event, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "hook-key", body))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if event.Type != "brand-new-event" {
		t.Errorf("Type = %s", event.Type)
	}
	if invoked {
		t.Error("unrelated handler must not be invoked")
	}
}

func TestWebhooks_HandleRejectsBadToken(t *testing.T) {
	client := newWebhookClient(t)

	body := `{"type":"open","createdAt":"2026-03-01T10:00:00Z"}`
	_, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "intruder", body))
	if !errors.Is(err, ErrInvalidWebhookKey) {
		t.Errorf("error = %v, want ErrInvalidWebhookKey", err)
	}
}

func TestWebhooks_OnReplacesAndRemoves(t *testing.T) {
	client := newWebhookClient(t)

	var first, second int
	client.Webhooks.On(EventSent, func(ctx context.Context, event *Event) error {
		first++
		return nil
	})
	client.Webhooks.On(EventSent, func(ctx context.Context, event *Event) error {
		second++
		return nil
	})

	body := `{"type":"sent","createdAt":"2026-03-01T10:00:00Z"}`
	if _, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "hook-key", body)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d; registration must replace", first, second)
	}

	client.Webhooks.On(EventSent, nil)
	if _, err := client.Webhooks.Handle(context.Background(), webhookRequest(t, "hook-key", body)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if second != 1 {
		t.Error("nil registration must remove the handler")
	}
}

func TestWebhooks_Test(t *testing.T) {
	received := make(chan Event, 1)
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decode synthetic event: %v", err)
		}
		received <- event
		w.WriteHeader(http.StatusNoContent)
	}))
	defer target.Close()

	client := newWebhookClient(t)

	result, err := client.Webhooks.Test(context.Background(), target.URL, EventOpen)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if result.StatusCode != http.StatusNoContent {
		t.Errorf("StatusCode = %d, want 204", result.StatusCode)
	}

	select {
	case event := <-received:
		if event.Type != EventOpen {
			t.Errorf("Type = %s, want open", event.Type)
		}
		if event.ID == "" {
			t.Error("synthetic event has no ID")
		}
	case <-time.After(time.Second):
		t.Fatal("target endpoint never received the synthetic event")
	}
}

func TestWebhooks_TestRequiresURL(t *testing.T) {
	client := newWebhookClient(t)

	_, err := client.Webhooks.Test(context.Background(), "", EventOpen)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestEvent_Predicates(t *testing.T) {
	tests := []struct {
		eventType EventType
		check     func(*Event) bool
	}{
		{EventSent, (*Event).IsSent},
		{EventFailed, (*Event).IsFailed},
		{EventClick, (*Event).IsClick},
		{EventOpen, (*Event).IsOpen},
		{EventBounce, (*Event).IsBounce},
		{EventComplaint, (*Event).IsComplaint},
	}

	for _, tt := range tests {
		e := &Event{Type: tt.eventType}
		if !tt.check(e) {
			t.Errorf("predicate for %s returned false", tt.eventType)
		}
	}

	for _, sub := range []EventType{EventSubscribe, EventUnsubscribe, EventPauseSubscription, EventResubscribe} {
		if !(&Event{Type: sub}).IsSubscription() {
			t.Errorf("IsSubscription() false for %s", sub)
		}
	}
	if (&Event{Type: EventOpen}).IsSubscription() {
		t.Error("IsSubscription() true for open event")
	}
}
