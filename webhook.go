package bluefox

import "time"

// EventType identifies the kind of webhook event Bluefox delivers.
type EventType string

// Webhook event types.
const (
	EventSent              EventType = "sent"
	EventFailed            EventType = "failed"
	EventClick             EventType = "click"
	EventOpen              EventType = "open"
	EventBounce            EventType = "bounce"
	EventComplaint         EventType = "complaint"
	EventSubscribe         EventType = "subscribe"
	EventUnsubscribe       EventType = "unsubscribe"
	EventPauseSubscription EventType = "pause-subscription"
	EventResubscribe       EventType = "resubscribe"
)

// Event is an inbound webhook notification. The populated fields depend
// on the event type: delivery and engagement events carry EmailData,
// subscription events carry Subscription.
type Event struct {
	ID        string    `json:"id,omitempty"`
	Type      EventType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	Account   string    `json:"account,omitempty"`
	Project   string    `json:"project,omitempty"`

	EmailData    *EventEmailData    `json:"emailData,omitempty"`
	Subscription *EventSubscription `json:"subscription,omitempty"`

	// Link is the clicked URL on click events.
	Link string `json:"link,omitempty"`
	// Reason describes the failure on bounce, complaint and failed
	// events.
	Reason string `json:"reason,omitempty"`
}

// EventEmailData describes the email a delivery or engagement event
// relates to.
type EventEmailData struct {
	To        string `json:"to"`
	Subject   string `json:"subject,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// EventSubscription describes the list membership a subscription event
// relates to.
type EventSubscription struct {
	ListID      string           `json:"listId"`
	Email       string           `json:"email"`
	Status      SubscriberStatus `json:"status,omitempty"`
	PausedUntil *time.Time       `json:"pausedUntil,omitempty"`
}

// IsSent reports whether the event is a delivery confirmation.
func (e *Event) IsSent() bool { return e.Type == EventSent }

// IsFailed reports whether the event is a delivery failure.
func (e *Event) IsFailed() bool { return e.Type == EventFailed }

// IsClick reports whether the event is a link click.
func (e *Event) IsClick() bool { return e.Type == EventClick }

// IsOpen reports whether the event is an email open.
func (e *Event) IsOpen() bool { return e.Type == EventOpen }

// IsBounce reports whether the event is a bounce.
func (e *Event) IsBounce() bool { return e.Type == EventBounce }

// IsComplaint reports whether the event is a spam complaint.
func (e *Event) IsComplaint() bool { return e.Type == EventComplaint }

// IsSubscription reports whether the event concerns list membership
// rather than a single email.
func (e *Event) IsSubscription() bool {
	switch e.Type {
	case EventSubscribe, EventUnsubscribe, EventPauseSubscription, EventResubscribe:
		return true
	}
	return false
}
