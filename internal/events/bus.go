// Package events is a lightweight in-process pub-sub channel between the
// request path and background consumers such as the notification dispatcher.
package events

import "github.com/voyagetravel/voyage-backend/internal/model"

// EventKind represents the type of domain event.
type EventKind string

const (
	// EventTurnEvaluated fires after a turn reaches a terminal status.
	EventTurnEvaluated EventKind = "turn_evaluated"

	// EventSecurityAlertRaised fires when a safety advisory must be fanned
	// out to a traveler's notification channels.
	EventSecurityAlertRaised EventKind = "security_alert_raised"
)

// Event carries the minimum data consumers need; anything heavier is looked
// up by the consumer.
type Event struct {
	Kind      EventKind
	SessionID string
	UserID    string

	// Status is the terminal turn status, set for EventTurnEvaluated.
	Status string

	// Alert and Profile are present for EventSecurityAlertRaised; the
	// profile rides along because alerts have no user store to consult.
	Alert   *model.SecurityAlert
	Profile *model.UserProfile
}

// Bus is an in-process pub-sub implementation backed by a buffered channel.
// It is injected where needed; there is no package-level instance.
type Bus struct {
	ch chan Event
}

// NewBus creates a bus with the given buffer size.
func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Publish attempts to enqueue the event without blocking.
// Returns true if published, false if the buffer is full.
func (b *Bus) Publish(evt Event) bool {
	select {
	case b.ch <- evt:
		return true
	default:
		return false
	}
}

// Subscribe returns a read-only channel for consumers.
func (b *Bus) Subscribe() <-chan Event {
	return b.ch
}
