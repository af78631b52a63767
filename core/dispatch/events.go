package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a record lifecycle change.
type EventType string

const (
	EventCreated      EventType = "created"
	EventUpdated      EventType = "updated"
	EventDeleted      EventType = "deleted"
	EventResponseTime EventType = "response_time"
)

// Event describes a successful mutation of the manager state.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	DispatchID  ID        `json:"dispatch_id"`
	Description string    `json:"description,omitempty"`
	// Value is set on response_time events only; a zero sample is still encoded.
	Value       *float64  `json:"value,omitempty"`
	Time        time.Time `json:"time"`
}

// EventPublisher receives lifecycle events. eventbus.TypedBus[Event]
// satisfies it.
type EventPublisher interface {
	Publish(Event)
}

func newEvent(t EventType, id ID, at time.Time) Event {
	return Event{ID: uuid.NewString(), Type: t, DispatchID: id, Time: at}
}
