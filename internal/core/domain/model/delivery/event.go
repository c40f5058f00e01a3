package delivery

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// EventType tags an entry of the delivery audit trail.
type EventType string

const (
	EventCreated    EventType = "CREATED"
	EventDispatched EventType = "DISPATCHED"
	EventInTransit  EventType = "IN_TRANSIT"
	EventDelivered  EventType = "DELIVERED"
	EventReturned   EventType = "RETURNED"
	EventCanceled   EventType = "CANCELED"
)

// ErrEventIsNotConstructed is returned when an Event was not created via NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Validate rejects unknown event types.
func (t EventType) Validate() error {
	switch t {
	case EventCreated, EventDispatched, EventInTransit, EventDelivered, EventReturned, EventCanceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%q is not a valid event type", string(t)))
	}
}

func (t EventType) String() string {
	return string(t)
}

// Event is one immutable entry of a note's audit trail.
// Metadata is free-form and copied on the way in and out.
type Event struct {
	id         kernel.UUID
	eventType  EventType
	occurredAt time.Time
	metadata   map[string]any
	guard      guard.ConstructorGuard
}

// NewEvent records an event that happens now.
func NewEvent(eventType EventType, metadata map[string]any) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), eventType, time.Now().UTC(), metadata)
}

// RestoreEvent rebuilds a persisted event.
func RestoreEvent(id kernel.UUID, eventType EventType, occurredAt time.Time, metadata map[string]any) (*Event, error) {
	if err := errors.Join(id.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}
	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurredAt")
	}

	return &Event{
		id:         id,
		eventType:  eventType,
		occurredAt: occurredAt,
		metadata:   maps.Clone(metadata),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID {
	return e.id
}

func (e *Event) Type() EventType {
	return e.eventType
}

func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// Metadata returns a copy of the event metadata, nil when none was recorded.
func (e *Event) Metadata() map[string]any {
	return maps.Clone(e.metadata)
}
