package delivery

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery note. Values are persisted and
// exchanged as upper case strings.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusDispatched Status = "DISPATCHED"
	StatusInTransit  Status = "IN_TRANSIT"
	StatusDelivered  Status = "DELIVERED"
	StatusReturned   Status = "RETURNED"
	StatusCanceled   Status = "CANCELED"
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusDispatched,
		StatusInTransit,
		StatusDelivered,
		StatusReturned,
		StatusCanceled,
	}
}

// ParseStatus converts external input (query parameters, carrier mappings) into a Status.
// Matching is case-insensitive.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values outside the lifecycle.
func (s Status) Validate() error {
	for _, valid := range AllStatuses() {
		if s == valid {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further lifecycle transition is expected.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned || s == StatusCanceled
}

// IsTrackable reports whether the carrier should still be polled for this status.
func (s Status) IsTrackable() bool {
	return s == StatusDispatched || s == StatusInTransit
}

// IsShipped reports whether goods have left the warehouse in this status.
func (s Status) IsShipped() bool {
	return s == StatusDispatched || s == StatusInTransit
}

// EventType returns the audit tag recorded when a note enters s.
func (s Status) EventType() EventType {
	switch s {
	case StatusPending:
		return EventCreated
	case StatusDispatched:
		return EventDispatched
	case StatusInTransit:
		return EventInTransit
	case StatusDelivered:
		return EventDelivered
	case StatusReturned:
		return EventReturned
	case StatusCanceled:
		return EventCanceled
	default:
		return ""
	}
}
