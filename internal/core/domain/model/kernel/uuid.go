package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies delivery notes, carriers and other aggregates.
// It wraps github.com/google/uuid; the zero value is invalid.
//
// Example:
//
//	noteID := kernel.NewUUID()
//	carrierID, err := kernel.UUIDFromString(req.CarrierId)
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a textual UUID, typically a path parameter or event field.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes rebuilds a UUID read back from a uuid column.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google UUID for persistence and transport types.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
