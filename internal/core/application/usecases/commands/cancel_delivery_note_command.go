package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelDeliveryNoteCommandIsNotConstructed = errors.New(
	"CancelDeliveryNoteCommand must be created via NewCancelDeliveryNoteCommand constructor",
)

// CancelDeliveryNoteCommand stops a delivery that has not reached a terminal status.
type CancelDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	tenantID       kernel.TenantID
	deliveryNoteID kernel.UUID
	reason         string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryNoteCommand(tenantID string, deliveryNoteID kernel.UUID, reason string) (CancelDeliveryNoteCommand, error) {
	tenant, tenantErr := kernel.NewTenantID(tenantID)
	if err := errors.Join(tenantErr, deliveryNoteID.Validate()); err != nil {
		return CancelDeliveryNoteCommand{}, err
	}

	return CancelDeliveryNoteCommand{
		tenantID:       tenant,
		deliveryNoteID: deliveryNoteID,
		reason:         strings.TrimSpace(reason),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryNoteCommandIsNotConstructed)
}

func (c CancelDeliveryNoteCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c CancelDeliveryNoteCommand) DeliveryNoteID() kernel.UUID {
	return c.deliveryNoteID
}

func (c CancelDeliveryNoteCommand) Reason() string {
	return c.reason
}
