package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchDeliveryNoteCommandIsNotConstructed = errors.New(
	"DispatchDeliveryNoteCommand must be created via NewDispatchDeliveryNoteCommand constructor",
)

// DispatchDeliveryNoteCommand hands a PENDING delivery note to a carrier.
type DispatchDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	tenantID       kernel.TenantID
	deliveryNoteID kernel.UUID
	carrierID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchDeliveryNoteCommand(tenantID string, deliveryNoteID, carrierID kernel.UUID) (DispatchDeliveryNoteCommand, error) {
	command := DispatchDeliveryNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	tenant, tenantErr := kernel.NewTenantID(tenantID)
	if err := errors.Join(
		tenantErr,
		deliveryNoteID.Validate(),
		carrierID.Validate(),
	); err != nil {
		return DispatchDeliveryNoteCommand{}, err
	}

	command.tenantID = tenant
	command.deliveryNoteID = deliveryNoteID
	command.carrierID = carrierID
	return command, nil
}

func (c DispatchDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrDispatchDeliveryNoteCommandIsNotConstructed)
}

func (c DispatchDeliveryNoteCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c DispatchDeliveryNoteCommand) DeliveryNoteID() kernel.UUID {
	return c.deliveryNoteID
}

func (c DispatchDeliveryNoteCommand) CarrierID() kernel.UUID {
	return c.carrierID
}
