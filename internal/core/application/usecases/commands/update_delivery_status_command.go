package commands

import (
	"errors"
	"maps"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand moves a note to any valid status and records the
// matching event with the supplied metadata.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	tenantID       kernel.TenantID
	deliveryNoteID kernel.UUID
	status         delivery.Status
	metadata       map[string]any

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryStatusCommand(
	tenantID kernel.TenantID,
	deliveryNoteID kernel.UUID,
	status delivery.Status,
	metadata map[string]any,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(
		tenantID.Validate(),
		deliveryNoteID.Validate(),
		status.Validate(),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		tenantID:       tenantID,
		deliveryNoteID: deliveryNoteID,
		status:         status,
		metadata:       maps.Clone(metadata),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c UpdateDeliveryStatusCommand) DeliveryNoteID() kernel.UUID {
	return c.deliveryNoteID
}

func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}

func (c UpdateDeliveryStatusCommand) Metadata() map[string]any {
	return maps.Clone(c.metadata)
}
