package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CreateCarrierCommandHandler persists a new active carrier.
type CreateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
}

func NewCreateCarrierCommandHandler(uowFactory CarrierUoWFactory) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the ID of the created carrier.
func (h CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	c, err := carrier.NewCarrier(
		cmd.CarrierID(),
		cmd.Name(),
		cmd.APIEndpoint(),
		cmd.TrackingURLTemplate(),
		cmd.Credentials(),
		cmd.Kind(),
		cmd.TenantID(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CarrierRepository().Add(ctx, c); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return c.ID(), nil
}
