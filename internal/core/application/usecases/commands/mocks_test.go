package commands_test

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.DiscardHandler)

type MockDeliveryNoteRepository struct{ mock.Mock }

func (m *MockDeliveryNoteRepository) Add(ctx context.Context, note *delivery.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) Update(ctx context.Context, note *delivery.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*delivery.Note, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Note), args.Error(1)
}

func (m *MockDeliveryNoteRepository) ExistsByNumber(ctx context.Context, number delivery.Number) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryNoteRepository) ListTrackable(ctx context.Context, limit int) ([]*delivery.Note, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Note), args.Error(1)
}

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Add(ctx context.Context, c *carrier.Carrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarrierRepository) Update(ctx context.Context, c *carrier.Carrier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Carrier), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryNoteRepository() ports.DeliveryNoteRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryNoteRepository)
}

func (m *MockUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}

// newMockUoW wires repositories and lets transaction calls succeed any number of times.
func newMockUoW(notes *MockDeliveryNoteRepository, carriers *MockCarrierRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	if notes != nil {
		uow.On("DeliveryNoteRepository").Return(notes).Maybe()
	}
	if carriers != nil {
		uow.On("CarrierRepository").Return(carriers).Maybe()
	}
	return uow
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryNoteUoWFactory struct{ mock.Mock }

func (m *MockDeliveryNoteUoWFactory) Create() commands.DeliveryNoteUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryNoteUoW)
}

type MockCarrierUoWFactory struct{ mock.Mock }

func (m *MockCarrierUoWFactory) Create() commands.CarrierUoW {
	args := m.Called()
	return args.Get(0).(commands.CarrierUoW)
}

type MockCarrierIntegration struct{ mock.Mock }

func (m *MockCarrierIntegration) Kind() carrier.Kind {
	args := m.Called()
	return args.Get(0).(carrier.Kind)
}

func (m *MockCarrierIntegration) CreateShipment(ctx context.Context, request ports.ShipmentRequest) (ports.ShipmentResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.ShipmentResult), args.Error(1)
}

func (m *MockCarrierIntegration) GetTrackingInfo(ctx context.Context, trackingNumber string) (ports.TrackingInfo, error) {
	args := m.Called(ctx, trackingNumber)
	return args.Get(0).(ports.TrackingInfo), args.Error(1)
}

type MockCarrierIntegrationFactory struct{ mock.Mock }

func (m *MockCarrierIntegrationFactory) ForCarrier(c *carrier.Carrier) (ports.CarrierIntegration, error) {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.CarrierIntegration), args.Error(1)
}

type MockRecipientResolver struct{ mock.Mock }

func (m *MockRecipientResolver) Resolve(
	ctx context.Context,
	customerID, deliveryAddressID string,
	tenantID kernel.TenantID,
) (ports.Recipient, error) {
	args := m.Called(ctx, customerID, deliveryAddressID, tenantID)
	return args.Get(0).(ports.Recipient), args.Error(1)
}

type MockInventoryClient struct{ mock.Mock }

func (m *MockInventoryClient) Deduct(ctx context.Context, lines []ports.StockLine, tenantID kernel.TenantID, reference string) error {
	args := m.Called(ctx, lines, tenantID, reference)
	return args.Error(0)
}

func (m *MockInventoryClient) Restore(ctx context.Context, lines []ports.StockLine, tenantID kernel.TenantID, reference string) error {
	args := m.Called(ctx, lines, tenantID, reference)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

type MockStatusUpdater struct{ mock.Mock }

func (m *MockStatusUpdater) Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) (*delivery.Note, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Note), args.Error(1)
}
