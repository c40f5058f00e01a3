package queries_test

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryNoteRepository struct {
	ports.DeliveryNoteRepository
	mock.Mock
}

func (m *MockDeliveryNoteRepository) Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*delivery.Note, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Note), args.Error(1)
}

type MockCarrierRepository struct {
	ports.CarrierRepository
	mock.Mock
}

func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.Carrier), args.Error(1)
}

// readOnlyUoW serves repositories without ever opening a transaction.
type readOnlyUoW struct {
	ports.UnitOfWork
	notes    ports.DeliveryNoteRepository
	carriers ports.CarrierRepository
}

func (u readOnlyUoW) DeliveryNoteRepository() ports.DeliveryNoteRepository {
	return u.notes
}

func (u readOnlyUoW) CarrierRepository() ports.CarrierRepository {
	return u.carriers
}

type stubUoWFactory struct {
	uow ports.UnitOfWork
}

func (f stubUoWFactory) Create() ports.UnitOfWork {
	return f.uow
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
