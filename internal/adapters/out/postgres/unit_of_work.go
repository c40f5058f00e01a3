// Package postgres provides the GORM-based Unit of Work over the delivery note
// and carrier repositories.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	note, err := uow.DeliveryNoteRepository().Get(ctx, id, tenantID)
//	if err != nil {
//	    return err
//	}
//	if err := note.Confirm(proofURL); err != nil {
//	    return err
//	}
//	if err := uow.DeliveryNoteRepository().Update(ctx, note); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin run on the plain connection; those obtained
// after Begin share the transaction. Each UnitOfWork instance holds at most one
// transaction and must not be shared between goroutines.
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/carrierrepo"
	"fulfillment/internal/adapters/out/postgres/deliverynoterepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create with the concrete return type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction if none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction if none is
// open, which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// DeliveryNoteRepository returns a repository bound to the current transaction,
// or to the plain connection when none is open.
func (uow *GormUnitOfWork) DeliveryNoteRepository() ports.DeliveryNoteRepository {
	return deliverynoterepo.NewGormDeliveryNoteRepository(uow.conn(), uow)
}

// CarrierRepository returns a repository bound to the current transaction,
// or to the plain connection when none is open.
func (uow *GormUnitOfWork) CarrierRepository() ports.CarrierRepository {
	return carrierrepo.NewGormCarrierRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregateIDs lists the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregateIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
