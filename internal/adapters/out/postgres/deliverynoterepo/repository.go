package deliverynoterepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormDeliveryNoteRepository implements ports.DeliveryNoteRepository using GORM.
type GormDeliveryNoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryNoteRepository creates a new GORM delivery note repository.
func NewGormDeliveryNoteRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the note, its items and its events.
func (r *GormDeliveryNoteRepository) Add(ctx context.Context, note *delivery.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	dto := fromDomain(note)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: delivery number %s already exists", errs.ErrInvalidState, note.Number())
		}
		return err
	}

	note.AcceptChanges()
	r.tracker.TrackAggregate(note.ID(), note)
	return nil
}

// Update writes the mutable columns guarded by the status the note was loaded
// with, then appends the pending events. Inside a transaction the updated row
// stays locked until commit, so a concurrent writer that loaded the same status
// matches zero rows once it proceeds.
func (r *GormDeliveryNoteRepository) Update(ctx context.Context, note *delivery.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&DeliveryNoteDTO{}).
		Where("id = ? AND tenant_id = ? AND status = ?",
			note.ID().Bytes(), note.TenantID().String(), note.LoadedStatus().String()).
		Updates(mutableColumns(note))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidStateError(
			"delivery note",
			note.LoadedStatus().String(),
			"status was changed by a concurrent operation",
		)
	}

	events := eventsFromDomain(note.ID().Bytes(), note.PendingEventsOffset(), note.PendingEvents())
	if len(events) > 0 {
		if err := db.Create(&events).Error; err != nil {
			return err
		}
	}

	note.AcceptChanges()
	r.tracker.TrackAggregate(note.ID(), note)
	return nil
}

// Get loads a note of the given tenant with items and events in order.
func (r *GormDeliveryNoteRepository) Get(
	ctx context.Context,
	id kernel.UUID,
	tenantID kernel.TenantID,
) (*delivery.Note, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}

	var dto DeliveryNoteDTO
	err := r.withChildren(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("deliveryNote", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByNumber checks the unique delivery number across tenants.
func (r *GormDeliveryNoteRepository) ExistsByNumber(ctx context.Context, number delivery.Number) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DeliveryNoteDTO{}).
		Where("number = ?", number.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListTrackable returns shipped notes that have a carrier and a tracking number,
// least recently updated first. Each reconciliation writes a snapshot and bumps
// updated_at, so successive batches rotate through every active shipment.
func (r *GormDeliveryNoteRepository) ListTrackable(ctx context.Context, limit int) ([]*delivery.Note, error) {
	if limit <= 0 {
		return []*delivery.Note{}, nil
	}

	var dtos []DeliveryNoteDTO
	err := r.withChildren(ctx).
		Where("status IN ?", []string{
			delivery.StatusDispatched.String(),
			delivery.StatusInTransit.String(),
		}).
		Where("tracking_number IS NOT NULL AND tracking_number <> '' AND carrier_id IS NOT NULL").
		Order("updated_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*delivery.Note, 0, len(dtos))
	for _, dto := range dtos {
		note, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		notes = append(notes, note)
	}

	return notes, nil
}

func (r *GormDeliveryNoteRepository) withChildren(ctx context.Context) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}
	return r.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("Events", byPosition)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
