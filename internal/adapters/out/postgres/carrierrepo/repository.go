package carrierrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCarrierRepository implements ports.CarrierRepository using GORM.
type GormCarrierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCarrierRepository creates a new GORM carrier repository.
func NewGormCarrierRepository(db *gorm.DB, tracker aggregateTracker) *GormCarrierRepository {
	return &GormCarrierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new carrier to the database.
func (r *GormCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the configuration of an existing carrier of the same tenant.
func (r *GormCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CarrierDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Updates(map[string]any{
			"name":                      dto.Name,
			"api_endpoint":              dto.APIEndpoint,
			"tracking_url_template":     dto.TrackingURLTemplate,
			"kind":                      dto.Kind,
			"active":                    dto.Active,
			"credential_api_key":        dto.Credentials.APIKey,
			"credential_username":       dto.Credentials.Username,
			"credential_password":       dto.Credentials.Password,
			"credential_account_number": dto.Credentials.AccountNumber,
			"updated_at":                time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("carrier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a carrier by ID within a tenant.
func (r *GormCarrierRepository) Get(
	ctx context.Context,
	id kernel.UUID,
	tenantID kernel.TenantID,
) (*carrier.Carrier, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
