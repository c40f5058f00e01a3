package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCarriersQueryHandler retrieves carrier configuration with direct SQL.
type ListCarriersQueryHandler struct {
	db *gorm.DB
}

func NewListCarriersQueryHandler(db *gorm.DB) ListCarriersQueryHandler {
	return ListCarriersQueryHandler{db: db}
}

// Handle returns the tenant's carriers sorted by name.
func (h ListCarriersQueryHandler) Handle(
	ctx context.Context,
	query ListCarriersQuery,
) ([]ListCarriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	carriers := make([]ListCarriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			api_endpoint,
			COALESCE(tracking_url_template, ''),
			COALESCE(kind, ''),
			active
		FROM carriers
		WHERE tenant_id = ? AND (active OR NOT ?)
		ORDER BY name, id
	`, query.tenantID.String(), query.activeOnly).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c ListCarriersQueryResponse
		var id uuid.UUID
		var kind string

		err = rows.Scan(
			&id,
			&c.Name,
			&c.APIEndpoint,
			&c.TrackingURLTemplate,
			&kind,
			&c.Active,
		)
		if err != nil {
			return nil, err
		}

		carrierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		c.ID = carrierID
		c.Kind = carrier.Kind(kind)
		carriers = append(carriers, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return carriers, nil
}
