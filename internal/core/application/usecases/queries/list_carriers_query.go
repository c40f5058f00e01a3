package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListCarriersQueryIsNotConstructed = errors.New(
	"ListCarriersQuery must be created via NewListCarriersQuery constructor",
)

// ListCarriersQuery retrieves the carriers configured for a tenant.
//
// Example:
//
//	query, err := NewListCarriersQuery("tenant-a", true)
//	if err != nil {
//	    return err
//	}
//	carriers, err := handler.Handle(ctx, query)
type ListCarriersQuery struct {
	tenantID   kernel.TenantID
	activeOnly bool
	guard      guard.ConstructorGuard
}

// NewListCarriersQuery creates the query; activeOnly hides deactivated carriers.
func NewListCarriersQuery(tenantID string, activeOnly bool) (ListCarriersQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return ListCarriersQuery{}, err
	}

	return ListCarriersQuery{
		tenantID:   tenant,
		activeOnly: activeOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCarriersQuery) Validate() error {
	return q.guard.Validate(ErrListCarriersQueryIsNotConstructed)
}

// ListCarriersQueryResponse is the carrier read model. Credentials never leave the store.
type ListCarriersQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	APIEndpoint         string
	TrackingURLTemplate string
	Kind                carrier.Kind
	Active              bool
}
