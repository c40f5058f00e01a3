package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListDeliveryNotesQueryIsNotConstructed = errors.New(
	"ListDeliveryNotesQuery must be created via NewListDeliveryNotesQuery constructor",
)

// DeliveryNoteFilter narrows a list query. Zero values mean "no filter".
// DateFrom and DateTo bound the creation time, both inclusive.
type DeliveryNoteFilter struct {
	Status     string
	CustomerID string
	OrderID    string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ListDeliveryNotesQuery pages through the notes of a tenant, newest first.
//
// Example:
//
//	query, err := NewListDeliveryNotesQuery("tenant-a", DeliveryNoteFilter{Status: "DISPATCHED"}, 0, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type ListDeliveryNotesQuery struct {
	tenantID   kernel.TenantID
	status     delivery.Status
	customerID string
	orderID    string
	dateFrom   *time.Time
	dateTo     *time.Time
	skip       int
	take       int
	guard      guard.ConstructorGuard
}

// NewListDeliveryNotesQuery validates paging and filters. take == 0 selects
// DefaultPageSize; otherwise it must lie in [1, MaxPageSize].
func NewListDeliveryNotesQuery(
	tenantID string,
	filter DeliveryNoteFilter,
	skip, take int,
) (ListDeliveryNotesQuery, error) {
	tenant, tenantErr := kernel.NewTenantID(tenantID)

	var status delivery.Status
	var statusErr error
	if s := strings.TrimSpace(filter.Status); s != "" {
		status, statusErr = delivery.ParseStatus(s)
	}

	var skipErr error
	if skip < 0 {
		skipErr = errs.NewValueIsOutOfRangeError("skip", skip, 0, "unbounded")
	}

	if take == 0 {
		take = DefaultPageSize
	}
	var takeErr error
	if take < 1 || take > MaxPageSize {
		takeErr = errs.NewValueIsOutOfRangeError("take", take, 1, MaxPageSize)
	}

	var rangeErr error
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		rangeErr = errs.NewValueIsInvalidError("dateFrom must not be after dateTo")
	}

	if err := errors.Join(tenantErr, statusErr, skipErr, takeErr, rangeErr); err != nil {
		return ListDeliveryNotesQuery{}, err
	}

	return ListDeliveryNotesQuery{
		tenantID:   tenant,
		status:     status,
		customerID: strings.TrimSpace(filter.CustomerID),
		orderID:    strings.TrimSpace(filter.OrderID),
		dateFrom:   filter.DateFrom,
		dateTo:     filter.DateTo,
		skip:       skip,
		take:       take,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveryNotesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveryNotesQueryIsNotConstructed)
}

func (q ListDeliveryNotesQuery) Skip() int {
	return q.skip
}

func (q ListDeliveryNotesQuery) Take() int {
	return q.take
}

// DeliveryNoteSummary is the list read model. Items and events are left out;
// ItemCount tells how many lines the note has.
type DeliveryNoteSummary struct {
	ID                kernel.UUID
	DeliveryNumber    string
	OrderID           string
	CustomerID        string
	DeliveryAddressID string
	Status            delivery.Status
	CarrierID         *kernel.UUID
	TrackingNumber    string
	ShippedAt         *time.Time
	DeliveredAt       *time.Time
	ItemCount         int
	CreatedAt         time.Time
}

// ListDeliveryNotesQueryResponse is one page plus the total number of matches.
type ListDeliveryNotesQueryResponse struct {
	Items []DeliveryNoteSummary
	Total int64
	Skip  int
	Take  int
}
