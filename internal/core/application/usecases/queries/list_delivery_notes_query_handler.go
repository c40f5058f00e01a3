package queries

import (
	"context"
	"database/sql"
	"strings"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveryNotesQueryHandler reads delivery_notes with plain SQL.
type ListDeliveryNotesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveryNotesQueryHandler(db *gorm.DB) ListDeliveryNotesQueryHandler {
	return ListDeliveryNotesQueryHandler{db: db}
}

// Handle returns the requested page ordered by creation time, newest first.
func (h ListDeliveryNotesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveryNotesQuery,
) (ListDeliveryNotesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListDeliveryNotesQueryResponse{}, err
	}

	where, args := query.whereClause()
	db := h.db.WithContext(ctx)

	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM delivery_notes n WHERE `+where, args...).
		Scan(&total).Error; err != nil {
		return ListDeliveryNotesQueryResponse{}, err
	}

	response := ListDeliveryNotesQueryResponse{
		Items: make([]DeliveryNoteSummary, 0),
		Total: total,
		Skip:  query.skip,
		Take:  query.take,
	}
	if total == 0 || int64(query.skip) >= total {
		return response, nil
	}

	rows, err := db.Raw(`
		SELECT
			n.id,
			n.number,
			n.order_id,
			n.customer_id,
			n.delivery_address_id,
			n.status,
			n.carrier_id,
			n.tracking_number,
			n.shipped_at,
			n.delivered_at,
			(SELECT COUNT(*) FROM delivery_items i WHERE i.delivery_note_id = n.id) AS item_count,
			n.created_at
		FROM delivery_notes n
		WHERE `+where+`
		ORDER BY n.created_at DESC, n.id
		OFFSET ? LIMIT ?
	`, append(args, query.skip, query.take)...).Rows()
	if err != nil {
		return ListDeliveryNotesQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary DeliveryNoteSummary
		var id uuid.UUID
		var carrierID uuid.NullUUID
		var status string
		var trackingNumber sql.NullString
		var shippedAt, deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&summary.DeliveryNumber,
			&summary.OrderID,
			&summary.CustomerID,
			&summary.DeliveryAddressID,
			&status,
			&carrierID,
			&trackingNumber,
			&shippedAt,
			&deliveredAt,
			&summary.ItemCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return ListDeliveryNotesQueryResponse{}, err
		}

		noteID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListDeliveryNotesQueryResponse{}, idErr
		}
		summary.ID = noteID
		summary.Status = delivery.Status(status)
		summary.TrackingNumber = trackingNumber.String

		if carrierID.Valid {
			cID, carrierErr := kernel.UUIDFromBytes(carrierID.UUID[:])
			if carrierErr != nil {
				return ListDeliveryNotesQueryResponse{}, carrierErr
			}
			summary.CarrierID = &cID
		}
		if shippedAt.Valid {
			t := shippedAt.Time.UTC()
			summary.ShippedAt = &t
		}
		if deliveredAt.Valid {
			t := deliveredAt.Time.UTC()
			summary.DeliveredAt = &t
		}
		summary.CreatedAt = summary.CreatedAt.UTC()

		response.Items = append(response.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return ListDeliveryNotesQueryResponse{}, err
	}

	return response, nil
}

// whereClause always scopes by tenant and adds one predicate per set filter.
func (q ListDeliveryNotesQuery) whereClause() (string, []any) {
	conditions := []string{"n.tenant_id = ?"}
	args := []any{q.tenantID.String()}

	if q.status != "" {
		conditions = append(conditions, "n.status = ?")
		args = append(args, q.status.String())
	}
	if q.customerID != "" {
		conditions = append(conditions, "n.customer_id = ?")
		args = append(args, q.customerID)
	}
	if q.orderID != "" {
		conditions = append(conditions, "n.order_id = ?")
		args = append(args, q.orderID)
	}
	if q.dateFrom != nil {
		conditions = append(conditions, "n.created_at >= ?")
		args = append(args, q.dateFrom.UTC())
	}
	if q.dateTo != nil {
		conditions = append(conditions, "n.created_at <= ?")
		args = append(args, q.dateTo.UTC())
	}

	return strings.Join(conditions, " AND "), args
}
