// Package deliverynoterepo persists delivery note aggregates in three tables:
// delivery_notes, delivery_items and delivery_events. Items and events keep their
// aggregate order through a position column.
package deliverynoterepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryNoteDTO is the row of the delivery_notes table.
type DeliveryNoteDTO struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Number             string             `gorm:"type:varchar(32);uniqueIndex;not null"`
	OrderID            string             `gorm:"type:varchar(128);index;not null"`
	CustomerID         string             `gorm:"type:varchar(128);index;not null"`
	DeliveryAddressID  string             `gorm:"type:varchar(128);not null"`
	Status             string             `gorm:"type:varchar(16);index;not null"`
	CarrierID          *uuid.UUID         `gorm:"type:uuid;index"`
	TrackingNumber     *string            `gorm:"type:varchar(128)"`
	ShippedAt          *time.Time         `gorm:"type:timestamptz;index"`
	DeliveredAt        *time.Time         `gorm:"type:timestamptz"`
	ProofOfDeliveryURL *string            `gorm:"type:text"`
	TenantID           string             `gorm:"type:varchar(64);index;not null"`
	CreatedAt          time.Time          `gorm:"index;not null"`
	UpdatedAt          time.Time          `gorm:"index;not null"`
	Items              []DeliveryItemDTO  `gorm:"foreignKey:DeliveryNoteID;constraint:OnDelete:CASCADE"`
	Events             []DeliveryEventDTO `gorm:"foreignKey:DeliveryNoteID;constraint:OnDelete:CASCADE"`
}

func (DeliveryNoteDTO) TableName() string {
	return "delivery_notes"
}

// DeliveryItemDTO is the row of the delivery_items table.
type DeliveryItemDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeliveryNoteID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position       int             `gorm:"not null"`
	ProductID      string          `gorm:"type:varchar(128);not null"`
	Description    string          `gorm:"type:text"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Unit           string          `gorm:"type:varchar(16);not null"`
}

func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

// DeliveryEventDTO is the row of the delivery_events table. Rows are only ever inserted.
type DeliveryEventDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DeliveryNoteID uuid.UUID      `gorm:"type:uuid;index;not null"`
	Position       int            `gorm:"not null"`
	EventType      string         `gorm:"type:varchar(16);not null"`
	OccurredAt     time.Time      `gorm:"not null"`
	Metadata       map[string]any `gorm:"type:jsonb;serializer:json"`
}

func (DeliveryEventDTO) TableName() string {
	return "delivery_events"
}

// fromDomain maps the full aggregate, items and events included.
func fromDomain(note *delivery.Note) DeliveryNoteDTO {
	dto := DeliveryNoteDTO{
		ID:                 note.ID().Bytes(),
		Number:             note.Number().String(),
		OrderID:            note.OrderID(),
		CustomerID:         note.CustomerID(),
		DeliveryAddressID:  note.DeliveryAddressID(),
		Status:             note.Status().String(),
		CarrierID:          carrierIDToDTO(note.CarrierID()),
		TrackingNumber:     optionalString(note.TrackingNumber()),
		ShippedAt:          note.ShippedAt(),
		DeliveredAt:        note.DeliveredAt(),
		ProofOfDeliveryURL: optionalString(note.ProofOfDeliveryURL()),
		TenantID:           note.TenantID().String(),
		CreatedAt:          note.CreatedAt(),
		UpdatedAt:          note.UpdatedAt(),
	}

	for i, item := range note.Items() {
		dto.Items = append(dto.Items, DeliveryItemDTO{
			ID:             item.ID().Bytes(),
			DeliveryNoteID: dto.ID,
			Position:       i,
			ProductID:      item.ProductID(),
			Description:    item.Description(),
			Quantity:       item.Quantity(),
			Unit:           item.Unit(),
		})
	}

	dto.Events = eventsFromDomain(dto.ID, 0, note.Events())
	return dto
}

func eventsFromDomain(noteID uuid.UUID, offset int, events []*delivery.Event) []DeliveryEventDTO {
	dtos := make([]DeliveryEventDTO, 0, len(events))
	for i, event := range events {
		dtos = append(dtos, DeliveryEventDTO{
			ID:             event.ID().Bytes(),
			DeliveryNoteID: noteID,
			Position:       offset + i,
			EventType:      event.Type().String(),
			OccurredAt:     event.OccurredAt(),
			Metadata:       event.Metadata(),
		})
	}
	return dtos
}

// mutableColumns lists what Update may change after creation.
func mutableColumns(note *delivery.Note) map[string]any {
	return map[string]any{
		"status":                note.Status().String(),
		"carrier_id":            carrierIDToDTO(note.CarrierID()),
		"tracking_number":       optionalString(note.TrackingNumber()),
		"shipped_at":            note.ShippedAt(),
		"delivered_at":          note.DeliveredAt(),
		"proof_of_delivery_url": optionalString(note.ProofOfDeliveryURL()),
		"updated_at":            note.UpdatedAt(),
	}
}

// toDomain expects Items and Events preloaded in position order.
func toDomain(dto DeliveryNoteDTO) (*delivery.Note, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var carrierID *kernel.UUID
	if dto.CarrierID != nil {
		cID, carrierErr := kernel.UUIDFromBytes((*dto.CarrierID)[:])
		if carrierErr != nil {
			return nil, carrierErr
		}
		carrierID = &cID
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	items := make([]*delivery.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(row.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := delivery.RestoreItem(itemID, row.ProductID, row.Description, row.Quantity, row.Unit)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	events := make([]*delivery.Event, 0, len(dto.Events))
	for _, row := range dto.Events {
		eventID, eventErr := kernel.UUIDFromBytes(row.ID[:])
		if eventErr != nil {
			return nil, eventErr
		}
		event, eventErr := delivery.RestoreEvent(
			eventID, delivery.EventType(row.EventType), row.OccurredAt.UTC(), row.Metadata,
		)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return delivery.RestoreNote(delivery.Snapshot{
		ID:                 id,
		Number:             delivery.Number(dto.Number),
		OrderID:            dto.OrderID,
		CustomerID:         dto.CustomerID,
		DeliveryAddressID:  dto.DeliveryAddressID,
		Status:             delivery.Status(dto.Status),
		CarrierID:          carrierID,
		TrackingNumber:     derefString(dto.TrackingNumber),
		ShippedAt:          utcPtr(dto.ShippedAt),
		DeliveredAt:        utcPtr(dto.DeliveredAt),
		ProofOfDeliveryURL: derefString(dto.ProofOfDeliveryURL),
		Items:              items,
		Events:             events,
		TenantID:           tenantID,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}

func carrierIDToDTO(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
