package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/carrier"

	"github.com/shopspring/decimal"
)

// Recipient is the postal destination of a shipment.
type Recipient struct {
	Name       string
	Company    string
	Street     string
	City       string
	PostalCode string
	Country    string
	Email      string
	Phone      string
}

// ShipmentItem is a carrier-agnostic line of a shipment.
type ShipmentItem struct {
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	Unit        string
}

// ShipmentRequest is the carrier-agnostic input of CreateShipment.
// Reference is the delivery number, printed on the label by carriers that support it.
type ShipmentRequest struct {
	Reference string
	Recipient Recipient
	Items     []ShipmentItem
}

// ShipmentResult is what a carrier returns for a created shipment.
type ShipmentResult struct {
	TrackingNumber string
	LabelURL       string
}

// TrackingEvent is one scan reported by a carrier.
type TrackingEvent struct {
	Timestamp   time.Time
	Status      string
	Location    string
	Description string
}

// TrackingInfo is the carrier's current view of a shipment. Status is free text.
type TrackingInfo struct {
	Status            string
	CurrentLocation   string
	EstimatedDelivery *time.Time
	Events            []TrackingEvent
}

// Snapshot flattens the tracking info into event metadata.
func (i TrackingInfo) Snapshot() map[string]any {
	snapshot := map[string]any{
		"status": i.Status,
	}
	if i.CurrentLocation != "" {
		snapshot["currentLocation"] = i.CurrentLocation
	}
	if i.EstimatedDelivery != nil {
		snapshot["estimatedDelivery"] = i.EstimatedDelivery.UTC().Format(time.RFC3339)
	}
	if len(i.Events) > 0 {
		events := make([]map[string]any, 0, len(i.Events))
		for _, e := range i.Events {
			events = append(events, map[string]any{
				"timestamp":   e.Timestamp.UTC().Format(time.RFC3339),
				"status":      e.Status,
				"location":    e.Location,
				"description": e.Description,
			})
		}
		snapshot["events"] = events
	}
	return snapshot
}

// CarrierIntegration is the uniform contract over one carrier brand's HTTP API.
// Implementations retry failed calls and return errs.RetryExhaustedError once
// every attempt has failed.
type CarrierIntegration interface {
	Kind() carrier.Kind
	CreateShipment(ctx context.Context, request ShipmentRequest) (ShipmentResult, error)
	GetTrackingInfo(ctx context.Context, trackingNumber string) (TrackingInfo, error)
}

// CarrierIntegrationFactory selects the integration for a configured carrier.
type CarrierIntegrationFactory interface {
	ForCarrier(c *carrier.Carrier) (CarrierIntegration, error)
}
