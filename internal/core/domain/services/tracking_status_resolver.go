package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/delivery"
)

// trackingKeyword maps a fragment of carrier status text to an internal status.
type trackingKeyword struct {
	fragment string
	status   delivery.Status
}

// TrackingStatusResolver translates free-text carrier tracking statuses into
// delivery statuses by case-insensitive keyword containment.
//
// Keywords are checked in order, first match wins:
//   - "delivered"  -> DELIVERED
//   - "in transit" -> IN_TRANSIT
//   - "returned"   -> RETURNED
//
// Text matching none of them leaves the current status unchanged.
//
// Example:
//
//	resolver := services.NewTrackingStatusResolver()
//	status, changed := resolver.Resolve("In Transit - Hub A", delivery.StatusDispatched)
//	// status == delivery.StatusInTransit, changed == true
type TrackingStatusResolver struct {
	keywords []trackingKeyword
}

func NewTrackingStatusResolver() TrackingStatusResolver {
	return TrackingStatusResolver{
		keywords: []trackingKeyword{
			{fragment: "delivered", status: delivery.StatusDelivered},
			{fragment: "in transit", status: delivery.StatusInTransit},
			{fragment: "returned", status: delivery.StatusReturned},
		},
	}
}

// Resolve returns the status implied by carrierStatus and whether it differs from current.
func (r TrackingStatusResolver) Resolve(carrierStatus string, current delivery.Status) (delivery.Status, bool) {
	text := strings.ToLower(carrierStatus)
	for _, keyword := range r.keywords {
		if strings.Contains(text, keyword.fragment) {
			return keyword.status, keyword.status != current
		}
	}
	return current, false
}
