package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys of the events this service publishes and consumes.
const (
	EventDeliveryCreated    = "delivery.created"
	EventDeliveryDispatched = "delivery.dispatched"
	EventDeliveryConfirmed  = "delivery.confirmed"
	EventDeliveryCanceled   = "delivery.canceled"
	EventOrderFulfilled     = "order.fulfilled"
)

// ErrBrokerUnavailable is returned by publishers that are not connected.
var ErrBrokerUnavailable = errors.New("message broker unavailable")

// Envelope wraps every published payload.
type Envelope struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// EventPublisher sends integration events. Publishing is best-effort: callers
// log a returned error and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type DeliveryCreatedPayload struct {
	DeliveryNoteID string `json:"deliveryNoteId"`
	OrderID        string `json:"orderId"`
	CustomerID     string `json:"customerId"`
	TenantID       string `json:"tenantId"`
}

type DispatchedItemPayload struct {
	ProductID   string          `json:"productId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

type DeliveryDispatchedPayload struct {
	DeliveryNoteID string                  `json:"deliveryNoteId"`
	OrderID        string                  `json:"orderId"`
	Items          []DispatchedItemPayload `json:"items"`
	TenantID       string                  `json:"tenantId"`
}

type DeliveryConfirmedPayload struct {
	DeliveryNoteID     string `json:"deliveryNoteId"`
	OrderID            string `json:"orderId"`
	CustomerID         string `json:"customerId"`
	ProofOfDeliveryURL string `json:"proofOfDeliveryUrl,omitempty"`
	TenantID           string `json:"tenantId"`
}

type DeliveryCanceledPayload struct {
	DeliveryNoteID string `json:"deliveryNoteId"`
	OrderID        string `json:"orderId"`
	Reason         string `json:"reason,omitempty"`
	TenantID       string `json:"tenantId"`
}

// OrderFulfilledItem is a line of an upstream order.fulfilled event.
type OrderFulfilledItem struct {
	ProductID   string          `json:"productId"`
	Description string          `json:"description,omitempty"`
	Name        string          `json:"name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
}

// OrderFulfilledEvent is the payload consumed from the order service.
type OrderFulfilledEvent struct {
	OrderID           string               `json:"orderId"`
	CustomerID        string               `json:"customerId"`
	Items             []OrderFulfilledItem `json:"items"`
	DeliveryAddressID string               `json:"deliveryAddressId"`
	TenantID          string               `json:"tenantId"`
}
