package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateDeliveryNoteCommandIsNotConstructed = errors.New(
	"CreateDeliveryNoteCommand must be created via NewCreateDeliveryNoteCommand constructor",
)

// DeliveryItemInput is one requested product line.
type DeliveryItemInput struct {
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	Unit        string
}

// CreateDeliveryNoteCommand requests a new PENDING delivery note for an order.
// It is issued by the HTTP API and by the order.fulfilled consumer.
//
// Example:
//
//	cmd, err := NewCreateDeliveryNoteCommand("tenant-a", "O1", "C1", "A1", []DeliveryItemInput{
//	    {ProductID: "P1", Description: "Widget", Quantity: decimal.NewFromInt(2), Unit: "pcs"},
//	})
//	if err != nil {
//	    return err
//	}
//	note, err := handler.Handle(ctx, cmd)
type CreateDeliveryNoteCommand struct { //nolint:recvcheck //using for validation
	tenantID          kernel.TenantID
	orderID           string
	customerID        string
	deliveryAddressID string
	items             []*delivery.Item

	guard guard.ConstructorGuard
}

// NewCreateDeliveryNoteCommand validates the tenant and every item. Reference
// checks are left to the delivery note aggregate.
func NewCreateDeliveryNoteCommand(
	tenantID, orderID, customerID, deliveryAddressID string,
	items []DeliveryItemInput,
) (CreateDeliveryNoteCommand, error) {
	command := CreateDeliveryNoteCommand{
		orderID:           strings.TrimSpace(orderID),
		customerID:        strings.TrimSpace(customerID),
		deliveryAddressID: strings.TrimSpace(deliveryAddressID),
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setItems(items),
	); err != nil {
		return CreateDeliveryNoteCommand{}, err
	}

	return command, nil
}

func (c CreateDeliveryNoteCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryNoteCommandIsNotConstructed)
}

func (c CreateDeliveryNoteCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c CreateDeliveryNoteCommand) OrderID() string {
	return c.orderID
}

func (c CreateDeliveryNoteCommand) CustomerID() string {
	return c.customerID
}

func (c CreateDeliveryNoteCommand) DeliveryAddressID() string {
	return c.deliveryAddressID
}

func (c CreateDeliveryNoteCommand) Items() []*delivery.Item {
	return c.items
}

func (c *CreateDeliveryNoteCommand) setTenantID(tenantID string) error {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return err
	}
	c.tenantID = tenant
	return nil
}

func (c *CreateDeliveryNoteCommand) setItems(inputs []DeliveryItemInput) error {
	if len(inputs) == 0 {
		return delivery.ErrItemsAreRequired
	}

	items := make([]*delivery.Item, 0, len(inputs))
	var errs error
	for _, input := range inputs {
		item, err := delivery.NewItem(input.ProductID, input.Description, input.Quantity, input.Unit)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		items = append(items, item)
	}
	if errs != nil {
		return errs
	}

	c.items = items
	return nil
}
