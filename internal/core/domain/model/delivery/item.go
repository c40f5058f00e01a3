package delivery

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultUnit is used when an upstream line item carries no unit of measure.
const DefaultUnit = "pcs"

var (
	ErrProductIDIsRequired  = errs.NewValueIsRequiredError("productId")
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is one product line of a delivery note.
type Item struct {
	id          kernel.UUID
	productID   string
	description string
	quantity    decimal.Decimal
	unit        string
	guard       guard.ConstructorGuard
}

// NewItem validates a product line. Quantity must be greater than zero;
// an empty unit falls back to DefaultUnit.
func NewItem(productID, description string, quantity decimal.Decimal, unit string) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), productID, description, quantity, unit)
}

// RestoreItem rebuilds a persisted product line.
func RestoreItem(id kernel.UUID, productID, description string, quantity decimal.Decimal, unit string) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}
	item.description = strings.TrimSpace(description)
	item.unit = strings.TrimSpace(unit)
	if item.unit == "" {
		item.unit = DefaultUnit
	}

	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() string {
	return i.productID
}

func (i *Item) Description() string {
	return i.description
}

func (i *Item) Quantity() decimal.Decimal {
	return i.quantity
}

func (i *Item) Unit() string {
	return i.unit
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ErrProductIDIsRequired
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
