package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one product line of an order. The product name and unit price are
// copied at reservation time, so the order total stays reproducible after catalog
// prices change.
type LineItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int

	isConstructed bool
}

func NewLineItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
) (*LineItem, error) {
	item := &LineItem{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (i *LineItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (i *LineItem) ID() kernel.UUID         { return i.id }
func (i *LineItem) ProductID() kernel.UUID  { return i.productID }
func (i *LineItem) ProductName() string     { return i.productName }
func (i *LineItem) UnitPrice() kernel.Money { return i.unitPrice }
func (i *LineItem) Quantity() int           { return i.quantity }

// Subtotal is unit price times quantity.
func (i *LineItem) Subtotal() kernel.Money {
	subtotal, _ := i.unitPrice.Multiply(i.quantity)
	return subtotal
}

func (i *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *LineItem) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *LineItem) setProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productName = name
	return nil
}

func (i *LineItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
