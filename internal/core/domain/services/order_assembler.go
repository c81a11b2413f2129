package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

// ReservedLine is one requested line after its stock has been reserved.
// Product is the snapshot returned by the reservation, so its price is the
// price that was current when the units were taken.
type ReservedLine struct {
	Product  *product.Product
	Quantity int
}

type OrderAssembler struct{}

func NewOrderAssembler() OrderAssembler {
	return OrderAssembler{}
}

// Assemble builds an IN_PROGRESS order for c. Lines keep the order of the lines
// argument; the delivery address is copied from the customer.
func (OrderAssembler) Assemble(
	orderID kernel.UUID,
	c *customer.Customer,
	lines []ReservedLine,
	trackingCode string,
	createdAt time.Time,
) (*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]*order.LineItem, 0, len(lines))
	for idx, line := range lines {
		if err := line.Product.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", idx), err)
		}

		item, err := order.NewLineItem(
			kernel.NewUUID(),
			line.Product.ID(),
			line.Product.Name(),
			line.Product.Price(),
			line.Quantity,
		)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("line for product %s", line.Product.ID()), err)
		}
		items = append(items, item)
	}

	return order.NewOrder(orderID, c.ID(), c.Address(), items, trackingCode, createdAt)
}
