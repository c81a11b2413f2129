package commands

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrEmptyItemList is returned when an order is requested without any line.
	ErrEmptyItemList = errs.NewValueIsRequiredError("items")
)

// OrderItem is one requested (product, quantity) pair.
type OrderItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand asks to create an order for a customer.
// Lines naming the same product are merged by summing their quantities; the
// merged lines keep the position of the first occurrence.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	items      []OrderItem

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(customerID kernel.UUID, items []OrderItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the merged lines in request order.
func (c CreateOrderCommand) Items() []OrderItem {
	items := make([]OrderItem, len(c.items))
	copy(items, c.items)
	return items
}

// ProductIDs returns the distinct product ids in request order.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyItemList
	}

	var errList []error
	merged := make([]OrderItem, 0, len(items))
	positions := make(map[kernel.UUID]int, len(items))
	for idx, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].productId", idx), err))
			continue
		}
		if item.Quantity <= 0 {
			errList = append(errList,
				errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", idx), item.Quantity, 1, "unbounded"))
			continue
		}

		if pos, ok := positions[item.ProductID]; ok {
			if headroom := math.MaxInt - merged[pos].Quantity; item.Quantity > headroom {
				errList = append(errList,
					errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", idx), item.Quantity, 1, headroom))
				continue
			}
			merged[pos].Quantity += item.Quantity
			continue
		}
		positions[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = merged
	return nil
}
