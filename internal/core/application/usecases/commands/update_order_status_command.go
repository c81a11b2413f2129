package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to a new status. The status is
// given by name and parsed against the fixed enumeration; the comment is optional.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	comment string

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID kernel.UUID, status string, comment string) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }
func (c UpdateOrderStatusCommand) Comment() string      { return c.comment }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}
