package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTrackingCodeCommandIsNotConstructed = errors.New(
	"UpdateTrackingCodeCommand must be created via NewUpdateTrackingCodeCommand constructor",
)

type UpdateTrackingCodeCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	trackingCode string

	guard guard.ConstructorGuard
}

func NewUpdateTrackingCodeCommand(orderID kernel.UUID, trackingCode string) (UpdateTrackingCodeCommand, error) {
	cmd := UpdateTrackingCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTrackingCode(trackingCode),
	); err != nil {
		return UpdateTrackingCodeCommand{}, err
	}

	return cmd, nil
}

func (c UpdateTrackingCodeCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingCodeCommandIsNotConstructed)
}

func (c UpdateTrackingCodeCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateTrackingCodeCommand) TrackingCode() string { return c.trackingCode }

func (c *UpdateTrackingCodeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingCodeCommand) setTrackingCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	c.trackingCode = code
	return nil
}
