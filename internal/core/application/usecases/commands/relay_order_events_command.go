package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultRelayBatchSize is used when the configured batch size is not positive.
const DefaultRelayBatchSize = 100

var ErrRelayOrderEventsCommandIsNotConstructed = errors.New(
	"RelayOrderEventsCommand must be created via NewRelayOrderEventsCommand constructor",
)

// RelayOrderEventsCommand publishes at most BatchSize pending outbox messages.
type RelayOrderEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayOrderEventsCommand(batchSize int) (RelayOrderEventsCommand, error) {
	if batchSize <= 0 {
		return RelayOrderEventsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return RelayOrderEventsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayOrderEventsCommandIsNotConstructed)
}

func (c RelayOrderEventsCommand) BatchSize() int {
	return c.batchSize
}
