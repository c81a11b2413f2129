package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// RelayOrderEventsCommandHandler moves outbox messages to the broker. Messages are
// locked while they are published and flagged in the same transaction, so a crash
// between publish and commit leads to a redelivery, never to a loss.
type RelayOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewRelayOrderEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of messages published.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, cmd RelayOrderEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()

	messages, err := outboxRepo.FetchUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	if err = h.publisher.Publish(ctx, messages...); err != nil {
		return 0, err
	}

	ids := make([]kernel.UUID, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if err = outboxRepo.MarkPublished(ctx, ids, time.Now().UTC()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(messages), nil
}
