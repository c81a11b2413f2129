package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository gives the relay access to stored events.
type OutboxRepository interface {
	// FetchUnpublished returns up to limit unpublished messages, oldest first, and
	// locks them for the current transaction. Rows locked by a concurrent relay
	// are skipped.
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished flags messages as published at the given time.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages ...OutboxMessage) error
}
