// Package outboxrepo stores serialized domain events until the relay publishes them.
package outboxrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index:idx_outbox_messages_pending,priority:2"`
	PublishedAt *time.Time `gorm:"index:idx_outbox_messages_pending,priority:1"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		EventType:   dto.EventType,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt.UTC(),
	}, nil
}
