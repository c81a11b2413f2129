package outboxrepo

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository and the write side used
// by the unit of work.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add serializes events into outbox rows.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		payload, err := encodeEvent(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, OutboxMessageDTO{
			ID:          event.EventID().Bytes(),
			AggregateID: event.AggregateID().Bytes(),
			EventType:   event.EventType(),
			Payload:     payload,
			OccurredAt:  event.OccurredAt(),
		})
	}

	return pgerr.Classify("add outbox messages", r.db.WithContext(ctx).Create(&dtos).Error)
}

func (r *GormOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("fetch outbox messages", err)
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxMessageDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at.UTC()).Error
	return pgerr.Classify("mark outbox messages published", err)
}
