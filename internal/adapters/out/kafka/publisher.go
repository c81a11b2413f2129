// Package kafka publishes order events from the outbox to a Kafka topic.
package kafka

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	headerEventID   = "event-id"
	headerEventType = "event-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEventsPublisher writes outbox messages keyed by order id, so all events of
// one order land on the same partition in the order they were committed.
type OrderEventsPublisher struct {
	writer messageWriter
}

// NewOrderEventsPublisher writes synchronously and waits for all in-sync
// replicas; the relay marks messages published only after WriteMessages returns.
func NewOrderEventsPublisher(brokers []string, topic string) *OrderEventsPublisher {
	return NewOrderEventsPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func NewOrderEventsPublisherWithWriter(writer messageWriter) *OrderEventsPublisher {
	return &OrderEventsPublisher{writer: writer}
}

func (p *OrderEventsPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, kafka.Message{
			Key:   []byte(m.AggregateID.String()),
			Value: m.Payload,
			Time:  m.OccurredAt,
			Headers: []kafka.Header{
				{Key: headerEventID, Value: []byte(m.ID.String())},
				{Key: headerEventType, Value: []byte(m.EventType)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return errs.NewTransientErrorWithCause("publish order events", err)
	}
	return nil
}

func (p *OrderEventsPublisher) Close() error {
	return p.writer.Close()
}
