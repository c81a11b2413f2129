package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while handling a command. Events are
// collected by the unit of work and stored in the outbox within the same transaction.
type DomainEvent interface {
	EventID() UUID
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that record domain events.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
