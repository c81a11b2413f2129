package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	EventTypeOrderCreated             = "order.created"
	EventTypeOrderStatusChanged       = "order.status_changed"
	EventTypeOrderTrackingCodeChanged = "order.tracking_code_changed"
)

type baseEvent struct {
	eventID    kernel.UUID
	orderID    kernel.UUID
	occurredAt time.Time
}

func newBaseEvent(orderID kernel.UUID, occurredAt time.Time) baseEvent {
	return baseEvent{eventID: kernel.NewUUID(), orderID: orderID, occurredAt: occurredAt.UTC()}
}

func (e baseEvent) EventID() kernel.UUID     { return e.eventID }
func (e baseEvent) AggregateID() kernel.UUID { return e.orderID }
func (e baseEvent) OccurredAt() time.Time    { return e.occurredAt }

type OrderCreated struct {
	baseEvent
	CustomerID   kernel.UUID
	Total        kernel.Money
	Status       Status
	TrackingCode string
}

func (OrderCreated) EventType() string { return EventTypeOrderCreated }

type OrderStatusChanged struct {
	baseEvent
	From    Status
	To      Status
	Comment string
}

func (OrderStatusChanged) EventType() string { return EventTypeOrderStatusChanged }

type OrderTrackingCodeChanged struct {
	baseEvent
	Previous string
	Current  string
}

func (OrderTrackingCodeChanged) EventType() string { return EventTypeOrderTrackingCodeChanged }
