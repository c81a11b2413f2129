package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type envelope struct {
	EventID    string    `json:"eventId"`
	EventType  string    `json:"eventType"`
	OrderID    string    `json:"orderId"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type orderCreatedData struct {
	CustomerID   string `json:"customerId"`
	Total        string `json:"total"`
	Status       string `json:"status"`
	TrackingCode string `json:"trackingCode"`
}

type orderStatusChangedData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Comment string `json:"comment,omitempty"`
}

type orderTrackingCodeChangedData struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// encodeEvent renders the JSON document published for event.
func encodeEvent(event kernel.DomainEvent) ([]byte, error) {
	var data any
	switch e := event.(type) {
	case order.OrderCreated:
		data = orderCreatedData{
			CustomerID:   e.CustomerID.String(),
			Total:        e.Total.String(),
			Status:       e.Status.String(),
			TrackingCode: e.TrackingCode,
		}
	case order.OrderStatusChanged:
		data = orderStatusChangedData{From: e.From.String(), To: e.To.String(), Comment: e.Comment}
	case order.OrderTrackingCodeChanged:
		data = orderTrackingCodeChangedData{Previous: e.Previous, Current: e.Current}
	default:
		return nil, fmt.Errorf("unsupported domain event %T", event)
	}

	return json.Marshal(envelope{
		EventID:    event.EventID().String(),
		EventType:  event.EventType(),
		OrderID:    event.AggregateID().String(),
		OccurredAt: event.OccurredAt(),
		Data:       data,
	})
}
