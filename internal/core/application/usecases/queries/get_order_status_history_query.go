package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatusHistoryQueryIsNotConstructed = errors.New(
	"GetOrderStatusHistoryQuery must be created via NewGetOrderStatusHistoryQuery constructor",
)

type GetOrderStatusHistoryQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusHistoryQuery(orderID kernel.UUID) (GetOrderStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusHistoryQuery{}, err
	}
	return GetOrderStatusHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusHistoryQueryIsNotConstructed)
}

func (q GetOrderStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusHistoryView is one audit entry. Comment is empty when none was given.
type StatusHistoryView struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	Comment   string    `json:"comment,omitempty"`
}
