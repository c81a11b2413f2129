// Package ports defines the contracts between the fulfillment core and its adapters:
// transactional repositories, the tracking code generator and the event publisher.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their line items.
type OrderRepository interface {
	// Add stores a new order and its line items. A tracking code already used by
	// another order is reported as errs.ErrConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the mutable part of an existing order: status and tracking code.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its line items in display order.
	// A missing order is reported as errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
