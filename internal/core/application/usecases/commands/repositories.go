// Package commands contains the use cases that change state: order creation,
// status and tracking code updates, and the outbox relay. Every handler runs
// inside one unit of work: Begin, deferred Rollback, Commit at the end.
package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CreateOrderUoW spans the customer read, the stock reservations and the
	// order write of a single order creation.
	CreateOrderUoW interface {
		TxManager
		CustomerRepoFactory
		ProductRepoFactory
		OrderRepoFactory
		StatusHistoryRepoFactory
	}

	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// OrderUoW is used by commands that change an existing order and append to its history.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		StatusHistoryRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// OrderCache holds read models of orders. Refresh overwrites the cached view
	// with the committed aggregate; Invalidate drops it.
	OrderCache interface {
		Refresh(ctx context.Context, o *order.Order) error
		Invalidate(ctx context.Context, orderID kernel.UUID) error
	}
)
