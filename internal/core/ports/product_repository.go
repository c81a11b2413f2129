package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository is the inventory ledger. It is the only component allowed to
// change product stock.
type ProductRepository interface {
	// GetByIDs returns the products that exist among ids, keyed by id.
	// Missing ids are simply absent from the map.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)

	// Reserve atomically takes quantity units of the product's stock, or takes
	// nothing. On success it returns the product as it is after the decrement.
	// It fails with *product.InsufficientStockError when the stock is too low and
	// with errs.ErrObjectNotFound when the product does not exist. The row stays
	// locked until the surrounding transaction ends; rollback restores the stock.
	Reserve(ctx context.Context, id kernel.UUID, quantity int) (*product.Product, error)
}
