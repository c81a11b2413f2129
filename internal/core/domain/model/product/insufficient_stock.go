package product

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// InsufficientStockError carries the product and the shortfall of a refused reservation.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Requested int
	Available int
}

func NewInsufficientStockError(productID kernel.UUID, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// Shortfall is the number of units missing to satisfy the request.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d, shortfall %d",
		ErrInsufficientStock, e.ProductID, e.Requested, e.Available, e.Shortfall())
}

func (e *InsufficientStockError) Unwrap() []error {
	return []error{ErrInsufficientStock, errs.ErrConflict}
}
