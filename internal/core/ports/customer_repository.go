package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerRepository reads customers owned by the customer management service.
type CustomerRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
