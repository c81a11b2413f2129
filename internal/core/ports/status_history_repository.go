package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// StatusHistoryRepository is append-only: entries are never updated or deleted.
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry *order.HistoryEntry) error
}
