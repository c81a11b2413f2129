package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderStatusHistoryQueryHandler lists the audit trail of an order, newest first.
type GetOrderStatusHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusHistoryQueryHandler(db *gorm.DB) GetOrderStatusHistoryQueryHandler {
	return GetOrderStatusHistoryQueryHandler{db: db}
}

func (h GetOrderStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusHistoryQuery,
) ([]StatusHistoryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, query.OrderID().String()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			changed_at,
			comment
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at DESC, id DESC
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]StatusHistoryView, 0)
	for rows.Next() {
		var (
			id    uuid.UUID
			entry StatusHistoryView
		)
		if err = rows.Scan(&id, &entry.Status, &entry.ChangedAt, &entry.Comment); err != nil {
			return nil, err
		}
		entry.ID = id.String()
		entry.ChangedAt = entry.ChangedAt.UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
