package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order view, going through the cache first
// when one is configured. Cache failures never fail the query.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	cache OrderViewCache
}

func NewGetOrderQueryHandler(db *gorm.DB, cache OrderViewCache) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, cache: cache}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	if h.cache != nil {
		if view, ok, err := h.cache.Get(ctx, query.OrderID()); err == nil && ok {
			return view, nil
		}
	}

	views, err := loadOrderViews(ctx, h.db, `SELECT `+orderViewColumns+` FROM orders WHERE id = ?`,
		query.OrderID().String())
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if h.cache != nil {
		_ = h.cache.Fill(ctx, views[0])
	}

	return views[0], nil
}
