package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := query.Statuses()
	if len(statuses) == 0 {
		return loadOrderViews(ctx, h.db,
			`SELECT `+orderViewColumns+` FROM orders ORDER BY created_at DESC, id`)
	}

	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}

	return loadOrderViews(ctx, h.db,
		`SELECT `+orderViewColumns+` FROM orders WHERE status = ANY(?) ORDER BY created_at DESC, id`,
		pq.Array(names))
}
