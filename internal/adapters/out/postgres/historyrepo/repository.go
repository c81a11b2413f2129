package historyrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements ports.StatusHistoryRepository.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return pgerr.Classify("append status history", r.db.WithContext(ctx).Create(&dto).Error)
}
