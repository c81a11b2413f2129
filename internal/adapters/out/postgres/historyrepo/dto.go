// Package historyrepo stores the append-only order status history.
package historyrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type HistoryEntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_order_status_history_order_changed,priority:1"`
	Status    string    `gorm:"type:varchar(16);not null;check:chk_order_status_history_status,status IN ('PENDING','IN_PROGRESS','FINALIZED','CANCELED')"`
	ChangedAt time.Time `gorm:"not null;index:idx_order_status_history_order_changed,priority:2,sort:desc"`
	Comment   string    `gorm:"type:varchar(500);not null;default:''"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(entry *order.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		Status:    entry.Status().String(),
		ChangedAt: entry.ChangedAt(),
		Comment:   entry.Comment(),
	}
}
