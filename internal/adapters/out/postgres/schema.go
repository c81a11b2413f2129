package postgres

import (
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/historyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&historyrepo.HistoryEntryDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
