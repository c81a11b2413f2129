// Package pgtest starts a throwaway PostgreSQL container with the service schema
// for integration tests.
package pgtest

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var tables = []string{
	"outbox_messages",
	"order_status_history",
	"order_line_items",
	"orders",
	"products",
	"customers",
}

// Start runs postgres:15-alpine, connects with the same gorm options as the
// service and migrates the schema.
func Start(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}

// Truncate empties every service table.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
}
