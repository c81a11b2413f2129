package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every repository it returns is
// bound to the transaction started by Begin. On Commit, the domain events of
// every tracked aggregate are written to the outbox before the transaction is
// committed.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns errs.ErrTransient when the database aborts the transaction
	// for a reason that a retry may fix.
	Commit(ctx context.Context) error

	// Rollback discards every change of the transaction, including stock reservations.
	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
	StatusHistoryRepository() StatusHistoryRepository
	OutboxRepository() OutboxRepository
}
