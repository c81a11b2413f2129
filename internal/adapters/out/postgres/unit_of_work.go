// Package postgres provides the GORM-based Unit of Work of the fulfillment service.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// run inside that transaction. Orders written through the order repository are
// tracked; on Commit their pending domain events are stored in the outbox table
// within the same transaction, so an event exists if and only if the change it
// describes was committed.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := uow.ProductRepository().Reserve(ctx, productID, 3); err != nil {
//	    return err // rollback releases every reservation
//	}
//	...
//	return uow.Commit(ctx)
//
// Each transaction sets lock_timeout, so a reservation waiting on a row locked by
// another transaction fails with errs.ErrTransient instead of blocking forever.
package postgres

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/historyrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultLockTimeout is used when the factory is given a non-positive timeout.
const DefaultLockTimeout = 5 * time.Second

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewGormUnitOfWorkFactory(db *gorm.DB, lockTimeout time.Duration) *GormUnitOfWorkFactory {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &GormUnitOfWorkFactory{db: db, lockTimeout: lockTimeout}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		lockTimeout:       f.lockTimeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use; create one per operation.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	lockTimeout       time.Duration
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Classify("begin transaction", tx.Error)
	}

	// SET does not take bind parameters; the value is an integer we format ourselves.
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", uow.lockTimeout.Milliseconds())
	if err := tx.Exec(timeout).Error; err != nil {
		_ = tx.Rollback().Error
		return pgerr.Classify("set lock timeout", err)
	}

	uow.tx = tx
	return nil
}

// Commit writes the pending events of tracked aggregates to the outbox, then commits.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	sources := uow.eventSources()
	events := make([]kernel.DomainEvent, 0)
	for _, source := range sources {
		events = append(events, source.DomainEvents()...)
	}

	if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, events...); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return pgerr.Classify("commit transaction", err)
	}

	for _, source := range sources {
		source.ClearDomainEvents()
	}
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return historyrepo.NewGormStatusHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written in this transaction. Tracking
// the same aggregate twice has no further effect.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for _, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) && tracked.Aggregate == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) eventSources() []kernel.EventSource {
	sources := make([]kernel.EventSource, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(kernel.EventSource); ok {
			sources = append(sources, source)
		}
	}
	return sources
}

// conn returns the transaction when one is active, otherwise the pool.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
