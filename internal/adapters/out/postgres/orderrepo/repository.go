package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker lets the unit of work collect the domain events of every
// order written through this repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and then its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return r.translate("add order", aggregate, err)
	}
	if err := db.Create(&items).Error; err != nil {
		return pgerr.Classify("add order line items", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns only.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":        aggregate.Status().String(),
			"tracking_code": aggregate.TrackingCode(),
		})
	if result.Error != nil {
		return r.translate("update order", aggregate, result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the order and locks its row until the transaction ends, so that
// concurrent status changes on one order are applied one after another.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Classify("get order", err)
	}

	if err = db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, pgerr.Classify("get order line items", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) translate(operation string, aggregate *order.Order, err error) error {
	if pgerr.IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause("tracking code", aggregate.TrackingCode(), order.ErrTrackingCodeTaken)
	}
	return pgerr.Classify(operation, err)
}
