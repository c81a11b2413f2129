package customerrepo

import (
	"context"
	"errors"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add stores a customer. Customers are managed by another service; Add exists
// for seeding and tests.
func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return pgerr.Classify("add customer", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, pgerr.Classify("get customer", err)
	}

	return toDomain(dto)
}
