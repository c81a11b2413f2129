package productrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add stores a catalog entry. The catalog is owned elsewhere; Add exists for
// seeding and tests.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return pgerr.Classify("add product", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormProductRepository) GetByIDs(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*product.Product, error) {
	products := make(map[kernel.UUID]*product.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, pgerr.Classify("get products", err)
	}

	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}

	return products, nil
}

// Reserve decrements stock with a single conditional UPDATE. The row lock it
// takes is held until the surrounding transaction ends.
func (r *GormProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	var reserved []ProductDTO
	err := r.db.WithContext(ctx).Raw(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
		RETURNING id, name, price, stock
	`, quantity, id.Bytes(), quantity).Scan(&reserved).Error
	if err != nil {
		return nil, pgerr.Classify("reserve stock", err)
	}

	if len(reserved) == 1 {
		return toDomain(reserved[0])
	}

	var current []ProductDTO
	err = r.db.WithContext(ctx).Raw(`SELECT id, name, price, stock FROM products WHERE id = ?`, id.Bytes()).
		Scan(&current).Error
	if err != nil {
		return nil, pgerr.Classify("read stock", err)
	}
	if len(current) == 0 {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}

	return nil, product.NewInsufficientStockError(id, quantity, current[0].Stock)
}
