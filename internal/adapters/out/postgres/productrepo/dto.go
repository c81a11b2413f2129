// Package productrepo implements the inventory ledger on top of the products table.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO maps the products table. The check constraint is the last line of
// defence against negative stock; the ledger never relies on it.
type ProductDTO struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name  string          `gorm:"not null"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Stock int             `gorm:"not null;check:chk_products_stock,stock >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID().Bytes(),
		Name:  p.Name(),
		Price: p.Price().Decimal(),
		Stock: p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.NewProduct(id, dto.Name, price, dto.Stock)
}
