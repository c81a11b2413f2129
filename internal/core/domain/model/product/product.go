// Package product models the catalog entry whose stock is shared by every concurrent
// order creation. Stock is never negative: a reservation that would overdraw it is
// refused, never clamped.
package product

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is matched by InsufficientStockError in addition to errs.ErrConflict.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a snapshot of a catalog row: the values read or returned by the inventory ledger.
type Product struct {
	id    kernel.UUID
	name  string
	price kernel.Money
	stock int

	isConstructed bool
}

func NewProduct(id kernel.UUID, name string, price kernel.Money, stock int) (*Product, error) {
	p := &Product{isConstructed: true}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Stock() int          { return p.stock }

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
