// Package customer holds the read-only view of a customer that order creation needs:
// its identity and the address that is copied onto new orders.
package customer

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is owned by the customer management service; the fulfillment core never mutates it.
type Customer struct {
	id      kernel.UUID
	name    string
	address kernel.Address

	isConstructed bool
}

func NewCustomer(id kernel.UUID, name string, address kernel.Address) (*Customer, error) {
	c := &Customer{isConstructed: true}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setAddress(address),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID         { return c.id }
func (c *Customer) Name() string            { return c.name }
func (c *Customer) Address() kernel.Address { return c.address }

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}
