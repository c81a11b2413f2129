// Package customerrepo reads customers from the customers table.
package customerrepo

import (
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name    string     `gorm:"not null"`
	Address AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type AddressDTO struct {
	Street   string `gorm:"not null"`
	Number   string `gorm:"not null;default:''"`
	District string `gorm:"not null;default:''"`
	City     string `gorm:"not null"`
	State    string `gorm:"not null;default:''"`
	ZipCode  string `gorm:"not null"`
}

func fromDomain(c *customer.Customer) CustomerDTO {
	a := c.Address()
	return CustomerDTO{
		ID:   c.ID().Bytes(),
		Name: c.Name(),
		Address: AddressDTO{
			Street:   a.Street(),
			Number:   a.Number(),
			District: a.District(),
			City:     a.City(),
			State:    a.State(),
			ZipCode:  a.ZipCode(),
		},
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.Address.Street,
		dto.Address.Number,
		dto.Address.District,
		dto.Address.City,
		dto.Address.State,
		dto.Address.ZipCode,
	)
	if err != nil {
		return nil, err
	}

	return customer.NewCustomer(id, dto.Name, address)
}
