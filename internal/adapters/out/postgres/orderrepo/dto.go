// Package orderrepo persists the order aggregate: one orders row plus its line
// items. Line items are written once, with the order, and never updated.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	Status       string          `gorm:"type:varchar(16);not null;index;check:chk_orders_status,status IN ('PENDING','IN_PROGRESS','FINALIZED','CANCELED')"`
	TrackingCode string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_tracking_code"`
	Address      AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Items        []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address copied onto the order at creation.
type AddressDTO struct {
	Street   string `gorm:"not null"`
	Number   string `gorm:"not null;default:''"`
	District string `gorm:"not null;default:''"`
	City     string `gorm:"not null"`
	State    string `gorm:"not null;default:''"`
	ZipCode  string `gorm:"not null"`
}

type LineItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"not null;check:chk_order_line_items_quantity,quantity > 0"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	a := o.Address()

	items := make([]LineItemDTO, 0, len(o.Items()))
	for position, item := range o.Items() {
		items = append(items, LineItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     o.ID().Bytes(),
			Position:    position,
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Decimal(),
			Quantity:    item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		Total:        o.Total().Decimal(),
		CreatedAt:    o.CreatedAt(),
		Status:       o.Status().String(),
		TrackingCode: o.TrackingCode(),
		Address: AddressDTO{
			Street:   a.Street(),
			Number:   a.Number(),
			District: a.District(),
			City:     a.City(),
			State:    a.State(),
			ZipCode:  a.ZipCode(),
		},
		Items: items,
	}
}

// toDomain expects dto.Items sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
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

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := lineItemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, address, items, total, status, dto.TrackingCode, dto.CreatedAt)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.NewLineItem(id, productID, dto.ProductName, unitPrice, dto.Quantity)
}
