// Package queries contains the read side: order views, order lists and status
// history. Handlers read with plain SQL through the shared *gorm.DB and never
// go through the aggregates.
package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the external representation of an order.
type OrderView struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	Items           []LineItemView `json:"items"`
	Total           string         `json:"total"`
	CreatedAt       time.Time      `json:"createdAt"`
	Status          string         `json:"status"`
	TrackingCode    string         `json:"trackingCode"`
	DeliveryAddress AddressView    `json:"deliveryAddress"`
}

type LineItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
}

type AddressView struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// OrderViewCache keeps recently read order views. Misses are reported with ok == false.
// Fill stores a view only when no entry exists for the order, so a view read before
// a concurrent update never replaces the one written after its commit.
type OrderViewCache interface {
	Get(ctx context.Context, orderID kernel.UUID) (view OrderView, ok bool, err error)
	Fill(ctx context.Context, view OrderView) error
}

// NewOrderView maps an aggregate, typically one just returned by a command handler.
func NewOrderView(o *order.Order) OrderView {
	items := make([]LineItemView, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, LineItemView{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().String(),
			Quantity:    item.Quantity(),
		})
	}

	address := o.Address()
	return OrderView{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID().String(),
		Items:        items,
		Total:        o.Total().String(),
		CreatedAt:    o.CreatedAt(),
		Status:       o.Status().String(),
		TrackingCode: o.TrackingCode(),
		DeliveryAddress: AddressView{
			Street:   address.Street(),
			Number:   address.Number(),
			District: address.District(),
			City:     address.City(),
			State:    address.State(),
			ZipCode:  address.ZipCode(),
		},
	}
}

const orderViewColumns = `
	id,
	customer_id,
	total,
	created_at,
	status,
	tracking_code,
	address_street,
	address_number,
	address_district,
	address_city,
	address_state,
	address_zip_code`

// loadOrderViews runs an orders query selecting orderViewColumns and attaches the
// line items of every returned order in display order.
func loadOrderViews(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var (
			id, customerID uuid.UUID
			total          decimal.Decimal
			view           OrderView
		)
		err = rows.Scan(
			&id,
			&customerID,
			&total,
			&view.CreatedAt,
			&view.Status,
			&view.TrackingCode,
			&view.DeliveryAddress.Street,
			&view.DeliveryAddress.Number,
			&view.DeliveryAddress.District,
			&view.DeliveryAddress.City,
			&view.DeliveryAddress.State,
			&view.DeliveryAddress.ZipCode,
		)
		if err != nil {
			return nil, err
		}

		view.ID = id.String()
		view.CustomerID = customerID.String()
		view.Total = total.StringFixed(kernel.MoneyScale)
		view.CreatedAt = view.CreatedAt.UTC()
		view.Items = make([]LineItemView, 0)
		views = append(views, view)
		ids = append(ids, view.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	items, err := loadLineItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].Items = append(views[i].Items, items[views[i].ID]...)
	}

	return views, nil
}

func loadLineItems(ctx context.Context, db *gorm.DB, orderIDs []string) (map[string][]LineItemView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			product_name,
			unit_price,
			quantity
		FROM order_line_items
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, position
	`, pq.Array(orderIDs)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]LineItemView, len(orderIDs))
	for rows.Next() {
		var (
			orderID, productID uuid.UUID
			unitPrice          decimal.Decimal
			item               LineItemView
		)
		if err = rows.Scan(&orderID, &productID, &item.ProductName, &unitPrice, &item.Quantity); err != nil {
			return nil, err
		}

		item.ProductID = productID.String()
		item.UnitPrice = unitPrice.StringFixed(kernel.MoneyScale)
		items[orderID.String()] = append(items[orderID.String()], item)
	}

	return items, rows.Err()
}
