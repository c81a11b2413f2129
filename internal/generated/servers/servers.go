// Package servers holds the HTTP contract of the fulfillment API: the OpenAPI
// document, the request and response types, and the echo bindings that decode
// parameters before calling a ServerInterface.
package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.json
var rawSpec []byte

// OrderStatus defines model for OrderStatus.
type OrderStatus string

const (
	OrderStatusPENDING    OrderStatus = "PENDING"
	OrderStatusINPROGRESS OrderStatus = "IN_PROGRESS"
	OrderStatusFINALIZED  OrderStatus = "FINALIZED"
	OrderStatusCANCELED   OrderStatus = "CANCELED"
)

// Address defines model for Address.
type Address struct {
	City     string `json:"city"`
	District string `json:"district"`
	Number   string `json:"number"`
	State    string `json:"state"`
	Street   string `json:"street"`
	ZipCode  string `json:"zipCode"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerId string         `json:"customerId"`
	Items      []NewOrderItem `json:"items"`
}

// NewOrderItem defines model for NewOrderItem.
type NewOrderItem struct {
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt       time.Time   `json:"createdAt"`
	CustomerId      string      `json:"customerId"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	Id              string      `json:"id"`
	Items           []OrderItem `json:"items"`
	Status          OrderStatus `json:"status"`
	Total           string      `json:"total"`
	TrackingCode    string      `json:"trackingCode"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ProductId   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Comment *string `json:"comment,omitempty"`
	Status  string  `json:"status"`
}

// StatusHistoryEntry defines model for StatusHistoryEntry.
type StatusHistoryEntry struct {
	ChangedAt time.Time   `json:"changedAt"`
	Comment   *string     `json:"comment,omitempty"`
	Id        string      `json:"id"`
	Status    OrderStatus `json:"status"`
}

// TrackingCodeChange defines model for TrackingCodeChange.
type TrackingCodeChange struct {
	TrackingCode string `json:"trackingCode"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *[]OrderStatus `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Create an order and reserve its stock
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId string) error
	// Status history of an order, newest first
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderStatusHistory(ctx echo.Context, orderId string) error
	// Change the status of an order
	// (PUT /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId string) error
	// Replace the tracking code of an order
	// (PUT /api/v1/orders/{orderId}/tracking-code)
	UpdateTrackingCode(ctx echo.Context, orderId string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrderStatusHistory(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderStatusHistory(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) UpdateTrackingCode(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateTrackingCode(ctx, orderId)
}

func bindOrderID(ctx echo.Context) (string, error) {
	var orderId string
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/history", wrapper.GetOrderStatusHistory)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", wrapper.UpdateOrderStatus)
	router.PUT(baseURL+"/api/v1/orders/:orderId/tracking-code", wrapper.UpdateTrackingCode)
}

// RawSpec returns the OpenAPI document as JSON.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("error validating OpenAPI document: %w", err)
	}
	return doc, nil
}
