package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}

	UpdateTrackingCodeHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateTrackingCodeCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}

	GetOrderStatusHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderStatusHistoryQuery) ([]queries.StatusHistoryView, error)
	}
)

// Server implements servers.ServerInterface on top of the use case handlers.
type Server struct {
	createOrderHandler        CreateOrderHandler
	updateOrderStatusHandler  UpdateOrderStatusHandler
	updateTrackingCodeHandler UpdateTrackingCodeHandler

	getOrderHandler              GetOrderHandler
	listOrdersHandler            ListOrdersHandler
	getOrderStatusHistoryHandler GetOrderStatusHistoryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrderHandler CreateOrderHandler,
	updateOrderStatusHandler UpdateOrderStatusHandler,
	updateTrackingCodeHandler UpdateTrackingCodeHandler,
	getOrderHandler GetOrderHandler,
	listOrdersHandler ListOrdersHandler,
	getOrderStatusHistoryHandler GetOrderStatusHistoryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		updateOrderStatusHandler:     updateOrderStatusHandler,
		updateTrackingCodeHandler:    updateTrackingCodeHandler,
		getOrderHandler:              getOrderHandler,
		listOrdersHandler:            listOrdersHandler,
		getOrderStatusHistoryHandler: getOrderStatusHistoryHandler,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromString(body.CustomerId)
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("customerId", err))
	}

	items := make([]commands.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		productID, err := kernel.UUIDFromString(item.ProductId)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("productId", err))
		}
		items = append(items, commands.OrderItem{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, items)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderView(created)))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var statuses []string
	if params.Status != nil {
		for _, status := range *params.Status {
			statuses = append(statuses, string(status))
		}
	}

	query, err := queries.NewListOrdersQuery(statuses...)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Order, 0, len(views))
	for _, view := range views {
		response = append(response, toOrder(view))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId string) error {
	orderID, err := kernel.UUIDFromString(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(view))
}

// GetOrderStatusHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderStatusHistory(ctx echo.Context, orderId string) error {
	orderID, err := kernel.UUIDFromString(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderStatusHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.getOrderStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.StatusHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		item := servers.StatusHistoryEntry{
			Id:        entry.ID,
			Status:    servers.OrderStatus(entry.Status),
			ChangedAt: entry.ChangedAt,
		}
		if entry.Comment != "" {
			comment := entry.Comment
			item.Comment = &comment
		}
		response = append(response, item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId string) error {
	orderID, err := kernel.UUIDFromString(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.StatusChange
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var comment string
	if body.Comment != nil {
		comment = *body.Comment
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, body.Status, comment)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderView(updated)))
}

// UpdateTrackingCode handles PUT /api/v1/orders/{orderId}/tracking-code.
func (s *Server) UpdateTrackingCode(ctx echo.Context, orderId string) error {
	orderID, err := kernel.UUIDFromString(orderId)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.TrackingCodeChange
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateTrackingCodeCommand(orderID, body.TrackingCode)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateTrackingCodeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.NewOrderView(updated)))
}

func toOrder(view queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, servers.OrderItem{
			ProductId:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	return servers.Order{
		Id:           view.ID,
		CustomerId:   view.CustomerID,
		Items:        items,
		Total:        view.Total,
		CreatedAt:    view.CreatedAt,
		Status:       servers.OrderStatus(view.Status),
		TrackingCode: view.TrackingCode,
		DeliveryAddress: servers.Address{
			Street:   view.DeliveryAddress.Street,
			Number:   view.DeliveryAddress.Number,
			District: view.DeliveryAddress.District,
			City:     view.DeliveryAddress.City,
			State:    view.DeliveryAddress.State,
			ZipCode:  view.DeliveryAddress.ZipCode,
		},
	}
}
