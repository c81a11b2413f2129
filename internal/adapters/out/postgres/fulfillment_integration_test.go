package postgres_test

import (
	"context"
	"errors"
	"sync"

	"fulfillment/internal/adapters/out/trackingcode"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

type createOrderUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f createOrderUoWFactory) Create() commands.CreateOrderUoW { return f.factory.Create() }

type orderUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.factory.Create() }

type outboxUoWFactory struct{ factory ports.UnitOfWorkFactory }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.factory.Create() }

type recordingPublisher struct {
	mu       sync.Mutex
	messages []ports.OutboxMessage
}

func (p *recordingPublisher) Publish(_ context.Context, messages ...ports.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, messages...)
	return nil
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrderHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		createOrderUoWFactory{suite.factory},
		trackingcode.NewRandomGenerator(trackingcode.DefaultPrefix),
		commands.DefaultCreateOrderMaxAttempts,
		nil,
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) updateStatusHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(orderUoWFactory{suite.factory}, nil, nil, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) createOrder(
	customerID kernel.UUID,
	items ...commands.OrderItem,
) (*order.Order, error) {
	cmd, err := commands.NewCreateOrderCommand(customerID, items)
	suite.Require().NoError(err)
	return suite.createOrderHandler().Handle(context.Background(), cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) updateStatus(orderID kernel.UUID, status, comment string) (*order.Order, error) {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, comment)
	suite.Require().NoError(err)
	return suite.updateStatusHandler().Handle(context.Background(), cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) history(orderID kernel.UUID) []queries.StatusHistoryView {
	query, err := queries.NewGetOrderStatusHistoryQuery(orderID)
	suite.Require().NoError(err)
	entries, err := queries.NewGetOrderStatusHistoryQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	return entries
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_ComputesTotalAndReservesStock() {
	ctx := context.Background()
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 5)
	b := suite.seedProduct("5.50", 5)

	created, err := suite.createOrder(c.ID(),
		commands.OrderItem{ProductID: b.ID(), Quantity: 2},
		commands.OrderItem{ProductID: a.ID(), Quantity: 2},
	)
	suite.Require().NoError(err)
	suite.Equal("31.00", created.Total().String())
	suite.Equal(3, suite.stockOf(a.ID()))
	suite.Equal(3, suite.stockOf(b.ID()))

	query, err := queries.NewGetOrderQuery(created.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db, nil).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("31.00", view.Total)
	suite.Equal(order.InProgress.String(), view.Status)
	suite.Equal(created.TrackingCode(), view.TrackingCode)
	suite.Equal("Springfield", view.DeliveryAddress.City)
	suite.Require().Len(view.Items, 2)
	suite.Equal(b.ID().String(), view.Items[0].ProductID, "items are listed in request order")
	suite.Equal("5.50", view.Items[0].UnitPrice)
	suite.Equal(a.ID().String(), view.Items[1].ProductID)

	entries := suite.history(created.ID())
	suite.Require().Len(entries, 1)
	suite.Equal(order.InProgress.String(), entries[0].Status)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_UnknownProductChangesNothing() {
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 5)
	missing := kernel.NewUUID()

	_, err := suite.createOrder(c.ID(),
		commands.OrderItem{ProductID: a.ID(), Quantity: 1},
		commands.OrderItem{ProductID: missing, Quantity: 1},
	)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), missing.String())
	suite.Equal(5, suite.stockOf(a.ID()))
	suite.assertNoOrders()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_InsufficientStockChangesNothing() {
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 5)
	b := suite.seedProduct("5.50", 5)

	_, err := suite.createOrder(c.ID(),
		commands.OrderItem{ProductID: a.ID(), Quantity: 2},
		commands.OrderItem{ProductID: b.ID(), Quantity: 9},
	)

	var stockErr *product.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Equal(4, stockErr.Shortfall())
	suite.Equal(5, suite.stockOf(a.ID()))
	suite.Equal(5, suite.stockOf(b.ID()))
	suite.assertNoOrders()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_ConcurrentRequestsNeverOversell() {
	ctx := context.Background()
	c := suite.seedCustomer()
	p := suite.seedProduct("10.00", 5)
	cmd, err := commands.NewCreateOrderCommand(c.ID(), []commands.OrderItem{{ProductID: p.ID(), Quantity: 3}})
	suite.Require().NoError(err)
	handler := suite.createOrderHandler()

	var (
		g         errgroup.Group
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for range 2 {
		g.Go(func() error {
			_, err := handler.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, product.ErrInsufficientStock):
				refused++
			default:
				return err
			}
			return nil
		})
	}
	suite.Require().NoError(g.Wait())

	suite.Equal(1, succeeded)
	suite.Equal(1, refused)
	suite.Equal(2, suite.stockOf(p.ID()))
	suite.Equal(int64(1), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_OppositeItemOrderDoesNotDeadlock() {
	ctx := context.Background()
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 50)
	b := suite.seedProduct("5.50", 50)
	forward, err := commands.NewCreateOrderCommand(c.ID(), []commands.OrderItem{
		{ProductID: a.ID(), Quantity: 1},
		{ProductID: b.ID(), Quantity: 1},
	})
	suite.Require().NoError(err)
	backward, err := commands.NewCreateOrderCommand(c.ID(), []commands.OrderItem{
		{ProductID: b.ID(), Quantity: 1},
		{ProductID: a.ID(), Quantity: 1},
	})
	suite.Require().NoError(err)
	handler := suite.createOrderHandler()

	var g errgroup.Group
	for range 5 {
		for _, cmd := range []commands.CreateOrderCommand{forward, backward} {
			g.Go(func() error {
				_, err := handler.Handle(ctx, cmd)
				return err
			})
		}
	}
	suite.Require().NoError(g.Wait(), "lock order is sorted, so no deadlock or lock timeout surfaces")
	suite.Equal(40, suite.stockOf(a.ID()))
	suite.Equal(40, suite.stockOf(b.ID()))
	suite.Equal(int64(10), suite.orderCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCreateOrder_UnknownCustomer() {
	a := suite.seedProduct("10.00", 5)

	_, err := suite.createOrder(kernel.NewUUID(), commands.OrderItem{ProductID: a.ID(), Quantity: 1})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Equal(5, suite.stockOf(a.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateOrderStatus_UnknownOrder() {
	_, err := suite.updateStatus(kernel.NewUUID(), "FINALIZED", "")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateOrderStatus_HistoryFollowsStatus() {
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 5)
	created, err := suite.createOrder(c.ID(), commands.OrderItem{ProductID: a.ID(), Quantity: 1})
	suite.Require().NoError(err)

	finalized, err := suite.updateStatus(created.ID(), "finalized", "delivered")
	suite.Require().NoError(err)
	suite.Equal(order.Finalized, finalized.Status())

	canceled, err := suite.updateStatus(created.ID(), "CANCELED", "")
	suite.Require().NoError(err, "the default policy lets a finalized order be canceled")
	suite.Equal(order.Canceled, canceled.Status())

	entries := suite.history(created.ID())
	suite.Require().Len(entries, 3)
	suite.Equal(order.Canceled.String(), entries[0].Status)
	suite.Equal(order.Finalized.String(), entries[1].Status)
	suite.Equal("delivered", entries[1].Comment)
	suite.Equal(order.InProgress.String(), entries[2].Status)
	suite.False(entries[0].ChangedAt.Before(entries[1].ChangedAt))

	suite.Run("list by status", func() {
		list := func(statuses ...string) []queries.OrderView {
			query, err := queries.NewListOrdersQuery(statuses...)
			suite.Require().NoError(err)
			views, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)
			suite.Require().NoError(err)
			return views
		}

		suite.Len(list(), 1)
		suite.Len(list("CANCELED"), 1)
		suite.Empty(list("IN_PROGRESS"))
		suite.Len(list("IN_PROGRESS", "CANCELED"), 1)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRelayPublishesEachEventOnce() {
	ctx := context.Background()
	c := suite.seedCustomer()
	a := suite.seedProduct("10.00", 5)
	created, err := suite.createOrder(c.ID(), commands.OrderItem{ProductID: a.ID(), Quantity: 1})
	suite.Require().NoError(err)
	_, err = suite.updateStatus(created.ID(), "FINALIZED", "")
	suite.Require().NoError(err)

	publisher := &recordingPublisher{}
	relay := commands.NewRelayOrderEventsCommandHandler(outboxUoWFactory{suite.factory}, publisher)
	cmd, err := commands.NewRelayOrderEventsCommand(commands.DefaultRelayBatchSize)
	suite.Require().NoError(err)

	published, err := relay.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Equal(2, published)

	published, err = relay.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Zero(published)

	suite.Require().Len(publisher.messages, 2)
	suite.Equal(order.EventTypeOrderCreated, publisher.messages[0].EventType)
	suite.Equal(order.EventTypeOrderStatusChanged, publisher.messages[1].EventType)
	suite.True(publisher.messages[0].AggregateID.IsEqual(created.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) orderCount() int64 {
	var count int64
	suite.Require().NoError(suite.db.Table("orders").Count(&count).Error)
	return count
}

func (suite *UnitOfWorkIntegrationTestSuite) assertNoOrders() {
	suite.Zero(suite.orderCount())
}
