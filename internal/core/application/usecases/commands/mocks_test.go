package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetByIDs(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]*product.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[kernel.UUID]*product.Product)
	return products, args.Error(1)
}

func (m *MockProductRepository) Reserve(ctx context.Context, id kernel.UUID, quantity int) (*product.Product, error) {
	args := m.Called(ctx, id, quantity)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCreateOrderUoW struct{ mockTx }

func (m *MockCreateOrderUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockCreateOrderUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockCreateOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCreateOrderUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockOrderUoW struct{ mockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOutboxUoW struct{ mockTx }

func (m *MockOutboxUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockTrackingCodeGenerator struct{ mock.Mock }

func (m *MockTrackingCodeGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type MockOrderCache struct{ mock.Mock }

func (m *MockOrderCache) Refresh(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderCache) Invalidate(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	address, err := kernel.NewAddress("Main St", "10", "Centre", "Springfield", "SP", "01000-000")
	require.NoError(t, err)
	c, err := customer.NewCustomer(kernel.NewUUID(), "Ada", address)
	require.NoError(t, err)
	return c
}

func newTestProduct(t *testing.T, id kernel.UUID, name, price string, stock int) *product.Product {
	t.Helper()
	m, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	p, err := product.NewProduct(id, name, m, stock)
	require.NoError(t, err)
	return p
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	c := newTestCustomer(t)
	price, err := kernel.MoneyFromString("10.00")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "A", price, 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), c.ID(), c.Address(), []*order.LineItem{item}, "FUL-0001", time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}
