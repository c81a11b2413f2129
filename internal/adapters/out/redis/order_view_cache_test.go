package redis_test

import (
	"context"
	"testing"
	"time"

	fredis "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type OrderViewCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	cache     *fredis.OrderViewCache
}

func (suite *OrderViewCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = fredis.NewClient(endpoint)
	suite.cache = fredis.NewOrderViewCache(suite.client, time.Minute)
}

func (suite *OrderViewCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *OrderViewCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderViewCacheIntegrationTestSuite) TestMiss() {
	_, ok, err := suite.cache.Get(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *OrderViewCacheIntegrationTestSuite) TestSetGetInvalidate() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	view := queries.OrderView{
		ID:           orderID.String(),
		CustomerID:   kernel.NewUUID().String(),
		Total:        "31.00",
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:       "IN_PROGRESS",
		TrackingCode: "FUL-1",
		Items: []queries.LineItemView{
			{ProductID: kernel.NewUUID().String(), ProductName: "Widget", UnitPrice: "10.00", Quantity: 2},
		},
		DeliveryAddress: queries.AddressView{Street: "Main St", City: "Springfield", ZipCode: "01000-000"},
	}

	suite.Require().NoError(suite.cache.Set(ctx, view))

	cached, ok, err := suite.cache.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(view, cached)

	ttl, err := suite.client.TTL(ctx, "fulfillment:order-view:"+orderID.String()).Result()
	suite.Require().NoError(err)
	suite.Positive(ttl)

	suite.Require().NoError(suite.cache.Invalidate(ctx, orderID))
	_, ok, err = suite.cache.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *OrderViewCacheIntegrationTestSuite) TestCorruptEntryIsAMiss() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.client.Set(ctx, "fulfillment:order-view:"+orderID.String(), "{", 0).Err())

	_, ok, err := suite.cache.Get(ctx, orderID)

	suite.Require().NoError(err)
	suite.False(ok)
	exists, err := suite.client.Exists(ctx, "fulfillment:order-view:"+orderID.String()).Result()
	suite.Require().NoError(err)
	suite.Zero(exists)
}

func (suite *OrderViewCacheIntegrationTestSuite) TestFillNeverReplacesRefreshedView() {
	ctx := context.Background()
	o := suite.newOrder()
	stale := queries.NewOrderView(o)

	_, err := o.ChangeStatus(order.PermissiveTransitionPolicy{}, order.Finalized, "delivered", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.cache.Refresh(ctx, o))

	// A reader that loaded the row before the update commits fills afterwards.
	suite.Require().NoError(suite.cache.Fill(ctx, stale))

	cached, ok, err := suite.cache.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(order.Finalized.String(), cached.Status)
}

func (suite *OrderViewCacheIntegrationTestSuite) TestFillPopulatesMissingEntry() {
	ctx := context.Background()
	o := suite.newOrder()
	view := queries.NewOrderView(o)

	suite.Require().NoError(suite.cache.Fill(ctx, view))

	cached, ok, err := suite.cache.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(view.Status, cached.Status)
}

func (suite *OrderViewCacheIntegrationTestSuite) newOrder() *order.Order {
	address, err := kernel.NewAddress("Main St", "10", "Centre", "Springfield", "SP", "01000-000")
	suite.Require().NoError(err)
	price, err := kernel.MoneyFromString("10.00")
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "Widget", price, 2)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), address, []*order.LineItem{item}, "FUL-1", time.Now())
	suite.Require().NoError(err)
	return o
}

func (suite *OrderViewCacheIntegrationTestSuite) TestSetRejectsViewWithoutID() {
	suite.Require().Error(suite.cache.Set(context.Background(), queries.OrderView{}))
}

func TestOrderViewCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderViewCacheIntegrationTestSuite))
}
