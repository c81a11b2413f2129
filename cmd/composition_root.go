package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/adapters/out/trackingcode"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      *redis.OrderViewCache
	publisher  *kafka.OrderEventsPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient goredis.Cmdable, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.DBLockTimeout),
		cache:      redis.NewOrderViewCache(redisClient, config.OrderCacheTTL),
		publisher:  kafka.NewOrderEventsPublisher([]string{config.KafkaHost}, config.KafkaOrderEventsTopic),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f,
		trackingcode.NewRandomGenerator(c.config.TrackingCodePrefix),
		c.config.CreateOrderMaxAttempts,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, nil, c.cache, c.logger)
}

func (c *CompositionRoot) CreateUpdateTrackingCodeCommandHandler() commands.UpdateTrackingCodeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTrackingCodeCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOrderEventsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusHistoryQueryHandler() queries.GetOrderStatusHistoryQueryHandler {
	return queries.NewGetOrderStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateUpdateTrackingCodeCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderStatusHistoryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOrderEventsCommandHandler(),
		c.config.OutboxBatchSize,
		c.config.OutboxRelaySchedule,
		c.logger,
	)
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
