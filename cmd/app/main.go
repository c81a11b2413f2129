package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/redis"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient := redis.NewClient(configs.RedisAddr)
	defer func() { _ = redisClient.Close() }()

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	defer func() { _ = app.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, app, configs.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, app cmd.CompositionRoot, port string) error {
	e, err := httpadapter.NewRouter(app.CreateHTTPServer())
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		DBLockTimeout:          durationVariable("DB_LOCK_TIMEOUT", postgres.DefaultLockTimeout),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderEventsTopic:  envOr("KAFKA_ORDER_EVENTS_TOPIC", "order.events"),
		RedisAddr:              envOr("REDIS_ADDR", "localhost:6379"),
		OrderCacheTTL:          durationVariable("ORDER_CACHE_TTL", redis.DefaultTTL),
		OutboxBatchSize:        intVariable("OUTBOX_BATCH_SIZE", 0),
		OutboxRelaySchedule:    os.Getenv("OUTBOX_RELAY_SCHEDULE"),
		CreateOrderMaxAttempts: intVariable("CREATE_ORDER_MAX_ATTEMPTS", 0),
		TrackingCodePrefix:     envOr("TRACKING_CODE_PREFIX", "FUL-"),
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s: invalid duration %q", key, raw)
	}
	return d
}

func intVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s: invalid integer %q", key, raw)
	}
	return n
}
