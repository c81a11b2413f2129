package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// DBLockTimeout bounds how long a transaction waits for a row lock.
	DBLockTimeout time.Duration

	KafkaHost             string
	KafkaOrderEventsTopic string

	RedisAddr     string
	OrderCacheTTL time.Duration

	OutboxBatchSize        int
	OutboxRelaySchedule    string
	CreateOrderMaxAttempts int
	TrackingCodePrefix     string
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
