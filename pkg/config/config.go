// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"foodorder/pkg/logger"
)

// Store kinds accepted in ORDER_STORE.
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds all application configuration.
type Config struct {
	Port        int
	MealsFile   string
	OrdersFile  string
	PublicDir   string
	DebugRoutes bool
	LogLevel    logger.Level

	Store StoreConfig
	Redis RedisConfig
	OTel  OTelConfig
}

// StoreConfig selects the order store backend.
type StoreConfig struct {
	Kind        string
	DatabaseURL string
}

// RedisConfig holds Redis settings used by the redis store and the lock.
type RedisConfig struct {
	Addr      string
	OrdersKey string
	LockKey   string
	LockTTL   time.Duration
}

// OTelConfig holds tracing settings.
type OTelConfig struct {
	Host        string
	Probability float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	debug, err := strconv.ParseBool(getEnv("DEBUG_ROUTES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEBUG_ROUTES: %w", err)
	}

	level, err := logger.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	lockTTL, err := time.ParseDuration(getEnv("REDIS_LOCK_TTL", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_LOCK_TTL: %w", err)
	}

	probability, err := strconv.ParseFloat(getEnv("OTEL_PROBABILITY", "1.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OTEL_PROBABILITY: %w", err)
	}

	cfg := &Config{
		Port:        port,
		MealsFile:   getEnv("MEALS_FILE", "data/available-meals.json"),
		OrdersFile:  getEnv("ORDERS_FILE", "data/orders.json"),
		PublicDir:   getEnv("PUBLIC_DIR", "public"),
		DebugRoutes: debug,
		LogLevel:    level,
		Store: StoreConfig{
			Kind:        getEnv("ORDER_STORE", StoreFile),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:      os.Getenv("REDIS_ADDR"),
			OrdersKey: getEnv("REDIS_ORDERS_KEY", "orders"),
			LockKey:   getEnv("REDIS_LOCK_KEY", "orders:lock"),
			LockTTL:   lockTTL,
		},
		OTel: OTelConfig{
			Host:        os.Getenv("OTEL_HOST"),
			Probability: probability,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Kind {
	case StoreFile, StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("ORDER_STORE=postgres requires DATABASE_URL")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("ORDER_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("invalid ORDER_STORE %q", c.Store.Kind)
	}
	if c.Redis.LockTTL <= 0 {
		return fmt.Errorf("REDIS_LOCK_TTL must be positive")
	}
	if c.OTel.Probability < 0 || c.OTel.Probability > 1 {
		return fmt.Errorf("OTEL_PROBABILITY must be within [0, 1]")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
