package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/pkg/logger"
)

var envKeys = []string{
	"PORT", "MEALS_FILE", "ORDERS_FILE", "PUBLIC_DIR", "DEBUG_ROUTES", "LOG_LEVEL",
	"ORDER_STORE", "DATABASE_URL", "REDIS_ADDR", "REDIS_ORDERS_KEY", "REDIS_LOCK_KEY",
	"REDIS_LOCK_TTL", "OTEL_HOST", "OTEL_PROBABILITY",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "data/available-meals.json", cfg.MealsFile)
	assert.Equal(t, "data/orders.json", cfg.OrdersFile)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.False(t, cfg.DebugRoutes)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, "orders", cfg.Redis.OrdersKey)
	assert.Equal(t, "orders:lock", cfg.Redis.LockKey)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL)
	assert.InDelta(t, 1.0, cfg.OTel.Probability, 0.0001)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DEBUG_ROUTES", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ORDER_STORE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_LOCK_TTL", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.DebugRoutes)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, 2*time.Second, cfg.Redis.LockTTL)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":          {"PORT": "abc"},
		"debug":         {"DEBUG_ROUTES": "maybe"},
		"log level":     {"LOG_LEVEL": "loud"},
		"lock ttl":      {"REDIS_LOCK_TTL": "soon"},
		"negative ttl":  {"REDIS_LOCK_TTL": "-1s"},
		"probability":   {"OTEL_PROBABILITY": "2"},
		"unknown store": {"ORDER_STORE": "s3"},
		"postgres dsn":  {"ORDER_STORE": "postgres"},
		"redis addr":    {"ORDER_STORE": "redis"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
