package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	_ "foodorder/docs"
	"foodorder/pkg/api"
	"foodorder/pkg/config"
	"foodorder/pkg/logger"
	"foodorder/pkg/menu"
	"foodorder/pkg/order"
	"foodorder/pkg/order/file"
	"foodorder/pkg/order/memory"
	pg "foodorder/pkg/order/postgres"
	"foodorder/pkg/order/redisstore"
	"foodorder/pkg/otel"
)

// @title Food Order API
// @version 1.0
// @description Menu and order intake for the food ordering app
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, "foodorder", otel.GetTraceID)
	defer log.Sync()
	ctx := context.Background()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "foodorder",
		Host:        cfg.OTel.Host,
		Probability: cfg.OTel.Probability,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	store, closeStore, err := openStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	var opts []order.Option
	if redisClient != nil {
		opts = append(opts, order.WithLocker(redisstore.NewLocker(redisClient, cfg.Redis.LockKey, cfg.Redis.LockTTL)))
	}
	intake := order.NewIntake(store, log, opts...)

	handler := api.NewRouter(api.Config{
		Orders:      intake,
		Menu:        menu.FileSource{Path: cfg.MealsFile},
		Log:         log,
		Tracer:      tp.Tracer("foodorder"),
		PublicDir:   cfg.PublicDir,
		DebugRoutes: cfg.DebugRoutes,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", server.Addr, "store", cfg.Store.Kind)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-quit:
		log.Info(ctx, "shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	log.Info(ctx, "server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (order.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case config.StoreMemory:
		return memory.New(), noop, nil
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		s := pg.New(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, db.Close, nil
	case config.StoreRedis:
		return redisstore.New(redisClient, cfg.Redis.OrdersKey), noop, nil
	default:
		return file.New(cfg.OrdersFile), noop, nil
	}
}
