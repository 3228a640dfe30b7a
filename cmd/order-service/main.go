package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/microshop/storefront/internal/catalog"
	"github.com/microshop/storefront/internal/config"
	"github.com/microshop/storefront/internal/events"
	"github.com/microshop/storefront/internal/httpapi"
	"github.com/microshop/storefront/internal/observability"
	"github.com/microshop/storefront/internal/order"
	"github.com/microshop/storefront/internal/storage/file"
	"github.com/microshop/storefront/internal/storage/postgres"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	metrics := observability.NewInmem(256)

	resolver, err := catalog.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.CacheCap,
		cfg.Retry,
		cfg.Catalog.Timeout,
		logger,
		metrics,
	)
	if err != nil {
		logger.Fatal("catalog client init", zap.Error(err))
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("order store init", zap.Error(err))
	}

	var publisher order.Publisher = events.Noop{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		logger.Info("order events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	svc := order.NewService(resolver, store, publisher, logger, metrics)
	handler := httpapi.NewOrderRouter(svc, logger, metrics)

	srv := &http.Server{
		Addr:              cfg.HTTP.OrderAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("order service listening",
			zap.String("addr", cfg.HTTP.OrderAddr),
			zap.String("store_driver", cfg.Store.Driver),
			zap.String("catalog_base_url", cfg.Catalog.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("order service stopped")
}

func newStore(cfg config.Config, logger *zap.Logger) (order.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := postgres.Connect(ctx, cfg.Store.Pg.DSN())
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return file.NewStore(cfg.Store.Path, logger), nil
	}
}
