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

	"github.com/microshop/storefront/internal/cart"
	"github.com/microshop/storefront/internal/config"
	"github.com/microshop/storefront/internal/httpapi"
	"github.com/microshop/storefront/internal/observability"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	metrics := observability.NewInmem(256)

	handler := httpapi.NewCartRouter(cart.NewStore(), logger, metrics)

	srv := &http.Server{
		Addr:              cfg.HTTP.CartAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("cart service listening", zap.String("addr", cfg.HTTP.CartAddr))
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
	logger.Info("cart service stopped")
}
