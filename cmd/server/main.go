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

	"foodcourt-be/internal/auth"
	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/catalog"
	"foodcourt-be/internal/config"
	"foodcourt-be/internal/db"
	"foodcourt-be/internal/gateway"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/middleware"
	"foodcourt-be/internal/order"
	"foodcourt-be/internal/transport"

	"go.uber.org/zap"
)

const (
	cartSweepInterval = 5 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	addr := ":" + cfg.AppPort
	logger.L().Info("🚀 HTTP server running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, addr, handler)
}

// newServer wires the application. Background sweepers stop when ctx is done.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, auth.DefaultTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(database))
	orderSvc := order.NewService(
		gateway.NewPostgres(database),
		order.WithCallTimeout(cfg.GatewayTimeout),
	)

	carts := cart.NewRegistry(cfg.CartIdleTTL)
	limiter := middleware.NewRateLimiter()

	go carts.Run(ctx, cartSweepInterval)
	go limiter.Run(ctx)

	return setupRouter(transport.Deps{
		Catalog:    catalogSvc,
		Carts:      carts,
		Orders:     orderSvc,
		Tokens:     tokens,
		Limiter:    limiter,
		CORSOrigin: cfg.CORSOrigin,
	}), nil
}

func setupRouter(deps transport.Deps) http.Handler {
	return transport.NewRouter(deps)
}

// startServer serves until ctx is done, then shuts down gracefully.
func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "server forced to shutdown: %v\n", err)
		return err
	}
	return nil
}
