package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/caes/internal/api"
	"github.com/Harshitk-cp/caes/internal/buildconfig"
	"github.com/Harshitk-cp/caes/internal/config"
	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger, err := config.NewLogger(config.LogLevel(), false)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("invalid LOG_LEVEL, using info", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	registry, err := config.StandardRegistry()
	if err != nil {
		logger.Fatal("failed to build proof standards", zap.Error(err))
	}

	ctx := context.Background()

	var (
		graphStore    domain.GraphStore
		audienceStore domain.AudienceStore
	)
	if dbURL := config.DatabaseURL(); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")

		if err := store.Migrate(ctx, pool, config.MigrationsPath(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		graphStore, audienceStore = store.NewGraphStore(pool), store.NewAudienceStore(pool)
	} else {
		logger.Warn("DATABASE_URL not set, graphs are kept in memory only")
		graphStore, audienceStore = store.NewMemoryStores()
	}

	app := api.NewApp(graphStore, audienceStore, registry, api.Options{
		APIKey:         config.APIKey(),
		RateLimitRPS:   config.RateLimitRPS(),
		RateLimitBurst: config.RateLimitBurst(),
		AllowedOrigins: config.CORSAllowedOrigins(),
		Parallelism:    config.EvalParallelism(),
		EvalTimeout:    config.EvalTimeout(),
	}, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Get().String()),
			zap.Strings("standards", registry.Names()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
