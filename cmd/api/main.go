// Package main is the entrypoint for the Storefront API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/storefront/storefront/internal/cache"
	"github.com/storefront/storefront/internal/config"
	"github.com/storefront/storefront/internal/handler"
	"github.com/storefront/storefront/internal/metrics"
	"github.com/storefront/storefront/internal/middleware"
	"github.com/storefront/storefront/internal/repository"
	"github.com/storefront/storefront/internal/server"
	"github.com/storefront/storefront/internal/service"
)

// errStartup is returned after a failure that has already been logged
// with its secrets redacted.
var errStartup = errors.New("startup failed")

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", config.SanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", config.RedactURL(cfg.DatabaseURL)),
		)
		return errStartup
	}
	logger.Info("connected to database", "max_conns", cfg.DBMaxConns)

	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx, logger); err != nil {
			repo.Close()
			return err
		}
	}

	// Product cache is optional. The interfaces below must stay nil when
	// it is disabled, not hold a nil *cache.Cache.
	var (
		productCache service.ProductCache
		cacheHealth  handler.HealthChecker
		cacheClient  *cache.Cache
	)
	if cfg.CacheEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL, cfg.ProductCacheTTL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", config.SanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", config.RedactURL(cfg.RedisURL)),
			)
			repo.Close()
			return errStartup
		}
		productCache = cacheClient
		cacheHealth = cacheClient
		logger.Info("connected to Redis", "product_ttl", cfg.ProductCacheTTL)
	} else {
		logger.Info("product cache disabled")
	}

	// Initialize services
	recorder := metrics.NewInMemory()
	users := service.NewUserService(repo, recorder)
	products := service.NewProductService(repo, productCache, logger, recorder)
	orders := service.NewOrderService(repo, recorder)

	router := handler.NewRouter(handler.RouterConfig{
		Users:    users,
		Products: products,
		Orders:   orders,
		DB:       repo,
		Cache:    cacheHealth,
		Metrics:  recorder,
		Snapshot: recorder,
		Logger:   logger,
		Security: middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()},
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.GetCORSAllowedOrigins(),
			MaxAge:         middleware.DefaultCORSConfig().MaxAge,
		},
		MaxRequestBody: cfg.MaxRequestBodySize,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Registered first, closed last.
	srv.OnShutdown("database", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"cache_enabled", cfg.CacheEnabled(),
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
