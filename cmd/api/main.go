// Package main is the entry point for the media-catalog-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"media-catalog-service/internal/app/service"
	"media-catalog-service/internal/config"
	"media-catalog-service/internal/infra/provider"
	"media-catalog-service/internal/infra/provider/simkl"
	"media-catalog-service/internal/infra/provider/streamavail"
	rediscache "media-catalog-service/internal/infra/redis"
	"media-catalog-service/internal/job"
	"media-catalog-service/internal/logger"
	"media-catalog-service/internal/transport/httpserver"
	"media-catalog-service/internal/validator"
	"media-catalog-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
			Service: cfg.App.Name,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting media-catalog-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Create provider clients
	catalogProvider := streamavail.New(
		streamavail.Config{
			Client:  providerClientConfig(cfg.Provider.StreamAvail.ProviderEndpoint),
			APIKey:  cfg.Provider.StreamAvail.APIKey,
			APIHost: cfg.Provider.StreamAvail.APIHost,
			Country: cfg.Provider.StreamAvail.Country,
		},
		log.Logger,
	)

	detailProvider := simkl.New(
		simkl.Config{
			Client:    providerClientConfig(cfg.Provider.Simkl.ProviderEndpoint),
			ClientID:  cfg.Provider.Simkl.ClientID,
			ImageBase: cfg.Provider.Simkl.ImageBase,
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("addr", cfg.Redis.Addr()),
	)

	// Create cache store
	store := rediscache.NewStore(
		redisClient,
		log.Logger,
		cfg.Cache.KeyPrefix,
		cfg.Cache.ShortTTL,
		cfg.Cache.LongTTL,
	)
	log.Info("cache store ready",
		zap.Duration("short_ttl", cfg.Cache.ShortTTL),
		zap.Duration("long_ttl", cfg.Cache.LongTTL),
		zap.String("key_prefix", cfg.Cache.KeyPrefix),
	)

	// Create services
	catalogSvc := service.NewCatalogService(
		catalogProvider, detailProvider, store, log.Logger, cfg.Service.OperationTimeout)
	detailSvc := service.NewDetailService(
		detailProvider, catalogProvider, store, log.Logger, cfg.Service.OperationTimeout)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, cfg.Cache.KeyPrefix, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		catalogSvc,
		detailSvc,
		store,
		v,
		log.Logger,
	)

	// Start background cache refresh
	var scheduler *job.RefreshScheduler
	if cfg.Refresh.Enabled {
		scheduler = job.NewRefreshScheduler(
			catalogSvc,
			job.RefreshConfig{
				Interval:  cfg.Refresh.Interval,
				Timeout:   cfg.Refresh.Timeout,
				OnStartup: cfg.Refresh.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Refresh.OnStartup)
	}

	// Handle graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		if err := server.Shutdown(); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// providerClientConfig maps a config endpoint block to the shared provider
// client configuration.
func providerClientConfig(ep config.ProviderEndpoint) provider.ClientConfig {
	return provider.ClientConfig{
		BaseURL: ep.BaseURL,
		Timeout: ep.Timeout,
		Retry: provider.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: provider.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
	}
}
