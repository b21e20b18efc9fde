package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/catalog-pricing/api/controllers"
	"github.com/angelmondragon/catalog-pricing/api/routes"
	"github.com/angelmondragon/catalog-pricing/internal/catalog"
	"github.com/angelmondragon/catalog-pricing/internal/quotes"
	"github.com/angelmondragon/catalog-pricing/pkg/config"
	"github.com/angelmondragon/catalog-pricing/pkg/db"
	"github.com/angelmondragon/catalog-pricing/pkg/env"
	"github.com/angelmondragon/catalog-pricing/pkg/instance"
	"github.com/angelmondragon/catalog-pricing/pkg/logger"
	"github.com/angelmondragon/catalog-pricing/pkg/metrics"
	"github.com/angelmondragon/catalog-pricing/pkg/migrate"
	"github.com/angelmondragon/catalog-pricing/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)

	var (
		redisPinger controllers.Pinger
		cache       *catalog.SnapshotCache
	)
	if cfg.Redis.Enabled() && cfg.FeatureFlags.SnapshotCache {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		cache = catalog.NewSnapshotCache(redisClient, cfg.Pricing.SnapshotCacheTTL, logg, pricingMetrics)
	} else {
		logg.Info(ctx, "snapshot cache disabled")
	}

	quoteService, err := quotes.NewService(catalog.NewStore(dbClient, cache), quotes.Options{
		ShippingTierPolicy: cfg.Pricing.Policy(),
		MaxLineQuantity:    cfg.Pricing.MaxLineQuantity,
		Logger:             logg,
		Metrics:            pricingMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to create quote service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":             cfg.App.Env,
		"addr":            addr,
		"instance":        instance.GetID(),
		"shipping_policy": cfg.Pricing.Policy().String(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisPinger,
			Quotes:   quoteService,
			Gatherer: registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serverCtx, "api server shutdown failed", err)
	}
}
