package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/cache"
	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/gbif"
	httpadapter "github.com/couchcryptid/ocean-data-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/ocean-data-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/obis"
	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/openmeteo"
	"github.com/couchcryptid/ocean-data-dashboard/internal/adapter/store"
	"github.com/couchcryptid/ocean-data-dashboard/internal/config"
	"github.com/couchcryptid/ocean-data-dashboard/internal/dashboard"
	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
	"github.com/couchcryptid/ocean-data-dashboard/internal/render"
)

// coordinateStore is a CoordinateStore that also backs /readyz.
type coordinateStore interface {
	domain.CoordinateStore
	CheckReadiness(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Last-used coordinates: SQLite when STORE_PATH is set, else in memory.
	var coords coordinateStore
	if cfg.StorePath != "" {
		sqlite, err := store.OpenSQLite(ctx, cfg.StorePath)
		if err != nil {
			logger.Error("failed to open coordinate store", "path", cfg.StorePath, "error", err)
			os.Exit(1)
		}
		defer sqlite.Close()
		coords = sqlite
		logger.Info("sqlite coordinate store enabled", "path", cfg.StorePath)
	} else {
		coords = store.NewMemory()
		logger.Info("in-memory coordinate store enabled")
	}

	cacheOpts := cache.Options{MaxEntries: cfg.CacheSize, TTL: cfg.CacheTTL, Metrics: metrics}
	marine := cache.NewMarine(openmeteo.NewClient(cfg.MarineAPIURL, cfg.UpstreamTimeout, metrics, logger), cacheOpts)
	occurrences := cache.NewOccurrences(obis.NewClient(cfg.OBISAPIURL, cfg.UpstreamTimeout, metrics, logger), cacheOpts)
	fish := cache.NewFish(gbif.NewClient(cfg.GBIFAPIURL, cfg.UpstreamTimeout, metrics, logger), cacheOpts)

	// Snapshot publishing (feature-flagged via KAFKA_ENABLED).
	var publisher dashboard.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("snapshot publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSummaryTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	svc := dashboard.New(marine, occurrences, fish, publisher, logger, metrics, dashboard.Options{
		OccurrenceSize: cfg.OBISResultSize,
		FishLimit:      cfg.GBIFResultLimit,
		MockFallback:   cfg.MockFallback,
	})

	renderer, err := render.New()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Snapshots:     svc,
		Store:         coords,
		Renderer:      renderer,
		Ready:         coords,
		Metrics:       metrics,
		Logger:        logger,
		ChartsEnabled: cfg.ChartsEnabled,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
