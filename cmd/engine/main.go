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
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/flight-claims-engine/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flight-claims-engine/internal/adapter/kafka"
	"github.com/couchcryptid/flight-claims-engine/internal/config"
	"github.com/couchcryptid/flight-claims-engine/internal/domain"
	"github.com/couchcryptid/flight-claims-engine/internal/observability"
	"github.com/couchcryptid/flight-claims-engine/internal/pipeline"
	"github.com/couchcryptid/flight-claims-engine/internal/refdata"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	store, err := refdata.Load(refdata.Paths{
		Airports: cfg.AirportsPath,
		Airlines: cfg.AirlinesPath,
		Routes:   cfg.RoutesPath,
	})
	if err != nil {
		logger.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}

	engine := domain.NewEngine(domain.NewDistanceResolver(store.Routes(), store.Airports(), logger))
	evaluator := pipeline.NewClaimEvaluator(engine, store, clock, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(reader, evaluator, writer, logger, metrics, cfg.BatchSize)

	caches := httpadapter.NewSearchCaches(cfg, clock, logger)
	srv := httpadapter.NewServer(cfg, p, evaluator, store, caches, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	caches.Run(ctx)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start claim evaluation pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
