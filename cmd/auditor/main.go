package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aniket44788/Mahakal-Admin/internal/audit"
	"github.com/aniket44788/Mahakal-Admin/internal/config"
	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/messaging"
	"github.com/aniket44788/Mahakal-Admin/internal/telemetry"
)

const serviceName = "status-auditor"

func main() {
	cfg, err := config.LoadAuditor()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()

	if cfg.Telemetry.Enabled {
		svc := telemetry.Service{Name: serviceName, Version: cfg.Telemetry.ServiceVersion, Environment: cfg.Environment.Name}

		shutdownTracer, err := telemetry.InitTracerProvider(ctx, svc, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRatio)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(context.WithoutCancel(ctx)) }()

		metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(svc)
		if err != nil {
			logger.Error("failed to initialize meter", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownMeter(context.WithoutCancel(ctx)) }()

		mux.Handle("GET /metrics", metricsHandler)
	}

	db, err := telemetry.OpenDB(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	repo := audit.NewRepository(db)
	recorder := audit.NewRecorder(repo, logger)
	handler := audit.NewHandler(repo, logger)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /orders/{id}/history", telemetry.WithHTTPRoute(handler.HandleHistory))

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      otelhttp.NewHandler(mux, serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting status auditor", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	consumer := messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, domain.OrderStatusChangedEventType, logger)
	defer func() { _ = consumer.Close() }()

	logger.Info("consuming status events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)

	consumeErr := consumer.Consume(ctx, recorder.Handle)
	if consumeErr != nil && !errors.Is(consumeErr, context.Canceled) {
		logger.Error("consumer error", "error", consumeErr)
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	if consumeErr != nil {
		os.Exit(1)
	}
}
