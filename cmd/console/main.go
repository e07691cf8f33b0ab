package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/aniket44788/Mahakal-Admin/internal/config"
	"github.com/aniket44788/Mahakal-Admin/internal/console"
	"github.com/aniket44788/Mahakal-Admin/internal/domain"
	"github.com/aniket44788/Mahakal-Admin/internal/messaging"
	"github.com/aniket44788/Mahakal-Admin/internal/orders"
	"github.com/aniket44788/Mahakal-Admin/internal/remote"
	"github.com/aniket44788/Mahakal-Admin/internal/telemetry"
)

const serviceName = "admin-console"

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConsole()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout)

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		logger.Error("invalid currency", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	if cfg.Telemetry.Enabled {
		svc := telemetry.Service{Name: serviceName, Version: cfg.Telemetry.ServiceVersion, Environment: cfg.Environment.Name}

		shutdownTracer, err := telemetry.InitTracerProvider(ctx, svc, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRatio)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(ctx) }()

		metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(svc)
		if err != nil {
			logger.Error("failed to initialize meter", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownMeter(ctx) }()

		mux.Handle("GET /metrics", metricsHandler)
	}

	client := remote.NewClient(cfg.API.BaseURL, telemetry.NewHTTPClient(cfg.API.Timeout))

	var guard orders.Guard = orders.NewMemoryGuard()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		guard = orders.NewRedisGuard(rdb, cfg.Redis.InflightTTL)
		logger.Info("using redis in-flight guard", "addr", cfg.Redis.Addr)
	}

	var gateOpts []orders.GateOption
	if cfg.Kafka.Enabled() {
		producer := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, domain.OrderStatusChangedEventType)
		defer func() { _ = producer.Close() }()
		gateOpts = append(gateOpts, orders.WithPublisher(producer))
	}

	views := console.NewViews(client, client, guard, logger, gateOpts...)
	defer views.Close()

	console.NewHandler(client, views, unit, logger).Register(mux)

	server := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: otelhttp.NewHandler(mux, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting admin console", "addr", server.Addr, "environment", cfg.Environment.Name)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
