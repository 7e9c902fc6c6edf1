// Command libraryd serves the library HTTP API.
//
// Configuration comes from the environment, optionally seeded from a .env file in the working directory.
// DATABASE_URL is required, everything else has defaults; see package config.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lifecycle-go/ledger/oteladapters"
	"github.com/AntonStoeckl/library-lifecycle-go/ledger/postgresengine"
	"github.com/AntonStoeckl/library-lifecycle-go/library/auth"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-lifecycle-go/library/transport/httpapi"
)

const (
	serviceName         = "libraryd"
	shutdownTimeout     = 15 * time.Second
	readHeaderTimeout   = 5 * time.Second
	sessionPurgeEvery   = 15 * time.Minute
	dotEnvFile          = ".env"
	exitCodeStartupFail = 1
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("libraryd stopped with error", "error", err.Error())
		os.Exit(exitCodeStartupFail)
	}
}

func run() error {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(logHandler).With("service", serviceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel := telemetry{contextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(logHandler)}

	if cfg.OTLPEndpoint != "" {
		providers, providerErr := config.NewObservabilityProviders(ctx, cfg.OTLPEndpoint, serviceName, version)
		if providerErr != nil {
			return providerErr
		}

		defer func() {
			if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("telemetry shutdown failed", "error", shutdownErr.Error())
			}
		}()

		tel.metrics = oteladapters.NewMetricsCollector(otel.Meter(serviceName))
		tel.tracing = oteladapters.NewTracingCollector(otel.Tracer(serviceName))
		tel.contextualLogger = oteladapters.NewSlogBridgeLogger(serviceName)

		logger.Info("telemetry enabled", "endpoint", cfg.OTLPEndpoint)
	}

	store, closeStore, err := config.OpenStore(ctx, cfg, tel.storeOptions()...)
	if err != nil {
		return err
	}
	defer closeStore()

	handlers, err := buildHandlers(store, cfg, tel)
	if err != nil {
		return err
	}

	authService := auth.NewService(store,
		auth.WithSessionTTL(cfg.SessionTTL),
		auth.WithContextualLogger(tel.contextualLogger),
	)

	server := httpapi.NewServer(handlers, authService, store,
		httpapi.WithLogger(logger),
		httpapi.WithCORSOrigins(cfg.CORSOrigins),
	)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go purgeSessionsPeriodically(ctx, authService, logger)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr, "db_adapter", cfg.DBAdapter, "version", version)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// purgeSessionsPeriodically removes expired sessions until ctx is done.
func purgeSessionsPeriodically(ctx context.Context, authService auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := authService.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				logger.WarnContext(ctx, "purging expired sessions failed", "error", err.Error())
			}
		}
	}
}

// storeOptions wires the telemetry into the postgres store.
func (t telemetry) storeOptions() []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithContextualLogger(t.contextualLogger)}

	if t.metrics != nil {
		options = append(options, postgresengine.WithMetrics(t.metrics))
	}

	if t.tracing != nil {
		options = append(options, postgresengine.WithTracing(t.tracing))
	}

	return options
}
