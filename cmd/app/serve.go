package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/cmd"
	httpin "github.com/ca-ayumi/fast-food-order-service/internal/adapters/in/http"
	"github.com/ca-ayumi/fast-food-order-service/internal/generated/servers"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/logging"
	"github.com/ca-ayumi/fast-food-order-service/internal/telemetry"
	"github.com/ca-ayumi/fast-food-order-service/migrations"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateFirst bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the production notification job",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrateFirst)
		},
	}
	serveCmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return serveCmd
}

func serve(ctx context.Context, migrateFirst bool) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger, zapLogger, err := logging.New(configs.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, configs.OTLPEndpoint, serviceName, version)
	if err != nil {
		return fmt.Errorf("failed to init tracer: %w", err)
	}
	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, version)
	if err != nil {
		return fmt.Errorf("failed to init meter: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownMeter(flushCtx)
		_ = shutdownTracer(flushCtx)
	}()

	if migrateFirst {
		if err = migrations.Up(configs.DatabaseURL()); err != nil {
			return err
		}
		logger.InfoContext(ctx, "Migrations applied")
	}

	gormDB, err := telemetry.OpenGorm(configs.DatabaseURL())
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	e, err := httpin.NewRouter(app.CreateServer(), doc, metricsHandler, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting order service", "port", configs.HTTPPort, "version", version)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
