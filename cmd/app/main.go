package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// @title			Dispatch API
// @version		1.0
// @description	Assigns delivery partners to orders.
// @BasePath		/
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if configs.DBAutoMigrate {
		if err := postgres.Migrate(gormDB); err != nil {
			log.Fatalf("Error migrating database: %v", err)
		}
	}

	publisher, err := cmd.NewEventPublisher(configs)
	if err != nil {
		log.Fatalf("Error connecting to message broker: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		publisher,
		metrics.New(registry),
		logger,
	)
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := startWebServer(ctx, &app, configs.HTTPPort, logger); err != nil {
		logger.Error("http server stopped with error", "error", err)
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
