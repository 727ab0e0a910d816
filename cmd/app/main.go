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

	"montarota/cmd"
	"montarota/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	appLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(appLogger)

	if config.LogLevel <= slog.LevelDebug {
		config.DB.LogLevel = logger.Info
	}
	db, err := postgres.Open(config.DB)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(config, db, appLogger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			appLogger.Error("close event broker", "error", closeErr)
		}
	}()

	if err = app.Migrate(); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if config.JobsEnabled {
		jobManager := app.NewJobManager()
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	if err = startWebServer(app, config.HTTPPort, appLogger); err != nil {
		appLogger.Error("web server stopped", "error", err)
	}
}

// startWebServer serves until SIGINT or SIGTERM, then drains open requests.
func startWebServer(app *cmd.CompositionRoot, port string, appLogger *slog.Logger) error {
	e, err := app.NewEcho()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server listening", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
