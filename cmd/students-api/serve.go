package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/roster"
	"github.com/aanand-mishra/student-records/internal/server"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/jsonfile"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.ResolvePath(configPath))
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration YAML file")
	return cmd
}

// runServer is the startup sequence:
//  1. Initialise the logger
//  2. Open the storage backend
//  3. Build the roster and the HTTP server
//  4. Start serving in a goroutine
//  5. Block until SIGINT/SIGTERM (or a listen error)
//  6. Gracefully shut down
func runServer(cfg *config.Config) error {
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	store, err := openStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return err
	}
	defer store.Close()

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	srv := server.New(roster.New(store, log), server.Options{
		Addr:            cfg.HTTPServer.Addr,
		APIPrefix:       cfg.HTTPServer.APIPrefix,
		ReadTimeout:     cfg.HTTPServer.ReadTimeout,
		WriteTimeout:    cfg.HTTPServer.WriteTimeout,
		IdleTimeout:     cfg.HTTPServer.IdleTimeout,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Logger:          log,
		CORSOrigins:     cfg.HTTPServer.CORSOrigins,
		RateLimit:       cfg.HTTPServer.RateLimit,
		RateBurst:       cfg.HTTPServer.RateBurst,
		MetricsPath:     metricsPath,
	})
	srv.Start()

	// Buffered so we don't miss the signal if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.Info("shutdown signal received, stopping server...")
	case err := <-srv.Errors():
		return err
	}

	if err := srv.Stop(context.Background()); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// openStorage builds the backend named by cfg.Driver.
func openStorage(cfg config.Storage) (storage.Storage, error) {
	switch cfg.Driver {
	case storage.DriverJSONFile:
		return jsonfile.New(cfg.Path, cfg.Seed)
	case storage.DriverMemory:
		return memory.New(cfg.Seed), nil
	case storage.DriverSQLite:
		return sqlite.New(cfg.Path, cfg.Seed)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
