// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/vidfeed/internal/api"
	"github.com/tomtom215/vidfeed/internal/auth"
	"github.com/tomtom215/vidfeed/internal/config"
	"github.com/tomtom215/vidfeed/internal/database"
	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/metrics"
	"github.com/tomtom215/vidfeed/internal/supervisor"
	"github.com/tomtom215/vidfeed/internal/supervisor/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Vidfeed with supervisor tree")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized successfully")

	feed, err := initFeed(ctx, cfg, db, logging.WithComponent("recommend"))
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize feed composer")
		return
	}

	var jwtManager *auth.JWTManager
	if cfg.Security.JWTSecret != "" {
		jwtManager, err = auth.NewJWTManager(cfg.Security.JWTSecret, 0)
		if err != nil {
			logging.Error().Err(err).Msg("Failed to initialize JWT manager")
			return
		}
		logging.Info().Msg("JWT viewer verification enabled")
	} else {
		logging.Warn().Msg("JWT_SECRET not set, every request is served as an anonymous viewer")
	}

	handler := api.NewHandler(feed.Composer, db, feed.Breaker, cfg, version)
	router := api.NewRouter(handler, cfg, auth.NewViewerAuthenticator(jwtManager))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	if cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, logging.WithComponent("checkpoint")))
		logging.Info().Dur("interval", cfg.Database.CheckpointInterval).Msg("Checkpoint service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
