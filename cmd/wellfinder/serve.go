package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/config"
	"github.com/kailas-cloud/wellfinder/internal/domain/well"
	logpkg "github.com/kailas-cloud/wellfinder/internal/logger"
	"github.com/kailas-cloud/wellfinder/internal/repository/snapshot"
	chiTransport "github.com/kailas-cloud/wellfinder/internal/transport/chi"
	"github.com/kailas-cloud/wellfinder/internal/usecase/health"
	"github.com/kailas-cloud/wellfinder/internal/usecase/nearest"
	"github.com/kailas-cloud/wellfinder/internal/version"
)

func serveCMD(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve nearest-well queries over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != 0 {
				a.cfg.HTTP.Port = port
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides http.port)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger
	logger.Info("Starting wellfinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", a.cfg.HTTP.Port),
	)

	wells, err := loadWells(logpkg.ContextWithLogger(ctx, logger), a.cfg)
	if err != nil {
		return err
	}
	logger.Info("Wells loaded", zap.Int("wells", len(wells)))

	healthSvc := health.New(map[string]health.Checker{
		"wells":    health.WellsLoaded(func() int { return len(wells) }),
		"snapshot": health.SnapshotPresent(a.cfg.Output.Merged),
	})
	server := chiTransport.NewServer(wells, nearest.New(), logger).
		WithAPIKeys(a.cfg.Auth.APIKeys).
		WithHealth(healthSvc)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// loadWells prefers the merged snapshot and falls back to merging the sources
// when no snapshot has been written yet.
func loadWells(ctx context.Context, cfg config.Config) ([]well.Record, error) {
	logger := logpkg.FromContext(ctx)

	wells, err := snapshot.New().LoadWells(ctx, cfg.Output.Merged)
	if err == nil {
		logger.Info("Loaded merged snapshot", zap.String("path", cfg.Output.Merged))
		return wells, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load merged snapshot: %w", err)
	}

	logger.Info("No merged snapshot, merging sources", zap.String("path", cfg.Output.Merged))
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return nil, err
	}
	return newPipeline(cfg, logger).Merge(ctx, opts)
}
