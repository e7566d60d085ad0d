package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partdex/internal/metrics"
	"github.com/kailas-cloud/partdex/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/partdex/internal/transport/chi"
	"github.com/kailas-cloud/partdex/internal/usecase/health"
	"github.com/kailas-cloud/partdex/internal/usecase/search"
	"github.com/kailas-cloud/partdex/internal/version"
)

func serveCmd(envFile *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Routes:
  GET  /api/v1/search          filtered parts
  GET  /api/v1/facets          value counts over the filtered parts
  POST /api/v1/catalog/reload  swap in a fresh catalog snapshot
  GET  /health                 catalog and redis checks
  GET  /metrics                Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides http.port)")

	return cmd
}

func runServe(ctx context.Context, envFile string, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, cfg, logger, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if port > 0 {
		cfg.HTTP.Port = port
	}

	logger.Info("Starting partdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	store, err := openStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	source, err := buildSource(cfg.Catalog, store)
	if err != nil {
		return err
	}

	metrics.RegisterCatalogMetrics()

	repo := catalog.New(source, logger).
		WithTimeout(time.Duration(cfg.Catalog.FetchTimeoutSec) * time.Second).
		WithMetrics(catalog.Metrics{
			Records:    metrics.CatalogRecords,
			Skipped:    metrics.CatalogSkippedLines,
			LoadsTotal: metrics.CatalogLoadsTotal,
		})

	if cfg.Catalog.Preload {
		if _, err := repo.Snapshot(ctx); err != nil {
			// queries retry the load lazily
			logger.Warn("Catalog preload failed", zap.Error(err))
		}
	}

	// nil interface, not a typed nil pointer, when redis is off
	var pinger health.DBPinger
	if store != nil {
		pinger = store
	}

	searchSvc := search.New(repo).WithFacetTopN(cfg.Search.FacetTopN)
	healthSvc := health.New(repo, pinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.Limits{
		Default: cfg.Search.DefaultLimit,
		Max:     cfg.Search.MaxLimit,
	}, logger)

	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAgeSec:  cfg.CORS.MaxAgeSec,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
