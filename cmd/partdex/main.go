// Package main is the entry point for the partdex CLI.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partdex/internal/config"
	dbRedis "github.com/kailas-cloud/partdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/partdex/internal/logger"
	"github.com/kailas-cloud/partdex/internal/repository/catalog"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "partdex",
		Short: "Faceted search over dental-implant prosthetic parts",
		Long: `partdex serves filter and facet queries over an NDJSON catalog of
prosthetic parts and derives missing implant-connection sizes.

The environment (ENV, default "local") selects config/<env>.yaml.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(serveCmd(&envFile))
	cmd.AddCommand(enrichCmd(&envFile))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads the environment's YAML config and builds the logger.
func loadConfig(envFile string) (string, config.Config, *zap.Logger, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env, envFile)
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return "", config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return env, cfg, logger, nil
}

// openStore connects to Redis when configured. Returns nil without error otherwise.
func openStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*dbRedis.Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	logger.Info("Connected to redis", zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

// buildSource selects the catalog source from config.
func buildSource(cfg config.CatalogConfig, store *dbRedis.Store) (catalog.Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return catalog.FileSource{Path: cfg.Path}, nil
	case config.SourceHTTP:
		return catalog.HTTPSource{
			URL:    cfg.URL,
			Client: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second},
		}, nil
	case config.SourceRedis:
		if store == nil {
			return nil, fmt.Errorf("catalog source %q requires redis.addrs", cfg.Source)
		}
		return catalog.RedisSource{Store: store, Key: cfg.RedisKey}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
