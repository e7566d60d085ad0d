package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partdex/internal/repository/catalog"
	"github.com/kailas-cloud/partdex/internal/usecase/enrich"
)

func enrichCmd(envFile *string) *cobra.Command {
	var (
		in        string
		out       string
		redisKey  string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Write derived connection_mm values into the catalog",
		Long: `Read the NDJSON catalog, derive connection_mm for every record that lacks
one and write the result.

Input is --in when given, otherwise the configured catalog source.
Output goes to --out (a file, "-" for stdout) or to the Redis key --redis-key.
An existing Redis key is only replaced with --overwrite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" && redisKey != "" {
				return fmt.Errorf("--out and --redis-key are mutually exclusive")
			}
			return runEnrich(cmd.Context(), *envFile, in, out, redisKey, overwrite)
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input NDJSON file (default: configured catalog source)")
	cmd.Flags().StringVar(&out, "out", "-", "Output NDJSON file, - for stdout")
	cmd.Flags().StringVar(&redisKey, "redis-key", "", "Store the enriched catalog under this Redis key")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace --redis-key if it already exists")

	return cmd
}

func runEnrich(ctx context.Context, envFile, in, out, redisKey string, overwrite bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	_, cfg, logger, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	if redisKey != "" && store == nil {
		return fmt.Errorf("--redis-key requires redis.addrs in config")
	}

	var source catalog.Source = catalog.FileSource{Path: in}
	if in == "" {
		if source, err = buildSource(cfg.Catalog, store); err != nil {
			return err
		}
	}

	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Catalog.FetchTimeoutSec)*time.Second)
	defer cancel()

	rc, err := source.Open(loadCtx)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = rc.Close() }()

	svc := enrich.New(logger)

	if redisKey != "" {
		var buf bytes.Buffer
		if _, err := svc.Run(ctx, rc, &buf); err != nil {
			return err
		}
		if err := enrich.Publish(ctx, store, redisKey, buf.Bytes(), overwrite); err != nil {
			return err
		}
		logger.Info("Enriched catalog stored", zap.String("key", redisKey), zap.Int("bytes", buf.Len()))
		return nil
	}

	w, closeOut, err := openOutput(out)
	if err != nil {
		return err
	}
	if _, err := svc.Run(ctx, rc, w); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
