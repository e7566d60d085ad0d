package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/partdex/internal/db"
	"github.com/kailas-cloud/partdex/internal/domain"
)

// Source yields the raw NDJSON catalog document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource reads the catalog from a local file.
type FileSource struct {
	Path string
}

// Name returns a description of the source for logs.
func (s FileSource) Name() string { return "file:" + s.Path }

// Open opens the catalog file.
func (s FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(s.Path))
	if err != nil {
		return nil, domain.NewSourceError(s.Name(), err)
	}
	return f, nil
}

// HTTPSource fetches the catalog with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Name returns a description of the source for logs.
func (s HTTPSource) Name() string { return "http:" + s.URL }

// Open issues the request; any non-2xx status is a source failure.
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSource, err)
	}
	req.Header.Set("Accept", "application/x-ndjson, application/json, text/plain")

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewSourceError(s.Name(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, domain.NewSourceError(s.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

// kvReader is the consumer interface for RedisSource (ISP).
type kvReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// RedisSource reads the catalog document stored under a single key.
type RedisSource struct {
	Store kvReader
	Key   string
}

// Name returns a description of the source for logs.
func (s RedisSource) Name() string { return "redis:" + s.Key }

// Open reads the whole value; a missing key is a source failure.
func (s RedisSource) Open(ctx context.Context) (io.ReadCloser, error) {
	data, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.NewSourceError(s.Name(), err)
		}
		return nil, domain.NewSourceError(s.Name(), fmt.Errorf("redis get: %w", err))
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
