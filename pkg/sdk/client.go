package partdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbRedis "github.com/kailas-cloud/partdex/internal/db/redis"
	"github.com/kailas-cloud/partdex/internal/domain/part"
	"github.com/kailas-cloud/partdex/internal/domain/search/facet"
	"github.com/kailas-cloud/partdex/internal/domain/search/query"
	"github.com/kailas-cloud/partdex/internal/domain/search/result"
	catalogrepo "github.com/kailas-cloud/partdex/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/partdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/partdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренний интерфейс для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, q query.Query, limit int) ([]result.Item, error)
	Facets(ctx context.Context, q query.Query) (facet.Facets, error)
	Reload(ctx context.Context) (*part.Catalog, error)
}

// Client is the partdex SDK entry point.
type Client struct {
	store     *dbRedis.Store // nil unless WithRedis
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client for exactly one catalog source.
// The provided context is used for the Redis readiness check and, with
// WithPreload, for the first catalog load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	switch {
	case cfg.sources == 0:
		return nil, errors.New("partdex: catalog source required (use WithFile, WithURL, WithRedis or WithSource)")
	case cfg.sources > 1:
		return nil, errors.New("partdex: only one catalog source may be configured")
	}
	if cfg.facetTopN < 0 || cfg.facetTopN > facet.MaxValues {
		return nil, fmt.Errorf("partdex: facet top-n must be between 1 and %d", facet.MaxValues)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store *dbRedis.Store
	if len(cfg.redisAddrs) > 0 {
		store, err = createStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	c := wireClient(cfg, store, obs)
	if cfg.preload {
		if _, err := c.Reload(ctx); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (*dbRedis.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.redisAddrs,
		Password: cfg.redisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("partdex: create redis store: %w", err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("partdex: redis not ready: %w", err)
	}
	return s, nil
}

// buildSource picks the single configured source.
func buildSource(cfg *clientConfig, store *dbRedis.Store) catalogrepo.Source {
	switch {
	case cfg.source != nil:
		return cfg.source
	case cfg.path != "":
		return catalogrepo.FileSource{Path: cfg.path}
	case cfg.url != "":
		return catalogrepo.HTTPSource{URL: cfg.url, Client: cfg.httpClient}
	default:
		key := cfg.redisKey
		if key == "" {
			key = DefaultRedisKey
		}
		return catalogrepo.RedisSource{Store: store, Key: key}
	}
}

func wireClient(cfg *clientConfig, store *dbRedis.Store, obs *observer) *Client {
	repo := catalogrepo.New(buildSource(cfg, store), nil).WithTimeout(cfg.loadTimeout)

	searchSvc := searchuc.New(repo)
	if cfg.facetTopN > 0 {
		searchSvc = searchSvc.WithFacetTopN(cfg.facetTopN)
	}

	// nil interface, not a typed nil, when Redis is off
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(repo, pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search returns up to limit matching parts in catalog order.
// limit <= 0 means the default of 10; larger values are capped at 50.
func (c *Client) Search(ctx context.Context, q Query, limit int) (items []Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if limit <= 0 {
		limit = searchuc.DefaultLimit
	}
	items, err = c.searchSvc.Search(ctx, q.toDomain(), searchuc.ClampLimit(limit, searchuc.MaxLimit))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	c.obs.observeResults(len(items))
	return items, nil
}

// Facets returns value counts for every facet over the parts matching q.
func (c *Client) Facets(ctx context.Context, q Query) (f Facets, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	f, err = c.searchSvc.Facets(ctx, q.toDomain())
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}
	return f, nil
}

// Reload reads the catalog source again and swaps the new snapshot in.
// On failure the previous snapshot keeps serving queries.
func (c *Client) Reload(ctx context.Context) (info CatalogInfo, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	snap, err := c.searchSvc.Reload(ctx)
	if err != nil {
		return CatalogInfo{}, fmt.Errorf("reload: %w", err)
	}
	return CatalogInfo{
		Records:  snap.Len(),
		Skipped:  snap.Skipped,
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
	}, nil
}
