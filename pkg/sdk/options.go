package partdex

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRedisKey is the key WithRedis reads when none is given.
const DefaultRedisKey = "partdex:catalog"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	sources int // number of source options applied

	path       string
	url        string
	httpClient *http.Client
	source     Source

	redisAddrs    []string
	redisPassword string
	redisKey      string

	loadTimeout time.Duration
	facetTopN   int
	preload     bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFile reads the catalog from a local NDJSON file.
func WithFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.path = path
	})
}

// WithURL fetches the catalog with an HTTP GET.
func WithURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.url = url
	})
}

// WithHTTPClient sets the client used by WithURL. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithRedis reads the catalog document stored under key.
// An empty key means DefaultRedisKey.
func WithRedis(addr, password, key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.redisKey = key
	})
}

// WithSource reads the catalog from a custom source.
func WithSource(s Source) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources++
		c.source = s
	})
}

// WithLoadTimeout bounds every catalog load. Zero means no bound.
func WithLoadTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.loadTimeout = d
	})
}

// WithFacetTopN caps the number of values per facet (1..50). Default: 50.
func WithFacetTopN(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.facetTopN = n
	})
}

// WithPreload loads the catalog inside New instead of on the first query.
func WithPreload() Option {
	return optionFunc(func(c *clientConfig) {
		c.preload = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
