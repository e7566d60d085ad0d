// Package catalog owns the in-memory catalog snapshot and the sources it is loaded from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/partdex/internal/domain"
	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// Snapshot is one immutable load of the catalog.
type Snapshot = part.Catalog

// Metrics are the optional collectors updated on every load.
type Metrics struct {
	Records    prometheus.Gauge
	Skipped    prometheus.Gauge
	LoadsTotal *prometheus.CounterVec // label "status": ok/error/empty
}

// Repo holds the current snapshot. The first Snapshot call loads lazily;
// Reload replaces the snapshot explicitly. Concurrent loads are collapsed.
type Repo struct {
	source  Source
	timeout time.Duration
	metrics Metrics
	logger  *zap.Logger

	current atomic.Pointer[Snapshot]
	group   singleflight.Group
	now     func() time.Time
}

// New creates a catalog repository reading from source.
func New(source Source, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{source: source, logger: logger, now: time.Now}
}

// WithTimeout bounds every load by d (0 = no bound beyond the caller's context).
func (r *Repo) WithTimeout(d time.Duration) *Repo {
	r.timeout = d
	return r
}

// WithMetrics attaches Prometheus collectors.
func (r *Repo) WithMetrics(m Metrics) *Repo {
	r.metrics = m
	return r
}

// Snapshot returns the current snapshot, loading it on first use.
func (r *Repo) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s := r.current.Load(); s != nil {
		return s, nil
	}
	return r.load(ctx)
}

// Current returns the loaded snapshot without triggering a load.
func (r *Repo) Current() (*Snapshot, bool) {
	s := r.current.Load()
	return s, s != nil
}

// Reload loads a fresh snapshot and swaps it in. On failure the previous
// snapshot stays in place.
func (r *Repo) Reload(ctx context.Context) (*Snapshot, error) {
	return r.load(ctx)
}

func (r *Repo) load(ctx context.Context) (*Snapshot, error) {
	ch := r.group.DoChan("load", func() (any, error) {
		// detached so one caller's cancellation does not fail the others
		loadCtx := context.WithoutCancel(ctx)
		if r.timeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, r.timeout)
			defer cancel()
		}
		return r.fetch(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load catalog: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (r *Repo) fetch(ctx context.Context) (*Snapshot, error) {
	start := r.now()

	rc, err := r.source.Open(ctx)
	if err != nil {
		r.observe("error")
		r.logger.Error("catalog source failed", zap.String("source", r.source.Name()), zap.Error(err))
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = rc.Close() }()

	records, skipped, err := Decode(rc)
	if err != nil {
		r.observe("error")
		r.logger.Error("catalog read failed", zap.String("source", r.source.Name()), zap.Error(err))
		return nil, domain.NewSourceError(r.source.Name(), err)
	}
	if len(records) == 0 {
		r.observe("empty")
		r.logger.Error("catalog empty after load",
			zap.String("source", r.source.Name()),
			zap.Int("skipped", skipped),
		)
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogEmpty, r.source.Name())
	}

	snap := &Snapshot{
		Records:  records,
		Skipped:  skipped,
		Source:   r.source.Name(),
		LoadedAt: r.now(),
	}
	r.current.Store(snap)

	r.observe("ok")
	if r.metrics.Records != nil {
		r.metrics.Records.Set(float64(len(records)))
	}
	if r.metrics.Skipped != nil {
		r.metrics.Skipped.Set(float64(skipped))
	}
	r.logger.Info("catalog loaded",
		zap.String("source", snap.Source),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
		zap.Duration("took", r.now().Sub(start)),
	)
	return snap, nil
}

func (r *Repo) observe(status string) {
	if r.metrics.LoadsTotal != nil {
		r.metrics.LoadsTotal.WithLabelValues(status).Inc()
	}
}

// IsUnavailable reports whether err means no query can be answered.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrCatalogUnavailable) || errors.Is(err, domain.ErrCatalogEmpty)
}
