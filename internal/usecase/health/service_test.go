package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/partdex/internal/domain"
	"github.com/kailas-cloud/partdex/internal/domain/part"
)

// --- Mocks ---

type mockCatalog struct {
	snap *part.Catalog
	err  error
}

func (m *mockCatalog) Snapshot(_ context.Context) (*part.Catalog, error) { return m.snap, m.err }

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

func loaded() *mockCatalog {
	return &mockCatalog{snap: &part.Catalog{Records: []part.Record{{SKU: part.Text("A-1")}}}}
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(loaded(), &mockDBPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
	if r.Checks["redis"] != CheckOK {
		t.Errorf("expected redis %q, got %q", CheckOK, r.Checks["redis"])
	}
}

func TestCheck_CatalogUnavailable(t *testing.T) {
	svc := New(&mockCatalog{err: domain.NewSourceError("file", errors.New("missing"))}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
}

func TestCheck_CatalogEmpty(t *testing.T) {
	svc := New(&mockCatalog{snap: &part.Catalog{}}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
}

func TestCheck_RedisDown(t *testing.T) {
	svc := New(loaded(), &mockDBPinger{err: errors.New("connection refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
	if r.Checks["redis"] != CheckError {
		t.Errorf("expected redis %q, got %q", CheckError, r.Checks["redis"])
	}
}

func TestCheck_NoRedis(t *testing.T) {
	svc := New(loaded(), nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, exists := r.Checks["redis"]; exists {
		t.Error("redis check should not be present when pinger is nil")
	}
}
