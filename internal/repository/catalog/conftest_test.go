package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/partdex/internal/db"
)

const testCatalog = `{"sku":"A-1","name_de":"Abutment Certain (Ext Hex, 4,1 mm), Ø 5,0 mm","diameter_mm":5.0}
not json at all

{"sku":"A-2","platform":"6","name_de":"Gingivaformer"}
{"name_de":"no sku here"}
{"sku":"A-3","diameter_mm":"4,5 mm"}
`

// stubSource serves a fixed body and counts opens.
type stubSource struct {
	body  string
	err   error
	opens atomic.Int32
	gate  chan struct{}
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.opens.Add(1)
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

// mockKV implements kvReader for tests.
type mockKV struct {
	data map[string][]byte
	err  error
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

var errBoom = errors.New("boom")
