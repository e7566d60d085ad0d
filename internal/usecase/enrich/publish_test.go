package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data      map[string][]byte
	existsErr error
}

func (m *memKV) Exists(_ context.Context, key string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name      string
		existing  bool
		overwrite bool
		wantErr   error
		want      string
	}{
		{"new key", false, false, nil, "new"},
		{"taken key refused", true, false, ErrKeyExists, "old"},
		{"taken key overwritten", true, true, nil, "new"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := &memKV{data: map[string][]byte{}}
			if tc.existing {
				kv.data["partdex:catalog"] = []byte("old")
			}

			err := Publish(context.Background(), kv, "partdex:catalog", []byte("new"), tc.overwrite)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, string(kv.data["partdex:catalog"]))
		})
	}
}

func TestPublish_ExistsError(t *testing.T) {
	boom := errors.New("connection refused")
	kv := &memKV{data: map[string][]byte{}, existsErr: boom}

	err := Publish(context.Background(), kv, "k", []byte("doc"), false)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, kv.data)
}
