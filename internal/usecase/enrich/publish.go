package enrich

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyExists is returned by Publish when the target key is taken and
// overwriting was not requested.
var ErrKeyExists = errors.New("enrich: key already exists")

// KeyWriter stores the enriched document.
type KeyWriter interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Publish stores doc under key. An existing key is replaced only when
// overwrite is set.
func Publish(ctx context.Context, kv KeyWriter, key string, doc []byte, overwrite bool) error {
	if !overwrite {
		taken, err := kv.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("check key: %w", err)
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrKeyExists, key)
		}
	}
	if err := kv.Set(ctx, key, doc); err != nil {
		return fmt.Errorf("store enriched catalog: %w", err)
	}
	return nil
}
