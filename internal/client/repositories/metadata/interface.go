// Package metadata is the client's local key-value store: one row per key in
// the SQLite metadata table. The case snapshot, the stored credentials and
// every preference live under their own key.
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for absent keys.
var ErrNotFound = errors.New("metadata key not found")

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
