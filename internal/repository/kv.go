package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KVRepository persists opaque values under string keys.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
