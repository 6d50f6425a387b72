// Package storage provides the durable key-value snapshot store behind the
// tracking engine. Each consumer persists one JSON blob under its own
// namespace so that clearing one never touches another.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a namespace has never been written.
var ErrNotFound = errors.New("storage: namespace not found")

type Store interface {
	Get(ctx context.Context, namespace string) ([]byte, error)
	Put(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
}
