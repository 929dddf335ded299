// Package kv defines the minimal persistence capability the ordering engine
// consumes: an opaque byte store keyed by string. The engine never assumes a
// concrete backend; redis serves production and Memory serves tests and dev.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the abstract get/set/remove surface for favorites and cart survival.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
