// Package kvstore provides a named JSON-blob key-value store capability.
// The application persists whole collections as one JSON document per key;
// there are no transactions spanning multiple keys, so a caller updating two
// related keys must accept that a crash between writes leaves them
// inconsistent. This is part of the platform layer and contains no business
// logic.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store reads and writes raw JSON documents under named keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
