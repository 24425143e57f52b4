// Package storage provides abstractions for persistent key/value state.
package storage

import "errors"

// ErrCapacityExceeded is returned by Engine.Set when a value would push the
// store past its configured capacity. Screenshot persistence treats this as
// non-fatal; everything else should surface it.
var ErrCapacityExceeded = errors.New("store capacity exceeded")

// Engine is the raw key/value store underneath the repository: durable,
// flat, no transactions, no schema.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the layers above.
type Engine interface {
	// Get returns the value for key. The second return is false when the
	// key is absent; absence is not an error.
	Get(key string) ([]byte, bool, error)

	// Set writes value under key, overwriting any previous value.
	// Returns ErrCapacityExceeded when a capacity limit rejects the write.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Keys lists every key currently present, in no particular order.
	Keys() ([]string, error)

	// Clear removes every key.
	Clear() error

	// Close releases any resources held by the engine.
	Close() error
}
