// Package memory provides an in-memory implementation of storage.Engine,
// used by tests and as a throwaway store when no database path is wanted.
package memory

import (
	"sync"

	"github.com/skf-fest/refresko/internal/storage"
)

// Ensure Engine implements storage.Engine
var _ storage.Engine = (*Engine)(nil)

// Engine is a map-backed storage.Engine. Safe for concurrent use.
type Engine struct {
	mu   sync.RWMutex
	data map[string][]byte

	// MaxValueBytes caps individual values, 0 means unlimited.
	MaxValueBytes int
}

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{data: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (e *Engine) Get(key string) ([]byte, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, ok := e.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate stored bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set writes value under key.
func (e *Engine) Set(key string, value []byte) error {
	if e.MaxValueBytes > 0 && len(value) > e.MaxValueBytes {
		return storage.ErrCapacityExceeded
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.data[key] = stored
	return nil
}

// Delete removes key if present.
func (e *Engine) Delete(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.data, key)
	return nil
}

// Keys lists every stored key.
func (e *Engine) Keys() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.data))
	for key := range e.data {
		keys = append(keys, key)
	}
	return keys, nil
}

// Clear removes every key.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.data = make(map[string][]byte)
	return nil
}

// Close is a no-op.
func (e *Engine) Close() error { return nil }
