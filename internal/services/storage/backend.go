// Package storage persists the task collection as a single named durable
// entry. Backends only move bytes; the codec owns the JSON layout and its
// validation.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/riordanpawley/taskmaster/internal/config"
)

// DefaultKey names the durable entry when none is configured
const DefaultKey = "myTodos"

// Backend reads and writes the durable entry
type Backend interface {
	// Name identifies the backend in logs and errors ("file", "redis", "memory")
	Name() string
	// Read returns the stored bytes, or an error wrapping domain.ErrNotFound
	// when nothing has been stored yet
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Open builds the backend selected by cfg
func Open(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case "", config.BackendFile:
		return NewFileBackend(cfg.Path), nil
	case config.BackendRedis:
		key := cfg.Key
		if key == "" {
			key = DefaultKey
		}
		return NewRedisBackendFromURL(cfg.RedisURL, key, time.Duration(cfg.TimeoutMs)*time.Millisecond)
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
