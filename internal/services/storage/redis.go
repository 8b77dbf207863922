package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

// RedisBackend keeps the entry under a single Redis key
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend wraps an existing client
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if client == nil {
		panic("storage.NewRedisBackend: client is nil")
	}
	return &RedisBackend{client: client, key: key}
}

// NewRedisBackendFromURL connects using a redis:// URL. A bare host:port is
// accepted as well.
func NewRedisBackendFromURL(url, key string, timeout time.Duration) (*RedisBackend, error) {
	if url == "" {
		return nil, fmt.Errorf("redis backend: missing url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	if timeout > 0 {
		opts.DialTimeout = timeout
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
	}
	return NewRedisBackend(redis.NewClient(opts), key), nil
}

// Name implements Backend
func (b *RedisBackend) Name() string { return "redis" }

// Read implements Backend
func (b *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: domain.ErrNotFound}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: err}
	}
	return data, nil
}

// Write implements Backend
func (b *RedisBackend) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}
	return nil
}

// Close implements Backend
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
