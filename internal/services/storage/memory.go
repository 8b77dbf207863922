package storage

import (
	"context"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

// MemoryBackend keeps the entry in process memory. Used for ephemeral runs
// and tests.
type MemoryBackend struct {
	data   []byte
	stored bool
	writes int
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// NewMemoryBackendWith creates a backend that already holds data
func NewMemoryBackendWith(data []byte) *MemoryBackend {
	b := &MemoryBackend{}
	b.set(data)
	return b
}

// Name implements Backend
func (b *MemoryBackend) Name() string { return "memory" }

// Read implements Backend
func (b *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	if !b.stored {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: domain.ErrNotFound}
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

// Write implements Backend
func (b *MemoryBackend) Write(ctx context.Context, data []byte) error {
	b.set(data)
	b.writes++
	return nil
}

// Writes returns the number of successful writes
func (b *MemoryBackend) Writes() int { return b.writes }

// Close implements Backend
func (b *MemoryBackend) Close() error { return nil }

func (b *MemoryBackend) set(data []byte) {
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.stored = true
}
