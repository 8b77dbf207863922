package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/riordanpawley/taskmaster/internal/domain"
)

// FileBackend keeps the entry in a JSON file
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for path. The parent directory is created
// on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Name implements Backend
func (b *FileBackend) Name() string { return "file" }

// Path returns the file location
func (b *FileBackend) Path() string { return b.path }

// Read implements Backend
func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: err}
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: domain.ErrNotFound}
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Backend: b.Name(), Err: err}
	}
	return data, nil
}

// Write implements Backend. The file is replaced atomically via rename.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "write", Backend: b.Name(), Err: err}
	}
	return nil
}

// Close implements Backend
func (b *FileBackend) Close() error { return nil }
