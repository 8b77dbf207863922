package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("not found")
	ErrUserCanceled = errors.New("user canceled")
)

// ValidationError rejects user input before it reaches the task store
type ValidationError struct {
	Field   string // "title", "description", "priority"
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// StorageError represents a failure reading or writing the durable entry
type StorageError struct {
	Op      string // "read", "write", "decode", "close"
	Backend string // "file", "redis", "memory"
	Err     error
}

func (e *StorageError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("storage %s [%s]: %v", e.Op, e.Backend, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
