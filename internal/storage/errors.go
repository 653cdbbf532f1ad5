package storage

import (
	"errors"
	"fmt"
)

// Common blob storage errors
var (
	// ErrRead is returned when a blob cannot be downloaded.
	ErrRead = errors.New("failed to read blob")

	// ErrSave is returned when a blob cannot be uploaded.
	ErrSave = errors.New("failed to save blob")

	// ErrMove is returned when a blob cannot be relocated.
	ErrMove = errors.New("failed to move blob")
)

// StorageError wraps errors with context about the failed blob operation.
type StorageError struct {
	// Op is the operation that failed (e.g., "Move").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("storage: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorageError wraps an error as a StorageError if it isn't already one.
func WrapStorageError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	return &StorageError{Op: op, Err: err, Details: details}
}
