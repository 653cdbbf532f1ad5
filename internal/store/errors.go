package store

import (
	"errors"
	"fmt"
)

// Common persistence errors
var (
	// ErrConnect is returned when the database is unreachable.
	ErrConnect = errors.New("failed to connect to database")

	// ErrInsert is returned when an insert fails or is not acknowledged.
	// Persistence failures are fatal for the document being processed;
	// they are never swallowed.
	ErrInsert = errors.New("failed to insert work item records")

	// ErrQuery is returned when a lookup fails.
	ErrQuery = errors.New("failed to query work item records")
)

// StoreError wraps errors with context about the failed database operation.
type StoreError struct {
	// Op is the operation that failed (e.g., "InsertWorkItems").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("store: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("store: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError wraps an error as a StoreError if it isn't already one.
func WrapStoreError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	return &StoreError{Op: op, Err: err, Details: details}
}
