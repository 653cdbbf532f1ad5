package pipeline

import (
	"errors"
	"fmt"
)

// Document-level failures. These mark the source document as failed; they are
// not run failures. Storage errors pass through untouched from the store
// package and abort the run instead.
var (
	// ErrMalformedDocument is returned when the source PDF cannot be
	// loaded or chunked.
	ErrMalformedDocument = errors.New("source document could not be chunked")

	// ErrFirstChunkFailed is returned when the first chunk yields no
	// usable invoice. Later chunks depend on it for invoice-number
	// resolution, so processing stops immediately.
	ErrFirstChunkFailed = errors.New("first chunk produced no usable invoice")

	// ErrUnresolvableInvoiceNumber is returned when neither the filename
	// prefix nor the first chunk's extraction supplies an invoice number.
	ErrUnresolvableInvoiceNumber = errors.New("invoice number could not be resolved")
)

// PipelineError wraps errors with context about the failed document.
type PipelineError struct {
	// Op is the operation that failed (e.g., "Process").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pipeline: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("pipeline: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// WrapPipelineError wraps an error as a PipelineError if it isn't already one.
func WrapPipelineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var pipeErr *PipelineError
	if errors.As(err, &pipeErr) {
		return err
	}

	return &PipelineError{Op: op, Err: err, Details: details}
}
