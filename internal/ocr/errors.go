package ocr

import (
	"errors"
	"fmt"
	"strings"
)

// Common OCR boundary errors
var (
	// ErrMissingAPIKey is returned when no provider API key is configured.
	ErrMissingAPIKey = errors.New("missing OCR provider API key")

	// ErrProviderCall is returned when the provider call itself fails
	// (network, quota, malformed request, non-2xx status).
	ErrProviderCall = errors.New("OCR provider call failed")

	// ErrNoAnnotation is returned when the provider succeeds but the
	// response carries no document annotation. The chunk is unusable,
	// not an error condition for the run.
	ErrNoAnnotation = errors.New("no document annotation in OCR response")
)

// OCRError wraps errors with context about the failed provider operation.
type OCRError struct {
	// Op is the operation that failed (e.g., "ExtractChunk").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err
	}

	return &OCRError{Op: op, Err: err, Details: details}
}

// FieldError describes one schema violation in a document annotation.
type FieldError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AnnotationError reports why a document annotation failed validation
// against the Invoice schema. Individual violations stay queryable so the
// caller can log them with their raw source values.
type AnnotationError struct {
	Errors []FieldError
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return fmt.Sprintf("invalid document annotation: %s", strings.Join(msgs, "; "))
}
