package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentLoad is returned when the source bytes are not a valid
	// PDF document. This is fatal for the whole document; no chunks are
	// produced.
	ErrDocumentLoad = errors.New("invalid or corrupted PDF document")

	// ErrPageLimit is returned when the requested pages-per-chunk value is
	// outside the range supported by the OCR provider.
	ErrPageLimit = errors.New("pages per chunk out of range")
)

// ChunkError wraps chunking failures with the operation and page context.
type ChunkError struct {
	Op      string
	Err     error
	Details string
}

func (e *ChunkError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pdf: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("pdf: %s failed: %v", e.Op, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

func wrapChunkError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	return &ChunkError{Op: op, Err: err, Details: details}
}
