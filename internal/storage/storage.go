// Package storage moves invoice documents between the queue, finished and
// failed locations of the blob container, and writes the per-document chunk
// annotation artifact alongside routed originals.
package storage

import "context"

// Folder layout inside the container.
const (
	QueueFolder    = "queue"
	FinishedFolder = "finished"
	FailedFolder   = "failed"

	// ArtifactName is the chunk annotation file written next to a routed
	// document.
	ArtifactName = "ocr_invoice_chunks.json"
)

// BlobStore defines the object storage boundary.
type BlobStore interface {
	// Read downloads one blob.
	Read(ctx context.Context, path string) ([]byte, error)

	// Save uploads content, overwriting any existing blob at path.
	Save(ctx context.Context, path string, content []byte) error

	// Move relocates a blob and returns its new path. Implemented as
	// copy-then-delete; the source is only removed after the copy
	// succeeded.
	Move(ctx context.Context, fromPath, toPath string) (string, error)

	// List returns the paths of all blobs under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
