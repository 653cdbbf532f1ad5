package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura-ocr/pkg/models"
)

type memoryStore struct {
	blobs   map[string][]byte
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: map[string][]byte{}}
}

func (m *memoryStore) Read(ctx context.Context, path string) ([]byte, error) {
	content, ok := m.blobs[path]
	if !ok {
		return nil, WrapStorageError("Read", ErrRead, path)
	}
	return content, nil
}

func (m *memoryStore) Save(ctx context.Context, path string, content []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blobs[path] = content
	return nil
}

func (m *memoryStore) Move(ctx context.Context, fromPath, toPath string) (string, error) {
	content, err := m.Read(ctx, fromPath)
	if err != nil {
		return "", WrapStorageError("Move", ErrMove, fromPath)
	}
	if err := m.Save(ctx, toPath, content); err != nil {
		return "", err
	}
	delete(m.blobs, fromPath)
	return toPath, nil
}

func (m *memoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	for path := range m.blobs {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func chunkResults(results ...models.ChunkResult) []models.ChunkResult {
	return results
}

func successfulOutcome(number string) *models.ProcessedInvoice {
	return &models.ProcessedInvoice{
		InvoiceNumber:         number,
		ProcessedSuccessfully: true,
		ParsedInvoiceChunks: chunkResults(
			models.ChunkResult{Invoice: &models.Invoice{WorkLists: []models.WorkItem{}}},
		),
	}
}

func TestRouteFinished(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/778899_scan.pdf"] = []byte("%PDF")

	router := NewRouter(store)
	dest, err := router.Route(context.Background(), "queue/778899_scan.pdf", successfulOutcome("778899"))
	require.NoError(t, err)

	assert.Equal(t, "finished/778899/778899_scan.pdf", dest)
	assert.Contains(t, store.blobs, "finished/778899/778899_scan.pdf")
	assert.Contains(t, store.blobs, "finished/778899/ocr_invoice_chunks.json")
	assert.NotContains(t, store.blobs, "queue/778899_scan.pdf", "original removed from queue")
}

func TestRouteFailedWithInvoiceNumber(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/778899_scan.pdf"] = []byte("%PDF")

	outcome := &models.ProcessedInvoice{
		InvoiceNumber: "778899",
		ParsedInvoiceChunks: chunkResults(
			models.ChunkResult{Invoice: &models.Invoice{WorkLists: []models.WorkItem{}}},
			models.ChunkResult{Err: errors.New("provider timeout")},
		),
	}

	router := NewRouter(store)
	dest, err := router.Route(context.Background(), "queue/778899_scan.pdf", outcome)
	require.NoError(t, err)

	assert.Equal(t, "failed/778899/778899_scan.pdf", dest)

	// The artifact keeps the invoice-or-null slot per attempted chunk.
	artifact := store.blobs["failed/778899/ocr_invoice_chunks.json"]
	var slots []json.RawMessage
	require.NoError(t, json.Unmarshal(artifact, &slots))
	require.Len(t, slots, 2)
	assert.NotEqual(t, "null", string(slots[0]))
	assert.Equal(t, "null", string(slots[1]))
}

func TestRouteFailedFallsBackToFilenameStem(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/scan.pdf"] = []byte("%PDF")

	outcome := &models.ProcessedInvoice{
		ParsedInvoiceChunks: chunkResults(models.ChunkResult{Err: errors.New("no annotation")}),
	}

	router := NewRouter(store)
	dest, err := router.Route(context.Background(), "queue/scan.pdf", outcome)
	require.NoError(t, err)
	assert.Equal(t, "failed/scan/scan.pdf", dest)
}

func TestRouteAlreadyProcessedLeavesDocument(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/778899_scan.pdf"] = []byte("%PDF")

	outcome := &models.ProcessedInvoice{
		InvoiceNumber:         "778899",
		AlreadyProcessed:      true,
		ProcessedSuccessfully: true,
	}

	router := NewRouter(store)
	dest, err := router.Route(context.Background(), "queue/778899_scan.pdf", outcome)
	require.NoError(t, err)

	assert.Equal(t, "queue/778899_scan.pdf", dest)
	assert.Contains(t, store.blobs, "queue/778899_scan.pdf")
	assert.Len(t, store.blobs, 1)
}

func TestRouteStorageFailurePropagates(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/778899_scan.pdf"] = []byte("%PDF")
	store.saveErr = WrapStorageError("Save", ErrSave, "quota exceeded")

	router := NewRouter(store)
	_, err := router.Route(context.Background(), "queue/778899_scan.pdf", successfulOutcome("778899"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSave))
}

func TestRouteNoChunksNoArtifact(t *testing.T) {
	store := newMemoryStore()
	store.blobs["queue/778899_scan.pdf"] = []byte("not a pdf")

	outcome := &models.ProcessedInvoice{InvoiceNumber: "778899"}

	router := NewRouter(store)
	dest, err := router.Route(context.Background(), "queue/778899_scan.pdf", outcome)
	require.NoError(t, err)

	assert.Equal(t, "failed/778899/778899_scan.pdf", dest)
	assert.NotContains(t, store.blobs, "failed/778899/ocr_invoice_chunks.json")
}
