// Package store persists reconciled work item records.
//
// The pipeline treats persistence as load-bearing: an insert that fails or
// comes back unacknowledged marks the whole document as failed, so every
// error crosses this boundary loudly.
package store

import (
	"context"
	"time"

	"faktura-ocr/pkg/models"
)

// InsertResult reports the outcome of a batch insert.
type InsertResult struct {
	// Acknowledged is true when the database confirmed the write.
	Acknowledged bool

	// InsertedCount is the number of records written.
	InsertedCount int

	// InsertedIDs holds the database-assigned IDs, in input order.
	InsertedIDs []interface{}
}

// Store defines the persistence boundary consumed by the pipeline.
type Store interface {
	// InsertWorkItems writes one batch of records. An empty batch is a
	// no-op returning an acknowledged result.
	InsertWorkItems(ctx context.Context, records []models.WorkItemRecord) (*InsertResult, error)

	// CountByInvoiceNumber returns how many records exist for the given
	// invoice number. Used for duplicate detection before any OCR work.
	CountByInvoiceNumber(ctx context.Context, invoiceNumber string) (int64, error)

	// FindByInvoiceNumber returns all records for the given invoice
	// number, ordered by insertion.
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) ([]models.WorkItemRecord, error)

	// FindByInsertedDateRange returns all records inserted in [from, to),
	// ordered by insertion.
	FindByInsertedDateRange(ctx context.Context, from, to time.Time) ([]models.WorkItemRecord, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
