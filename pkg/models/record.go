package models

import (
	"encoding/json"
	"time"
)

// WorkItemRecord is the persisted form of a WorkItem. It is constructed right
// before a batch insert and never mutated after the store acknowledges it.
type WorkItemRecord struct {
	Activity   *string `bson:"activity" json:"activity"`
	Department *string `bson:"department" json:"department"`
	Employee   string  `bson:"employee" json:"employee"`
	Extras     string  `bson:"extras" json:"extras"`
	FromDate   string  `bson:"fromDate" json:"fromDate"`
	FromPeriod string  `bson:"fromPeriod" json:"fromPeriod"`
	ID         int     `bson:"id" json:"id"`
	Project    *string `bson:"project" json:"project"`
	ToDate     string  `bson:"toDate" json:"toDate"`
	ToPeriod   string  `bson:"toPeriod" json:"toPeriod"`

	// InvoiceNumber ties the record to its source invoice.
	InvoiceNumber string `bson:"invoiceNumber" json:"invoiceNumber"`

	// PdfChunk is the 1-based chunk index within the source document.
	PdfChunk int `bson:"pdfChunk" json:"pdfChunk"`

	// PdfChunkPageNumber is the page within the chunk.
	PdfChunkPageNumber int `bson:"pdfChunkPageNumber" json:"pdfChunkPageNumber"`

	// PdfOriginalPageNumber is the page within the original document,
	// computed as (chunk-1)*maxPagesPerChunk + pageNumber.
	PdfOriginalPageNumber int `bson:"pdfOriginalPageNumber" json:"pdfOriginalPageNumber"`

	// TotalHour is the reconciled elapsed-hours value for the row.
	TotalHour float64 `bson:"totalHour" json:"totalHour"`

	InsertedDate time.Time `bson:"insertedDate" json:"insertedDate"`
}

// ChunkResult is the outcome of OCR extraction and validation for one chunk.
// Exactly one of Invoice and Err is set.
type ChunkResult struct {
	Invoice *Invoice
	Err     error
}

// Ok reports whether the chunk produced a usable invoice.
func (c ChunkResult) Ok() bool {
	return c.Invoice != nil
}

// MarshalJSON writes the invoice, or null for a failed chunk, preserving the
// invoice-or-null slot convention of the chunk artifact.
func (c ChunkResult) MarshalJSON() ([]byte, error) {
	if c.Invoice == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Invoice)
}

// ProcessedInvoice is the run-level outcome for one source document. It is the
// sole contract handed to the routing layer, which uses it to decide between
// the finished and failed destinations and whether to persist the raw chunk
// annotations as a JSON artifact.
type ProcessedInvoice struct {
	// InvoiceNumber is empty when resolution failed.
	InvoiceNumber string

	AlreadyProcessed      bool
	ProcessedSuccessfully bool

	// ParsedInvoiceChunks has one slot per attempted chunk, in chunk order.
	// A slot with a nil invoice marks a chunk whose OCR or validation
	// failed; its Err says why.
	ParsedInvoiceChunks []ChunkResult
}
