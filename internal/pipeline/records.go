package pipeline

import (
	"time"

	"faktura-ocr/pkg/models"
)

// BuildRecords normalizes a chunk's work items into persistable records.
// chunkNumber is 1-based; page numbers inside a chunk are translated back to
// positions in the original document so records stay traceable after
// chunking.
//
// Items whose hours cannot be reconciled are excluded from the batch and
// returned as errors for logging. A bad item never aborts its batch.
func BuildRecords(invoice *models.Invoice, invoiceNumber string, chunkNumber, maxPagesPerChunk int, insertedDate time.Time) ([]models.WorkItemRecord, []error) {
	var records []models.WorkItemRecord
	var excluded []error

	for _, item := range invoice.WorkLists {
		totalHour, err := ReconcileHours(item)
		if err != nil {
			excluded = append(excluded, err)
			continue
		}

		records = append(records, models.WorkItemRecord{
			Activity:              item.Activity,
			Department:            item.Department,
			Employee:              item.Employee,
			Extras:                item.Extras,
			FromDate:              item.FromDate,
			FromPeriod:            item.FromPeriod,
			ID:                    item.ID,
			Project:               item.Project,
			ToDate:                item.ToDate,
			ToPeriod:              item.ToPeriod,
			InvoiceNumber:         invoiceNumber,
			PdfChunk:              chunkNumber,
			PdfChunkPageNumber:    item.PageNumber,
			PdfOriginalPageNumber: (chunkNumber-1)*maxPagesPerChunk + item.PageNumber,
			TotalHour:             totalHour,
			InsertedDate:          insertedDate,
		})
	}

	return records, excluded
}
