// Package pipeline orchestrates the processing of one invoice document:
// duplicate detection, chunking, per-chunk OCR extraction, hour
// reconciliation and persistence, and the final outcome classification the
// routing layer acts on.
//
// Chunks are processed strictly sequentially. The first chunk gates
// everything that follows: when the filename carries no invoice number, the
// number must come from the first chunk's extraction, and without a number
// there is no destination to file the document under.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"faktura-ocr/internal/logger"
	"faktura-ocr/internal/ocr"
	"faktura-ocr/internal/store"
	"faktura-ocr/pkg/models"
)

// Chunker splits a PDF into page-bounded sub-documents.
type Chunker interface {
	Chunk(document []byte, maxPagesPerChunk int) ([][]byte, error)
}

// Options configures a Pipeline.
type Options struct {
	// MaxPagesPerChunk bounds each chunk, in [1, 8].
	MaxPagesPerChunk int

	// AllowReprocessing disables the duplicate skip. Records for a
	// reprocessed invoice are inserted again; the store does not
	// deduplicate.
	AllowReprocessing bool
}

// Pipeline processes one document at a time. It holds no per-document state;
// a single Pipeline may be reused across documents sequentially.
type Pipeline struct {
	chunker   Chunker
	extractor ocr.Extractor
	store     store.Store
	opts      Options
	now       func() time.Time
	log       zerolog.Logger
}

// New creates a Pipeline from its collaborators.
func New(chunker Chunker, extractor ocr.Extractor, st store.Store, opts Options) *Pipeline {
	return &Pipeline{
		chunker:   chunker,
		extractor: extractor,
		store:     st,
		opts:      opts,
		now:       time.Now,
		log:       logger.WithComponent("pipeline"),
	}
}

// documentLog returns the logger for one document, tagged with the invoice
// number once it is known.
func (p *Pipeline) documentLog(filename, invoiceNumber string) zerolog.Logger {
	if invoiceNumber == "" {
		return p.log.With().Str("filename", filename).Logger()
	}
	return logger.WithInvoice(invoiceNumber).With().Str("filename", filename).Logger()
}

// InvoiceNumberFromFilename returns the filename prefix up to the first "_",
// or an empty string when the filename carries no such prefix.
func InvoiceNumberFromFilename(filename string) string {
	idx := strings.Index(filename, "_")
	if idx <= 0 {
		return ""
	}
	return filename[:idx]
}

// Process runs the full pipeline for one source document.
//
// The returned outcome is non-nil whenever a routing decision is possible,
// including document-level failures, which additionally return one of this
// package's sentinel errors. A nil outcome with an error means the store was
// unreachable and the whole run must be treated as failed.
func (p *Pipeline) Process(ctx context.Context, filename string, document []byte) (*models.ProcessedInvoice, error) {
	const op = "Process"

	invoiceNumber := InvoiceNumberFromFilename(filename)
	log := p.documentLog(filename, invoiceNumber)

	if invoiceNumber != "" {
		skip, err := p.shouldSkip(ctx, invoiceNumber)
		if err != nil {
			return nil, err
		}
		if skip {
			log.Info().Msg("invoice already processed, skipping")
			return &models.ProcessedInvoice{
				InvoiceNumber:         invoiceNumber,
				AlreadyProcessed:      true,
				ProcessedSuccessfully: true,
			}, nil
		}
	}

	chunks, err := p.chunker.Chunk(document, p.opts.MaxPagesPerChunk)
	if err != nil {
		return &models.ProcessedInvoice{InvoiceNumber: invoiceNumber},
			WrapPipelineError(op, fmt.Errorf("%w: %v", ErrMalformedDocument, err), filename)
	}

	log.Info().
		Int("chunks", len(chunks)).
		Int("maxPagesPerChunk", p.opts.MaxPagesPerChunk).
		Msg("processing document")

	outcome := &models.ProcessedInvoice{
		InvoiceNumber:       invoiceNumber,
		ParsedInvoiceChunks: make([]models.ChunkResult, 0, len(chunks)),
	}

	insertedBatches := 0
	for i, chunk := range chunks {
		chunkNumber := i + 1
		result := p.extractor.ExtractChunk(ctx, chunk)
		outcome.ParsedInvoiceChunks = append(outcome.ParsedInvoiceChunks, result)

		if !result.Ok() {
			if i == 0 {
				return outcome, WrapPipelineError(op,
					fmt.Errorf("%w: %v", ErrFirstChunkFailed, result.Err), filename)
			}
			log.Warn().Err(result.Err).Int("chunk", chunkNumber).Msg("chunk failed, continuing")
			continue
		}

		if i == 0 && invoiceNumber == "" {
			invoiceNumber = result.Invoice.InvoiceNumber()
			if invoiceNumber == "" {
				return outcome, WrapPipelineError(op, ErrUnresolvableInvoiceNumber, filename)
			}
			outcome.InvoiceNumber = invoiceNumber
			log = p.documentLog(filename, invoiceNumber)

			skip, err := p.shouldSkip(ctx, invoiceNumber)
			if err != nil {
				return nil, err
			}
			if skip {
				log.Info().Msg("invoice already processed, skipping")
				outcome.AlreadyProcessed = true
				outcome.ProcessedSuccessfully = true
				return outcome, nil
			}
		}

		records, excluded := BuildRecords(result.Invoice, invoiceNumber, chunkNumber, p.opts.MaxPagesPerChunk, p.now())
		for _, exclErr := range excluded {
			log.Warn().Err(exclErr).Int("chunk", chunkNumber).Msg("work item excluded from batch")
		}

		res, err := p.store.InsertWorkItems(ctx, records)
		if err != nil {
			return nil, err
		}
		if res.Acknowledged {
			insertedBatches++
		}

		log.Debug().
			Int("chunk", chunkNumber).
			Int("workItems", len(records)).
			Int("excluded", len(excluded)).
			Msg("chunk persisted")
	}

	outcome.ProcessedSuccessfully = len(outcome.ParsedInvoiceChunks) == insertedBatches
	return outcome, nil
}

// shouldSkip reports whether records already exist for the invoice number and
// reprocessing is disabled. Store failures propagate: treating "unknown" as
// "not a duplicate" would silently reprocess and double-insert.
func (p *Pipeline) shouldSkip(ctx context.Context, invoiceNumber string) (bool, error) {
	if p.opts.AllowReprocessing {
		return false, nil
	}
	count, err := p.store.CountByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
