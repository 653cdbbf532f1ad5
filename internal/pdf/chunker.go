// Package pdf splits source PDF documents into page-bounded chunks.
//
// The OCR provider enforces a page ceiling on schema-guided document
// annotation requests, so oversized documents are partitioned into
// consecutive page groups before extraction. Chunk boundaries are purely
// page-count driven, never content-aware.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"faktura-ocr/internal/logger"
)

const (
	// MinPagesPerChunk is the smallest allowed chunk size.
	MinPagesPerChunk = 1

	// MaxPagesPerChunk is the provider's page ceiling for document
	// annotation requests.
	MaxPagesPerChunk = 8
)

// Chunker splits PDF documents into sub-documents of bounded page count.
type Chunker struct {
	conf *model.Configuration
	log  zerolog.Logger
}

// NewChunker creates a chunker with relaxed PDF validation, matching what
// scanned invoices from the wild tend to need.
func NewChunker() *Chunker {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Chunker{
		conf: conf,
		log:  logger.WithComponent("pdf-chunker"),
	}
}

// Chunk partitions document into consecutive page groups of at most
// maxPagesPerChunk pages each, preserving page order within and across
// groups. When the document is already within the limit the original bytes
// are returned unmodified as a single-element slice, with no recompression.
func (c *Chunker) Chunk(document []byte, maxPagesPerChunk int) ([][]byte, error) {
	const op = "Chunk"

	if maxPagesPerChunk < MinPagesPerChunk || maxPagesPerChunk > MaxPagesPerChunk {
		return nil, wrapChunkError(op, ErrPageLimit, fmt.Sprintf("got %d, want %d-%d", maxPagesPerChunk, MinPagesPerChunk, MaxPagesPerChunk))
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(document), c.conf)
	if err != nil {
		return nil, wrapChunkError(op, ErrDocumentLoad, err.Error())
	}

	pageCount := ctx.PageCount
	if pageCount <= maxPagesPerChunk {
		c.log.Info().
			Int("page_count", pageCount).
			Int("max_pages", maxPagesPerChunk).
			Msg("PDF within page limit, chunking not needed")
		return [][]byte{document}, nil
	}

	c.log.Info().
		Int("page_count", pageCount).
		Int("max_pages", maxPagesPerChunk).
		Msg("PDF exceeds page limit, chunking")

	var chunks [][]byte
	for start := 1; start <= pageCount; start += maxPagesPerChunk {
		end := start + maxPagesPerChunk - 1
		if end > pageCount {
			end = pageCount
		}

		var buf bytes.Buffer
		selection := []string{fmt.Sprintf("%d-%d", start, end)}
		if err := api.Trim(bytes.NewReader(document), &buf, selection, c.conf); err != nil {
			return nil, wrapChunkError(op, err, fmt.Sprintf("pages %d-%d", start, end))
		}

		chunks = append(chunks, buf.Bytes())
		c.log.Debug().
			Int("chunk", len(chunks)).
			Int("page_start", start).
			Int("page_end", end).
			Msg("Created PDF chunk")
	}

	return chunks, nil
}

// PageCount returns the number of pages in document.
func (c *Chunker) PageCount(document []byte) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(document), c.conf)
	if err != nil {
		return 0, wrapChunkError("PageCount", ErrDocumentLoad, err.Error())
	}
	return ctx.PageCount, nil
}
