// Package ocr drives schema-guided text extraction against the external OCR
// provider.
//
// Each request carries one PDF chunk (base64 data URL) plus two schema
// descriptors: a bounding-box/image annotation schema and the Invoice
// document annotation schema. The provider enforces an 8-page ceiling on
// document annotation requests, which is why callers hand it page-bounded
// chunks rather than whole documents.
//
// Provider failures never cross this boundary as raw errors: they are
// converted to an absent chunk result carrying a typed reason, so a
// multi-chunk document survives an occasional bad chunk.
//
// Required Environment Variables:
//   - MISTRAL_API_KEY: API key for the OCR provider
package ocr

import (
	"context"
	"time"

	"faktura-ocr/pkg/models"
)

// Extractor defines the OCR boundary consumed by the pipeline.
type Extractor interface {
	// ExtractChunk runs schema-guided OCR on one PDF chunk and returns
	// the parsed, validated invoice or a typed failure reason. It never
	// returns a separate error: provider and validation failures are
	// folded into the result.
	ExtractChunk(ctx context.Context, chunk []byte) models.ChunkResult
}

// Config holds configuration for the OCR provider client.
type Config struct {
	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL is the provider's API root, without a trailing slash.
	BaseURL string

	// Model is the OCR model identifier.
	Model string

	// ChatModel is the model used for chat completions.
	ChatModel string

	// PageLimit is the provider's page ceiling hint sent with each
	// request. Chunks are expected to already respect it.
	PageLimit int

	// Timeout bounds a single OCR call.
	Timeout time.Duration

	// IncludeImageBase64 asks the provider to echo page images back.
	// Off by default; the pipeline has no use for them.
	IncludeImageBase64 bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://api.mistral.ai",
		Model:     "mistral-ocr-latest",
		ChatModel: "mistral-large-latest",
		PageLimit: 8,
		Timeout:   2 * time.Minute,
	}
}

// Response is the provider's OCR response. DocumentAnnotation is a JSON
// string shaped by the document annotation schema, empty when the provider
// produced none.
type Response struct {
	Pages              []Page     `json:"pages"`
	Model              string     `json:"model"`
	DocumentAnnotation string     `json:"document_annotation"`
	UsageInfo          *UsageInfo `json:"usage_info"`
}

// Page is one OCR'd page with its markdown rendition.
type Page struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// UsageInfo reports what the provider billed for the request.
type UsageInfo struct {
	PagesProcessed int   `json:"pages_processed"`
	DocSizeBytes   int64 `json:"doc_size_bytes"`
}
