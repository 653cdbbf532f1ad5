package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"faktura-ocr/internal/logger"
	"faktura-ocr/pkg/models"
)

// Client talks to the Mistral OCR endpoint over its REST API.
type Client struct {
	config     Config
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates an OCR client from the given config. Zero-valued fields
// fall back to DefaultConfig.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, WrapOCRError("NewClient", ErrMissingAPIKey,
			"set MISTRAL_API_KEY or pass Config.APIKey")
	}

	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.ChatModel == "" {
		config.ChatModel = defaults.ChatModel
	}
	if config.PageLimit <= 0 {
		config.PageLimit = defaults.PageLimit
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		log:        logger.WithComponent("ocr"),
	}, nil
}

type ocrRequest struct {
	Model                    string            `json:"model"`
	Document                 ocrDocument       `json:"document"`
	Pages                    []int             `json:"pages,omitempty"`
	BBoxAnnotationFormat     *annotationFormat `json:"bbox_annotation_format,omitempty"`
	DocumentAnnotationFormat *annotationFormat `json:"document_annotation_format,omitempty"`
	IncludeImageBase64       bool              `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

type annotationFormat struct {
	Type       string         `json:"type"`
	JSONSchema jsonSchemaSpec `json:"json_schema"`
}

type jsonSchemaSpec struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
}

// ExtractChunk implements Extractor. The chunk must already respect the
// provider's page ceiling.
func (c *Client) ExtractChunk(ctx context.Context, chunk []byte) models.ChunkResult {
	resp, err := c.process(ctx, chunk)
	if err != nil {
		c.log.Error().Err(err).Msg("OCR provider call failed")
		return models.ChunkResult{Err: err}
	}

	if resp.DocumentAnnotation == "" {
		return models.ChunkResult{Err: WrapOCRError("ExtractChunk", ErrNoAnnotation, "")}
	}

	invoice, err := ParseAnnotation(resp.DocumentAnnotation)
	if err != nil {
		c.log.Error().Err(err).Msg("document annotation failed validation")
		return models.ChunkResult{Err: err}
	}

	if resp.UsageInfo != nil {
		c.log.Debug().
			Int("pagesProcessed", resp.UsageInfo.PagesProcessed).
			Int64("docSizeBytes", resp.UsageInfo.DocSizeBytes).
			Msg("OCR chunk processed")
	}

	return models.ChunkResult{Invoice: invoice}
}

// process performs one OCR round trip and decodes the raw response.
func (c *Client) process(ctx context.Context, chunk []byte) (*Response, error) {
	pages := make([]int, c.config.PageLimit)
	for i := range pages {
		pages[i] = i
	}

	reqBody := ocrRequest{
		Model: c.config.Model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(chunk),
		},
		Pages: pages,
		BBoxAnnotationFormat: &annotationFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaSpec{Name: "image_annotation", Schema: BBoxAnnotationSchema()},
		},
		DocumentAnnotationFormat: &annotationFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaSpec{Name: "document_annotation", Schema: DocumentAnnotationSchema()},
		},
		IncludeImageBase64: c.config.IncludeImageBase64,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, WrapOCRError("process", err, "failed to encode OCR request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/ocr", bytes.NewReader(payload))
	if err != nil {
		return nil, WrapOCRError("process", err, "failed to build OCR request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, WrapOCRError("process", fmt.Errorf("%w: %v", ErrProviderCall, err), "")
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, WrapOCRError("process", fmt.Errorf("%w: %v", ErrProviderCall, err),
			"failed to read OCR response body")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, WrapOCRError("process", ErrProviderCall,
			fmt.Sprintf("status %d: %s", httpResp.StatusCode, truncate(string(body), 512)))
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, WrapOCRError("process", fmt.Errorf("%w: %v", ErrProviderCall, err),
			"failed to decode OCR response")
	}

	return &resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
