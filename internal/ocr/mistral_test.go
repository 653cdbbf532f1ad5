package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, "https://api.mistral.ai", client.config.BaseURL)
	assert.Equal(t, "mistral-ocr-latest", client.config.Model)
	assert.Equal(t, 8, client.config.PageLimit)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestExtractChunkSuccess(t *testing.T) {
	annotation := `{"workLists":[{"employee":"Ola Nordmann","fromPeriod":"07:00","toPeriod":"15:00","fromDate":"02.06.2025","toDate":"02.06.2025","extras":"","total":"7.5","machineHours":"","pageNumber":1,"id":1}],"invoice":{"number":"1201","date":null,"dueDate":null,"kid":""}}`

	var captured ocrRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ocr", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := Response{
			Pages:              []Page{{Index: 0, Markdown: "# Faktura 1201"}},
			Model:              "mistral-ocr-latest",
			DocumentAnnotation: annotation,
			UsageInfo:          &UsageInfo{PagesProcessed: 1},
		}
		json.NewEncoder(w).Encode(resp)
	}))

	result := client.ExtractChunk(context.Background(), []byte("%PDF-1.4 fake"))
	require.True(t, result.Ok())
	require.NotNil(t, result.Invoice)
	assert.Equal(t, "1201", result.Invoice.InvoiceNumber())

	assert.Equal(t, "mistral-ocr-latest", captured.Model)
	assert.Equal(t, "document_url", captured.Document.Type)
	assert.Contains(t, captured.Document.DocumentURL, "data:application/pdf;base64,")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, captured.Pages)
	require.NotNil(t, captured.DocumentAnnotationFormat)
	assert.Equal(t, "json_schema", captured.DocumentAnnotationFormat.Type)
	assert.Equal(t, "document_annotation", captured.DocumentAnnotationFormat.JSONSchema.Name)
	require.NotNil(t, captured.BBoxAnnotationFormat)
}

func TestExtractChunkProviderError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid request"}`, http.StatusUnprocessableEntity)
	}))

	result := client.ExtractChunk(context.Background(), []byte("%PDF-1.4 fake"))
	require.False(t, result.Ok())
	assert.Nil(t, result.Invoice)
	assert.True(t, errors.Is(result.Err, ErrProviderCall))
}

func TestExtractChunkNoAnnotation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{
			Pages: []Page{{Index: 0, Markdown: "no structured data"}},
			Model: "mistral-ocr-latest",
		})
	}))

	result := client.ExtractChunk(context.Background(), []byte("%PDF-1.4 fake"))
	require.False(t, result.Ok())
	assert.True(t, errors.Is(result.Err, ErrNoAnnotation))
}

func TestExtractChunkInvalidAnnotation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{
			DocumentAnnotation: `{"workLists":[{"employee":"","pageNumber":1,"id":1}]}`,
		})
	}))

	result := client.ExtractChunk(context.Background(), []byte("%PDF-1.4 fake"))
	require.False(t, result.Ok())

	var annErr *AnnotationError
	assert.True(t, errors.As(result.Err, &annErr))
}

func TestDocumentAnnotationSchemaShape(t *testing.T) {
	schema := DocumentAnnotationSchema()

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"workLists", "lineItems", "invoice", "recipient", "reference", "totals", "sender"} {
		assert.Contains(t, props, key)
	}

	// the whole schema must survive a JSON round trip untouched
	_, err := json.Marshal(schema)
	require.NoError(t, err)
}
