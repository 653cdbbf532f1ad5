package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"faktura-ocr/internal/config"
	"faktura-ocr/internal/logger"
	"faktura-ocr/internal/ocr"
	"faktura-ocr/internal/pdf"
	"faktura-ocr/internal/pipeline"
	"faktura-ocr/internal/storage"
	"faktura-ocr/internal/store"
)

var processCmd = &cobra.Command{
	Use:   "process [pdf-file]",
	Short: "Process a local invoice PDF through the pipeline",
	Long: `Run the full pipeline for one PDF from the local filesystem: chunking,
schema-guided OCR extraction, hour reconciliation and MongoDB persistence.

The invoice number is taken from the filename prefix up to the first "_"
when present, otherwise from the first chunk's extraction result. Documents
whose invoice number already has persisted records are skipped unless
--reprocess is given.

Required environment variables:
  MISTRAL_API_KEY            - OCR provider API key
  MONGODB_CONNECTION_STRING  - MongoDB connection string
  BLOB_STORAGE_CONNECTION_STRING - Azure blob storage connection string`,
	Example: `  # Process an invoice scan
  faktura-ocr process 778899_scan.pdf

  # Reprocess even if records already exist
  faktura-ocr process 778899_scan.pdf --reprocess

  # Write the chunk annotation artifact to a chosen path
  faktura-ocr process 778899_scan.pdf -o chunks.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolP("reprocess", "r", false, "Process even when records already exist for the invoice number")
	processCmd.Flags().StringP("output", "o", "", "Path for the chunk annotation artifact (default: <pdf-dir>/ocr_invoice_chunks.json)")
	processCmd.Flags().Int("timeout", 600, "Overall timeout in seconds")
	rootCmd.AddCommand(processCmd)
}

// buildPipeline wires the pipeline's collaborators from the loaded config.
// The returned store must be closed by the caller.
func buildPipeline(ctx context.Context, cfg *config.Config, allowReprocessing bool) (*pipeline.Pipeline, *store.MongoStore, error) {
	extractor, err := ocr.NewClient(ocr.Config{
		APIKey:    cfg.MistralAPIKey,
		BaseURL:   cfg.MistralBaseURL,
		Model:     cfg.MistralOCRModel,
		ChatModel: cfg.MistralChatModel,
	})
	if err != nil {
		return nil, nil, err
	}

	mongoStore, err := store.NewMongoStore(ctx, store.MongoConfig{
		ConnectionString: cfg.MongoDBConnectionString,
		Database:         cfg.MongoDBDatabase,
		Collection:       cfg.MongoDBCollection,
	})
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New(pdf.NewChunker(), extractor, mongoStore, pipeline.Options{
		MaxPagesPerChunk:  cfg.MaxPagesPerChunk,
		AllowReprocessing: allowReprocessing,
	})
	return p, mongoStore, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process-cmd")
	pdfPath := args[0]

	reprocess, _ := cmd.Flags().GetBool("reprocess")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reprocess = reprocess || cfg.ProcessAlreadyProcessedFiles

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	document, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read PDF file: %w", err)
	}

	p, mongoStore, err := buildPipeline(ctx, cfg, reprocess)
	if err != nil {
		return err
	}
	defer mongoStore.Close(ctx)

	outcome, procErr := p.Process(ctx, filepath.Base(pdfPath), document)
	if outcome == nil {
		return procErr
	}
	if procErr != nil {
		log.Error().Err(procErr).Msg("document processing failed")
	}

	if len(outcome.ParsedInvoiceChunks) > 0 {
		if outputPath == "" {
			outputPath = filepath.Join(filepath.Dir(pdfPath), storage.ArtifactName)
		}
		artifact, err := json.MarshalIndent(outcome.ParsedInvoiceChunks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode chunk artifact: %w", err)
		}
		if err := os.WriteFile(outputPath, artifact, 0644); err != nil {
			return fmt.Errorf("failed to write chunk artifact: %w", err)
		}
		fmt.Printf("Chunk annotations written to %s\n", outputPath)
	}

	switch {
	case outcome.AlreadyProcessed:
		fmt.Printf("Invoice %s already processed, skipped\n", outcome.InvoiceNumber)
	case outcome.ProcessedSuccessfully:
		fmt.Printf("Invoice %s processed successfully (%d chunks)\n",
			outcome.InvoiceNumber, len(outcome.ParsedInvoiceChunks))
	default:
		fmt.Printf("Invoice %s processing failed (%d chunks attempted)\n",
			outcome.InvoiceNumber, len(outcome.ParsedInvoiceChunks))
		if procErr != nil {
			return procErr
		}
		return errors.New("one or more chunks failed")
	}
	return nil
}
