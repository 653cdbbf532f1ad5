package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"faktura-ocr/internal/config"
	"faktura-ocr/internal/logger"
	"faktura-ocr/internal/storage"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Drain the blob storage queue and process every invoice in it",
	Long: `List all PDF documents under the queue/ folder of the configured blob
container and run each through the pipeline. Every document ends in exactly
one destination: left in the queue (already processed), finished/ or
failed/, the latter two with a chunk annotation artifact.

Documents are processed sequentially. Storage and database failures abort
the run; a document that merely fails OCR is routed to failed/ and the run
continues.`,
	Example: `  # Process everything in the queue
  faktura-ocr ingest

  # Reprocess duplicates instead of skipping them
  faktura-ocr ingest --reprocess

  # Stop after 5 documents
  faktura-ocr ingest --limit 5`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolP("reprocess", "r", false, "Process even when records already exist for the invoice number")
	ingestCmd.Flags().Int("limit", 0, "Maximum number of documents to process (0 = all)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	log := logger.WithRunID(runID)

	reprocess, _ := cmd.Flags().GetBool("reprocess")
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reprocess = reprocess || cfg.ProcessAlreadyProcessedFiles

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn().Msg("interrupt received, finishing current document")
		cancel()
	}()

	blobStore, err := storage.NewAzureBlobStore(cfg.BlobStorageConnectionString, cfg.BlobContainerName)
	if err != nil {
		return err
	}
	router := storage.NewRouter(blobStore)

	p, mongoStore, err := buildPipeline(ctx, cfg, reprocess)
	if err != nil {
		return err
	}
	defer mongoStore.Close(ctx)

	queued, err := blobStore.List(ctx, storage.QueueFolder+"/")
	if err != nil {
		return err
	}

	processed, failed := 0, 0
	for _, blobPath := range queued {
		if !strings.EqualFold(path.Ext(blobPath), ".pdf") {
			continue
		}
		if limit > 0 && processed+failed >= limit {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		document, err := blobStore.Read(ctx, blobPath)
		if err != nil {
			return err
		}

		outcome, procErr := p.Process(ctx, path.Base(blobPath), document)
		if outcome == nil {
			// Store unreachable, nothing can be routed safely.
			return procErr
		}
		if procErr != nil {
			log.Warn().Err(procErr).Str("path", blobPath).Msg("document failed")
		}

		dest, err := router.Route(ctx, blobPath, outcome)
		if err != nil {
			return err
		}

		if outcome.ProcessedSuccessfully {
			processed++
		} else {
			failed++
		}
		log.Info().
			Str("invoiceNumber", outcome.InvoiceNumber).
			Str("destination", dest).
			Bool("alreadyProcessed", outcome.AlreadyProcessed).
			Msg("document done")
	}

	fmt.Printf("Ingest finished: %d succeeded, %d failed\n", processed, failed)
	if failed > 0 {
		return errors.New("some documents failed, see the failed/ folder")
	}
	return nil
}
