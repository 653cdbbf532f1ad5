package storage

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"faktura-ocr/internal/logger"
	"faktura-ocr/pkg/models"
)

// Router files processed documents under their final destination. Every
// document ends in exactly one place: left untouched (already processed),
// finished/{invoiceNumber}/ or failed/{folderName}/, the last two with a
// chunk annotation artifact when any chunks were attempted.
type Router struct {
	store BlobStore
	log   zerolog.Logger
}

// NewRouter creates a Router on the given blob store.
func NewRouter(store BlobStore) *Router {
	return &Router{
		store: store,
		log:   logger.WithComponent("router"),
	}
}

// Route moves the source document according to the processing outcome and
// returns the document's final path. Storage failures propagate; a document
// left in the queue unrouted must be visible to the operator.
func (r *Router) Route(ctx context.Context, sourcePath string, outcome *models.ProcessedInvoice) (string, error) {
	const op = "Route"

	if outcome.AlreadyProcessed {
		r.log.Info().Str("path", sourcePath).Msg("already processed, leaving document in place")
		return sourcePath, nil
	}

	filename := path.Base(sourcePath)
	destFolder := r.destination(filename, outcome)

	if len(outcome.ParsedInvoiceChunks) > 0 {
		artifact, err := json.MarshalIndent(outcome.ParsedInvoiceChunks, "", "  ")
		if err != nil {
			return "", WrapStorageError(op, err, "failed to encode chunk artifact")
		}
		if err := r.store.Save(ctx, destFolder+"/"+ArtifactName, artifact); err != nil {
			return "", err
		}
	}

	destPath, err := r.store.Move(ctx, sourcePath, destFolder+"/"+filename)
	if err != nil {
		return "", err
	}

	r.log.Info().
		Str("invoiceNumber", outcome.InvoiceNumber).
		Bool("processedSuccessfully", outcome.ProcessedSuccessfully).
		Str("destination", destPath).
		Msg("document routed")
	return destPath, nil
}

// destination picks the target folder. Failed documents without a resolved
// invoice number fall back to the source filename stem.
func (r *Router) destination(filename string, outcome *models.ProcessedInvoice) string {
	if outcome.ProcessedSuccessfully {
		return FinishedFolder + "/" + outcome.InvoiceNumber
	}

	folderName := outcome.InvoiceNumber
	if folderName == "" {
		folderName = strings.TrimSuffix(filename, path.Ext(filename))
	}
	return FailedFolder + "/" + folderName
}
