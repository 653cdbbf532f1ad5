package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"faktura-ocr/internal/config"
	"faktura-ocr/internal/ocr"
	"faktura-ocr/internal/store"
	"faktura-ocr/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export [invoice-number]",
	Short: "Export persisted work item records",
	Long: `Fetch normalized work item records from the document store and write them
as JSON or CSV. Records are selected either by invoice number (positional
argument) or by inserted-date range (--from/--to, dates as YYYY-MM-DD, the
end date exclusive).

With --summary, the records are additionally summarized in natural language
by the configured chat model.`,
	Example: `  # Print one invoice's records as JSON
  faktura-ocr export 778899

  # Write a CSV file
  faktura-ocr export 778899 --format csv -o 778899.csv

  # Everything inserted in June 2025
  faktura-ocr export --from 2025-06-01 --to 2025-07-01

  # Include a natural-language summary
  faktura-ocr export 778899 --summary`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "json", "Output format: json or csv")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().String("from", "", "Start of the inserted-date range (YYYY-MM-DD, inclusive)")
	exportCmd.Flags().String("to", "", "End of the inserted-date range (YYYY-MM-DD, exclusive)")
	exportCmd.Flags().Bool("summary", false, "Append a chat-model summary of the records")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	withSummary, _ := cmd.Flags().GetBool("summary")

	if format != "json" && format != "csv" {
		return fmt.Errorf("unsupported format %q, want json or csv", format)
	}

	var invoiceNumber string
	if len(args) == 1 {
		invoiceNumber = args[0]
	}
	byRange := fromStr != "" || toStr != ""
	if invoiceNumber == "" && !byRange {
		return fmt.Errorf("either an invoice number or --from/--to is required")
	}
	if invoiceNumber != "" && byRange {
		return fmt.Errorf("an invoice number and --from/--to are mutually exclusive")
	}

	var from, to time.Time
	if byRange {
		var err error
		if fromStr == "" || toStr == "" {
			return fmt.Errorf("--from and --to must be given together")
		}
		if from, err = time.Parse("2006-01-02", fromStr); err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	mongoStore, err := store.NewMongoStore(ctx, store.MongoConfig{
		ConnectionString: cfg.MongoDBConnectionString,
		Database:         cfg.MongoDBDatabase,
		Collection:       cfg.MongoDBCollection,
	})
	if err != nil {
		return err
	}
	defer mongoStore.Close(ctx)

	var records []models.WorkItemRecord
	var selection string
	if byRange {
		records, err = mongoStore.FindByInsertedDateRange(ctx, from, to)
		selection = fmt.Sprintf("inserted between %s and %s", fromStr, toStr)
	} else {
		records, err = mongoStore.FindByInvoiceNumber(ctx, invoiceNumber)
		selection = "invoice " + invoiceNumber
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records found for %s", selection)
	}

	var out io.Writer = os.Stdout
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(records); err != nil {
			return err
		}
	case "csv":
		if err := writeRecordsCSV(out, records); err != nil {
			return err
		}
	}

	if withSummary {
		summary, err := summarizeRecords(ctx, cfg, selection, records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nSummary:\n%s\n", summary)
	}
	return nil
}

func writeRecordsCSV(out io.Writer, records []models.WorkItemRecord) error {
	w := csv.NewWriter(out)
	header := []string{
		"invoiceNumber", "id", "employee", "department", "project", "activity",
		"fromDate", "fromPeriod", "toDate", "toPeriod", "extras", "totalHour",
		"pdfChunk", "pdfChunkPageNumber", "pdfOriginalPageNumber", "insertedDate",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	for _, r := range records {
		row := []string{
			r.InvoiceNumber,
			strconv.Itoa(r.ID),
			r.Employee,
			deref(r.Department),
			deref(r.Project),
			deref(r.Activity),
			r.FromDate,
			r.FromPeriod,
			r.ToDate,
			r.ToPeriod,
			r.Extras,
			strconv.FormatFloat(r.TotalHour, 'f', 2, 64),
			strconv.Itoa(r.PdfChunk),
			strconv.Itoa(r.PdfChunkPageNumber),
			strconv.Itoa(r.PdfOriginalPageNumber),
			r.InsertedDate.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func summarizeRecords(ctx context.Context, cfg *config.Config, selection string, records []models.WorkItemRecord) (string, error) {
	client, err := ocr.NewClient(ocr.Config{
		APIKey:    cfg.MistralAPIKey,
		BaseURL:   cfg.MistralBaseURL,
		Model:     cfg.MistralOCRModel,
		ChatModel: cfg.MistralChatModel,
	})
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Summarize the following work item records (%s): total hours, "+
			"hours per employee and the covered date range. Records as JSON:\n%s",
		selection, payload)
	return client.TextChat(ctx, prompt)
}
