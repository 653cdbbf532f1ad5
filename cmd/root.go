package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faktura-ocr/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "faktura-ocr",
	Short: "Faktura OCR - invoice ingestion and reconciliation pipeline",
	Long: `Faktura OCR ingests scanned invoice and timesheet PDFs, extracts
structured data through a schema-guided OCR provider, reconciles the
extracted work hours against the printed time spans, and persists
normalized work item records to MongoDB.

Documents are chunked to respect the provider's page ceiling, deduplicated
by invoice number, and routed to finished/ or failed/ folders in blob
storage once processed.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("Faktura OCR executed")

		fmt.Println("Welcome to Faktura OCR!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
