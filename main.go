package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"faktura-ocr/cmd"
	"faktura-ocr/internal/config"
	"faktura-ocr/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// A missing or incomplete config falls back to default logging so
	// that --help and version never require credentials; commands that
	// need the config validate it themselves.
	logConfig := logger.DefaultConfig()
	if cfg, err := config.Load(); err != nil {
		log.Printf("Warning: Could not load configuration: %v", err)
	} else {
		logConfig = cfg.GetLoggerConfig()
	}
	if err := logger.Setup(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mainLog := logger.WithComponent("main")
	mainLog.Info().Msg("Starting Faktura OCR")

	cmd.Execute()

	mainLog.Info().Msg("Faktura OCR shutdown")
	os.Exit(0)
}
