package config

import (
	"fmt"
	"os"
	"strconv"

	"faktura-ocr/internal/logger"
)

// Page ceiling the OCR provider enforces on annotation requests.
const maxProviderPages = 8

type Config struct {
	// OCR Provider Configuration
	MistralAPIKey    string
	MistralBaseURL   string
	MistralOCRModel  string
	MistralChatModel string

	// Chunking Configuration
	MaxPagesPerChunk int

	// Processing Configuration
	ProcessAlreadyProcessedFiles bool

	// MongoDB Configuration
	MongoDBConnectionString string
	MongoDBDatabase         string
	MongoDBCollection       string

	// Blob Storage Configuration
	BlobStorageConnectionString string
	BlobContainerName           string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		MistralAPIKey:                getEnv("MISTRAL_API_KEY", ""),
		MistralBaseURL:               getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai"),
		MistralOCRModel:              getEnv("MISTRAL_OCR_MODEL", "mistral-ocr-latest"),
		MistralChatModel:             getEnv("MISTRAL_CHAT_MODEL", "mistral-large-latest"),
		MaxPagesPerChunk:             getEnvInt("MISTRAL_MAX_PAGES_PER_CHUNK", 4),
		ProcessAlreadyProcessedFiles: getEnvBool("OCR_PROCESS_ALREADY_PROCESSED_FILES", false),
		MongoDBConnectionString:      getEnv("MONGODB_CONNECTION_STRING", ""),
		MongoDBDatabase:              getEnv("MONGODB_DATABASE_NAME", "faktura"),
		MongoDBCollection:            getEnv("MONGODB_COLLECTION_NAME", "workItems"),
		BlobStorageConnectionString:  getEnv("BLOB_STORAGE_CONNECTION_STRING", ""),
		BlobContainerName:            getEnv("BLOB_CONTAINER_NAME", "invoices"),
		LogLevel:                     getEnv("LOG_LEVEL", "info"),
		LogFormat:                    getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:                getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:                    getEnv("LOG_OUTPUT", "stdout"),
	}

	// The provider rejects annotation requests above its page ceiling, so
	// misconfiguration is clamped rather than failed.
	if config.MaxPagesPerChunk < 1 {
		config.MaxPagesPerChunk = 1
	}
	if config.MaxPagesPerChunk > maxProviderPages {
		config.MaxPagesPerChunk = maxProviderPages
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.MistralAPIKey == "" {
		return fmt.Errorf("MISTRAL_API_KEY is required")
	}
	if c.MongoDBConnectionString == "" {
		return fmt.Errorf("MONGODB_CONNECTION_STRING is required")
	}
	if c.BlobStorageConnectionString == "" {
		return fmt.Errorf("BLOB_STORAGE_CONNECTION_STRING is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
