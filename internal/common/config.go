package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. Loaded once at startup and
// passed explicitly; nothing reads the environment after LoadConfig returns.
type Config struct {
	Database  DatabaseConfig
	Semantic  SemanticConfig
	Embedding EmbeddingConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// SemanticConfig holds consolidation-related configuration
type SemanticConfig struct {
	// ArtifactDir is the folder holding per-page extraction artifacts
	// (documento_*.json) and where the optional global side file is written.
	ArtifactDir string
	// PageTable and DocTable are the page-level and document-level index tables.
	PageTable string
	DocTable  string
	// MinConfidence gates tokens whose prediction confidence is below it.
	MinConfidence float32
	// WriteGlobalFile controls the standalone canonical-map side artifact.
	WriteGlobalFile bool
}

// EmbeddingConfig holds embedding-service configuration
type EmbeddingConfig struct {
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Semantic: SemanticConfig{
			ArtifactDir:     getEnv("JSON_FOLDER", "outputs"),
			PageTable:       getEnv("SEM_TABLE", "semantic_index"),
			DocTable:        getEnv("SEM_TABLE_DOC", "semantic_doc_index"),
			MinConfidence:   getEnvAsFloat32("SEM_MIN_CONFIDENCE", 0),
			WriteGlobalFile: getEnvAsBool("SEM_WRITE_GLOBAL_FILE", true),
		},
		Embedding: EmbeddingConfig{
			Endpoint: getEnv("SEM_VECTOR_URL", ""),
			Model:    getEnv("SEM_MODEL_NAME", "all-MiniLM-L6-v2"),
			Timeout:  getEnvAsDuration("SEM_VECTOR_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Semantic.ArtifactDir == "" {
		return NewAppError("CONFIG_ERROR", "JSON_FOLDER is required", ErrInvalidInput)
	}
	return nil
}
