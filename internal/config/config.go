package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

const (
	ScorerTFIDF     = "tfidf"
	ScorerEmbedding = "embedding"

	// MaxSuggestionsCeiling bounds any requested suggestion limit.
	MaxSuggestionsCeiling = 50
)

// Config holds all configuration for the application.
type Config struct {
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	Scorer         string
	CategoryBoost  bool
	ChunkSize      int
	MaxSuggestions int
	Policy         suggest.SelectionPolicy
	PolicyFile     string

	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingAPIKey     string
	EmbeddingVectorSize int

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	ImportWatchPath string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// A .env file in the current directory or up to four parents is loaded first;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "./data/links.db"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Scorer:             strings.ToLower(getEnv("SCORER", ScorerTFIDF)),
		PolicyFile:         getEnv("POLICY_FILE", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "nomic-embed-text"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "destinations"),
		ImportWatchPath:    getEnv("IMPORT_WATCH_PATH", ""),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.CategoryBoost, err = getBool("CATEGORY_BOOST", true); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getInt("CHUNK_SIZE", suggest.DefaultChunkSize); err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.MaxSuggestions, err = getInt("MAX_SUGGESTIONS", 15); err != nil {
		return nil, err
	}
	if cfg.MaxSuggestions < 1 || cfg.MaxSuggestions > MaxSuggestionsCeiling {
		return nil, fmt.Errorf("MAX_SUGGESTIONS must be between 1 and %d", MaxSuggestionsCeiling)
	}

	switch cfg.Scorer {
	case ScorerTFIDF:
	case ScorerEmbedding:
		// Must match the output size of the embeddings model; a changed size
		// requires recreating the Qdrant collection.
		if cfg.EmbeddingVectorSize, err = getInt("EMBEDDING_VECTOR_SIZE", 0); err != nil {
			return nil, err
		}
		if cfg.EmbeddingVectorSize <= 0 {
			return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required when SCORER=embedding")
		}
	default:
		return nil, fmt.Errorf("SCORER must be %s or %s, got %q", ScorerTFIDF, ScorerEmbedding, cfg.Scorer)
	}

	if cfg.Policy, err = suggest.PolicyByName(getEnv("SELECTION_POLICY", suggest.PolicyDiversity)); err != nil {
		return nil, fmt.Errorf("SELECTION_POLICY: %w", err)
	}
	if cfg.PolicyFile != "" {
		if cfg.Policy, err = LoadPolicyFile(cfg.PolicyFile, cfg.Policy); err != nil {
			return nil, err
		}
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}
