package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Host        string
	Port        string
	Environment string
	GinMode     string

	// Storage backend: "memory" or "postgres"
	StoreBackend string
	DatabaseURL  string

	// Embedder: "tfidf" or "openai"
	Embedder            string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	EmbeddingModel      string
	EmbeddingDimensions int

	// Synthesizer: "openai" or "extractive"
	Synthesizer string
	ChatModel   string

	// Chunking
	ChunkSize    int
	ChunkOverlap int

	// Retrieval
	TopK int

	// Request handling
	RequestTimeout time.Duration

	// Ingest
	DataDir string
}

func Load() *Config {
	cfg := &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "8001"),
		Environment: getEnv("ENVIRONMENT", "development"),
		GinMode:     getEnv("GIN_MODE", "debug"),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DatabaseURL:  getEnv("DATABASE_URL", "postgres://localhost:5432/policy_chat?sslmode=disable"),

		Embedder:            getEnv("EMBEDDER", "tfidf"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 1536),

		Synthesizer: getEnv("SYNTHESIZER", ""),
		ChatModel:   getEnv("CHAT_MODEL", "gpt-4o-mini"),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 500),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 50),

		TopK: getEnvInt("TOP_K", 3),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,

		DataDir: getEnv("DATA_DIR", "./data"),
	}

	// Without an API key the extractive synthesizer is the only usable one.
	if cfg.Synthesizer == "" {
		if cfg.OpenAIAPIKey != "" {
			cfg.Synthesizer = "openai"
		} else {
			cfg.Synthesizer = "extractive"
		}
	}

	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
