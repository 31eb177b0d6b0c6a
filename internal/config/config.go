// ABOUTME: Centralized configuration for the document chat service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the service.
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Document processing settings
	ChunkSize    int
	ChunkOverlap int

	// Retrieval and generation settings
	RetrievalK         int
	QATemperature      float64
	InsightTemperature float64

	// Server settings
	Port          int
	UploadDir     string
	MaxUploadSize int
	MaxSessions   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("DOCUCHAT_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:     getEnv("DOCUCHAT_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ChunkSize:          getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:       getEnvInt("CHUNK_OVERLAP", 200),
		RetrievalK:         getEnvInt("RETRIEVAL_K", 3),
		QATemperature:      getEnvFloat("QA_TEMPERATURE", 0.7),
		InsightTemperature: getEnvFloat("INSIGHT_TEMPERATURE", 0.3),
		Port:               getEnvInt("PORT", 8080),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:      getEnvInt("MAX_UPLOAD_SIZE", 16*1024*1024),
		MaxSessions:        getEnvInt("MAX_SESSIONS", 100),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.RetrievalK <= 0 {
		return fmt.Errorf("RETRIEVAL_K must be positive, got %d", c.RetrievalK)
	}
	if c.QATemperature < 0 || c.QATemperature > 2 {
		return fmt.Errorf("QA_TEMPERATURE must be 0-2, got %f", c.QATemperature)
	}
	if c.InsightTemperature < 0 || c.InsightTemperature > 2 {
		return fmt.Errorf("INSIGHT_TEMPERATURE must be 0-2, got %f", c.InsightTemperature)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
