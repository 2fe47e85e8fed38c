// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service.
type Config struct {
	Port string

	// Provider selects the vision model backend: "openai" or "gemini".
	Provider string
	// APIKey is the server-wide default credential. A per-request key,
	// when present, takes precedence over this value.
	APIKey string
	Model  string

	UploadDir string
	OutputDir string
	// OutputBucket, when set, retains generated documents in GCS instead
	// of the local output directory.
	OutputBucket    string
	CredentialsFile string

	// DefaultBank/Branch/Account are used when the request omits the
	// display parameters.
	DefaultBank    string
	DefaultBranch  string
	DefaultAccount string

	// PageTimeout bounds each per-page model call. Zero disables the bound.
	PageTimeout time.Duration

	MaxUploadBytes int64
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Provider:        getEnv("LLM_PROVIDER", "openai"),
		APIKey:          getEnv("OPENAI_API_KEY", getEnv("GEMINI_API_KEY", "")),
		Model:           getEnv("LLM_MODEL", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		OutputDir:       getEnv("OUTPUT_DIR", "resultados"),
		OutputBucket:    getEnv("OUTPUT_BUCKET", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		DefaultBank:     getEnv("DEFAULT_BANK", "BRADESCO"),
		DefaultBranch:   getEnv("DEFAULT_BRANCH", "3050"),
		DefaultAccount:  getEnv("DEFAULT_ACCOUNT", "7223-0"),
		PageTimeout:     getEnvDuration("PAGE_TIMEOUT", 2*time.Minute),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 32<<20),
	}
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
