package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/orostudio/spareparts/internal/orderpdf"
	"github.com/orostudio/spareparts/internal/ordering"
)

// Config holds settings read from the environment. A .env file is loaded
// into the environment before Load is called.
type Config struct {
	Port        string
	CatalogPath string

	LogLevel  string
	LogFormat string

	PDFFilename string
	PDFTitle    string
	PDFCompress bool

	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

// Load reads configuration from environment variables, using defaults for
// anything unset or unparsable
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8888"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		PDFFilename: getEnv("PDF_FILENAME", ordering.DefaultFilename),
		PDFTitle:    getEnv("PDF_TITLE", orderpdf.DefaultTitle),
		PDFCompress: getEnvBool("PDF_COMPRESS", true),

		SessionIdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		SessionSweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

// PDFOptions returns the document options derived from the config
func (c Config) PDFOptions() orderpdf.Options {
	return orderpdf.Options{
		Title:    c.PDFTitle,
		Compress: c.PDFCompress,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration parses values like "90m"; non-positive values use the default
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
