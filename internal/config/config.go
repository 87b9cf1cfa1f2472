package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	Ledger     LedgerConfig
	Extraction ExtractionConfig
	Security   SecurityConfig
	Snapshot   SnapshotConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LedgerConfig holds defaults for the aggregation views
type LedgerConfig struct {
	// StartingCapital is used when no starting capital has been saved in settings.
	StartingCapital float64
}

// ExtractionConfig holds settings for the image extraction service
type ExtractionConfig struct {
	APIKey         string
	Model          string
	RatePerMinute  int
	Concurrency    int
	UploadMaxBytes int64
}

// SecurityConfig holds secrets used to protect data at rest
type SecurityConfig struct {
	EncryptionKey string // base64 fernet key, empty disables stored secrets
}

// SnapshotConfig holds the stats snapshot schedule
type SnapshotConfig struct {
	Schedule string // cron spec, empty disables scheduled snapshots
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	startingCapital, err := getEnvFloat("STARTING_CAPITAL", 0)
	if err != nil {
		return nil, err
	}
	if startingCapital < 0 {
		return nil, fmt.Errorf("STARTING_CAPITAL must not be negative, got %v", startingCapital)
	}

	ratePerMinute, err := getEnvInt("EXTRACTION_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}

	concurrency, err := getEnvInt("EXTRACTION_CONCURRENCY", 3)
	if err != nil {
		return nil, err
	}

	maxBytes, err := getEnvInt("UPLOAD_MAX_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/trade_journal.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Ledger: LedgerConfig{
			StartingCapital: startingCapital,
		},
		Extraction: ExtractionConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnv("EXTRACTION_MODEL", "gemini-2.0-flash"),
			RatePerMinute:  ratePerMinute,
			Concurrency:    concurrency,
			UploadMaxBytes: int64(maxBytes),
		},
		Security: SecurityConfig{
			EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		},
		Snapshot: SnapshotConfig{
			Schedule: getEnvAllowEmpty("SNAPSHOT_SCHEDULE", "0 22 * * 1-5"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty returns the default only when the variable is unset,
// so an explicitly empty value can switch a feature off.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s: %q is not a finite number", key, value)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, i)
	}
	return i, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
