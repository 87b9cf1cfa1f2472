package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{
			"SERVER_PORT", "SERVER_HOST", "DB_PATH", "CORS_ALLOWED_ORIGINS", "STARTING_CAPITAL",
			"GEMINI_API_KEY", "EXTRACTION_MODEL", "EXTRACTION_RATE_PER_MINUTE",
			"EXTRACTION_CONCURRENCY", "UPLOAD_MAX_BYTES", "ENCRYPTION_KEY",
		} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
		}
		if cfg.Database.Path != "./data/trade_journal.db" {
			t.Errorf("Unexpected db path %s", cfg.Database.Path)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Extraction.Model != "gemini-2.0-flash" || cfg.Extraction.RatePerMinute != 10 || cfg.Extraction.Concurrency != 3 {
			t.Errorf("Unexpected extraction config %+v", cfg.Extraction)
		}
		if cfg.Extraction.UploadMaxBytes != 10<<20 {
			t.Errorf("Expected 10 MiB upload limit, got %d", cfg.Extraction.UploadMaxBytes)
		}
		if cfg.Ledger.StartingCapital != 0 {
			t.Errorf("Expected starting capital 0, got %v", cfg.Ledger.StartingCapital)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
		t.Setenv("STARTING_CAPITAL", "2500.50")
		t.Setenv("EXTRACTION_CONCURRENCY", "5")
		t.Setenv("SNAPSHOT_SCHEDULE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr 0.0.0.0:8080, got %s", cfg.Server.Addr)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Ledger.StartingCapital != 2500.5 {
			t.Errorf("Expected 2500.5, got %v", cfg.Ledger.StartingCapital)
		}
		if cfg.Extraction.Concurrency != 5 {
			t.Errorf("Expected concurrency 5, got %d", cfg.Extraction.Concurrency)
		}
		if cfg.Snapshot.Schedule != "" {
			t.Errorf("Expected empty schedule to disable snapshots, got %q", cfg.Snapshot.Schedule)
		}
	})

	invalid := map[string]string{
		"STARTING_CAPITAL":           "-10",
		"EXTRACTION_RATE_PER_MINUTE": "fast",
		"EXTRACTION_CONCURRENCY":     "0",
		"UPLOAD_MAX_BYTES":           "-1",
	}
	for key, value := range invalid {
		t.Run("rejects invalid "+key, func(t *testing.T) {
			t.Setenv(key, value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}

	for _, value := range []string{"NaN", "Inf", "-Inf"} {
		t.Run("rejects non-finite STARTING_CAPITAL "+value, func(t *testing.T) {
			t.Setenv("STARTING_CAPITAL", value)

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for STARTING_CAPITAL=%s", value)
			}
		})
	}
}
