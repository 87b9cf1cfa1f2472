package database

import (
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
)

func TestOpenAndMigrate(t *testing.T) {
	goose.SetLogger(goose.NopLogger())
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() returned unexpected error: %v", err)
	}
	// A second run has nothing to apply.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() returned unexpected error: %v", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() returned unexpected error: %v", err)
	}
	if version != 3 {
		t.Errorf("Expected schema version 3, got %d", version)
	}

	for _, table := range []string{"ledger_event", "system_setting", "stats_snapshot"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s: %v", table, err)
		}
	}

	if err := HealthCheck(db); err != nil {
		t.Errorf("HealthCheck() returned unexpected error: %v", err)
	}
}
