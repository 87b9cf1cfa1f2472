package testutil

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ndewijer/Trade-Journal-Backend/internal/extraction"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
)

// NewTestSystemService creates a SystemService backed by db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// NewTestLedgerService creates a LedgerService backed by db.
func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(repository.NewEventRepository(db))
}

// NewTestSettingsService creates a SettingsService with the given default starting
// capital and no environment key. encryptionKey may be empty.
func NewTestSettingsService(t *testing.T, db *sql.DB, startingCapital float64, encryptionKey string) *service.SettingsService {
	t.Helper()

	s, err := service.NewSettingsService(repository.NewSettingRepository(db), startingCapital, "", encryptionKey)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return s
}

// NewTestDashboardService creates and starts a DashboardService over ledger.
// It is stopped when the test completes.
func NewTestDashboardService(t *testing.T, db *sql.DB, ledger *service.LedgerService, startingCapital float64) *service.DashboardService {
	t.Helper()

	ds := service.NewDashboardService(ledger, NewTestSettingsService(t, db, startingCapital, ""))
	if err := ds.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start dashboard service: %v", err)
	}
	t.Cleanup(ds.Stop)
	return ds
}

// NewTestSnapshotService creates a SnapshotService over a started dashboard.
func NewTestSnapshotService(t *testing.T, db *sql.DB, dashboard *service.DashboardService) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(repository.NewSnapshotRepository(db), dashboard)
}

// NewTestUploadService creates an UploadService that extracts with client.
func NewTestUploadService(t *testing.T, ledger *service.LedgerService, client extraction.Client) *service.UploadService {
	t.Helper()

	return service.NewUploadService(client, ledger, 2)
}

// NewEncryptionKey generates a fresh base64 fernet key.
func NewEncryptionKey(t *testing.T) string {
	t.Helper()

	var k fernet.Key
	if err := k.Generate(); err != nil {
		t.Fatalf("Failed to generate encryption key: %v", err)
	}
	return k.Encode()
}

func MakeID() string {
	return uuid.New().String()
}

// MakeTicker returns a random four-letter ticker.
func MakeTicker() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 4)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))] //nolint:gosec // Test data, not security sensitive
	}
	return string(b)
}
