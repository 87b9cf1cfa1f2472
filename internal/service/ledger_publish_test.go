package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Trade-Journal-Backend/internal/database"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
)

// TestLedgerService_PublishAfterCancel tests that a committed mutation reaches
// subscribers even when the request that made it has gone away.
//
// WHY: The store has already changed; skipping the re-read would leave every view
// behind the store until the next write.
func TestLedgerService_PublishAfterCancel(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// Every new connection to :memory: is a fresh, empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	eventRepo := repository.NewEventRepository(db)
	ls := NewLedgerService(eventRepo)
	settings, err := NewSettingsService(repository.NewSettingRepository(db), 1000, "", "")
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	ds := NewDashboardService(ls, settings)
	if err := ds.Start(context.Background()); err != nil {
		t.Fatalf("Failed to start dashboard service: %v", err)
	}
	t.Cleanup(ds.Stop)

	event := model.NewDailySummary("2024-06-14", 50, 5, 1050)
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()
	if err := eventRepo.InsertEvent(context.Background(), &event); err != nil {
		t.Fatalf("Failed to insert event: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ls.publish(ctx)

	if got := len(ds.Events()); got != 1 {
		t.Fatalf("Expected dashboard to hold 1 event, got %d", got)
	}
	stats, err := ds.Stats(context.Background(), nil)
	if err != nil {
		t.Fatalf("Stats() returned unexpected error: %v", err)
	}
	if stats.CurrentBalance != 1050 {
		t.Errorf("Expected balance 1050, got %v", stats.CurrentBalance)
	}
}
