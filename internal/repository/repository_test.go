package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trade-Journal-Backend/internal/testutil"
)

// TestEventRepository_ListEventsOrderedByDate tests store ordering.
//
// WHY: Within a date the latest inserted summary wins, so the store must return
// events by date and then by insertion, never by id or arbitrary row order.
func TestEventRepository_ListEventsOrderedByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when no events exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)

		events, err := repo.ListEventsOrderedByDate(ctx)
		if err != nil {
			t.Fatalf("ListEventsOrderedByDate() returned unexpected error: %v", err)
		}
		if events == nil || len(events) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", events)
		}
	})

	t.Run("orders by date then insertion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)
		base := time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)

		// Inserted out of order on purpose.
		c := testutil.NewSummary().WithID("cccccccc-0000-0000-0000-000000000000").WithDate("2024-06-14").WithCreatedAt(base.Add(2 * time.Millisecond)).Build(t, db)
		a := testutil.NewConfirmation().WithID("ffffffff-0000-0000-0000-000000000000").WithDate("2024-06-14").WithCreatedAt(base).Build(t, db)
		b := testutil.NewConfirmation().WithID("00000000-0000-0000-0000-000000000000").WithDate("2024-06-14").WithCreatedAt(base.Add(time.Millisecond)).Build(t, db)
		first := testutil.NewSummary().WithDate("2024-06-13").WithCreatedAt(base.Add(time.Hour)).Build(t, db)

		events, err := repo.ListEventsOrderedByDate(ctx)
		if err != nil {
			t.Fatalf("ListEventsOrderedByDate() returned unexpected error: %v", err)
		}

		want := []string{first.ID, a.ID, b.ID, c.ID}
		if len(events) != len(want) {
			t.Fatalf("Expected %d events, got %d", len(want), len(events))
		}
		for i, id := range want {
			if events[i].ID != id {
				t.Errorf("Position %d: expected %s, got %s", i, id, events[i].ID)
			}
		}
	})

	t.Run("round-trips every field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)
		createdAt := time.Date(2024, 6, 14, 15, 59, 59, 123456789, time.UTC)

		want := testutil.NewConfirmation().
			WithDate("2024-06-14").
			WithTicker("TSLA").
			WithTrade(250.25, 240.5).
			WithChange(-9.75, -3.9).
			WithCreatedAt(createdAt).
			Build(t, db)

		got, err := repo.GetEvent(ctx, want.ID)
		if err != nil {
			t.Fatalf("GetEvent() returned unexpected error: %v", err)
		}
		if got.Date != want.Date || got.Type != want.Type || got.Ticker != want.Ticker {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
		if got.CostAtOpen != 250.25 || got.CreditAtClose != 240.5 || got.ChangeValue != -9.75 || got.ChangePercentage != -3.9 {
			t.Errorf("Unexpected amounts %+v", got)
		}
		if !got.CreatedAt.Equal(createdAt) {
			t.Errorf("Expected createdAt %v, got %v", createdAt, got.CreatedAt)
		}
	})
}

func TestEventRepository_GetAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrEventNotFound for unknown id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)

		if _, err := repo.GetEvent(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Errorf("Expected ErrEventNotFound, got %v", err)
		}
		if err := repo.DeleteEvent(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrEventNotFound) {
			t.Errorf("Expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("deletes only the given event", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)
		keep := testutil.NewConfirmation().Build(t, db)
		drop := testutil.NewConfirmation().Build(t, db)

		if err := repo.DeleteEvent(ctx, drop.ID); err != nil {
			t.Fatalf("DeleteEvent() returned unexpected error: %v", err)
		}

		events, err := repo.ListEventsOrderedByDate(ctx)
		if err != nil {
			t.Fatalf("ListEventsOrderedByDate() returned unexpected error: %v", err)
		}
		if len(events) != 1 || events[0].ID != keep.ID {
			t.Errorf("Expected only %s, got %+v", keep.ID, events)
		}
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewEventRepository(db)

		e := testutil.NewConfirmation().Event()
		e.Type = model.EventType("DIVIDEND")
		if err := repo.InsertEvent(ctx, &e); err == nil {
			t.Error("Expected the type check constraint to reject the event")
		}
	})
}

func TestSettingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrSettingNotFound for missing key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if _, err := repo.GetSetting(ctx, model.SettingStartingCapital); !errors.Is(err, apperrors.ErrSettingNotFound) {
			t.Errorf("Expected ErrSettingNotFound, got %v", err)
		}
	})

	t.Run("upserts by key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingRepository(db)

		if err := repo.SetSetting(ctx, model.SettingStartingCapital, "100"); err != nil {
			t.Fatalf("SetSetting() returned unexpected error: %v", err)
		}
		if err := repo.SetSetting(ctx, model.SettingStartingCapital, "200"); err != nil {
			t.Fatalf("SetSetting() returned unexpected error: %v", err)
		}

		s, err := repo.GetSetting(ctx, model.SettingStartingCapital)
		if err != nil {
			t.Fatalf("GetSetting() returned unexpected error: %v", err)
		}
		if s.Value != "200" || s.UpdatedAt.IsZero() {
			t.Errorf("Expected value 200 with updatedAt, got %+v", s)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM system_setting`).Scan(&count); err != nil {
			t.Fatalf("Failed to count settings: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 row after upsert, got %d", count)
		}
	})
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	base := time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		s := &model.StatsSnapshot{
			ID:             testutil.MakeID(),
			TakenAt:        base.AddDate(0, 0, i),
			CurrentBalance: float64(1000 + i),
			TradingDays:    i,
		}
		if err := repo.InsertSnapshot(ctx, s); err != nil {
			t.Fatalf("InsertSnapshot() returned unexpected error: %v", err)
		}
	}

	list, err := repo.ListSnapshots(ctx, 2)
	if err != nil {
		t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(list))
	}
	if list[0].CurrentBalance != 1002 || list[1].CurrentBalance != 1001 {
		t.Errorf("Expected newest first, got %v then %v", list[0].CurrentBalance, list[1].CurrentBalance)
	}
	if !list[0].TakenAt.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("Unexpected takenAt %v", list[0].TakenAt)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-06-14", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), false},
		{"2024-06-14T10:00:00.5Z", time.Date(2024, 6, 14, 10, 0, 0, 500000000, time.UTC), false},
		{"2024-06-14T12:00:00+02:00", time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC), false},
		{"14/06/2024", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := repository.ParseTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
