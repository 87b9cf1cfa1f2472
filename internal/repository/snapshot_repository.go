package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the stats_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// InsertSnapshot stores a stats snapshot.
func (r *SnapshotRepository) InsertSnapshot(ctx context.Context, s *model.StatsSnapshot) error {
	query := `
		INSERT INTO stats_snapshot (
			id, taken_at, starting_capital, total_realized_pnl,
			current_balance, win_rate, trading_days, event_count
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		formatTimestamp(s.TakenAt),
		s.StartingCapital,
		s.TotalRealizedPnl,
		s.CurrentBalance,
		s.WinRate,
		s.TradingDays,
		s.EventCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stats snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the most recent snapshots first, at most limit rows.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, limit int) ([]model.StatsSnapshot, error) {
	query := `
		SELECT id, taken_at, starting_capital, total_realized_pnl,
			current_balance, win_rate, trading_days, event_count
		FROM stats_snapshot
		ORDER BY taken_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.StatsSnapshot{}
	for rows.Next() {
		var s model.StatsSnapshot
		var takenAtStr string

		err := rows.Scan(
			&s.ID,
			&takenAtStr,
			&s.StartingCapital,
			&s.TotalRealizedPnl,
			&s.CurrentBalance,
			&s.WinRate,
			&s.TradingDays,
			&s.EventCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats_snapshot table results: %w", err)
		}

		s.TakenAt, err = ParseTime(takenAtStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats_snapshot table: %w", err)
	}

	return snapshots, nil
}
