package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// EventRepository provides data access methods for the ledger_event table.
// It is the event store: insert, list ordered by date, get and delete by id. Events are never updated.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository with the provided database connection.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `
	id, date, type, ticker, cost_at_open, credit_at_close,
	change_value, change_percentage, end_of_day_balance, created_at
`

// InsertEvent stores a new ledger event. ID and CreatedAt must already be set.
func (r *EventRepository) InsertEvent(ctx context.Context, e *model.LedgerEvent) error {
	query := `
		INSERT INTO ledger_event (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Date,
		string(e.Type),
		e.Ticker,
		e.CostAtOpen,
		e.CreditAtClose,
		e.ChangeValue,
		e.ChangePercentage,
		e.EndOfDayBalance,
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger event: %w", err)
	}
	return nil
}

// ListEventsOrderedByDate returns every event ascending by date.
// Events sharing a date come back in insertion order, which the aggregation
// engine relies on to pick the latest summary of a day.
func (r *EventRepository) ListEventsOrderedByDate(ctx context.Context) ([]model.LedgerEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM ledger_event
		ORDER BY date ASC, created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger_event table: %w", err)
	}
	defer rows.Close()

	events := []model.LedgerEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger_event table: %w", err)
	}

	return events, nil
}

// GetEvent returns the event with the given id, or apperrors.ErrEventNotFound.
func (r *EventRepository) GetEvent(ctx context.Context, id string) (model.LedgerEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM ledger_event
		WHERE id = ?
	`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.LedgerEvent{}, apperrors.ErrEventNotFound
	}
	if err != nil {
		return model.LedgerEvent{}, err
	}
	return e, nil
}

// DeleteEvent removes the event with the given id.
// Returns apperrors.ErrEventNotFound when no row was deleted.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ledger_event WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ledger event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (model.LedgerEvent, error) {
	var e model.LedgerEvent
	var dateStr, typeStr, createdAtStr string

	err := row.Scan(
		&e.ID,
		&dateStr,
		&typeStr,
		&e.Ticker,
		&e.CostAtOpen,
		&e.CreditAtClose,
		&e.ChangeValue,
		&e.ChangePercentage,
		&e.EndOfDayBalance,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("failed to scan ledger_event table results: %w", err)
	}

	e.Type = model.EventType(typeStr)

	e.Date, err = normalizeDate(dateStr)
	if err != nil {
		return e, err
	}

	e.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return e, err
	}

	return e, nil
}
