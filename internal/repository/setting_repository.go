package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// SettingRepository provides data access methods for the system_setting key/value table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting returns the setting stored under key, or apperrors.ErrSettingNotFound.
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (model.Setting, error) {
	query := `
		SELECT id, "key", value, updated_at
		FROM system_setting
		WHERE "key" = ?
	`

	var s model.Setting
	var updatedAt sql.NullString
	err := r.db.QueryRowContext(ctx, query, key).Scan(&s.ID, &s.Key, &s.Value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query system_setting table: %w", err)
	}

	if updatedAt.Valid {
		s.UpdatedAt, err = ParseTime(updatedAt.String)
		if err != nil {
			return model.Setting{}, err
		}
	}

	return s, nil
}

// SetSetting inserts or replaces the value stored under key.
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, uuid.New().String(), key, value, formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
