package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kriyahr/workforce-backend-go/internal/domain/setting"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type settingRepository struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepository{db: db}
}

// GetByKey implements setting.SettingRepository.
func (s *settingRepository) GetByKey(ctx context.Context, key string) (setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT key, value, value_type, updated_by, updated_at
		FROM settings
		WHERE key = $1
	`

	var entry setting.Setting
	err := q.QueryRow(ctx, query, key).Scan(
		&entry.Key, &entry.Value, &entry.Type, &entry.UpdatedBy, &entry.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return setting.Setting{}, setting.ErrSettingNotFound
		}
		return setting.Setting{}, fmt.Errorf("failed to get setting by key: %w", err)
	}

	return entry, nil
}

// List implements setting.SettingRepository.
func (s *settingRepository) List(ctx context.Context) ([]setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT key, value, value_type, updated_by, updated_at
		FROM settings
		ORDER BY key
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []setting.Setting
	for rows.Next() {
		var entry setting.Setting
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.Type, &entry.UpdatedBy, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, entry)
	}

	return settings, rows.Err()
}

// Upsert implements setting.SettingRepository.
func (s *settingRepository) Upsert(ctx context.Context, entry setting.Setting) (setting.Setting, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO settings (key, value, value_type, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			value_type = EXCLUDED.value_type,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING key, value, value_type, updated_by, updated_at
	`

	var saved setting.Setting
	err := q.QueryRow(ctx, query, entry.Key, entry.Value, entry.Type, entry.UpdatedBy).Scan(
		&saved.Key, &saved.Value, &saved.Type, &saved.UpdatedBy, &saved.UpdatedAt,
	)
	if err != nil {
		return setting.Setting{}, fmt.Errorf("failed to upsert setting: %w", err)
	}

	return saved, nil
}

// Delete implements setting.SettingRepository.
func (s *settingRepository) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, s.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return setting.ErrSettingNotFound
	}

	return nil
}
