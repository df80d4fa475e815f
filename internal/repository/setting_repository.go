package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/salesflow/crm/internal/domain"
)

var settingColumns = []string{"key", "value", "created_at", "updated_at"}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository stores instance-wide key/value state in the settings table.
func NewSettingRepository(db *sql.DB) domain.SettingRepository {
	return &settingRepository{db: db}
}

func scanSetting(row interface{ Scan(...interface{}) error }) (*domain.Setting, error) {
	var s domain.Setting
	if err := row.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	query, args, err := psql.Select(settingColumns...).From("settings").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	setting, err := scanSetting(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrSettingNotFound{Key: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return setting, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	query, args, err := psql.Insert("settings").
		Columns(settingColumns...).
		Values(key, value, now, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

func (r *settingRepository) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete("settings").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.ErrSettingNotFound{Key: key}
	}
	return nil
}

func (r *settingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	query, args, err := psql.Select(settingColumns...).From("settings").OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := []*domain.Setting{}
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Checkpoints are stored as RFC3339Nano so they sort and diff as text.
func (r *settingRepository) SetTime(ctx context.Context, key string, t time.Time) error {
	return r.Set(ctx, key, t.UTC().Format(time.RFC3339Nano))
}

func (r *settingRepository) GetTime(ctx context.Context, key string) (*time.Time, error) {
	setting, err := r.Get(ctx, key)
	var missing *domain.ErrSettingNotFound
	if errors.As(err, &missing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, setting.Value)
	if err != nil {
		return nil, fmt.Errorf("setting %s is not a timestamp: %w", key, err)
	}
	return &ts, nil
}
