package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get returns the raw JSON value for a settings document, or nil when the
// document does not exist. Absence is not an error: callers treat a missing
// document as "feature disabled".
func (r *SettingRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var value []byte
	err := r.DB.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, key string, value json.RawMessage, userID int) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO settings(key, value, updated_by, updated_at)
         VALUES($1, $2, $3, now())
         ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_by=EXCLUDED.updated_by, updated_at=now()`,
		key, value, userID)
	return err
}

// AlertConfig loads the 'alerts' document. Returns (nil, nil) when absent.
func (r *SettingRepository) AlertConfig(ctx context.Context) (*models.AlertConfig, error) {
	raw, err := r.Get(ctx, models.SettingAlerts)
	if err != nil || raw == nil {
		return nil, err
	}
	var cfg models.AlertConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NotificationConfig loads the 'emailjs' document. Returns (nil, nil) when absent.
func (r *SettingRepository) NotificationConfig(ctx context.Context) (*models.NotificationConfig, error) {
	raw, err := r.Get(ctx, models.SettingEmailJS)
	if err != nil || raw == nil {
		return nil, err
	}
	var cfg models.NotificationConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
