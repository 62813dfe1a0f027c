package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

type FormConfigRepository struct {
	DB *pgxpool.Pool
}

func NewFormConfigRepository(db *pgxpool.Pool) *FormConfigRepository {
	return &FormConfigRepository{DB: db}
}

// Get returns the saved form definition for an activity type, or nil when
// none has been saved (callers fall back to the default field set).
func (r *FormConfigRepository) Get(ctx context.Context, activity string) (*models.FormConfig, error) {
	var raw []byte
	err := r.DB.QueryRow(ctx,
		`SELECT fields FROM form_configs WHERE activity=$1`, activity).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := models.FormConfig{Activity: activity}
	if err := json.Unmarshal(raw, &cfg.Fields); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *FormConfigRepository) Upsert(ctx context.Context, cfg *models.FormConfig) error {
	raw, err := json.Marshal(cfg.Fields)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO form_configs(activity, fields, updated_at)
         VALUES($1, $2, now())
         ON CONFLICT (activity) DO UPDATE SET fields=EXCLUDED.fields, updated_at=now()`,
		cfg.Activity, raw)
	return err
}
