package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

// CooldownRepository is the alert cooldown ledger: one row per
// (roller, status) pair recording when the last notification went out.
type CooldownRepository struct {
	DB *pgxpool.Pool
}

func NewCooldownRepository(db *pgxpool.Pool) *CooldownRepository {
	return &CooldownRepository{DB: db}
}

// TryAcquire reports whether a notification may be sent for the pair and, when
// it may, stamps last_sent in the same statement. The conditional upsert keeps
// check-then-write atomic per key, so concurrent callers cannot both pass
// within one window.
func (r *CooldownRepository) TryAcquire(ctx context.Context, rollerID int, status string, now time.Time, window time.Duration) (bool, error) {
	cutoff := now.Add(-window)
	var lastSent time.Time
	err := r.DB.QueryRow(ctx,
		`INSERT INTO roller_alerts(roller_id, status, last_sent)
         VALUES($1, $2, $3)
         ON CONFLICT (roller_id, status) DO UPDATE SET last_sent=EXCLUDED.last_sent
         WHERE roller_alerts.last_sent <= $4
         RETURNING last_sent`,
		rollerID, status, now, cutoff,
	).Scan(&lastSent)
	if errors.Is(err, pgx.ErrNoRows) {
		// Row exists and is still inside the window.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *CooldownRepository) Get(ctx context.Context, rollerID int, status string) (*models.AlertCooldown, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT roller_id, status, last_sent FROM roller_alerts WHERE roller_id=$1 AND status=$2`,
		rollerID, status)

	var cd models.AlertCooldown
	err := row.Scan(&cd.RollerID, &cd.Status, &cd.LastSent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cd, nil
}
