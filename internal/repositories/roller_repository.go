package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

type RollerRepository struct {
	DB *pgxpool.Pool
}

func NewRollerRepository(db *pgxpool.Pool) *RollerRepository {
	return &RollerRepository{DB: db}
}

func (r *RollerRepository) Create(ctx context.Context, roller *models.Roller) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO rollers(roller_number, make, design, position, line, status, current_status, created_by_user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, last_updated`,
		roller.RollerNumber, roller.Make, roller.Design, roller.Position, roller.Line,
		roller.Status, roller.CurrentStatus, roller.CreatedByUserID,
	).Scan(&roller.ID, &roller.CreatedAt, &roller.LastUpdated)
}

func (r *RollerRepository) Update(ctx context.Context, id int, req *models.UpdateRollerRequest) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rollers SET roller_number=$1, make=$2, design=$3, position=$4, line=$5, last_updated=now()
         WHERE id=$6`,
		req.RollerNumber, req.Make, req.Design, req.Position, req.Line, id)
	return err
}

// UpdateStatus moves the roller entity through its own approval workflow.
func (r *RollerRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rollers SET status=$1, last_updated=now() WHERE id=$2`, status, id)
	return err
}

// SetCurrentStatus records the activity type of the roller's latest record.
func (r *RollerRepository) SetCurrentStatus(ctx context.Context, id int, activity string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE rollers SET current_status=$1, last_updated=now() WHERE id=$2`, activity, id)
	return err
}

func (r *RollerRepository) Get(ctx context.Context, id int) (*models.Roller, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, roller_number, make, design, position, line, status, current_status,
                created_by_user_id, created_at, last_updated
         FROM rollers WHERE id=$1`, id)

	var roller models.Roller
	err := row.Scan(&roller.ID, &roller.RollerNumber, &roller.Make, &roller.Design,
		&roller.Position, &roller.Line, &roller.Status, &roller.CurrentStatus,
		&roller.CreatedByUserID, &roller.CreatedAt, &roller.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &roller, nil
}

func (r *RollerRepository) List(ctx context.Context) ([]*models.Roller, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, roller_number, make, design, position, line, status, current_status,
                created_by_user_id, created_at, last_updated
         FROM rollers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollers []*models.Roller
	for rows.Next() {
		var roller models.Roller
		err := rows.Scan(&roller.ID, &roller.RollerNumber, &roller.Make, &roller.Design,
			&roller.Position, &roller.Line, &roller.Status, &roller.CurrentStatus,
			&roller.CreatedByUserID, &roller.CreatedAt, &roller.LastUpdated)
		if err != nil {
			return nil, err
		}
		rollers = append(rollers, &roller)
	}
	return rollers, rows.Err()
}
