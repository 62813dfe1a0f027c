package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

type RecordRepository struct {
	DB *pgxpool.Pool
}

func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{DB: db}
}

func (r *RecordRepository) Create(ctx context.Context, rec *models.ActivityRecord) error {
	fields, err := marshalFields(rec.Fields)
	if err != nil {
		return err
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO records(roller_id, activity, event_date, status, created_by_user_id, remarks, fields)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		rec.RollerID, rec.Activity, rec.Date, rec.Status, rec.CreatedByUserID, rec.Remarks, fields,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// Update rewrites the editable portion of a record. Approval columns are set
// explicitly so an edit can clear a previous approval.
func (r *RecordRepository) Update(ctx context.Context, rec *models.ActivityRecord) error {
	fields, err := marshalFields(rec.Fields)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`UPDATE records
         SET activity=$1, event_date=$2, status=$3, remarks=$4, fields=$5,
             approved_by=$6, approved_at=$7, approval_info=$8
         WHERE id=$9 AND roller_id=$10`,
		rec.Activity, rec.Date, rec.Status, rec.Remarks, fields,
		rec.ApprovedBy, rec.ApprovedAt, rec.ApprovalInfo, rec.ID, rec.RollerID)
	return err
}

// SetApproval resolves a pending record to Approved or Rejected.
func (r *RecordRepository) SetApproval(ctx context.Context, rollerID, recordID int, status string, approvedBy int, approvedAt time.Time, approvalInfo, remarks string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE records
         SET status=$1, approved_by=$2, approved_at=$3, approval_info=$4, remarks=$5
         WHERE id=$6 AND roller_id=$7`,
		status, approvedBy, approvedAt, approvalInfo, remarks, recordID, rollerID)
	return err
}

func (r *RecordRepository) Delete(ctx context.Context, rollerID, recordID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM records WHERE id=$1 AND roller_id=$2`, recordID, rollerID)
	return err
}

func (r *RecordRepository) Get(ctx context.Context, rollerID, recordID int) (*models.ActivityRecord, error) {
	row := r.DB.QueryRow(ctx, recordSelect+` WHERE id=$1 AND roller_id=$2`, recordID, rollerID)
	return scanRecord(row)
}

func (r *RecordRepository) ListByRoller(ctx context.Context, rollerID int) ([]*models.ActivityRecord, error) {
	rows, err := r.DB.Query(ctx, recordSelect+` WHERE roller_id=$1 ORDER BY created_at DESC`, rollerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ActivityRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const recordSelect = `SELECT id, roller_id, activity, event_date, status, created_by_user_id,
       approved_by, approved_at, approval_info, remarks, fields, created_at
         FROM records`

func scanRecord(row pgx.Row) (*models.ActivityRecord, error) {
	var rec models.ActivityRecord
	var fields []byte
	err := row.Scan(&rec.ID, &rec.RollerID, &rec.Activity, &rec.Date, &rec.Status,
		&rec.CreatedByUserID, &rec.ApprovedBy, &rec.ApprovedAt, &rec.ApprovalInfo,
		&rec.Remarks, &fields, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &rec.Fields); err != nil {
			return nil, err
		}
	}
	return &rec, nil
}

func marshalFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(fields)
}
