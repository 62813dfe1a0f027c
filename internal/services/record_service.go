package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/hirendodiya515/roller-management-system/internal/cache"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/repositories"
	"github.com/hirendodiya515/roller-management-system/internal/status"
	"github.com/hirendodiya515/roller-management-system/internal/ws"
)

type RecordService struct {
	Records *repositories.RecordRepository
	Rollers *repositories.RollerRepository
	Hub     *ws.Hub
	Clock   Clock
}

func NewRecordService(records *repositories.RecordRepository, rollers *repositories.RollerRepository, hub *ws.Hub) *RecordService {
	return &RecordService{Records: records, Rollers: rollers, Hub: hub, Clock: istClock{}}
}

// Create logs a new pending record and stamps the parent roller's
// current_status with the record's activity type.
func (s *RecordService) Create(ctx context.Context, rollerID int, req *models.CreateRecordRequest, userID int) (*models.ActivityRecord, error) {
	if req.Activity == "" {
		return nil, fmt.Errorf("activity is required")
	}
	if _, ok := status.ParseRecordDate(req.Date); !ok {
		return nil, fmt.Errorf("unrecognized date %q", req.Date)
	}

	rec := &models.ActivityRecord{
		RollerID:        rollerID,
		Activity:        req.Activity,
		Date:            req.Date,
		Status:          models.RecordStatusPending,
		CreatedByUserID: userID,
		Remarks:         req.Remarks,
		Fields:          req.Fields,
	}
	if err := s.Records.Create(ctx, rec); err != nil {
		return nil, err
	}

	// The new record is assumed to be the latest logged activity.
	if err := s.Rollers.SetCurrentStatus(ctx, rollerID, req.Activity); err != nil {
		return nil, err
	}

	s.invalidate(ctx, rollerID, "record_created")
	return rec, nil
}

// Update edits a record. A record that was already Approved or Rejected drops
// back to Pending and loses its approval so it must be re-approved.
func (s *RecordService) Update(ctx context.Context, rollerID, recordID int, req *models.CreateRecordRequest, userID int) (*models.ActivityRecord, error) {
	if _, ok := status.ParseRecordDate(req.Date); !ok {
		return nil, fmt.Errorf("unrecognized date %q", req.Date)
	}

	rec, err := s.Records.Get(ctx, rollerID, recordID)
	if err != nil {
		return nil, err
	}

	rec.Activity = req.Activity
	rec.Date = req.Date
	rec.Remarks = req.Remarks
	rec.Fields = req.Fields
	if rec.Status == models.RecordStatusApproved || rec.Status == models.RecordStatusRejected {
		rec.Status = models.RecordStatusPending
		rec.ApprovedBy = nil
		rec.ApprovedAt = nil
		rec.ApprovalInfo = ""
	}

	if err := s.Records.Update(ctx, rec); err != nil {
		return nil, err
	}
	if err := s.Rollers.SetCurrentStatus(ctx, rollerID, req.Activity); err != nil {
		return nil, err
	}

	s.invalidate(ctx, rollerID, "record_updated")
	return rec, nil
}

// SetApproval resolves a pending record. Remarks mirror the decision, and the
// approval info string records who decided and when.
func (s *RecordService) SetApproval(ctx context.Context, rollerID, recordID int, approved bool, approverID int) error {
	now := s.Clock.Now()
	recStatus := models.RecordStatusRejected
	remarks := "Rejected"
	if approved {
		recStatus = models.RecordStatusApproved
		remarks = "Approved via System"
	}
	info := fmt.Sprintf("%s by user %d on %s", recStatus, approverID, now.Format("02 Jan 2006 15:04"))

	if err := s.Records.SetApproval(ctx, rollerID, recordID, recStatus, approverID, now, info, remarks); err != nil {
		return err
	}
	s.invalidate(ctx, rollerID, "record_approval")
	return nil
}

func (s *RecordService) Delete(ctx context.Context, rollerID, recordID int) error {
	if err := s.Records.Delete(ctx, rollerID, recordID); err != nil {
		return err
	}
	s.invalidate(ctx, rollerID, "record_deleted")
	return nil
}

func (s *RecordService) List(ctx context.Context, rollerID int) ([]*models.ActivityRecord, error) {
	return s.Records.ListByRoller(ctx, rollerID)
}

// Status derives the roller's lifecycle label from its full record history.
func (s *RecordService) Status(ctx context.Context, rollerID int) (status.Derived, error) {
	records, err := s.Records.ListByRoller(ctx, rollerID)
	if err != nil {
		return status.Derived{}, err
	}
	return status.Derive(records), nil
}

// Stats aggregates per-activity total and approved counts for the detail page.
func (s *RecordService) Stats(ctx context.Context, rollerID int) ([]models.ActivityStat, error) {
	records, err := s.Records.ListByRoller(ctx, rollerID)
	if err != nil {
		return nil, err
	}

	byActivity := make(map[string]*models.ActivityStat)
	for _, r := range records {
		stat, ok := byActivity[r.Activity]
		if !ok {
			stat = &models.ActivityStat{Activity: r.Activity}
			byActivity[r.Activity] = stat
		}
		stat.Total++
		if r.Status == models.RecordStatusApproved {
			stat.Approved++
		}
	}

	stats := make([]models.ActivityStat, 0, len(byActivity))
	for _, stat := range byActivity {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Activity < stats[j].Activity })
	return stats, nil
}

func (s *RecordService) invalidate(ctx context.Context, rollerID int, event string) {
	cache.InvalidateRollerStatus(ctx, rollerID)
	if s.Hub != nil {
		s.Hub.Broadcast(ws.Event{Type: event, RollerID: rollerID})
	}
}
