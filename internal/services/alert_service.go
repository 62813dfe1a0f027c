package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hirendodiya515/roller-management-system/internal/email"
	"github.com/hirendodiya515/roller-management-system/internal/metrics"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/status"
	"github.com/hirendodiya515/roller-management-system/internal/timeutil"
)

// Alert reasons, one per delay rule.
const (
	ReasonSendDelay    = "Delayed in send roller to vendor"
	ReasonReceiveDelay = "Delayed in receive roller from vendor"
)

// CooldownWindow is the minimum gap between repeat alerts for one
// (roller, status) pair.
const CooldownWindow = 7 * 24 * time.Hour

// perRollerTimeout bounds one roller's record fetch so a stuck call cannot
// stall the whole sweep.
const perRollerTimeout = 30 * time.Second

// defaultContact is the reply-to address and the recipient fallback when no
// recipients are configured.
const defaultContact = "hiren.dodiya@borosil.com"

// Clock supplies the sweep's notion of now.
type Clock interface {
	Now() time.Time
}

type istClock struct{}

func (istClock) Now() time.Time { return timeutil.Now() }

// RollerLister enumerates all rollers.
type RollerLister interface {
	List(ctx context.Context) ([]*models.Roller, error)
}

// RecordLister fetches all activity records of one roller.
type RecordLister interface {
	ListByRoller(ctx context.Context, rollerID int) ([]*models.ActivityRecord, error)
}

// ConfigSource loads the global alert and notification settings documents.
// A missing document is (nil, nil).
type ConfigSource interface {
	AlertConfig(ctx context.Context) (*models.AlertConfig, error)
	NotificationConfig(ctx context.Context) (*models.NotificationConfig, error)
}

// CooldownLedger rate-limits repeat alerts per (roller, status) pair.
// TryAcquire must atomically check the window and stamp the ledger.
type CooldownLedger interface {
	TryAcquire(ctx context.Context, rollerID int, status string, now time.Time, window time.Duration) (bool, error)
}

// SweepResult summarizes one sweep. AlertsSent counts dispatch attempts, not
// confirmed deliveries; transport failures are logged.
type SweepResult struct {
	Checked    int `json:"checked"`
	AlertsSent int `json:"alertsSent"`
}

// AlertService runs the daily delay-alert sweep.
type AlertService struct {
	Settings  ConfigSource
	Rollers   RollerLister
	Records   RecordLister
	Cooldowns CooldownLedger
	Emailer   email.Emailer
	Clock     Clock
}

func NewAlertService(settings ConfigSource, rollers RollerLister, records RecordLister, cooldowns CooldownLedger, emailer email.Emailer) *AlertService {
	return &AlertService{
		Settings:  settings,
		Rollers:   rollers,
		Records:   records,
		Cooldowns: cooldowns,
		Emailer:   emailer,
		Clock:     istClock{},
	}
}

// RunSweep checks every roller against the configured delay thresholds and
// sends at most one notification per (roller, status) pair per cooldown
// window. One roller's failure never aborts the sweep; a failure loading the
// global configuration does.
func (s *AlertService) RunSweep(ctx context.Context) (SweepResult, error) {
	cfg, err := s.Settings.AlertConfig(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("load alert config: %w", err)
	}
	if cfg == nil {
		log.Printf("[AlertSweep] No alert configuration found")
		return SweepResult{}, nil
	}

	notify, err := s.Settings.NotificationConfig(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("load notification config: %w", err)
	}
	if notify == nil || !notify.Complete() {
		log.Printf("[AlertSweep] EmailJS configuration is missing or incomplete")
		return SweepResult{}, nil
	}

	rollers, err := s.Rollers.List(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list rollers: %w", err)
	}

	result := SweepResult{Checked: len(rollers)}
	for _, roller := range rollers {
		if err := s.checkRoller(ctx, cfg, notify, roller, &result); err != nil {
			log.Printf("[AlertSweep] Error processing roller %d (%s): %v", roller.ID, roller.RollerNumber, err)
		}
	}

	metrics.AlertSweepsTotal.Inc()
	metrics.AlertsSentTotal.Add(float64(result.AlertsSent))
	log.Printf("[AlertSweep] Complete: %d rollers checked, %d alerts sent", result.Checked, result.AlertsSent)
	return result, nil
}

func (s *AlertService) checkRoller(ctx context.Context, cfg *models.AlertConfig, notify *models.NotificationConfig, roller *models.Roller, result *SweepResult) error {
	fetchCtx, cancel := context.WithTimeout(ctx, perRollerTimeout)
	defer cancel()

	records, err := s.Records.ListByRoller(fetchCtx, roller.ID)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}

	// The alert asks "how long has the roller sat in the state implied by its
	// last logged activity", so only approved records of that same activity
	// type count.
	latest := latestMatching(records, roller.CurrentStatus)
	if latest == nil {
		return nil
	}
	recordDate, ok := status.ParseRecordDate(latest.Date)
	if !ok {
		return nil
	}

	diffDays := status.DiffDays(s.Clock.Now(), recordDate)

	if cfg.ProductionEndDelay.Enabled &&
		roller.CurrentStatus == models.ActivityProductionEnd &&
		diffDays > cfg.ProductionEndDelay.Days {
		s.fire(ctx, notify, roller, recordDate, diffDays, ReasonSendDelay, result)
	}

	if cfg.RollerSentDelay.Enabled &&
		roller.CurrentStatus == models.ActivityRollerSent &&
		diffDays > cfg.RollerSentDelay.Days {
		s.fire(ctx, notify, roller, recordDate, diffDays, ReasonReceiveDelay, result)
	}

	return nil
}

// fire sends one notification if the cooldown window allows it. The ledger is
// stamped as soon as the window check passes, independent of whether the
// transport succeeds.
func (s *AlertService) fire(ctx context.Context, notify *models.NotificationConfig, roller *models.Roller, recordDate time.Time, diffDays int, reason string, result *SweepResult) {
	acquired, err := s.Cooldowns.TryAcquire(ctx, roller.ID, roller.CurrentStatus, s.Clock.Now(), CooldownWindow)
	if err != nil {
		// Fail open: a ledger read failure must not silence a real delay.
		log.Printf("[AlertSweep] Could not check cooldown ledger for roller %d: %v", roller.ID, err)
		acquired = true
	}
	if !acquired {
		return
	}

	body, err := email.RenderAlertBody(email.AlertBodyData{
		RollerNumber:  roller.RollerNumber,
		Reason:        reason,
		CurrentStatus: roller.CurrentStatus,
		Line:          roller.Line,
		Position:      roller.Position,
		RecordDate:    recordDate.Format("02/01/2006"),
		OverdueDays:   diffDays,
	})
	if err != nil {
		log.Printf("[AlertSweep] Failed to render alert body for roller %d: %v", roller.ID, err)
		return
	}

	recipients := notify.Recipients()
	if len(recipients) == 0 {
		recipients = []string{defaultContact}
	}

	params := email.Params{
		Title:   fmt.Sprintf("%s - Roller %s", reason, roller.RollerNumber),
		Message: body,
		Name:    "Roller Alert System",
		Email:   defaultContact,
		ToEmail: strings.Join(recipients, "; "),
	}

	if err := s.Emailer.Send(ctx, notify, params); err != nil {
		log.Printf("[AlertSweep] Error sending email for roller %d: %v", roller.ID, err)
	} else {
		log.Printf("[AlertSweep] Email sent for roller %s to: %s", roller.RollerNumber, params.ToEmail)
	}
	result.AlertsSent++
}

// latestMatching selects the newest approved record whose activity equals the
// roller's recorded current status. Records with unparseable dates are
// excluded; equal dates tie-break on the higher record ID.
func latestMatching(records []*models.ActivityRecord, activity string) *models.ActivityRecord {
	var best *models.ActivityRecord
	var bestDate time.Time

	for _, r := range records {
		if r.Status != models.RecordStatusApproved || r.Activity != activity {
			continue
		}
		d, ok := status.ParseRecordDate(r.Date)
		if !ok {
			continue
		}
		if best == nil || d.After(bestDate) || (d.Equal(bestDate) && r.ID > best.ID) {
			best = r
			bestDate = d
		}
	}
	return best
}
