package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirendodiya515/roller-management-system/internal/email"
	"github.com/hirendodiya515/roller-management-system/internal/models"
)

// --- fakes ---

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSettings struct {
	alerts    *models.AlertConfig
	notify    *models.NotificationConfig
	alertsErr error
	notifyErr error
}

func (f *fakeSettings) AlertConfig(ctx context.Context) (*models.AlertConfig, error) {
	return f.alerts, f.alertsErr
}

func (f *fakeSettings) NotificationConfig(ctx context.Context) (*models.NotificationConfig, error) {
	return f.notify, f.notifyErr
}

type fakeRollers struct {
	rollers []*models.Roller
	err     error
}

func (f *fakeRollers) List(ctx context.Context) ([]*models.Roller, error) {
	return f.rollers, f.err
}

type fakeRecords struct {
	byRoller map[int][]*models.ActivityRecord
	errFor   map[int]error
}

func (f *fakeRecords) ListByRoller(ctx context.Context, rollerID int) ([]*models.ActivityRecord, error) {
	if err := f.errFor[rollerID]; err != nil {
		return nil, err
	}
	return f.byRoller[rollerID], nil
}

// fakeCooldowns mirrors the conditional-upsert semantics of the real ledger.
type fakeCooldowns struct {
	mu       sync.Mutex
	lastSent map[string]time.Time
	err      error
}

func newFakeCooldowns() *fakeCooldowns {
	return &fakeCooldowns{lastSent: make(map[string]time.Time)}
}

func (f *fakeCooldowns) TryAcquire(ctx context.Context, rollerID int, status string, now time.Time, window time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%d|%s", rollerID, status)
	if last, ok := f.lastSent[key]; ok && now.Sub(last) < window {
		return false, nil
	}
	f.lastSent[key] = now
	return true, nil
}

type fakeEmailer struct {
	mu   sync.Mutex
	sent []email.Params
	err  error
}

func (f *fakeEmailer) Send(ctx context.Context, cfg *models.NotificationConfig, params email.Params) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	return f.err
}

// --- fixtures ---

var sweepNow = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

func enabledAlertConfig() *models.AlertConfig {
	return &models.AlertConfig{
		ProductionEndDelay: models.DelayRule{Enabled: true, Days: 5},
		RollerSentDelay:    models.DelayRule{Enabled: true, Days: 10},
	}
}

func completeNotifyConfig() *models.NotificationConfig {
	return &models.NotificationConfig{
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pk_z",
		ToEmails:   "plant@example.com",
	}
}

func rollerInStatus(id int, number, currentStatus string) *models.Roller {
	return &models.Roller{
		ID:            id,
		RollerNumber:  number,
		Line:          "SG#1",
		Position:      models.PositionTop,
		Status:        models.RollerStatusApproved,
		CurrentStatus: currentStatus,
	}
}

func approvedRecord(id, rollerID int, activity, date string) *models.ActivityRecord {
	return &models.ActivityRecord{
		ID:       id,
		RollerID: rollerID,
		Activity: activity,
		Date:     date,
		Status:   models.RecordStatusApproved,
	}
}

func newSweepService(settings *fakeSettings, rollers *fakeRollers, records *fakeRecords, cooldowns *fakeCooldowns, emailer *fakeEmailer) *AlertService {
	svc := NewAlertService(settings, rollers, records, cooldowns, emailer)
	svc.Clock = fixedClock{now: sweepNow}
	return svc
}

// --- tests ---

func TestRunSweep_NoAlertConfig(t *testing.T) {
	svc := newSweepService(&fakeSettings{}, &fakeRollers{}, &fakeRecords{}, newFakeCooldowns(), &fakeEmailer{})

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
}

func TestRunSweep_IncompleteNotifyConfig(t *testing.T) {
	settings := &fakeSettings{
		alerts: enabledAlertConfig(),
		notify: &models.NotificationConfig{ServiceID: "service_x"}, // no template or key
	}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}, &fakeRecords{}, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
	assert.Empty(t, emailer.sent)
}

func TestRunSweep_ConfigLoadErrorAborts(t *testing.T) {
	settings := &fakeSettings{alertsErr: errors.New("db down")}
	svc := newSweepService(settings, &fakeRollers{}, &fakeRecords{}, newFakeCooldowns(), &fakeEmailer{})

	_, err := svc.RunSweep(context.Background())
	require.Error(t, err)
}

func TestRunSweep_ProductionEndDelayFires(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		// 2024-03-10 → 10 days before sweepNow, over the 5 day threshold.
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-10")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 1, AlertsSent: 1}, result)

	require.Len(t, emailer.sent, 1)
	sent := emailer.sent[0]
	assert.Contains(t, sent.Title, ReasonSendDelay)
	assert.Contains(t, sent.Title, "R-001")
	assert.Contains(t, sent.Message, "10/03/2024")
	assert.Equal(t, "plant@example.com", sent.ToEmail)
}

func TestRunSweep_RollerSentDelayFires(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(2, "R-002", models.ActivityRollerSent)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		2: {approvedRecord(21, 2, models.ActivityRollerSent, "2024-03-01")}, // 19 days > 10
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)
	require.Len(t, emailer.sent, 1)
	assert.Contains(t, emailer.sent[0].Title, ReasonReceiveDelay)
}

func TestRunSweep_WithinThresholdStaysQuiet(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		// Exactly at the threshold (5 days): diffDays > days is false.
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-15")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 1, AlertsSent: 0}, result)
	assert.Empty(t, emailer.sent)
}

func TestRunSweep_DisabledRuleStaysQuiet(t *testing.T) {
	settings := &fakeSettings{
		alerts: &models.AlertConfig{
			ProductionEndDelay: models.DelayRule{Enabled: false, Days: 5},
			RollerSentDelay:    models.DelayRule{Enabled: true, Days: 10},
		},
		notify: completeNotifyConfig(),
	}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-02-01")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.AlertsSent)
}

func TestRunSweep_StatusMismatchStaysQuiet(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	// Roller sits in Production End, but its only approved record is for a
	// different activity: nothing to measure the delay against.
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionStart, "2024-02-01")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.AlertsSent)
}

func TestRunSweep_PendingRecordsIgnored(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	pending := approvedRecord(11, 1, models.ActivityProductionEnd, "2024-02-01")
	pending.Status = models.RecordStatusPending
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{1: {pending}}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.AlertsSent)
}

func TestRunSweep_UnparseableDateSkipsRoller(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "whenever")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.AlertsSent)
}

func TestRunSweep_CooldownSuppressesRepeat(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01")},
	}}
	emailer := &fakeEmailer{}
	cooldowns := newFakeCooldowns()
	svc := newSweepService(settings, rollers, records, cooldowns, emailer)

	first, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsSent)

	// Next day: still delayed, but inside the 7-day window.
	svc.Clock = fixedClock{now: sweepNow.Add(24 * time.Hour)}
	second, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.AlertsSent)

	// Past the window the alert repeats.
	svc.Clock = fixedClock{now: sweepNow.Add(8 * 24 * time.Hour)}
	third, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, third.AlertsSent)
	assert.Len(t, emailer.sent, 2)
}

func TestRunSweep_CooldownIsPerStatus(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	roller := rollerInStatus(1, "R-001", models.ActivityProductionEnd)
	rollers := &fakeRollers{rollers: []*models.Roller{roller}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {
			approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01"),
			approvedRecord(12, 1, models.ActivityRollerSent, "2024-03-02"),
		},
	}}
	emailer := &fakeEmailer{}
	cooldowns := newFakeCooldowns()
	svc := newSweepService(settings, rollers, records, cooldowns, emailer)

	first, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsSent)

	// Same roller moves on to "Roller sent": separate cooldown key, so the
	// next sweep may alert again immediately.
	roller.CurrentStatus = models.ActivityRollerSent
	second, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.AlertsSent)
}

func TestRunSweep_LedgerErrorFailsOpen(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01")},
	}}
	emailer := &fakeEmailer{}
	cooldowns := newFakeCooldowns()
	cooldowns.err = errors.New("ledger unavailable")
	svc := newSweepService(settings, rollers, records, cooldowns, emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)
	assert.Len(t, emailer.sent, 1)
}

func TestRunSweep_SendFailureStillCountsAndStampsCooldown(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01")},
	}}
	emailer := &fakeEmailer{err: errors.New("smtp refused")}
	cooldowns := newFakeCooldowns()
	svc := newSweepService(settings, rollers, records, cooldowns, emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlertsSent)

	// The attempt stamped the ledger even though the transport failed.
	emailer.err = nil
	svc.Clock = fixedClock{now: sweepNow.Add(24 * time.Hour)}
	second, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.AlertsSent)
}

func TestRunSweep_OneRollerErrorDoesNotAbort(t *testing.T) {
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: completeNotifyConfig()}
	rollers := &fakeRollers{rollers: []*models.Roller{
		rollerInStatus(1, "R-001", models.ActivityProductionEnd),
		rollerInStatus(2, "R-002", models.ActivityProductionEnd),
	}}
	records := &fakeRecords{
		byRoller: map[int][]*models.ActivityRecord{
			2: {approvedRecord(21, 2, models.ActivityProductionEnd, "2024-03-01")},
		},
		errFor: map[int]error{1: errors.New("timeout")},
	}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	result, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Checked: 2, AlertsSent: 1}, result)
	require.Len(t, emailer.sent, 1)
	assert.Contains(t, emailer.sent[0].Title, "R-002")
}

func TestRunSweep_NoRecipientsFallsBackToDefaultContact(t *testing.T) {
	notify := completeNotifyConfig()
	notify.ToEmails = ""
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: notify}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	_, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	require.Len(t, emailer.sent, 1)
	assert.Equal(t, defaultContact, emailer.sent[0].ToEmail)
}

func TestRunSweep_RecipientsJoinedAndDeduplicated(t *testing.T) {
	notify := completeNotifyConfig()
	notify.ToEmails = "a@example.com, b@example.com"
	notify.CcEmails = "b@example.com, c@example.com"
	settings := &fakeSettings{alerts: enabledAlertConfig(), notify: notify}
	rollers := &fakeRollers{rollers: []*models.Roller{rollerInStatus(1, "R-001", models.ActivityProductionEnd)}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionEnd, "2024-03-01")},
	}}
	emailer := &fakeEmailer{}
	svc := newSweepService(settings, rollers, records, newFakeCooldowns(), emailer)

	_, err := svc.RunSweep(context.Background())
	require.NoError(t, err)
	require.Len(t, emailer.sent, 1)
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"},
		strings.Split(emailer.sent[0].ToEmail, "; "))
}

func TestLatestMatching_PicksNewestOfActivity(t *testing.T) {
	records := []*models.ActivityRecord{
		approvedRecord(1, 1, models.ActivityProductionEnd, "2024-03-01"),
		approvedRecord(2, 1, models.ActivityProductionEnd, "10/03/2024"),
		approvedRecord(3, 1, models.ActivityRollerSent, "2024-03-15"),
	}
	got := latestMatching(records, models.ActivityProductionEnd)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ID)
}

func TestLatestMatching_EqualDatesTieBreakOnID(t *testing.T) {
	records := []*models.ActivityRecord{
		approvedRecord(5, 1, models.ActivityProductionEnd, "2024-03-10"),
		approvedRecord(6, 1, models.ActivityProductionEnd, "10/03/2024"),
	}
	got := latestMatching(records, models.ActivityProductionEnd)
	require.NotNil(t, got)
	assert.Equal(t, 6, got.ID)
}
