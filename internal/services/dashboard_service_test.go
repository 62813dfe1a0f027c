package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/status"
)

func newTestDashboardService(rollers *fakeRollers, records *fakeRecords) *DashboardService {
	svc := NewDashboardService(rollers, records)
	svc.UseCache = false
	return svc
}

func findCell(t *testing.T, overview *models.DashboardOverview, line, position string) models.LineSummary {
	t.Helper()
	for _, cell := range overview.Lines {
		if cell.Line == line && cell.Position == position {
			return cell
		}
	}
	t.Fatalf("no cell for %s/%s", line, position)
	return models.LineSummary{}
}

func TestOverview_EmptyPlant(t *testing.T) {
	svc := newTestDashboardService(&fakeRollers{}, &fakeRecords{})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// One cell per line and position, all empty.
	assert.Len(t, overview.Lines, 2*len(models.Lines))
	for _, cell := range overview.Lines {
		assert.Zero(t, cell.Total)
		assert.Zero(t, cell.Active)
	}
}

func TestOverview_GroupsByLineAndPosition(t *testing.T) {
	rollers := &fakeRollers{rollers: []*models.Roller{
		{ID: 1, Line: "SG#1", Position: models.PositionTop, CurrentStatus: models.ActivityProductionStart},
		{ID: 2, Line: "SG#1", Position: models.PositionTop, CurrentStatus: models.ActivityRollerReceived},
		{ID: 3, Line: "SG#1", Position: models.PositionBottom, CurrentStatus: ""},
		{ID: 4, Line: "SG#2", Position: models.PositionTop, CurrentStatus: "roller received "},
	}}
	records := &fakeRecords{byRoller: map[int][]*models.ActivityRecord{
		1: {approvedRecord(11, 1, models.ActivityProductionStart, "2024-03-01")},
		2: {approvedRecord(21, 2, models.ActivityRollerReceived, "2024-03-02")},
	}}
	svc := newTestDashboardService(rollers, records)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	topSG1 := findCell(t, overview, "SG#1", models.PositionTop)
	assert.Equal(t, 2, topSG1.Total)
	assert.Equal(t, 1, topSG1.Active)
	assert.Equal(t, 1, topSG1.StatusCounts[status.LabelRunning])
	assert.Equal(t, 1, topSG1.StatusCounts[status.LabelUnderMaintenance])

	bottomSG1 := findCell(t, overview, "SG#1", models.PositionBottom)
	assert.Equal(t, 1, bottomSG1.Total)
	assert.Equal(t, 1, bottomSG1.StatusCounts[status.LabelNoActivity])

	// current_status match is case-insensitive and trimmed.
	topSG2 := findCell(t, overview, "SG#2", models.PositionTop)
	assert.Equal(t, 1, topSG2.Active)
}

func TestOverview_FetchErrorCountsAsNoActivity(t *testing.T) {
	rollers := &fakeRollers{rollers: []*models.Roller{
		{ID: 1, Line: "SG#1", Position: models.PositionTop},
	}}
	records := &fakeRecords{errFor: map[int]error{1: errors.New("timeout")}}
	svc := newTestDashboardService(rollers, records)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	cell := findCell(t, overview, "SG#1", models.PositionTop)
	assert.Equal(t, 1, cell.StatusCounts[status.LabelNoActivity])
}

func TestOverview_RollerListErrorPropagates(t *testing.T) {
	svc := newTestDashboardService(&fakeRollers{err: errors.New("db down")}, &fakeRecords{})

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
}
