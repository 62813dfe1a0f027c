package services

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/hirendodiya515/roller-management-system/internal/cache"
	"github.com/hirendodiya515/roller-management-system/internal/models"
	"github.com/hirendodiya515/roller-management-system/internal/status"
)

// statusWorkers bounds the concurrent per-roller record fetches during the
// overview fan-out. The step is read-only, so parallelism is safe.
const statusWorkers = 8

type DashboardService struct {
	Rollers RollerLister
	Records RecordLister
	// UseCache toggles the redis-backed status cache; tests run without it.
	UseCache bool
}

func NewDashboardService(rollers RollerLister, records RecordLister) *DashboardService {
	return &DashboardService{Rollers: rollers, Records: records, UseCache: true}
}

// Overview aggregates derived lifecycle labels per line and position for the
// plant overview cards.
func (s *DashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	rollers, err := s.Rollers.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := s.rollerStatuses(ctx, rollers)

	overview := &models.DashboardOverview{}
	for _, position := range []string{models.PositionTop, models.PositionBottom} {
		for _, line := range models.Lines {
			summary := models.LineSummary{
				Line:         line,
				Position:     position,
				StatusCounts: make(map[string]int),
			}
			for _, roller := range rollers {
				if roller.Line != line || roller.Position != position {
					continue
				}
				summary.Total++
				summary.StatusCounts[statuses[roller.ID].Label]++
				if strings.EqualFold(strings.TrimSpace(roller.CurrentStatus), models.ActivityRollerReceived) {
					summary.Active++
				}
			}
			overview.Lines = append(overview.Lines, summary)
		}
	}
	return overview, nil
}

// rollerStatuses derives each roller's lifecycle label, fanning the record
// fetches out across a bounded worker pool. A roller whose fetch fails counts
// as "No Activity" rather than failing the overview.
func (s *DashboardService) rollerStatuses(ctx context.Context, rollers []*models.Roller) map[int]status.Derived {
	statuses := make(map[int]status.Derived, len(rollers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, statusWorkers)

	for _, roller := range rollers {
		wg.Add(1)
		sem <- struct{}{}
		go func(roller *models.Roller) {
			defer wg.Done()
			defer func() { <-sem }()

			d := s.deriveOne(ctx, roller.ID)
			mu.Lock()
			statuses[roller.ID] = d
			mu.Unlock()
		}(roller)
	}
	wg.Wait()
	return statuses
}

func (s *DashboardService) deriveOne(ctx context.Context, rollerID int) status.Derived {
	if s.UseCache {
		if d, ok := cache.GetRollerStatus(ctx, rollerID); ok {
			return d
		}
	}

	records, err := s.Records.ListByRoller(ctx, rollerID)
	if err != nil {
		log.Printf("[Dashboard] Error fetching records for roller %d: %v", rollerID, err)
		return status.Derived{Label: status.LabelNoActivity, Color: status.ColorNeutral}
	}

	d := status.Derive(records)
	if s.UseCache {
		cache.SetRollerStatus(ctx, rollerID, d)
	}
	return d
}
