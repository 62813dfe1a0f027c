// Package status derives a roller's human-facing lifecycle label from its
// activity record history. Every surface that displays or filters by lifecycle
// state (dashboard aggregation, roller list, detail page) goes through Derive
// so the labels cannot drift between call sites.
package status

import (
	"time"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

// Lifecycle labels
const (
	LabelNoActivity       = "No Activity"
	LabelRunning          = "Running"
	LabelToBeSent         = "To be sent"
	LabelUnderMaintenance = "Under maintenance"
	LabelReadyToUse       = "Ready to Use"
)

// Color tags associated with each label
const (
	ColorNeutral = "neutral"
	ColorBlue    = "blue"
	ColorOrange  = "orange"
	ColorYellow  = "yellow"
	ColorGreen   = "green"
)

// Derived is a lifecycle label with its severity color tag.
type Derived struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Derive maps a roller's record history (any order) to its lifecycle label.
// Only the newest approved record is authoritative; with no approved records
// the roller has seen no activity.
func Derive(records []*models.ActivityRecord) Derived {
	latest := LatestApproved(records)
	if latest == nil {
		return Derived{Label: LabelNoActivity, Color: ColorNeutral}
	}

	switch latest.Activity {
	case models.ActivityRollerReceived:
		if v, ok := latest.ReadyToUseValue(); ok && v == "Yes" {
			return Derived{Label: LabelReadyToUse, Color: ColorGreen}
		}
		return Derived{Label: LabelUnderMaintenance, Color: ColorYellow}
	case models.ActivityProductionStart:
		return Derived{Label: LabelRunning, Color: ColorBlue}
	case models.ActivityProductionEnd:
		return Derived{Label: LabelToBeSent, Color: ColorOrange}
	case models.ActivityRollerSent:
		return Derived{Label: LabelUnderMaintenance, Color: ColorYellow}
	}
	// Custom activity types surface verbatim.
	return Derived{Label: latest.Activity, Color: ColorNeutral}
}

// LatestApproved selects the approved record with the maximum parsed date.
// Records whose date fails to parse are excluded. Equal dates tie-break on the
// higher record ID (insertion order).
func LatestApproved(records []*models.ActivityRecord) *models.ActivityRecord {
	var best *models.ActivityRecord
	var bestDate time.Time

	for _, r := range records {
		if r.Status != models.RecordStatusApproved {
			continue
		}
		d, ok := ParseRecordDate(r.Date)
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
