package status

import (
	"strings"
	"time"
)

// Accepted record date layouts. Records arrive either with an ISO timestamp
// (written by the date picker) or a legacy "DD/MM/YYYY" string (imported
// data). Both normalize to midnight UTC of the calendar day.
var recordDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"02/01/2006",
}

// ParseRecordDate parses a record's date field to a day-precision UTC instant.
// Returns false for empty or unrecognized values; such records are excluded
// from latest-record selection rather than treated as errors.
func ParseRecordDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// DiffDays returns ceil(|now - recordDate|) in days.
func DiffDays(now, recordDate time.Time) int {
	d := now.Sub(recordDate)
	if d < 0 {
		d = -d
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
