package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). The plant and its
// alert schedule run on IST.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// NextDailyRun returns the next occurrence of hour:min IST strictly after t.
func NextDailyRun(t time.Time, hour, min int) time.Time {
	ist := t.In(IST)
	next := time.Date(ist.Year(), ist.Month(), ist.Day(), hour, min, 0, 0, IST)
	if !next.After(ist) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// FormatIST formats a time in IST using the given layout
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
