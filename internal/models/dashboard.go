package models

// LineSummary aggregates derived lifecycle labels for one line/position cell
// on the plant overview.
type LineSummary struct {
	Line     string `json:"line"`
	Position string `json:"position"`
	Total    int    `json:"total"`
	// Active counts rollers whose recorded current_status is "Roller Received"
	// (case-insensitive), matching the overview card logic.
	Active       int            `json:"active"`
	StatusCounts map[string]int `json:"status_counts"`
}

// DashboardOverview is the full plant overview response.
type DashboardOverview struct {
	Lines []LineSummary `json:"lines"`
}
