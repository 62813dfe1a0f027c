package models

import "time"

// Roller workflow statuses (the roller entity itself, not its activity).
const (
	RollerStatusPending  = "Pending"
	RollerStatusApproved = "Approved"
	RollerStatusRejected = "Rejected"
	RollerStatusInactive = "Inactive"
)

// Roller positions
const (
	PositionTop    = "Top"
	PositionBottom = "Bottom"
)

// Production lines
var Lines = []string{"SG#1", "SG#2", "SG#3.1", "SG#3.2"}

type Roller struct {
	ID           int    `json:"id"`
	RollerNumber string `json:"roller_number"` // display code, unique by convention only
	Make         string `json:"make"`
	Design       string `json:"design"`
	Position     string `json:"position"` // 'Top' or 'Bottom'
	Line         string `json:"line"`     // SG#1, SG#2, SG#3.1, SG#3.2
	Status       string `json:"status"`   // workflow state: Pending/Approved/Rejected/Inactive
	// CurrentStatus is the activity type of the most recently logged record
	// (e.g. "Production End"). It is not the derived lifecycle label.
	CurrentStatus   string    `json:"current_status"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
}

// CreateRollerRequest represents the request body for registering a roller
type CreateRollerRequest struct {
	RollerNumber string `json:"roller_number"`
	Make         string `json:"make"`
	Design       string `json:"design"`
	Position     string `json:"position"`
	Line         string `json:"line"`
}

// UpdateRollerRequest represents the request body for editing a roller
type UpdateRollerRequest struct {
	RollerNumber string `json:"roller_number"`
	Make         string `json:"make"`
	Design       string `json:"design"`
	Position     string `json:"position"`
	Line         string `json:"line"`
}

// ValidPosition reports whether p is a known roller position.
func ValidPosition(p string) bool {
	return p == PositionTop || p == PositionBottom
}

// ValidLine reports whether l is a known production line.
func ValidLine(l string) bool {
	for _, line := range Lines {
		if l == line {
			return true
		}
	}
	return false
}
