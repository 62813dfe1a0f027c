package models

import (
	"strings"
	"time"
)

// Approval workflow statuses for activity records
const (
	RecordStatusPending  = "Pending"
	RecordStatusApproved = "Approved"
	RecordStatusRejected = "Rejected"
)

// Built-in activity types. "Roller sent" is the exact string the delay rules
// match against roller.current_status; the form default "Roller Sent" differs
// in case and is kept for data compatibility with older records.
const (
	ActivityProductionStart = "Production Start"
	ActivityProductionEnd   = "Production End"
	ActivityRollerSent      = "Roller sent"
	ActivityRollerReceived  = "Roller Received"
)

// readyToUsePrefix is the documented prefix rule for the dynamic field that
// distinguishes "Ready to Use" from "Under maintenance" on Roller Received
// records. The field ID suffix is generated by the form editor, so lookup is
// always by prefix, never by full key.
const readyToUsePrefix = "ready_to_use"

// ActivityRecord is a dated service event owned by exactly one roller.
type ActivityRecord struct {
	ID       int    `json:"id"`
	RollerID int    `json:"roller_id"`
	Activity string `json:"activity"`
	// Date is stored as received: either an ISO timestamp or "DD/MM/YYYY".
	// Both forms parse to the same UTC day instant for comparisons.
	Date            string         `json:"date"`
	Status          string         `json:"status"` // Pending/Approved/Rejected
	CreatedByUserID int            `json:"created_by_user_id"`
	ApprovedBy      *int           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	ApprovalInfo    string         `json:"approval_info,omitempty"`
	Remarks         string         `json:"remarks"`
	Fields          map[string]any `json:"fields,omitempty"` // form-config-defined dynamic fields
	CreatedAt       time.Time      `json:"created_at"`
}

// ReadyToUseValue returns the value of the dynamic "ready_to_use*" field, if
// any field ID carries that prefix (case-insensitive).
func (r *ActivityRecord) ReadyToUseValue() (string, bool) {
	for key, val := range r.Fields {
		if strings.HasPrefix(strings.ToLower(key), readyToUsePrefix) {
			s, ok := val.(string)
			return s, ok
		}
	}
	return "", false
}

// CreateRecordRequest represents the request body for logging an activity record
type CreateRecordRequest struct {
	Activity string         `json:"activity"`
	Date     string         `json:"date"`
	Remarks  string         `json:"remarks"`
	Fields   map[string]any `json:"fields"`
}

// ApproveRecordRequest represents the approve/reject action body
type ApproveRecordRequest struct {
	Approved bool `json:"approved"`
}

// ActivityStat aggregates per-activity record counts for one roller
type ActivityStat struct {
	Activity string `json:"activity"`
	Total    int    `json:"total"`
	Approved int    `json:"approved"`
}
