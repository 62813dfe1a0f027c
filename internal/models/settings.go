package models

import (
	"strings"
	"time"
)

// Setting document keys
const (
	SettingAlerts    = "alerts"
	SettingEmailJS   = "emailjs"
	SettingDropdowns = "dropdowns"
)

// Setting is one global configuration document, value stored as JSON.
type Setting struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedBy *int      `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DelayRule configures one delay threshold: alert when a roller has sat in the
// matching status for more than Days days.
type DelayRule struct {
	Enabled bool `json:"enabled"`
	Days    int  `json:"days"`
}

// AlertConfig is the global 'alerts' settings document.
type AlertConfig struct {
	ProductionEndDelay DelayRule `json:"productionEndDelay"`
	RollerSentDelay    DelayRule `json:"rollerSentDelay"`
}

// NotificationConfig is the global 'emailjs' settings document: EmailJS
// transport identifiers plus recipient lists.
type NotificationConfig struct {
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty"`
	ToEmails   string `json:"toEmails"` // comma-separated
	CcEmails   string `json:"ccEmails"` // comma-separated
}

// Complete reports whether the config carries everything dispatch requires.
func (c *NotificationConfig) Complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Recipients returns the deduplicated to + cc list, trimmed, empties dropped.
func (c *NotificationConfig) Recipients() []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range append(strings.Split(c.ToEmails, ","), strings.Split(c.CcEmails, ",")...) {
		addr := strings.TrimSpace(raw)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

// AlertCooldown is one cooldown ledger entry per (roller, status) pair. At most
// one notification per pair is sent within a 7-day rolling window.
type AlertCooldown struct {
	RollerID int       `json:"roller_id"`
	Status   string    `json:"status"`
	LastSent time.Time `json:"last_sent"`
}

// DropdownOptions is the global 'dropdowns' settings document backing the
// configurable option sets in the form editor.
type DropdownOptions struct {
	ActivityTypes  []string `json:"activityTypes"`
	Lines          []string `json:"lines"`
	DesignPatterns []string `json:"designPatterns"`
}

// DefaultDropdownOptions seeds the option sets on first use.
func DefaultDropdownOptions() DropdownOptions {
	return DropdownOptions{
		// "Roller Sent" (capital S) is historical form data; the delay rules
		// match the lowercase "Roller sent" variant.
		ActivityTypes:  []string{ActivityProductionStart, ActivityProductionEnd, "Roller Sent", ActivityRollerReceived},
		Lines:          Lines,
		DesignPatterns: []string{},
	}
}
