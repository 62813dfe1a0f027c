package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadyToUseValue(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   string
		ok     bool
	}{
		{
			name:   "exact prefix",
			fields: map[string]any{"ready_to_use_1709825671": "Yes"},
			want:   "Yes",
			ok:     true,
		},
		{
			name:   "prefix match is case-insensitive",
			fields: map[string]any{"Ready_To_Use_roller": "No"},
			want:   "No",
			ok:     true,
		},
		{
			name:   "no matching field",
			fields: map[string]any{"grinding_depth": "0.2mm"},
			ok:     false,
		},
		{
			name:   "non-string value",
			fields: map[string]any{"ready_to_use_x": true},
			ok:     false,
		},
		{name: "nil fields", fields: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ActivityRecord{Fields: tt.fields}
			got, ok := r.ReadyToUseValue()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotificationConfigRecipients(t *testing.T) {
	cfg := &NotificationConfig{
		ToEmails: "a@example.com, b@example.com ,",
		CcEmails: "b@example.com,c@example.com",
	}
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, cfg.Recipients())

	empty := &NotificationConfig{}
	assert.Empty(t, empty.Recipients())
}

func TestNotificationConfigComplete(t *testing.T) {
	assert.False(t, (&NotificationConfig{ServiceID: "s", TemplateID: "t"}).Complete())
	assert.True(t, (&NotificationConfig{ServiceID: "s", TemplateID: "t", PublicKey: "k"}).Complete())
}
