package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "RFC3339 timestamp",
			raw:  "2024-03-15T10:30:00Z",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "RFC3339 with offset normalizes to UTC day",
			raw:  "2024-03-15T01:30:00+05:30",
			want: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "ISO without zone",
			raw:  "2024-03-15T10:30:00.123",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "plain date",
			raw:  "2024-03-15",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "legacy DD/MM/YYYY",
			raw:  "15/03/2024",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "whitespace trimmed",
			raw:  "  15/03/2024  ",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "not-a-date", ok: false},
		{name: "US-style month first rejected", raw: "03/15/2024", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRecordDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDiffDays(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same instant", day, 0},
		{"partial day rounds up", day.Add(9 * time.Hour), 1},
		{"exactly one day", day.Add(24 * time.Hour), 1},
		{"one day and a bit", day.Add(25 * time.Hour), 2},
		{"a week", day.Add(7 * 24 * time.Hour), 7},
		{"future record uses absolute difference", day.Add(-36 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffDays(tt.now, day))
		})
	}
}
