package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyRun(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "before the slot runs same day",
			at:   time.Date(2024, 3, 15, 7, 0, 0, 0, IST),
			want: time.Date(2024, 3, 15, 9, 0, 0, 0, IST),
		},
		{
			name: "exactly at the slot runs next day",
			at:   time.Date(2024, 3, 15, 9, 0, 0, 0, IST),
			want: time.Date(2024, 3, 16, 9, 0, 0, 0, IST),
		},
		{
			name: "after the slot runs next day",
			at:   time.Date(2024, 3, 15, 22, 30, 0, 0, IST),
			want: time.Date(2024, 3, 16, 9, 0, 0, 0, IST),
		},
		{
			name: "UTC input converts before comparing",
			at:   time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC), // 07:30 IST
			want: time.Date(2024, 3, 15, 9, 0, 0, 0, IST),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDailyRun(tt.at, 9, 0)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
