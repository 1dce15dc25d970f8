package services

import (
	"testing"
	"time"
)

func TestDailyChecker_IsStale(t *testing.T) {
	checker := DailyChecker{}
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastStamp string
		want      bool
	}{
		{
			name:      "never run",
			lastStamp: "",
			want:      true,
		},
		{
			name:      "same day",
			lastStamp: "2024-01-15",
			want:      false,
		},
		{
			name:      "same day with whitespace",
			lastStamp: " 2024-01-15\n",
			want:      false,
		},
		{
			name:      "yesterday",
			lastStamp: "2024-01-14",
			want:      true,
		},
		{
			name:      "legacy stamp format",
			lastStamp: "Mon Jan 15 2024",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.IsStale(tt.lastStamp, now)
			if got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDailyChecker_UsesLocalCalendarDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	// 20:00 UTC on the 14th is already the 15th in Jakarta.
	now := time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC).In(jakarta)

	if got := (DailyChecker{}).Stamp(now); got != "2024-01-15" {
		t.Errorf("Stamp() = %q, want 2024-01-15", got)
	}
}
