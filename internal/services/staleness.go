// Package services holds the tracker state container and the operations
// that load, mutate and persist it.
//
// This file implements the staleness strategy used by the daily refresh.
// Each strategy decides, from the stored stamp of the last run and the
// current time, whether derived figures must be recomputed.
package services

import (
	"strings"
	"time"

	"masterplan/internal/core"
)

// StalenessChecker is the strategy interface for the daily refresh.
type StalenessChecker interface {
	// IsStale returns true if the recomputation should run now given the
	// stamp written by the previous run.
	IsStale(lastStamp string, now time.Time) bool
	// Stamp returns the value to store once the recomputation has run.
	Stamp(now time.Time) string
}

// DailyChecker triggers once per local calendar day.
type DailyChecker struct{}

// IsStale returns true if the last run happened on a different day.
func (DailyChecker) IsStale(lastStamp string, now time.Time) bool {
	lastStamp = strings.TrimSpace(lastStamp)
	if lastStamp == "" {
		return true
	}
	return lastStamp != DailyChecker{}.Stamp(now)
}

// Stamp returns the calendar day of now, e.g. "2025-01-15".
func (DailyChecker) Stamp(now time.Time) string {
	return now.Format(core.DateLayout)
}
