// Package timeline owns the savings period: creating the default range,
// validating user edits and deriving remaining days and elapsed progress.
//
// All day arithmetic works on calendar days. Times are first reduced to
// midnight of their calendar day, so a range always spans a whole number of
// days and daylight saving transitions never shift the result.
package timeline

import (
	"math"
	"time"

	"masterplan/internal/core"
)

const (
	day = 24 * time.Hour

	// farEndYears is how far ahead an end date may be before the user is
	// asked to confirm it.
	farEndYears = 100
)

// CeilDays converts d into whole days, rounding any partial day up.
// Negative durations yield zero.
func CeilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(day)))
}

// DaysBetween returns the number of calendar days from a to b, never
// negative. Both instants are reduced to their calendar day first.
func DaysBetween(a, b time.Time) int {
	return CeilDays(core.DateOf(b).Sub(core.DateOf(a).Time))
}

func daysBetweenDates(a, b core.Date) int {
	return CeilDays(b.Sub(a.Time))
}

// CreateDefault returns a timeline starting today and ending three
// calendar years later.
func CreateDefault(now time.Time) core.Timeline {
	start := core.DateOf(now)
	end := start.AddYears(core.DefaultTimelineYears)
	stamp := core.Timestamp(now)
	return core.Timeline{
		StartDate:   start,
		EndDate:     end,
		TotalDays:   daysBetweenDates(start, end),
		CreatedAt:   stamp,
		LastUpdated: stamp,
	}
}

// MigrateFromYears converts the legacy "timeline in years" setting into a
// date range starting today. Fractional years are rounded to whole days.
func MigrateFromYears(years float64, now time.Time) core.Timeline {
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return CreateDefault(now)
	}
	start := core.DateOf(now)
	whole := math.Floor(years)
	end := start.AddYears(int(whole))
	if frac := years - whole; frac > 0 {
		end = end.AddDays(int(math.Round(frac * 365)))
	}
	stamp := core.Timestamp(now)
	return core.Timeline{
		StartDate:   start,
		EndDate:     end,
		TotalDays:   daysBetweenDates(start, end),
		CreatedAt:   stamp,
		LastUpdated: stamp,
	}
}

// RemainingDays returns the days left until the end date, clamped at zero.
// Without a usable end date the default span is assumed.
func RemainingDays(tl *core.Timeline, now time.Time) int {
	if tl == nil || tl.EndDate.IsZero() {
		return core.DefaultTotalDays
	}
	return daysBetweenDates(core.DateOf(now), tl.EndDate)
}

// ElapsedProgress returns the share of the timeline already elapsed, as a
// percentage in [0, 100].
func ElapsedProgress(tl *core.Timeline, now time.Time) float64 {
	if !tl.IsSet() {
		return 0
	}
	total := tl.EndDate.Sub(tl.StartDate.Time)
	if total <= 0 {
		return 100
	}
	elapsed := core.DateOf(now).Sub(tl.StartDate.Time)
	return clamp(100*float64(elapsed)/float64(total), 0, 100)
}

// TotalDays recomputes the span of tl.
func TotalDays(tl core.Timeline) int {
	return daysBetweenDates(tl.StartDate, tl.EndDate)
}

// Years returns the span of tl in years of 365 days, the unit used by
// compound projections.
func Years(tl *core.Timeline) float64 {
	if !tl.IsSet() {
		return float64(core.DefaultTotalDays) / 365
	}
	return float64(TotalDays(*tl)) / 365
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
