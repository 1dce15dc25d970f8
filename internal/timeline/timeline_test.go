package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"masterplan/internal/core"
)

func at(y, m, d, h int) time.Time {
	return time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

func TestCeilDays(t *testing.T) {
	be.Equal(t, 0, CeilDays(0))
	be.Equal(t, 0, CeilDays(-time.Hour))
	be.Equal(t, 1, CeilDays(time.Second))
	be.Equal(t, 1, CeilDays(24*time.Hour))
	be.Equal(t, 2, CeilDays(24*time.Hour+time.Second))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"next day", at(2025, 1, 1, 0), at(2025, 1, 2, 0), 1},
		{"same day later hour", at(2025, 1, 1, 0), at(2025, 1, 1, 12), 0},
		{"late evening to next morning", at(2025, 1, 1, 23), at(2025, 1, 2, 1), 1},
		{"reversed clamps to zero", at(2025, 1, 2, 0), at(2025, 1, 1, 0), 0},
		{"three years", at(2025, 1, 1, 0), at(2028, 1, 1, 0), 1095},
		{"leap year", at(2024, 1, 1, 0), at(2025, 1, 1, 0), 366},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Clocks spring forward on 2025-03-09.
	a := time.Date(2025, 3, 8, 0, 0, 0, 0, ny)
	b := time.Date(2025, 3, 10, 0, 0, 0, 0, ny)
	be.Equal(t, 2, DaysBetween(a, b))
	// And fall back on 2025-11-02.
	c := time.Date(2025, 11, 1, 0, 0, 0, 0, ny)
	d := time.Date(2025, 11, 3, 0, 0, 0, 0, ny)
	be.Equal(t, 2, DaysBetween(c, d))
}

func TestCreateDefault(t *testing.T) {
	now := at(2025, 1, 1, 9)
	tl := CreateDefault(now)
	be.Equal(t, "2025-01-01", tl.StartDate.String())
	be.Equal(t, "2028-01-01", tl.EndDate.String())
	be.Equal(t, 1095, tl.TotalDays)
	be.Equal(t, core.Timestamp(now), tl.CreatedAt)
	be.Equal(t, tl.CreatedAt, tl.LastUpdated)
}

func TestRemainingDays(t *testing.T) {
	tl := CreateDefault(at(2025, 1, 1, 0))

	be.Equal(t, 1095, RemainingDays(&tl, at(2025, 1, 1, 18)))
	be.Equal(t, 1094, RemainingDays(&tl, at(2025, 1, 2, 0)))
	be.Equal(t, 0, RemainingDays(&tl, at(2028, 1, 1, 0)))
	be.Equal(t, 0, RemainingDays(&tl, at(2030, 6, 1, 0)))
	be.Equal(t, core.DefaultTotalDays, RemainingDays(nil, at(2025, 1, 1, 0)))
	be.Equal(t, core.DefaultTotalDays, RemainingDays(&core.Timeline{StartDate: core.NewDate(2025, 1, 1)}, at(2025, 1, 1, 0)))

	prev := RemainingDays(&tl, at(2024, 12, 1, 0))
	for now := at(2024, 12, 1, 0); now.Before(at(2028, 3, 1, 0)); now = now.Add(13 * time.Hour) {
		got := RemainingDays(&tl, now)
		be.True(t, got >= 0)
		be.True(t, got <= prev)
		prev = got
	}
}

func TestElapsedProgress(t *testing.T) {
	tl := core.Timeline{StartDate: core.NewDate(2025, 1, 1), EndDate: core.NewDate(2025, 1, 11)}

	be.Equal(t, 0.0, ElapsedProgress(&tl, at(2024, 12, 1, 0)))
	be.Equal(t, 0.0, ElapsedProgress(&tl, at(2025, 1, 1, 23)))
	be.Equal(t, 50.0, ElapsedProgress(&tl, at(2025, 1, 6, 0)))
	be.Equal(t, 100.0, ElapsedProgress(&tl, at(2025, 1, 11, 0)))
	be.Equal(t, 100.0, ElapsedProgress(&tl, at(2026, 1, 1, 0)))
	be.Equal(t, 0.0, ElapsedProgress(nil, at(2025, 1, 6, 0)))

	same := core.Timeline{StartDate: core.NewDate(2025, 1, 1), EndDate: core.NewDate(2025, 1, 1)}
	be.Equal(t, 100.0, ElapsedProgress(&same, at(2024, 1, 1, 0)))

	prev := -1.0
	for now := at(2024, 12, 20, 0); now.Before(at(2025, 2, 1, 0)); now = now.Add(7 * time.Hour) {
		got := ElapsedProgress(&tl, now)
		be.True(t, got >= 0 && got <= 100)
		be.True(t, got >= prev)
		prev = got
	}
}

func TestMigrateFromYears(t *testing.T) {
	now := at(2025, 1, 1, 0)
	tl := MigrateFromYears(3, now)
	be.Equal(t, "2028-01-01", tl.EndDate.String())

	half := MigrateFromYears(1.5, now)
	be.Equal(t, "2026-07-03", half.EndDate.String())
	be.Equal(t, 365+183, half.TotalDays)

	bad := MigrateFromYears(0, now)
	be.Equal(t, "2028-01-01", bad.EndDate.String())
}

func TestYears(t *testing.T) {
	tl := CreateDefault(at(2025, 1, 1, 0))
	be.Equal(t, 3.0, Years(&tl))
	be.Equal(t, 3.0, Years(nil))
}

func TestSaveValidation(t *testing.T) {
	now := at(2025, 1, 1, 10)
	prev := CreateDefault(at(2024, 6, 1, 0))
	before := prev

	tests := []struct {
		name       string
		start, end string
		confirmer  Confirmer
		want       error
	}{
		{"empty start", "", "2026-01-01", AcceptAll{}, core.ErrEmptyRequiredField},
		{"empty end", "2025-01-01", "  ", AcceptAll{}, core.ErrEmptyRequiredField},
		{"bad start", "01/01/2025", "2026-01-01", AcceptAll{}, core.ErrInvalidDateFormat},
		{"bad end", "2025-01-01", "2026-13-01", AcceptAll{}, core.ErrInvalidDateFormat},
		{"end before start declined", "2026-01-01", "2025-01-01", DeclineAll{}, core.ErrEndNotAfterStart},
		{"nil confirmer declines swap", "2026-01-01", "2025-01-01", nil, core.ErrEndNotAfterStart},
		{"equal dates", "2025-01-01", "2025-01-01", AcceptAll{}, core.ErrEndNotAfterStart},
		{"future start declined", "2025-02-01", "2026-01-01", DeclineAll{}, core.ErrSaveCancelled},
		{"far end declined", "2025-01-01", "2200-01-01", DeclineAll{}, core.ErrSaveCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Save(&prev, tt.start, tt.end, now, tt.confirmer)
			be.True(t, errors.Is(err, tt.want))
			be.Equal(t, before, prev)
		})
	}
}

func TestSaveSuccess(t *testing.T) {
	now := at(2025, 1, 1, 10)
	prev := CreateDefault(at(2024, 6, 1, 0))

	got, err := Save(&prev, "2025-01-01", "2026-01-01", now, DeclineAll{})
	be.NilErr(t, err)
	be.Equal(t, 365, got.TotalDays)
	be.Equal(t, prev.CreatedAt, got.CreatedAt)
	be.Equal(t, core.Timestamp(now), got.LastUpdated)

	swapped, err := Save(&prev, "2026-01-01", "2025-01-01", now, AcceptAll{})
	be.NilErr(t, err)
	be.Equal(t, "2025-01-01", swapped.StartDate.String())
	be.Equal(t, "2026-01-01", swapped.EndDate.String())

	future, err := Save(nil, "2025-03-01", "2027-03-01", now, AcceptAll{})
	be.NilErr(t, err)
	be.Equal(t, core.Timestamp(now), future.CreatedAt)

	far, err := Save(&prev, "2025-01-01", "2200-01-01", now, AcceptAll{})
	be.NilErr(t, err)
	be.Equal(t, "2200-01-01", far.EndDate.String())
}

type countingConfirmer struct {
	swaps, futures, fars int
}

func (c *countingConfirmer) ConfirmSwap(_, _ core.Date) bool     { c.swaps++; return true }
func (c *countingConfirmer) ConfirmFutureStart(_ core.Date) bool { c.futures++; return true }
func (c *countingConfirmer) ConfirmFarEnd(_ core.Date) bool      { c.fars++; return true }

func TestSaveAsksOnlyWhenNeeded(t *testing.T) {
	c := &countingConfirmer{}
	_, err := Save(nil, "2025-01-01", "2027-01-01", at(2025, 1, 1, 0), c)
	be.NilErr(t, err)
	be.Equal(t, countingConfirmer{}, *c)

	_, err = Save(nil, "2027-01-01", "2025-02-01", at(2025, 1, 1, 0), c)
	be.NilErr(t, err)
	be.Equal(t, 1, c.swaps)
	be.Equal(t, 1, c.futures)
	be.Equal(t, 0, c.fars)
}
