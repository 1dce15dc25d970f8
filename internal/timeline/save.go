package timeline

import (
	"fmt"
	"strings"
	"time"

	"masterplan/internal/core"
)

// Confirmer answers the questions Save may ask before accepting unusual
// input. A nil Confirmer declines everything.
type Confirmer interface {
	// ConfirmSwap is asked when the end date precedes the start date.
	ConfirmSwap(start, end core.Date) bool
	// ConfirmFutureStart is asked when the start date is after today.
	ConfirmFutureStart(start core.Date) bool
	// ConfirmFarEnd is asked when the end date is more than a century away.
	ConfirmFarEnd(end core.Date) bool
}

// AcceptAll confirms every question.
type AcceptAll struct{}

func (AcceptAll) ConfirmSwap(_, _ core.Date) bool     { return true }
func (AcceptAll) ConfirmFutureStart(_ core.Date) bool { return true }
func (AcceptAll) ConfirmFarEnd(_ core.Date) bool      { return true }

// DeclineAll declines every question.
type DeclineAll struct{}

func (DeclineAll) ConfirmSwap(_, _ core.Date) bool     { return false }
func (DeclineAll) ConfirmFutureStart(_ core.Date) bool { return false }
func (DeclineAll) ConfirmFarEnd(_ core.Date) bool      { return false }

// Save validates a user edit and returns the new timeline. prev is never
// modified; on error the caller keeps prev as it was.
func Save(prev *core.Timeline, startInput, endInput string, now time.Time, c Confirmer) (core.Timeline, error) {
	if c == nil {
		c = DeclineAll{}
	}

	startInput, endInput = strings.TrimSpace(startInput), strings.TrimSpace(endInput)
	if startInput == "" {
		return core.Timeline{}, core.NewValidationError("startDate", core.ErrEmptyRequiredField, "please fill in the start date")
	}
	if endInput == "" {
		return core.Timeline{}, core.NewValidationError("endDate", core.ErrEmptyRequiredField, "please fill in the end date")
	}

	start, err := core.ParseDate(startInput)
	if err != nil {
		return core.Timeline{}, core.NewValidationError("startDate", core.ErrInvalidDateFormat, "start date is not a valid date (use YYYY-MM-DD)")
	}
	end, err := core.ParseDate(endInput)
	if err != nil {
		return core.Timeline{}, core.NewValidationError("endDate", core.ErrInvalidDateFormat, "end date is not a valid date (use YYYY-MM-DD)")
	}

	if end.Before(start) {
		if !c.ConfirmSwap(start, end) {
			return core.Timeline{}, core.NewValidationError("endDate", core.ErrEndNotAfterStart, "end date must be after the start date")
		}
		start, end = end, start
	}
	if !end.After(start) {
		return core.Timeline{}, core.NewValidationError("endDate", core.ErrEndNotAfterStart, "end date must be after the start date")
	}

	today := core.DateOf(now)
	if start.After(today) && !c.ConfirmFutureStart(start) {
		return core.Timeline{}, fmt.Errorf("%w: start date %s is in the future", core.ErrSaveCancelled, start)
	}
	if end.After(today.AddYears(farEndYears)) && !c.ConfirmFarEnd(end) {
		return core.Timeline{}, fmt.Errorf("%w: end date %s is more than %d years away", core.ErrSaveCancelled, end, farEndYears)
	}

	stamp := core.Timestamp(now)
	createdAt := stamp
	if prev != nil && prev.CreatedAt != "" {
		createdAt = prev.CreatedAt
	}
	return core.Timeline{
		StartDate:   start,
		EndDate:     end,
		TotalDays:   daysBetweenDates(start, end),
		CreatedAt:   createdAt,
		LastUpdated: stamp,
	}, nil
}
