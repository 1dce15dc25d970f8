package services

import (
	"context"

	"masterplan/internal/amqp"
	"masterplan/internal/core"
	"masterplan/internal/goal"
	"masterplan/internal/ledger"
	"masterplan/internal/log"
	"masterplan/internal/projection"
	"masterplan/internal/storage"
	"masterplan/internal/timeline"
)

// Dashboard is every derived figure shown on the main screen.
type Dashboard struct {
	Timeline       core.Timeline
	RemainingDays  int
	ElapsedPercent float64
	Aggregates     ledger.Aggregates
	Progress       goal.Progress
	Requirement    goal.Requirement
	Tip            string
}

// RefreshResult reports what RunDailyRefreshIfNeeded did.
type RefreshResult struct {
	Ran       bool
	Stamp     string
	Dashboard Dashboard
}

// GetTimeline returns the current timeline, creating the default one in
// memory if none was loaded.
func (t *Tracker) GetTimeline() core.Timeline {
	if !t.state.Timeline.IsSet() {
		tl := timeline.CreateDefault(t.now())
		t.state.Timeline = &tl
	}
	return *t.state.Timeline
}

// SaveTimeline validates and stores a new date range. Rejected input
// leaves the current timeline unchanged.
func (t *Tracker) SaveTimeline(ctx context.Context, startInput, endInput string, c timeline.Confirmer) (core.Timeline, error) {
	prev := t.GetTimeline()
	tl, err := timeline.Save(&prev, startInput, endInput, t.now(), c)
	if err != nil {
		t.logger.DebugContext(ctx, "Timeline save rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		return prev, err
	}

	t.state.Timeline = &tl
	t.bump()
	t.logger.WithFields(log.NewFields().
		WithOperation(log.OpSave).
		WithTimeline(tl.StartDate.String(), tl.EndDate.String(), timeline.RemainingDays(&tl, t.now()))).
		InfoContext(ctx, "Saved timeline")

	return tl, t.persist(ctx, storage.KeyTimeline, tl)
}

// SetQuickTimeline saves a timeline that starts today and runs for the
// given number of years. It goes through the same checks as SaveTimeline.
func (t *Tracker) SetQuickTimeline(ctx context.Context, years float64, c timeline.Confirmer) (core.Timeline, error) {
	if !(years > 0 && years <= 100) {
		return t.GetTimeline(), core.NewValidationError("years", core.ErrEndNotAfterStart, "please choose between 0 and 100 years")
	}
	span := timeline.MigrateFromYears(years, t.now())
	return t.SaveTimeline(ctx, span.StartDate.String(), span.EndDate.String(), c)
}

// ResetTimeline replaces the timeline with the default span from today.
func (t *Tracker) ResetTimeline(ctx context.Context) (core.Timeline, error) {
	tl := timeline.CreateDefault(t.now())
	t.state.Timeline = &tl
	t.bump()
	t.logger.InfoContext(ctx, "Reset timeline", log.FieldOperation, log.OpReset, log.FieldEndDate, tl.EndDate.String())
	return tl, t.persist(ctx, storage.KeyTimeline, tl)
}

// GetGoalProgress compares net savings with the target.
func (t *Tracker) GetGoalProgress() goal.Progress {
	agg := t.GetAggregates()
	return goal.ProgressFromTotals(agg.TotalIncome, agg.TotalExpenses, t.target())
}

// GetDashboard computes every derived figure for the current time.
func (t *Tracker) GetDashboard() Dashboard {
	now := t.now()
	tl := t.GetTimeline()
	agg := t.GetAggregates()
	progress := goal.ProgressFromTotals(agg.TotalIncome, agg.TotalExpenses, t.target())
	remaining := timeline.RemainingDays(&tl, now)

	return Dashboard{
		Timeline:       tl,
		RemainingDays:  remaining,
		ElapsedPercent: timeline.ElapsedProgress(&tl, now),
		Aggregates:     agg,
		Progress:       progress,
		Requirement:    goal.ComputeMonthlyRequirement(progress.Needed, remaining),
		Tip:            goal.Tip(progress.Percentage),
	}
}

func (t *Tracker) projectionInput(principal, monthly core.Amount, annualRatePercent float64) projection.Input {
	days := t.GetTimeline().TotalDays
	if days <= 0 {
		days = core.DefaultTotalDays
	}
	return projection.Input{
		Principal:         principal,
		Monthly:           monthly,
		AnnualRatePercent: annualRatePercent,
		TotalDays:         days,
		Target:            t.target(),
	}
}

// RunProjection simulates saving monthly at the given annual return over
// the length of the timeline, starting from nothing.
func (t *Tracker) RunProjection(monthly core.Amount, annualRatePercent float64) projection.Result {
	return projection.Simulate(t.projectionInput(0, monthly, annualRatePercent))
}

// RunProjectionFromSavings is RunProjection starting from the current
// savings instead of zero.
func (t *Tracker) RunProjectionFromSavings(monthly core.Amount, annualRatePercent float64) projection.Result {
	return projection.Simulate(t.projectionInput(t.GetGoalProgress().Saved, monthly, annualRatePercent))
}

// ProjectionSchedule returns the month-end balances of a projection over
// the length of the timeline.
func (t *Tracker) ProjectionSchedule(principal, monthly core.Amount, annualRatePercent float64) []projection.Point {
	tl := t.GetTimeline()
	return projection.Schedule(principal, monthly, annualRatePercent, timeline.Years(&tl))
}

// RunDailyRefreshIfNeeded recomputes the dashboard once per calendar day.
// Further calls on the same day return without writing to the store. The
// stamp is read from the store first, so a refresh done by another process
// sharing it counts.
func (t *Tracker) RunDailyRefreshIfNeeded(ctx context.Context) (RefreshResult, error) {
	now := t.now()
	if stamp, err := t.loadStamp(ctx); err != nil {
		t.logger.WarnContext(ctx, "Could not read refresh stamp, using the last known one",
			log.FieldOperation, log.OpRefresh,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeStorage)
	} else if stamp != "" {
		t.state.LastDailyUpdate = stamp
	}
	if !t.checker.IsStale(t.state.LastDailyUpdate, now) {
		return RefreshResult{Stamp: t.state.LastDailyUpdate}, nil
	}

	dash := t.GetDashboard()
	stamp := t.checker.Stamp(now)
	t.state.LastDailyUpdate = stamp
	err := t.persist(ctx, storage.KeyLastDailyUpdate, stamp)

	t.logger.WithFields(log.NewFields().
		WithOperation(log.OpRefresh).
		WithProgress(int64(dash.Progress.Saved), int64(dash.Progress.Target), dash.Progress.Percentage)).
		InfoContext(ctx, "Daily refresh completed",
			log.FieldDayStamp, stamp,
			log.FieldRemainingDays, dash.RemainingDays)

	t.publish(ctx, stamp, dash)

	return RefreshResult{Ran: true, Stamp: stamp, Dashboard: dash}, err
}

func (t *Tracker) publish(ctx context.Context, stamp string, dash Dashboard) {
	if t.publisher == nil {
		return
	}
	msg := amqp.NewRefreshMessage(stamp,
		int64(dash.Progress.Saved),
		int64(dash.Progress.Target),
		dash.Progress.Percentage,
		dash.RemainingDays,
		int64(dash.Requirement.PerMonth))
	if err := t.publisher.PublishRefresh(ctx, msg); err != nil {
		t.logger.WarnContext(ctx, "Failed to publish refresh event",
			log.FieldOperation, log.OpPublish,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeNetwork)
	}
}
