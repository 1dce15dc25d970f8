// Package worker runs the daily refresh on a ticker.
package worker

import (
	"context"
	"time"

	"masterplan/internal/core"
	"masterplan/internal/log"
	"masterplan/internal/services"
)

// Refresher is the tracker operation driven by the worker. Reload is
// called before every check so records written by other processes count.
type Refresher interface {
	Reload(ctx context.Context) error
	RunDailyRefreshIfNeeded(ctx context.Context) (services.RefreshResult, error)
}

// RefreshWorker reloads the state and checks for a calendar-day change on
// start and on every tick. It is the only goroutine touching the tracker.
type RefreshWorker struct {
	tracker  Refresher
	interval time.Duration
	logger   *log.Logger
}

func NewRefreshWorker(tracker Refresher, interval time.Duration, logger *log.Logger) *RefreshWorker {
	if logger == nil {
		logger = log.Discard()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &RefreshWorker{
		tracker:  tracker,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until ctx is cancelled. Refresh errors are logged and the
// worker keeps going.
func (w *RefreshWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Refresh worker started", "interval", w.interval)

	// Run initial check on startup
	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Refresh worker stopped")
			return nil
		case now := <-ticker.C:
			w.check(ctx)
			w.logger.DebugContext(ctx, "Refresh check complete",
				"next_check", now.Add(w.interval).Format("15:04:05"))
		}
	}
}

func (w *RefreshWorker) check(ctx context.Context) {
	start := time.Now()
	if err := w.tracker.Reload(ctx); err != nil {
		if !core.IsWarning(err) {
			w.logger.ErrorContext(ctx, "Failed to reload state, skipping check",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err,
				log.FieldErrorType, log.ErrorTypeStorage)
			return
		}
		w.logger.WarnContext(ctx, "State reloaded but repairs were not saved", log.FieldError, err)
	}

	res, err := w.tracker.RunDailyRefreshIfNeeded(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Daily refresh failed",
			log.FieldOperation, log.OpRefresh,
			log.FieldError, err)
		return
	}
	if res.Ran {
		w.logger.InfoContext(ctx, "New day detected, figures recomputed",
			log.FieldDayStamp, res.Stamp,
			log.FieldRemainingDays, res.Dashboard.RemainingDays,
			log.FieldProgress, res.Dashboard.Progress.Percentage,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}
