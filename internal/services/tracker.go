package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"masterplan/internal/amqp"
	"masterplan/internal/cache"
	"masterplan/internal/core"
	"masterplan/internal/ledger"
	"masterplan/internal/log"
	"masterplan/internal/storage"
	"masterplan/internal/timeline"
)

// State is the single owned copy of everything the tracker persists.
type State struct {
	Timeline        *core.Timeline
	Expenses        []core.ExpenseRecord
	Income          []core.IncomeRecord
	Settings        core.Settings
	Checklist       []core.ChecklistItem
	LastDailyUpdate string
}

// RefreshPublisher receives an event after each daily recomputation.
type RefreshPublisher interface {
	PublishRefresh(ctx context.Context, msg *amqp.RefreshMessage) error
}

// Tracker loads the state from a store, applies user operations to it and
// writes every change back. It has a single owner and is not safe for
// concurrent use.
type Tracker struct {
	store         storage.Store
	logger        *log.Logger
	now           func() time.Time
	checker       StalenessChecker
	publisher     RefreshPublisher
	aggregates    cache.Cache[ledger.Aggregates]
	defaultTarget core.Amount

	state    State
	revision uint64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger.WithComponent(log.ComponentTracker)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithPublisher enables refresh events.
func WithPublisher(p RefreshPublisher) Option {
	return func(t *Tracker) { t.publisher = p }
}

// WithAggregateCache replaces the default aggregate cache.
func WithAggregateCache(c cache.Cache[ledger.Aggregates]) Option {
	return func(t *Tracker) {
		if c != nil {
			t.aggregates = c
		}
	}
}

// WithStalenessChecker replaces the daily refresh strategy.
func WithStalenessChecker(c StalenessChecker) Option {
	return func(t *Tracker) {
		if c != nil {
			t.checker = c
		}
	}
}

// WithDefaultTarget sets the target used when none is stored.
func WithDefaultTarget(target core.Amount) Option {
	return func(t *Tracker) {
		if target > 0 {
			t.defaultTarget = target
		}
	}
}

// NewTracker creates a tracker over store. Call Load before use.
func NewTracker(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:         store,
		logger:        log.Discard().WithComponent(log.ComponentTracker),
		now:           time.Now,
		checker:       DailyChecker{},
		aggregates:    cache.NewLRUCache[ledger.Aggregates](16, 5*time.Minute),
		defaultTarget: core.DefaultTargetAmount,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = State{
		Expenses:  []core.ExpenseRecord{},
		Income:    []core.IncomeRecord{},
		Checklist: core.DefaultChecklist(),
		Settings:  core.Settings{TargetAmount: t.defaultTarget},
	}
	return t
}

// Load reads every persisted key. Corrupt values are logged and replaced
// with defaults. The returned error is either a storage read failure or a
// PersistWarning from writing repaired values back.
func (t *Tracker) Load(ctx context.Context) error {
	settings, err := t.loadSettings(ctx)
	if err != nil {
		return err
	}
	expenses, err := loadRecords[core.ExpenseRecord](ctx, t, storage.KeyExpenses)
	if err != nil {
		return err
	}
	income, err := loadRecords[core.IncomeRecord](ctx, t, storage.KeyIncome)
	if err != nil {
		return err
	}
	checklist, err := t.loadChecklist(ctx)
	if err != nil {
		return err
	}
	stamp, err := t.loadStamp(ctx)
	if err != nil {
		return err
	}

	for i := range expenses {
		if expenses[i].ID == "" {
			expenses[i].ID = core.NewRecordID()
		}
	}
	for i := range income {
		if income[i].ID == "" {
			income[i].ID = core.NewRecordID()
		}
	}

	t.state = State{
		Expenses:        expenses,
		Income:          income,
		Checklist:       checklist,
		Settings:        settings,
		LastDailyUpdate: stamp,
	}

	var warnings []error
	tl, repaired, err := t.loadTimeline(ctx, settings)
	if err != nil {
		return err
	}
	t.state.Timeline = &tl
	if repaired {
		warnings = append(warnings, t.persist(ctx, storage.KeyTimeline, tl))
	}

	if t.state.Settings.TimelineYears != nil {
		t.state.Settings.TimelineYears = nil
		warnings = append(warnings, t.persist(ctx, storage.KeySettings, t.state.Settings))
	}

	t.bump()
	t.logger.InfoContext(ctx, "Loaded tracker state",
		"expenses", len(expenses),
		"income", len(income),
		log.FieldTarget, int64(t.target()),
		log.FieldStartDate, tl.StartDate.String(),
		log.FieldEndDate, tl.EndDate.String())

	return errors.Join(warnings...)
}

// Reload discards the in-memory state and reads it again from the store.
// Long-running owners call it to pick up writes made by other processes.
func (t *Tracker) Reload(ctx context.Context) error {
	return t.Load(ctx)
}

func (t *Tracker) read(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw, ok && strings.TrimSpace(raw) != "", nil
}

func (t *Tracker) corrupt(ctx context.Context, key string, err error) {
	t.logger.WarnContext(ctx, "Corrupt persisted value, using default",
		log.FieldKey, key,
		log.FieldError, fmt.Errorf("%w: %v", core.ErrCorruptRecord, err),
		log.FieldErrorType, log.ErrorTypeCorruption)
}

func (t *Tracker) loadSettings(ctx context.Context) (core.Settings, error) {
	raw, ok, err := t.read(ctx, storage.KeySettings)
	if err != nil || !ok {
		return core.Settings{TargetAmount: t.defaultTarget}, err
	}
	var s core.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.corrupt(ctx, storage.KeySettings, err)
		return core.Settings{TargetAmount: t.defaultTarget}, nil
	}
	if s.TargetAmount <= 0 {
		s.TargetAmount = t.defaultTarget
	}
	return s, nil
}

func loadRecords[R any](ctx context.Context, t *Tracker, key string) ([]R, error) {
	raw, ok, err := t.read(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []R{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.corrupt(ctx, key, err)
		return []R{}, nil
	}

	out, skipped := core.DecodeRecords[R](key, items)
	t.skipped(ctx, skipped)
	return out, nil
}

func (t *Tracker) skipped(ctx context.Context, records []core.SkippedRecord) {
	for _, r := range records {
		t.logger.WarnContext(ctx, "Skipping corrupt record",
			log.FieldKey, r.Kind,
			"index", r.Index,
			log.FieldError, r.Err,
			log.FieldErrorType, log.ErrorTypeCorruption)
	}
}

// loadChecklist returns the stored checklist, or the default items when
// none was ever saved.
func (t *Tracker) loadChecklist(ctx context.Context) ([]core.ChecklistItem, error) {
	_, ok, err := t.read(ctx, storage.KeyChecklist)
	if err != nil {
		return nil, err
	}
	if !ok {
		return core.DefaultChecklist(), nil
	}
	return loadRecords[core.ChecklistItem](ctx, t, storage.KeyChecklist)
}

func (t *Tracker) loadStamp(ctx context.Context) (string, error) {
	raw, ok, err := t.read(ctx, storage.KeyLastDailyUpdate)
	if err != nil || !ok {
		return "", err
	}
	var stamp string
	if err := json.Unmarshal([]byte(raw), &stamp); err != nil {
		// Older data stored the stamp unquoted.
		return strings.TrimSpace(raw), nil
	}
	return stamp, nil
}

// loadTimeline returns the stored timeline, or a new one when it is
// missing or corrupt. repaired is true when the result must be written
// back.
func (t *Tracker) loadTimeline(ctx context.Context, settings core.Settings) (core.Timeline, bool, error) {
	now := t.now()

	raw, ok, err := t.read(ctx, storage.KeyTimeline)
	if err != nil {
		return core.Timeline{}, false, err
	}
	if ok {
		var tl core.Timeline
		err := json.Unmarshal([]byte(raw), &tl)
		if err == nil && tl.IsSet() {
			if days := timeline.TotalDays(tl); days != tl.TotalDays {
				tl.TotalDays = days
				return tl, true, nil
			}
			return tl, false, nil
		}
		if err == nil {
			err = errors.New("missing start or end date")
		}
		t.corrupt(ctx, storage.KeyTimeline, err)
	}

	if years := settings.TimelineYears; years != nil && *years > 0 {
		tl := timeline.MigrateFromYears(*years, now)
		t.logger.InfoContext(ctx, "Migrated legacy timeline setting",
			log.FieldOperation, log.OpMigrate,
			"years", *years,
			log.FieldEndDate, tl.EndDate.String())
		return tl, true, nil
	}

	return timeline.CreateDefault(now), true, nil
}

// persist writes v under key. A failed write is logged and returned as a
// PersistWarning; the in-memory state is kept.
func (t *Tracker) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, string(data)); err != nil {
		t.logger.WarnContext(ctx, "Failed to persist, keeping in-memory state",
			log.FieldKey, key,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeStorage)
		return &core.PersistWarning{Key: key, Err: err}
	}
	return nil
}

// bump marks derived values as stale.
func (t *Tracker) bump() {
	t.revision++
}

func (t *Tracker) target() core.Amount {
	if t.state.Settings.TargetAmount <= 0 {
		return t.defaultTarget
	}
	return t.state.Settings.TargetAmount
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	s := t.state
	s.Expenses = append([]core.ExpenseRecord(nil), t.state.Expenses...)
	s.Income = append([]core.IncomeRecord(nil), t.state.Income...)
	s.Checklist = append([]core.ChecklistItem(nil), t.state.Checklist...)
	if t.state.Timeline != nil {
		tl := *t.state.Timeline
		s.Timeline = &tl
	}
	return s
}

// Settings returns the current settings.
func (t *Tracker) Settings() core.Settings {
	return core.Settings{TargetAmount: t.target()}
}

// SaveSettings replaces the savings target.
func (t *Tracker) SaveSettings(ctx context.Context, target core.Amount) (core.Settings, error) {
	if target <= 0 {
		return t.Settings(), core.NewValidationError("targetAmount", core.ErrInvalidAmount, "please enter a positive target amount")
	}
	t.state.Settings = core.Settings{TargetAmount: target}
	t.bump()
	t.logger.InfoContext(ctx, "Saved settings", log.FieldTarget, int64(target))
	return t.state.Settings, t.persist(ctx, storage.KeySettings, t.state.Settings)
}

// ResetAll clears the ledger and restores the default settings and
// timeline.
func (t *Tracker) ResetAll(ctx context.Context) error {
	tl := timeline.CreateDefault(t.now())
	t.state = State{
		Timeline: &tl,
		Expenses: []core.ExpenseRecord{},
		Income:   []core.IncomeRecord{},
		Settings: core.Settings{TargetAmount: t.defaultTarget},
	}
	t.bump()

	warnings := []error{
		t.persist(ctx, storage.KeyTimeline, tl),
		t.persist(ctx, storage.KeyExpenses, t.state.Expenses),
		t.persist(ctx, storage.KeyIncome, t.state.Income),
		t.persist(ctx, storage.KeySettings, t.state.Settings),
	}
	t.state.Checklist = core.DefaultChecklist()
	if err := t.store.Delete(ctx, storage.KeyChecklist); err != nil {
		warnings = append(warnings, &core.PersistWarning{Key: storage.KeyChecklist, Err: err})
	}
	if err := t.store.Delete(ctx, storage.KeyLastDailyUpdate); err != nil {
		warnings = append(warnings, &core.PersistWarning{Key: storage.KeyLastDailyUpdate, Err: err})
	}

	t.logger.InfoContext(ctx, "Reset all data", log.FieldOperation, log.OpReset)
	return errors.Join(warnings...)
}

func (t *Tracker) aggregateKey() string {
	return strconv.FormatUint(t.revision, 10)
}
