package services

import (
	"context"
	"errors"
	"fmt"

	"masterplan/internal/core"
	"masterplan/internal/log"
	"masterplan/internal/storage"
	"masterplan/internal/timeline"
)

// ToSnapshot returns an export document of the current state.
func (t *Tracker) ToSnapshot() core.Snapshot {
	tl := t.GetTimeline()
	snap := core.NewSnapshot(t.state.Expenses, t.state.Income, t.Settings(), &tl, t.now())
	snap.Checklist = t.Checklist()
	return snap
}

// ExportJSON encodes ToSnapshot.
func (t *Tracker) ExportJSON() ([]byte, error) {
	data, err := t.ToSnapshot().Encode()
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ImportJSON decodes an export document and replaces the state with it.
func (t *Tracker) ImportJSON(ctx context.Context, data []byte) error {
	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	return t.LoadFromSnapshot(ctx, snap)
}

// LoadFromSnapshot replaces the ledger and settings with the snapshot
// contents. The snapshot timeline is applied only when it is a valid
// range; otherwise the current timeline is kept. The checklist is replaced
// only when the snapshot carries one. Records skipped while decoding are
// logged.
func (t *Tracker) LoadFromSnapshot(ctx context.Context, snap *core.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: empty snapshot", core.ErrInvalidSnapshot)
	}
	t.skipped(ctx, snap.Skipped)

	expenses := append([]core.ExpenseRecord{}, snap.Expenses...)
	for i := range expenses {
		if expenses[i].ID == "" {
			expenses[i].ID = core.NewRecordID()
		}
	}
	income := append([]core.IncomeRecord{}, snap.Income...)
	for i := range income {
		if income[i].ID == "" {
			income[i].ID = core.NewRecordID()
		}
	}

	settings := core.Settings{TargetAmount: snap.Settings.TargetAmount}
	if settings.TargetAmount <= 0 {
		settings.TargetAmount = t.defaultTarget
	}

	t.state.Expenses = expenses
	t.state.Income = income
	t.state.Settings = settings

	warnings := []error{
		t.persist(ctx, storage.KeyExpenses, expenses),
		t.persist(ctx, storage.KeyIncome, income),
		t.persist(ctx, storage.KeySettings, settings),
	}

	if snap.Checklist != nil {
		checklist := append([]core.ChecklistItem{}, snap.Checklist...)
		for i := range checklist {
			if checklist[i].ID == "" {
				checklist[i].ID = core.NewRecordID()
			}
		}
		t.state.Checklist = checklist
		warnings = append(warnings, t.persist(ctx, storage.KeyChecklist, checklist))
	}

	if tl := snap.Timeline; tl.IsSet() && tl.EndDate.After(tl.StartDate) {
		imported := *tl
		imported.TotalDays = timeline.TotalDays(imported)
		if imported.LastUpdated == "" {
			imported.LastUpdated = core.Timestamp(t.now())
		}
		t.state.Timeline = &imported
		warnings = append(warnings, t.persist(ctx, storage.KeyTimeline, imported))
	}

	t.bump()
	t.logger.InfoContext(ctx, "Imported snapshot",
		log.FieldOperation, log.OpImport,
		"version", snap.Version,
		"expenses", len(expenses),
		"income", len(income),
		"skipped", len(snap.Skipped))

	return errors.Join(warnings...)
}
