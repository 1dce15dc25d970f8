package services

import (
	"context"
	"fmt"
	"strings"

	"masterplan/internal/core"
	"masterplan/internal/log"
	"masterplan/internal/storage"
)

// Checklist returns a copy of the checklist items in order.
func (t *Tracker) Checklist() []core.ChecklistItem {
	return append([]core.ChecklistItem(nil), t.state.Checklist...)
}

// AddChecklistItem appends a new open item.
func (t *Tracker) AddChecklistItem(ctx context.Context, text string) (core.ChecklistItem, error) {
	if err := core.ValidateChecklistText(text); err != nil {
		return core.ChecklistItem{}, err
	}
	item := core.ChecklistItem{
		ID:        core.NewRecordID(),
		Text:      strings.TrimSpace(text),
		CreatedAt: core.Timestamp(t.now()),
	}
	t.state.Checklist = append(t.state.Checklist, item)

	t.logger.InfoContext(ctx, "Added checklist item", log.FieldOperation, log.OpCreate, log.FieldRecordID, item.ID.String())
	return item, t.persist(ctx, storage.KeyChecklist, t.state.Checklist)
}

// ToggleChecklistItem flips the completed flag of an item.
func (t *Tracker) ToggleChecklistItem(ctx context.Context, id core.RecordID) (core.ChecklistItem, error) {
	return t.updateChecklistItem(ctx, id, func(item *core.ChecklistItem) {
		item.Completed = !item.Completed
	})
}

// SetChecklistText replaces the text of an item.
func (t *Tracker) SetChecklistText(ctx context.Context, id core.RecordID, text string) (core.ChecklistItem, error) {
	if err := core.ValidateChecklistText(text); err != nil {
		return core.ChecklistItem{}, err
	}
	return t.updateChecklistItem(ctx, id, func(item *core.ChecklistItem) {
		item.Text = strings.TrimSpace(text)
	})
}

func (t *Tracker) updateChecklistItem(ctx context.Context, id core.RecordID, apply func(*core.ChecklistItem)) (core.ChecklistItem, error) {
	idx := indexOf(t.state.Checklist, id)
	if idx < 0 {
		return core.ChecklistItem{}, fmt.Errorf("checklist item %s: %w", id, core.ErrRecordNotFound)
	}
	item := &t.state.Checklist[idx]
	apply(item)
	item.LastUpdated = core.Timestamp(t.now())

	t.logger.InfoContext(ctx, "Updated checklist item",
		log.FieldOperation, log.OpUpdate,
		log.FieldRecordID, item.ID.String(),
		"completed", item.Completed)
	return *item, t.persist(ctx, storage.KeyChecklist, t.state.Checklist)
}

// DeleteChecklistItem removes an item.
func (t *Tracker) DeleteChecklistItem(ctx context.Context, id core.RecordID) error {
	idx := indexOf(t.state.Checklist, id)
	if idx < 0 {
		return fmt.Errorf("checklist item %s: %w", id, core.ErrRecordNotFound)
	}
	t.state.Checklist = append(t.state.Checklist[:idx:idx], t.state.Checklist[idx+1:]...)

	t.logger.InfoContext(ctx, "Deleted checklist item", log.FieldOperation, log.OpDelete, log.FieldRecordID, id.String())
	return t.persist(ctx, storage.KeyChecklist, t.state.Checklist)
}
