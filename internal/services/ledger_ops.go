package services

import (
	"context"
	"fmt"
	"strings"

	"masterplan/internal/core"
	"masterplan/internal/ledger"
	"masterplan/internal/log"
	"masterplan/internal/storage"
)

// AddExpense validates and records a new expense. A missing date means
// today. The stored record is returned.
func (t *Tracker) AddExpense(ctx context.Context, e core.ExpenseRecord) (core.ExpenseRecord, error) {
	now := t.now()
	e.Description = strings.TrimSpace(e.Description)
	if strings.TrimSpace(e.Date) == "" {
		e.Date = core.DateOf(now).String()
	}
	if err := e.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	if d, err := core.ParseDate(e.Date); err == nil {
		e.Date = d.String()
	}
	if e.ID == "" {
		e.ID = core.NewRecordID()
	}
	e.CreatedAt = core.Timestamp(now)

	t.state.Expenses = append(t.state.Expenses, e)
	t.bump()

	t.logger.WithFields(log.NewFields().
		WithOperation(log.OpCreate).
		WithRecord("expense", e.ID.String(), int64(e.Amount), e.Date)).
		InfoContext(ctx, "Added expense", log.FieldCategory, string(e.Category))

	return e, t.persist(ctx, storage.KeyExpenses, t.state.Expenses)
}

// DeleteExpense removes the expense with the given id.
func (t *Tracker) DeleteExpense(ctx context.Context, id core.RecordID) error {
	idx := indexOf(t.state.Expenses, id)
	if idx < 0 {
		return fmt.Errorf("expense %s: %w", id, core.ErrRecordNotFound)
	}
	t.state.Expenses = append(t.state.Expenses[:idx:idx], t.state.Expenses[idx+1:]...)
	t.bump()

	t.logger.InfoContext(ctx, "Deleted expense", log.FieldOperation, log.OpDelete, log.FieldRecordID, id.String())
	return t.persist(ctx, storage.KeyExpenses, t.state.Expenses)
}

// AddIncome validates and records a new income entry. A missing date
// means today.
func (t *Tracker) AddIncome(ctx context.Context, i core.IncomeRecord) (core.IncomeRecord, error) {
	now := t.now()
	if strings.TrimSpace(i.Date) == "" {
		i.Date = core.DateOf(now).String()
	}
	if err := i.Validate(); err != nil {
		return core.IncomeRecord{}, err
	}
	if d, err := core.ParseDate(i.Date); err == nil {
		i.Date = d.String()
	}
	if i.ID == "" {
		i.ID = core.NewRecordID()
	}
	if i.SourceName == "" {
		i.SourceName = i.Source.DisplayName()
	}
	i.Notes = strings.TrimSpace(i.Notes)
	i.CreatedAt = core.Timestamp(now)

	t.state.Income = append(t.state.Income, i)
	t.bump()

	t.logger.WithFields(log.NewFields().
		WithOperation(log.OpCreate).
		WithRecord("income", i.ID.String(), int64(i.Amount), i.Date)).
		InfoContext(ctx, "Added income", log.FieldSource, string(i.Source))

	return i, t.persist(ctx, storage.KeyIncome, t.state.Income)
}

// DeleteIncome removes the income record with the given id.
func (t *Tracker) DeleteIncome(ctx context.Context, id core.RecordID) error {
	idx := indexOf(t.state.Income, id)
	if idx < 0 {
		return fmt.Errorf("income %s: %w", id, core.ErrRecordNotFound)
	}
	t.state.Income = append(t.state.Income[:idx:idx], t.state.Income[idx+1:]...)
	t.bump()

	t.logger.InfoContext(ctx, "Deleted income", log.FieldOperation, log.OpDelete, log.FieldRecordID, id.String())
	return t.persist(ctx, storage.KeyIncome, t.state.Income)
}

type keyed interface {
	Key() core.RecordID
}

func indexOf[R keyed](records []R, id core.RecordID) int {
	id = core.RecordID(strings.TrimSpace(string(id)))
	for i, r := range records {
		if r.Key() == id {
			return i
		}
	}
	return -1
}

// ExpensesForMonth lists the expenses of a month filter ("current", "all"
// or "2006-01"), newest first.
func (t *Tracker) ExpensesForMonth(key string) []core.ExpenseRecord {
	return ledger.SortNewestFirst(ledger.FilterByMonth(t.state.Expenses, key, t.now()))
}

// IncomeForMonth lists the income of a month filter, newest first.
func (t *Tracker) IncomeForMonth(key string) []core.IncomeRecord {
	return ledger.SortNewestFirst(ledger.FilterByMonth(t.state.Income, key, t.now()))
}

// GetAggregates returns the ledger totals. Results are cached per state
// revision.
func (t *Tracker) GetAggregates() ledger.Aggregates {
	key := t.aggregateKey()
	if agg, ok := t.aggregates.Get(key); ok {
		return agg
	}
	agg := ledger.Summarize(t.state.Expenses, t.state.Income)
	t.aggregates.Set(key, agg)
	return agg
}
