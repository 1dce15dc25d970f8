package core

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	expenses := []ExpenseRecord{
		{ID: "e2", Description: "rent", Amount: 3000000, Date: "2025-04-01", Category: CategoryNeeds, CreatedAt: "2025-04-01T08:00:00.000Z"},
		{ID: "e1", Description: "movie", Amount: 50000, Date: "2025-04-03", Category: CategoryEntertainment},
	}
	income := []IncomeRecord{
		{ID: "1714550400000", Source: SourcePrimarySalary, SourceName: "Primary salary", Amount: 10000000, Date: "2025-04-25", Notes: "april"},
	}
	tl := &Timeline{StartDate: NewDate(2025, 1, 1), EndDate: NewDate(2028, 1, 1), TotalDays: 1095}
	snap := NewSnapshot(expenses, income, Settings{TargetAmount: 500000000}, tl, now)

	if snap.Version != SnapshotVersion {
		t.Fatalf("version = %q", snap.Version)
	}
	if snap.Metadata.TotalExpenses != 2 || snap.Metadata.TotalIncome != 1 {
		t.Fatalf("unexpected counts: %+v", snap.Metadata)
	}
	if snap.Metadata.TotalSaved != 10000000-3050000 {
		t.Fatalf("unexpected total saved: %d", snap.Metadata.TotalSaved)
	}

	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(back.Expenses, expenses) {
		t.Errorf("expenses changed:\n got %+v\nwant %+v", back.Expenses, expenses)
	}
	if !reflect.DeepEqual(back.Income, income) {
		t.Errorf("income changed:\n got %+v\nwant %+v", back.Income, income)
	}
	if back.Settings.TargetAmount != 500000000 {
		t.Errorf("target changed: %d", back.Settings.TargetAmount)
	}
	if back.Timeline == nil || back.Timeline.EndDate.String() != "2028-01-01" {
		t.Errorf("timeline not restored: %+v", back.Timeline)
	}
}

func TestDecodeSnapshotRequiresFields(t *testing.T) {
	cases := map[string]string{
		"missing version":  `{"expenses":[],"income":[]}`,
		"empty version":    `{"version":"","expenses":[],"income":[]}`,
		"missing expenses": `{"version":"3.1","income":[]}`,
		"null income":      `{"version":"3.1","expenses":[],"income":null}`,
		"not json":         `{{`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeSnapshot([]byte(in)); !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}

	snap, err := DecodeSnapshot([]byte(`{"version":"3.0","expenses":[],"income":[]}`))
	if err != nil {
		t.Fatalf("minimal snapshot rejected: %v", err)
	}
	if snap.Settings.Target() != DefaultTargetAmount {
		t.Errorf("expected default target, got %d", snap.Settings.Target())
	}
}

func TestDecodeSnapshotSkipsBadRecords(t *testing.T) {
	data := []byte(`{
		"version": "3.1",
		"expenses": [
			{"id": "ok", "description": "rent", "amount": 3000000, "date": "2025-01-02", "category": "needs"},
			{"id": "bad", "description": "fuel", "amount": 200000, "date": 20250103, "category": "needs"}
		],
		"income": [
			"garbage",
			{"id": 7, "source": "freelance", "amount": 500000, "date": "2025-01-05"}
		],
		"checklist": [{"id": "c1", "text": "budget", "completed": true}],
		"timeline": {"startDate": 5},
		"metadata": "n/a"
	}`)

	snap, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != "ok" {
		t.Errorf("expenses = %+v, want only the valid record", snap.Expenses)
	}
	if len(snap.Income) != 1 || snap.Income[0].ID != "7" {
		t.Errorf("income = %+v, want only the valid record", snap.Income)
	}
	if len(snap.Checklist) != 1 || !snap.Checklist[0].Completed {
		t.Errorf("checklist = %+v", snap.Checklist)
	}
	if snap.Timeline != nil {
		t.Errorf("unreadable timeline kept: %+v", snap.Timeline)
	}

	kinds := map[string]int{}
	for _, s := range snap.Skipped {
		kinds[s.Kind]++
	}
	want := map[string]int{"expenses": 1, "income": 1, "timeline": 1}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("skipped = %v, want %v", kinds, want)
	}
	if snap.Skipped[0].Index != 1 {
		t.Errorf("skipped expense index = %d, want 1", snap.Skipped[0].Index)
	}
}
