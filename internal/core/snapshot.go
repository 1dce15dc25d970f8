package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is written into every export.
const SnapshotVersion = "3.1"

// Snapshot is the import/export document.
type Snapshot struct {
	Version    string           `json:"version"`
	ExportDate string           `json:"exportDate"`
	Expenses   []ExpenseRecord  `json:"expenses"`
	Income     []IncomeRecord   `json:"income"`
	Settings   Settings         `json:"settings"`
	Timeline   *Timeline        `json:"timeline,omitempty"`
	Checklist  []ChecklistItem  `json:"checklist,omitempty"`
	Metadata   SnapshotMetadata `json:"metadata"`

	// Skipped lists the records DecodeSnapshot dropped.
	Skipped []SkippedRecord `json:"-"`
}

// SkippedRecord describes an array element that could not be decoded.
type SkippedRecord struct {
	Kind  string
	Index int
	Err   error
}

func (s SkippedRecord) Error() string {
	return fmt.Sprintf("%s[%d]: %v", s.Kind, s.Index, s.Err)
}

// DecodeRecords decodes each element of a JSON array on its own so one
// corrupt element does not discard the others. Failed elements are
// returned as SkippedRecord values tagged with kind.
func DecodeRecords[R any](kind string, items []json.RawMessage) ([]R, []SkippedRecord) {
	out := make([]R, 0, len(items))
	var skipped []SkippedRecord
	for i, item := range items {
		var r R
		if err := json.Unmarshal(item, &r); err != nil {
			skipped = append(skipped, SkippedRecord{Kind: kind, Index: i, Err: err})
			continue
		}
		out = append(out, r)
	}
	return out, skipped
}

// SnapshotMetadata holds record counts and the raw balance at export time.
type SnapshotMetadata struct {
	TotalExpenses int    `json:"totalExpenses"`
	TotalIncome   int    `json:"totalIncome"`
	TotalSaved    Amount `json:"totalSaved"`
}

// NewSnapshot assembles an export document. Slices are copied so the
// snapshot does not alias the caller's state.
func NewSnapshot(expenses []ExpenseRecord, income []IncomeRecord, settings Settings, tl *Timeline, now time.Time) Snapshot {
	exp := make([]ExpenseRecord, len(expenses))
	copy(exp, expenses)
	inc := make([]IncomeRecord, len(income))
	copy(inc, income)

	var spent, earned Amount
	for _, e := range exp {
		spent += e.Amount
	}
	for _, i := range inc {
		earned += i.Amount
	}

	var timeline *Timeline
	if tl != nil {
		c := *tl
		timeline = &c
	}

	return Snapshot{
		Version:    SnapshotVersion,
		ExportDate: Timestamp(now),
		Expenses:   exp,
		Income:     inc,
		Settings:   settings,
		Timeline:   timeline,
		Metadata: SnapshotMetadata{
			TotalExpenses: len(exp),
			TotalIncome:   len(inc),
			TotalSaved:    earned - spent,
		},
	}
}

// DecodeSnapshot parses an import document. The version, expenses and
// income fields must be present. Records that fail to decode are left out
// and listed in Skipped.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, required := range []string{"version", "expenses", "income"} {
		raw, ok := fields[required]
		if !ok || string(raw) == "null" || string(raw) == `""` {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, required)
		}
	}

	var doc struct {
		Version    string            `json:"version"`
		ExportDate string            `json:"exportDate"`
		Expenses   []json.RawMessage `json:"expenses"`
		Income     []json.RawMessage `json:"income"`
		Checklist  []json.RawMessage `json:"checklist"`
		Settings   json.RawMessage   `json:"settings"`
		Timeline   json.RawMessage   `json:"timeline"`
		Metadata   json.RawMessage   `json:"metadata"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	snap := Snapshot{
		Version:    doc.Version,
		ExportDate: doc.ExportDate,
	}
	if len(doc.Metadata) > 0 {
		// Counts are recomputed on export, so bad metadata is ignored.
		_ = json.Unmarshal(doc.Metadata, &snap.Metadata)
	}
	var skipped []SkippedRecord
	snap.Expenses, skipped = DecodeRecords[ExpenseRecord]("expenses", doc.Expenses)
	snap.Skipped = append(snap.Skipped, skipped...)
	snap.Income, skipped = DecodeRecords[IncomeRecord]("income", doc.Income)
	snap.Skipped = append(snap.Skipped, skipped...)
	if doc.Checklist != nil {
		snap.Checklist, skipped = DecodeRecords[ChecklistItem]("checklist", doc.Checklist)
		snap.Skipped = append(snap.Skipped, skipped...)
	}

	// Settings and timeline are optional; unreadable values are dropped.
	if len(doc.Settings) > 0 {
		if err := json.Unmarshal(doc.Settings, &snap.Settings); err != nil {
			snap.Settings = Settings{}
			snap.Skipped = append(snap.Skipped, SkippedRecord{Kind: "settings", Err: err})
		}
	}
	if len(doc.Timeline) > 0 && string(doc.Timeline) != "null" {
		var tl Timeline
		if err := json.Unmarshal(doc.Timeline, &tl); err != nil {
			snap.Skipped = append(snap.Skipped, SkippedRecord{Kind: "timeline", Err: err})
		} else {
			snap.Timeline = &tl
		}
	}

	if snap.Settings.TargetAmount == 0 {
		snap.Settings.TargetAmount = DefaultTargetAmount
	}
	return &snap, nil
}

// Encode returns the indented JSON form of the snapshot.
func (s Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
