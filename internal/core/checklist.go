package core

import "strings"

const maxChecklistTextLength = 200

// ChecklistItem is one entry of the financial to-do list.
type ChecklistItem struct {
	ID          RecordID `json:"id"`
	Text        string   `json:"text"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
}

func (c ChecklistItem) Key() RecordID { return c.ID }

// ValidateChecklistText checks the text of a new or edited item.
func ValidateChecklistText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return NewValidationError("text", ErrEmptyRequiredField, "please enter the checklist text")
	}
	if len(text) > maxChecklistTextLength {
		return NewValidationError("text", ErrDescriptionTooLong, "checklist text too long (max 200 characters)")
	}
	return nil
}

// DefaultChecklist returns the items a fresh install starts with.
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{ID: "check1", Text: "Make a monthly budget"},
		{ID: "check2", Text: "Save 30% of income"},
		{ID: "check3", Text: "Pay every bill on time", Completed: true},
		{ID: "check4", Text: "Review investments every month"},
	}
}
