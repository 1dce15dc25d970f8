package core

import (
	"errors"
	"strings"
)

// Category keys for expenses.
const (
	CategoryFamily        Category = "family"
	CategoryNeeds         Category = "needs"
	CategoryEntertainment Category = "entertainment"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"
)

// Income source keys.
const (
	SourcePrimarySalary    IncomeSource = "primary_salary"
	SourceFreelance        IncomeSource = "freelance"
	SourceBonus            IncomeSource = "bonus"
	SourceInvestmentReturn IncomeSource = "investment_return"
	SourceOther            IncomeSource = "other"
)

const (
	// DefaultTargetAmount is the savings target used when none is configured.
	DefaultTargetAmount Amount = 300_000_000
	// DefaultTimelineYears is the span of a freshly created timeline.
	DefaultTimelineYears = 3
	// DefaultTotalDays is the remaining-days fallback when no end date is known.
	DefaultTotalDays = 1095
	// DaysPerMonth is the average month length used for monthly requirements.
	DaysPerMonth = 30.44

	maxDescriptionLength = 200
)

type (
	Category     string
	IncomeSource string

	ExpenseRecord struct {
		ID          RecordID `json:"id"`
		Description string   `json:"description"`
		Amount      Amount   `json:"amount"`
		Date        string   `json:"date"`
		Category    Category `json:"category"`
		CreatedAt   string   `json:"createdAt,omitempty"`
	}

	IncomeRecord struct {
		ID         RecordID     `json:"id"`
		Source     IncomeSource `json:"source"`
		SourceName string       `json:"sourceName,omitempty"`
		Amount     Amount       `json:"amount"`
		Date       string       `json:"date"`
		Notes      string       `json:"notes,omitempty"`
		CreatedAt  string       `json:"createdAt,omitempty"`
	}

	// Settings holds user preferences. TimelineYears is only read once to
	// migrate old data into a date-range timeline.
	Settings struct {
		TargetAmount  Amount   `json:"targetAmount"`
		TimelineYears *float64 `json:"timelineYears,omitempty"`
	}

	// Timeline is the savings period. Dates are calendar days.
	Timeline struct {
		StartDate   Date   `json:"startDate"`
		EndDate     Date   `json:"endDate"`
		TotalDays   int    `json:"totalDays"`
		CreatedAt   string `json:"createdAt,omitempty"`
		LastUpdated string `json:"lastUpdated,omitempty"`
	}
)

var (
	ErrInvalidDateFormat          = errors.New("invalid date format")
	ErrEndNotAfterStart           = errors.New("end date must be after start date")
	ErrEmptyRequiredField         = errors.New("required field is empty")
	ErrPersistenceWrite           = errors.New("persistence write failed")
	ErrCorruptRecord              = errors.New("corrupt persisted record")
	ErrUnparseableTransactionDate = errors.New("unparseable transaction date")
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrInvalidCategory            = errors.New("invalid category")
	ErrInvalidSource              = errors.New("invalid income source")
	ErrEmptyDescription           = errors.New("empty description")
	ErrDescriptionTooLong         = errors.New("description too long")
	ErrRecordNotFound             = errors.New("record not found")
	ErrSaveCancelled              = errors.New("save cancelled")
	ErrInvalidSnapshot            = errors.New("invalid snapshot")
)

var categoryAliases = map[string]Category{
	"keluarga":  CategoryFamily,
	"kebutuhan": CategoryNeeds,
	"hiburan":   CategoryEntertainment,
	"investasi": CategoryInvestment,
	"lainnya":   CategoryOther,
}

var sourceAliases = map[string]IncomeSource{
	"gaji_utama": SourcePrimarySalary,
	"investasi":  SourceInvestmentReturn,
	"lainnya":    SourceOther,
}

var sourceNames = map[IncomeSource]string{
	SourcePrimarySalary:    "Primary salary",
	SourceFreelance:        "Freelance",
	SourceBonus:            "Bonus",
	SourceInvestmentReturn: "Investment return",
	SourceOther:            "Other",
}

// Categories returns every expense category in display order.
func Categories() []Category {
	return []Category{CategoryFamily, CategoryNeeds, CategoryEntertainment, CategoryInvestment, CategoryOther}
}

// Sources returns every income source in display order.
func Sources() []IncomeSource {
	return []IncomeSource{SourcePrimarySalary, SourceFreelance, SourceBonus, SourceInvestmentReturn, SourceOther}
}

// ParseCategory normalizes a category key, accepting legacy aliases.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := categoryAliases[key]; ok {
		return alias, nil
	}
	c := Category(key)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFamily, CategoryNeeds, CategoryEntertainment, CategoryInvestment, CategoryOther:
		return true
	}
	return false
}

// Bucket returns c, or CategoryOther when c is unknown.
func (c Category) Bucket() Category {
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// UnmarshalJSON keeps unknown keys as-is so aggregation can bucket them.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalLenientString(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseCategory(s); err == nil {
		*c = parsed
		return nil
	}
	*c = Category(s)
	return nil
}

// ParseSource normalizes an income source key, accepting legacy aliases.
func ParseSource(s string) (IncomeSource, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := sourceAliases[key]; ok {
		return alias, nil
	}
	src := IncomeSource(key)
	if !src.IsValid() {
		return "", ErrInvalidSource
	}
	return src, nil
}

func (s IncomeSource) IsValid() bool {
	switch s {
	case SourcePrimarySalary, SourceFreelance, SourceBonus, SourceInvestmentReturn, SourceOther:
		return true
	}
	return false
}

// Bucket returns s, or SourceOther when s is unknown.
func (s IncomeSource) Bucket() IncomeSource {
	if s.IsValid() {
		return s
	}
	return SourceOther
}

// DisplayName returns the human readable source label.
func (s IncomeSource) DisplayName() string {
	return sourceNames[s.Bucket()]
}

func (s *IncomeSource) UnmarshalJSON(data []byte) error {
	var raw string
	if err := unmarshalLenientString(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseSource(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = IncomeSource(raw)
	return nil
}

// Value and DateKey let both record kinds flow through the same aggregations.
func (e ExpenseRecord) Value() Amount   { return e.Amount }
func (e ExpenseRecord) DateKey() string { return e.Date }
func (e ExpenseRecord) Key() RecordID   { return e.ID }

func (i IncomeRecord) Value() Amount   { return i.Amount }
func (i IncomeRecord) DateKey() string { return i.Date }
func (i IncomeRecord) Key() RecordID   { return i.ID }

// Validate checks a new expense entered by the user.
func (e ExpenseRecord) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return NewValidationError("description", ErrEmptyDescription, "please enter a description")
	}
	if len(e.Description) > maxDescriptionLength {
		return NewValidationError("description", ErrDescriptionTooLong, "description too long (max 200 characters)")
	}
	if e.Amount <= 0 {
		return NewValidationError("amount", ErrInvalidAmount, "please enter a positive amount")
	}
	if !e.Category.IsValid() {
		return NewValidationError("category", ErrInvalidCategory, "please choose a known category")
	}
	if _, err := ParseDate(e.Date); err != nil {
		return NewValidationError("date", ErrInvalidDateFormat, "please enter a valid date")
	}
	return nil
}

// Validate checks a new income record entered by the user.
func (i IncomeRecord) Validate() error {
	if i.Amount <= 0 {
		return NewValidationError("amount", ErrInvalidAmount, "please enter a positive amount")
	}
	if !i.Source.IsValid() {
		return NewValidationError("source", ErrInvalidSource, "please choose a known income source")
	}
	if _, err := ParseDate(i.Date); err != nil {
		return NewValidationError("date", ErrInvalidDateFormat, "please enter a valid date")
	}
	return nil
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{TargetAmount: DefaultTargetAmount}
}

// Target returns the configured target, falling back to the default when
// it is missing or not positive.
func (s Settings) Target() Amount {
	if s.TargetAmount <= 0 {
		return DefaultTargetAmount
	}
	return s.TargetAmount
}

// IsSet reports whether both ends of the timeline are known.
func (t *Timeline) IsSet() bool {
	return t != nil && !t.StartDate.IsZero() && !t.EndDate.IsZero()
}
