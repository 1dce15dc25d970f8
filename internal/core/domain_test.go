package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2025-01-01", NewDate(2025, 1, 1), true},
		{"2025-12-31T23:59:59Z", NewDate(2025, 12, 31), true},
		{"2025-03-10T01:00:00-05:00", NewDate(2025, 3, 10), true},
		{"2025-03-10T08:30", NewDate(2025, 3, 10), true},
		{"2025-02-30", Date{}, false},
		{"10/03/2025", Date{}, false},
		{"", Date{}, false},
	}
	for i, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && (err != nil || !got.Equal(tc.want.Time)) {
			t.Fatalf("case %d expected %v, got %v (err=%v)", i, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	d := DateOf(time.Date(2025, 6, 1, 23, 30, 0, 0, loc))
	if d.String() != "2025-06-01" {
		t.Fatalf("got %s", d)
	}
	if d.AddYears(3).String() != "2028-06-01" {
		t.Fatalf("AddYears got %s", d.AddYears(3))
	}
	leap := NewDate(2024, 2, 29).AddYears(3)
	if leap.String() != "2027-03-01" {
		t.Fatalf("leap AddYears got %s", leap)
	}
}

func TestTimelineJSON(t *testing.T) {
	tl := Timeline{StartDate: NewDate(2025, 1, 1), EndDate: NewDate(2028, 1, 1), TotalDays: 1095}
	data, err := json.Marshal(tl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"startDate":"2025-01-01","endDate":"2028-01-01","totalDays":1095}`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var bad Timeline
	err = json.Unmarshal([]byte(`{"startDate":"not a date","endDate":"2028-01-01"}`), &bad)
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := ExpenseRecord{
		Description: "groceries",
		Amount:      150000,
		Date:        "2025-01-01",
		Category:    CategoryNeeds,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		e    ExpenseRecord
		want error
	}{
		{ExpenseRecord{Description: "", Amount: 1, Date: "2025-01-01", Category: CategoryNeeds}, ErrEmptyDescription},
		{ExpenseRecord{Description: "a", Amount: 0, Date: "2025-01-01", Category: CategoryNeeds}, ErrInvalidAmount},
		{ExpenseRecord{Description: "a", Amount: 1, Date: "2025-01-01", Category: "food"}, ErrInvalidCategory},
		{ExpenseRecord{Description: "a", Amount: 1, Date: "yesterday", Category: CategoryNeeds}, ErrInvalidDateFormat},
	}
	for i, tc := range bads {
		err := tc.e.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected a ValidationError", i)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	good := IncomeRecord{Source: SourceFreelance, Amount: 1000, Date: "2025-01-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (IncomeRecord{Source: "lottery", Amount: 1000, Date: "2025-01-01"}).Validate(); !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
	if err := (IncomeRecord{Source: SourceBonus, Amount: -5, Date: "2025-01-01"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestParseCategoryAliases(t *testing.T) {
	cases := map[string]Category{
		"keluarga":  CategoryFamily,
		"kebutuhan": CategoryNeeds,
		"hiburan":   CategoryEntertainment,
		"investasi": CategoryInvestment,
		"lainnya":   CategoryOther,
		" Needs ":   CategoryNeeds,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseCategory("food"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
	if Category("food").Bucket() != CategoryOther {
		t.Errorf("unknown category should bucket to other")
	}
}

func TestPersistWarning(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := error(&PersistWarning{Key: "expenses", Err: cause})
	if !IsWarning(err) {
		t.Fatal("expected warning")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be wrapped")
	}
	if IsWarning(nil) {
		t.Fatal("nil is not a warning")
	}
}
