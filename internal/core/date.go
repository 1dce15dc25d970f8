package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the persisted calendar date format.
	DateLayout = "2006-01-02"
	// MonthLayout is the month key format used for grouping and filtering.
	MonthLayout = "2006-01"
	// TimestampLayout matches the ISO timestamps stored in createdAt fields.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Date is a calendar day. The wrapped time is always midnight UTC so that
// day arithmetic is not affected by daylight saving transitions.
type Date struct {
	time.Time
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" and ISO timestamps. The calendar day is
// taken as written, ignoring any time of day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyRequiredField
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
}

// MonthKeyOf returns the "2006-01" key of a stored date string.
func MonthKeyOf(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.MonthKey(), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MonthKey returns the "2006-01" key of d.
func (d Date) MonthKey() string {
	return d.Format(MonthLayout)
}

// AddYears moves d by n calendar years. Feb 29 rolls over to Mar 1.
func (d Date) AddYears(n int) Date {
	return Date{Time: d.AddDate(n, 0, 0)}
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	if strings.TrimSpace(s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp formats t the way createdAt and lastUpdated are stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
