// Package ledger aggregates expense and income records into totals,
// category and source breakdowns and per-month series.
package ledger

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"masterplan/internal/core"
	"masterplan/internal/log"
)

// Record is implemented by core.ExpenseRecord and core.IncomeRecord.
type Record interface {
	Value() core.Amount
	DateKey() string
}

const (
	// FilterCurrent selects the month containing "now".
	FilterCurrent = "current"
	// FilterAll disables month filtering.
	FilterAll = "all"
)

// TotalOf sums the amounts of records.
func TotalOf[R Record](records []R) core.Amount {
	var total core.Amount
	for _, r := range records {
		total += r.Value()
	}
	return total
}

// ByCategory totals expenses per category. Every known category is present
// and unknown or missing categories are counted as other.
func ByCategory(expenses []core.ExpenseRecord) map[core.Category]core.Amount {
	totals := make(map[core.Category]core.Amount, len(core.Categories()))
	for _, c := range core.Categories() {
		totals[c] = 0
	}
	for _, e := range expenses {
		totals[e.Category.Bucket()] += e.Amount
	}
	return totals
}

// BySource totals income per source. Unknown sources are counted as other.
func BySource(income []core.IncomeRecord) map[core.IncomeSource]core.Amount {
	totals := make(map[core.IncomeSource]core.Amount, len(core.Sources()))
	for _, s := range core.Sources() {
		totals[s] = 0
	}
	for _, i := range income {
		totals[i.Source.Bucket()] += i.Amount
	}
	return totals
}

// ByMonth totals records per "2006-01" month key. Records whose date
// cannot be parsed are skipped and logged.
func ByMonth[R Record](records []R) map[string]core.Amount {
	totals := make(map[string]core.Amount)
	for _, r := range records {
		key, err := core.MonthKeyOf(r.DateKey())
		if err != nil {
			slog.Warn("Skipping record with unparseable date",
				log.FieldComponent, log.ComponentLedger,
				log.FieldDate, r.DateKey(),
				log.FieldError, core.ErrUnparseableTransactionDate,
				log.FieldErrorType, log.ErrorTypeCorruption)
			continue
		}
		totals[key] += r.Value()
	}
	return totals
}

// ResolveMonthFilter turns a filter key into a month prefix. An empty
// prefix means no filtering.
func ResolveMonthFilter(key string, now time.Time) string {
	switch strings.TrimSpace(key) {
	case "", FilterAll:
		return ""
	case FilterCurrent:
		return now.Format(core.MonthLayout)
	default:
		return strings.TrimSpace(key)
	}
}

// FilterByMonth keeps the records whose stored date starts with the
// resolved month key. The input slice is not modified.
func FilterByMonth[R Record](records []R, key string, now time.Time) []R {
	prefix := ResolveMonthFilter(key, now)
	out := make([]R, 0, len(records))
	for _, r := range records {
		if prefix == "" || strings.HasPrefix(r.DateKey(), prefix) {
			out = append(out, r)
		}
	}
	return out
}

// SortNewestFirst returns a copy of records ordered by date, newest first.
// Records with unparseable dates keep their relative order at the end.
func SortNewestFirst[R Record](records []R) []R {
	type keyed struct {
		rec  R
		date core.Date
		ok   bool
	}
	tmp := make([]keyed, len(records))
	for i, r := range records {
		d, err := core.ParseDate(r.DateKey())
		tmp[i] = keyed{rec: r, date: d, ok: err == nil}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		if tmp[i].ok != tmp[j].ok {
			return tmp[i].ok
		}
		return tmp[i].date.After(tmp[j].date)
	})
	out := make([]R, len(tmp))
	for i, k := range tmp {
		out[i] = k.rec
	}
	return out
}

// Months returns the distinct month keys present in records, newest first.
func Months[R Record](records []R) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if key, err := core.MonthKeyOf(r.DateKey()); err == nil {
			seen[key] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
