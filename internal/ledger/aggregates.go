package ledger

import (
	"sort"

	"masterplan/internal/core"
)

// MonthTrend is one row of the month-by-month income and expense series.
type MonthTrend struct {
	Month    string
	Income   core.Amount
	Expenses core.Amount
	Balance  core.Amount
}

// Aggregates bundles every ledger-derived figure shown to the user.
type Aggregates struct {
	TotalIncome     core.Amount
	TotalExpenses   core.Amount
	Balance         core.Amount // raw income minus expenses, may be negative
	ExpenseCount    int
	IncomeCount     int
	ByCategory      map[core.Category]core.Amount
	BySource        map[core.IncomeSource]core.Amount
	ExpensesByMonth map[string]core.Amount
	IncomeByMonth   map[string]core.Amount
	Trend           []MonthTrend
}

// MonthlyTrend merges per-month income and expense totals into rows sorted
// by month.
func MonthlyTrend(income []core.IncomeRecord, expenses []core.ExpenseRecord) []MonthTrend {
	return mergeTrend(ByMonth(income), ByMonth(expenses))
}

func mergeTrend(incomeByMonth, expensesByMonth map[string]core.Amount) []MonthTrend {
	months := make(map[string]struct{}, len(incomeByMonth)+len(expensesByMonth))
	for m := range incomeByMonth {
		months[m] = struct{}{}
	}
	for m := range expensesByMonth {
		months[m] = struct{}{}
	}

	keys := make([]string, 0, len(months))
	for m := range months {
		keys = append(keys, m)
	}
	sort.Strings(keys)

	trend := make([]MonthTrend, 0, len(keys))
	for _, m := range keys {
		in, out := incomeByMonth[m], expensesByMonth[m]
		trend = append(trend, MonthTrend{Month: m, Income: in, Expenses: out, Balance: in - out})
	}
	return trend
}

// Summarize computes all aggregates in one pass over each list.
func Summarize(expenses []core.ExpenseRecord, income []core.IncomeRecord) Aggregates {
	totalIncome := TotalOf(income)
	totalExpenses := TotalOf(expenses)
	incomeByMonth := ByMonth(income)
	expensesByMonth := ByMonth(expenses)

	return Aggregates{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		Balance:         totalIncome - totalExpenses,
		ExpenseCount:    len(expenses),
		IncomeCount:     len(income),
		ByCategory:      ByCategory(expenses),
		BySource:        BySource(income),
		ExpensesByMonth: expensesByMonth,
		IncomeByMonth:   incomeByMonth,
		Trend:           mergeTrend(incomeByMonth, expensesByMonth),
	}
}
