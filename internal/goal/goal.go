// Package goal derives savings progress against the target and the
// monthly amount still required to reach it.
package goal

import (
	"math"

	"masterplan/internal/core"
	"masterplan/internal/ledger"
)

// Progress is the state of the savings goal.
type Progress struct {
	Saved      core.Amount
	Target     core.Amount
	Percentage float64 // 0..100
	Needed     core.Amount
}

// Requirement is the monthly saving needed to close the remaining gap.
type Requirement struct {
	RemainingDays int
	MonthsLeft    float64
	PerMonth      core.Amount
}

// ComputeProgress compares net savings with the target. Savings never go
// below zero and the percentage is capped at 100. A target that is not
// positive falls back to the default target.
func ComputeProgress(income []core.IncomeRecord, expenses []core.ExpenseRecord, target core.Amount) Progress {
	return ProgressFromTotals(ledger.TotalOf(income), ledger.TotalOf(expenses), target)
}

// ProgressFromTotals is ComputeProgress on precomputed totals.
func ProgressFromTotals(totalIncome, totalExpenses, target core.Amount) Progress {
	if target <= 0 {
		target = core.DefaultTargetAmount
	}
	saved := totalIncome - totalExpenses
	if saved < 0 {
		saved = 0
	}
	needed := target - saved
	if needed < 0 {
		needed = 0
	}
	pct := math.Min(100, 100*float64(saved)/float64(target))
	return Progress{
		Saved:      saved,
		Target:     target,
		Percentage: pct,
		Needed:     needed,
	}
}

// MonthsLeft converts remaining days into months of average length, never
// less than one.
func MonthsLeft(remainingDays int) float64 {
	return math.Max(1, float64(remainingDays)/core.DaysPerMonth)
}

// ComputeMonthlyRequirement spreads needed over the months left. As the
// deadline approaches the monthly figure grows without bound until the
// one-month floor is reached.
func ComputeMonthlyRequirement(needed core.Amount, remainingDays int) Requirement {
	months := MonthsLeft(remainingDays)
	perMonth := core.AmountFromFloat(math.Max(0, float64(needed)/months))
	return Requirement{
		RemainingDays: remainingDays,
		MonthsLeft:    months,
		PerMonth:      perMonth,
	}
}

// Reached reports whether the target has been met.
func (p Progress) Reached() bool {
	return p.Saved >= p.Target
}

// Tip returns a short piece of advice for the given progress percentage.
func Tip(percentage float64) string {
	switch {
	case percentage >= 100:
		return "Target reached! Consider raising the target or starting to invest."
	case percentage >= 75:
		return "Almost there! Avoid large expenses this month."
	case percentage >= 50:
		return "Halfway! Review your expenses to speed up saving."
	case percentage >= 25:
		return "Good start. Keep saving consistently."
	default:
		return "Focus on extra income and cut non-essential spending."
	}
}
