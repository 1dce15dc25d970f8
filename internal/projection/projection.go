// Package projection simulates savings growth with monthly contributions
// and monthly compounding.
package projection

import (
	"math"

	"masterplan/internal/core"
)

// monthEpsilon absorbs float error when converting years to whole months,
// e.g. 1095/365*12 evaluating just below 36.
const monthEpsilon = 1e-9

// Input describes a simulation run.
type Input struct {
	Principal         core.Amount
	Monthly           core.Amount
	AnnualRatePercent float64
	TotalDays         int
	Target            core.Amount
}

// Result is the outcome of Simulate.
type Result struct {
	Years       float64
	Months      int
	Total       core.Amount
	Contributed core.Amount
	Interest    core.Amount
	Gap         core.Amount // Total minus Target
	Reached     bool
}

// Point is the balance at the end of a month.
type Point struct {
	Month       int
	Balance     core.Amount
	Contributed core.Amount
}

// WholeMonths converts a span in years into the number of whole months
// simulated. Partial months are dropped.
func WholeMonths(years float64) int {
	if years <= 0 || math.IsNaN(years) || math.IsInf(years, 0) {
		return 0
	}
	return int(math.Floor(years*12 + monthEpsilon))
}

// Compound returns the balance after compounding principal monthly for
// the whole months in years, adding monthly at the end of each month.
// Negative rates are allowed.
func Compound(principal, monthly core.Amount, annualRatePercent, years float64) core.Amount {
	return core.AmountFromFloat(compound(principal.Float(), monthly.Float(), annualRatePercent, WholeMonths(years)))
}

func compound(principal, monthly, annualRatePercent float64, months int) float64 {
	rate := annualRatePercent / 100 / 12
	total := principal
	for i := 0; i < months; i++ {
		total = total*(1+rate) + monthly
	}
	return total
}

// Gap returns simulated minus target. Zero or positive means the target
// is reached.
func Gap(simulated, target core.Amount) core.Amount {
	return simulated - target
}

// Simulate runs the projection over TotalDays, expressed in years of 365
// days. A non-positive target falls back to the default target.
func Simulate(in Input) Result {
	target := in.Target
	if target <= 0 {
		target = core.DefaultTargetAmount
	}
	days := in.TotalDays
	if days < 0 {
		days = 0
	}
	years := float64(days) / 365
	months := WholeMonths(years)

	total := core.AmountFromFloat(compound(in.Principal.Float(), in.Monthly.Float(), in.AnnualRatePercent, months))
	contributed := in.Principal + in.Monthly*core.Amount(months)
	gap := Gap(total, target)

	return Result{
		Years:       years,
		Months:      months,
		Total:       total,
		Contributed: contributed,
		Interest:    total - contributed,
		Gap:         gap,
		Reached:     gap >= 0,
	}
}

// Schedule returns the month-end balances of the projection, starting
// with month zero.
func Schedule(principal, monthly core.Amount, annualRatePercent, years float64) []Point {
	months := WholeMonths(years)
	rate := annualRatePercent / 100 / 12
	points := make([]Point, 0, months+1)

	total := principal.Float()
	contributed := principal
	points = append(points, Point{Month: 0, Balance: principal, Contributed: contributed})
	for m := 1; m <= months; m++ {
		total = total*(1+rate) + monthly.Float()
		contributed += monthly
		points = append(points, Point{Month: m, Balance: core.AmountFromFloat(total), Contributed: contributed})
	}
	return points
}
