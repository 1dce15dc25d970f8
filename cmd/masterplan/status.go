package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show savings progress, timeline and monthly requirement",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		d := rt.Tracker.GetDashboard()
		p := d.Progress

		fmt.Println()
		fmt.Println(cli.RenderTitle("MASTERPLAN"))
		fmt.Println()
		fmt.Println(cli.RenderKeyValue("Target", p.Target.Format()))
		fmt.Println(cli.RenderKeyValue("Saved", p.Saved.Format()))
		fmt.Println(cli.RenderKeyValue("Still needed", p.Needed.Format()))
		fmt.Println(cli.RenderKeyValue("Goal progress", cli.RenderProgressBar(p.Percentage, 30)))
		fmt.Println()
		fmt.Println(cli.RenderKeyValue("Timeline", fmt.Sprintf("%s → %s (%s)", d.Timeline.StartDate, d.Timeline.EndDate, cli.FormatDays(d.Timeline.TotalDays))))
		fmt.Println(cli.RenderKeyValue("Remaining", cli.FormatDays(d.RemainingDays)))
		fmt.Println(cli.RenderKeyValue("Time elapsed", cli.RenderProgressBar(d.ElapsedPercent, 30)))
		fmt.Println(cli.RenderKeyValue("Needed per month", d.Requirement.PerMonth.Format()))
		fmt.Println()

		agg := d.Aggregates
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Totals",
			Headers: []string{"", "Amount", "Records"},
			Rows: [][]string{
				{"Income", agg.TotalIncome.Format(), fmt.Sprint(agg.IncomeCount)},
				{"Expenses", agg.TotalExpenses.Format(), fmt.Sprint(agg.ExpenseCount)},
				{"---"},
				{"Balance", agg.Balance.Format(), ""},
			},
		}))

		if agg.TotalExpenses > 0 {
			rows := make([][]string, 0, len(core.Categories()))
			for _, c := range core.Categories() {
				amount := agg.ByCategory[c]
				share := 100 * float64(amount) / float64(agg.TotalExpenses)
				rows = append(rows, []string{string(c), amount.Format(), cli.FormatPercent(share)})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Expenses by category",
				Headers: []string{"Category", "Amount", "Share"},
				Rows:    rows,
			}))
		}

		if len(agg.Trend) > 1 {
			balances := make([]float64, len(agg.Trend))
			for i, m := range agg.Trend {
				balances[i] = m.Balance.Float()
			}
			first, last := agg.Trend[0].Month, agg.Trend[len(agg.Trend)-1].Month
			fmt.Println(cli.RenderKeyValue("Monthly balance", fmt.Sprintf("%s  %s..%s", cli.RenderSparkline(balances), first, last)))
		}

		fmt.Println()
		fmt.Println("  " + d.Tip)
		fmt.Println()
		return nil
	})
}
