package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
	"masterplan/internal/projection"
)

var (
	flagMonthly     string
	flagRate        float64
	flagFromSavings bool
	flagSchedule    bool
)

var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Short:   "Project savings with monthly contributions and compound returns",
	Example: "  masterplan simulate --monthly 5.000.000 --rate 6",
	Args:    cobra.NoArgs,
	RunE:    runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagMonthly, "monthly", "5000000", "Monthly contribution")
	simulateCmd.Flags().Float64Var(&flagRate, "rate", 5, "Annual return in percent (may be negative)")
	simulateCmd.Flags().BoolVar(&flagFromSavings, "from-savings", false, "Start from current savings instead of zero")
	simulateCmd.Flags().BoolVar(&flagSchedule, "schedule", false, "Print the balance at the end of each year")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	monthly, err := core.ParseAmount(flagMonthly)
	if err != nil {
		return err
	}

	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		var res projection.Result
		var principal core.Amount
		if flagFromSavings {
			principal = rt.Tracker.GetGoalProgress().Saved
			res = rt.Tracker.RunProjectionFromSavings(monthly, flagRate)
		} else {
			res = rt.Tracker.RunProjection(monthly, flagRate)
		}

		status := cli.Good("REACHED")
		if !res.Reached {
			status = cli.Bad("NOT REACHED")
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("Simulation: reaching %s", rt.Tracker.Settings().TargetAmount.Format())))
		fmt.Println()
		fmt.Println(cli.RenderKeyValue("Period", fmt.Sprintf("%.1f years (%d months)", res.Years, res.Months)))
		fmt.Println(cli.RenderKeyValue("Monthly saving", monthly.Format()))
		fmt.Println(cli.RenderKeyValue("Annual return", cli.FormatPercent(flagRate)))
		fmt.Println(cli.RenderKeyValue("Contributed", res.Contributed.Format()))
		fmt.Println(cli.RenderKeyValue("Interest", res.Interest.Format()))
		fmt.Println(cli.RenderKeyValue("Projected total", res.Total.Format()))
		fmt.Println(cli.RenderKeyValue("Gap", cli.FormatSigned(res.Gap)))
		fmt.Println(cli.RenderKeyValue("Status", status))
		fmt.Println()

		if flagSchedule {
			points := rt.Tracker.ProjectionSchedule(principal, monthly, flagRate)
			rows := [][]string{}
			for _, p := range points {
				if p.Month == 0 || (p.Month%12 != 0 && p.Month != len(points)-1) {
					continue
				}
				rows = append(rows, []string{fmt.Sprintf("Month %d", p.Month), p.Contributed.Format(), p.Balance.Format()})
			}
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Schedule",
				Headers: []string{"", "Contributed", "Balance"},
				Rows:    rows,
			}))
		}
		return nil
	})
}
