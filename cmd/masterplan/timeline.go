package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show or change the savings period",
	RunE:  runTimelineShow,
}

var timelineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the savings period",
	Args:  cobra.NoArgs,
	RunE:  runTimelineShow,
}

var flagYears float64

var timelineSetCmd = &cobra.Command{
	Use:   "set START END | --years N",
	Short: "Set the savings period (dates as YYYY-MM-DD)",
	Example: "  masterplan timeline set 2025-01-01 2028-01-01\n" +
		"  masterplan timeline set --years 5",
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("years") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runTimelineSet,
}

var timelineResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the savings period to three years from today",
	Args:  cobra.NoArgs,
	RunE:  runTimelineReset,
}

func init() {
	timelineSetCmd.Flags().Float64Var(&flagYears, "years", 0, "Start today and run for this many years")
	timelineCmd.AddCommand(timelineShowCmd, timelineSetCmd, timelineResetCmd)
	rootCmd.AddCommand(timelineCmd)
}

func printTimeline(rt *cli.Runtime, tl core.Timeline) {
	d := rt.Tracker.GetDashboard()
	fmt.Println()
	fmt.Println(cli.RenderKeyValue("Start", tl.StartDate.String()))
	fmt.Println(cli.RenderKeyValue("End", tl.EndDate.String()))
	fmt.Println(cli.RenderKeyValue("Length", fmt.Sprintf("%s (%.1f years)", cli.FormatDays(tl.TotalDays), float64(tl.TotalDays)/365)))
	fmt.Println(cli.RenderKeyValue("Remaining", cli.FormatDays(d.RemainingDays)))
	fmt.Println(cli.RenderKeyValue("Elapsed", cli.RenderProgressBar(d.ElapsedPercent, 30)))
	if tl.LastUpdated != "" {
		fmt.Println(cli.RenderKeyValue("Last updated", tl.LastUpdated))
	}
	fmt.Println()
}

func runTimelineShow(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		printTimeline(rt, rt.Tracker.GetTimeline())
		return nil
	})
}

func runTimelineSet(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		var tl core.Timeline
		var err error
		if cmd.Flags().Changed("years") {
			tl, err = rt.Tracker.SetQuickTimeline(ctx, flagYears, confirmer())
		} else {
			tl, err = rt.Tracker.SaveTimeline(ctx, args[0], args[1], confirmer())
		}
		if errors.Is(err, core.ErrSaveCancelled) {
			fmt.Println("  Timeline unchanged.")
			return nil
		}
		if err := settle(ctx, err); err != nil {
			return err
		}
		fmt.Println(cli.Good("  Timeline saved."))
		printTimeline(rt, tl)
		return nil
	})
}

func runTimelineReset(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		if !confirm("Reset the timeline to three years from today?") {
			fmt.Println("  Timeline unchanged.")
			return nil
		}
		tl, err := rt.Tracker.ResetTimeline(ctx)
		if err := settle(ctx, err); err != nil {
			return err
		}
		printTimeline(rt, tl)
		return nil
	})
}
