package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show or change the savings target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
			fmt.Println(cli.RenderKeyValue("Target", rt.Tracker.Settings().TargetAmount.Format()))
			return nil
		})
	},
}

var flagMillions bool

var targetSetCmd = &cobra.Command{
	Use:   "set AMOUNT",
	Short: "Set the savings target",
	Example: "  masterplan target set 300.000.000\n" +
		"  masterplan target set 500 --millions",
	Args: cobra.ExactArgs(1),
	RunE: runTargetSet,
}

func init() {
	targetSetCmd.Flags().BoolVarP(&flagMillions, "millions", "m", false, "AMOUNT is in millions")
	targetCmd.AddCommand(targetSetCmd)
	rootCmd.AddCommand(targetCmd)
}

func runTargetSet(cmd *cobra.Command, args []string) error {
	amount, err := core.ParseAmount(args[0])
	if err == nil && flagMillions {
		amount, err = core.Millions(amount)
	}
	if err != nil {
		return err
	}
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		s, err := rt.Tracker.SaveSettings(ctx, amount)
		if err := settle(ctx, err); err != nil {
			return err
		}
		p := rt.Tracker.GetGoalProgress()
		fmt.Println(cli.RenderKeyValue("Target", s.TargetAmount.Format()))
		fmt.Println(cli.RenderKeyValue("Goal progress", cli.RenderProgressBar(p.Percentage, 30)))
		return nil
	})
}
