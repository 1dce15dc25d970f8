package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"masterplan/internal/amqp"
	"masterplan/internal/cli"
	"masterplan/internal/core"
	"masterplan/internal/log"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run the daily recomputation if the day has changed",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print daily refresh events from the message broker",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(refreshCmd, eventsCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, true, func(ctx context.Context, rt *cli.Runtime) error {
		res, err := rt.Tracker.RunDailyRefreshIfNeeded(ctx)
		if err := settle(ctx, err); err != nil {
			return err
		}
		if !res.Ran {
			fmt.Printf("  Already refreshed today (%s).\n", res.Stamp)
			return nil
		}
		d := res.Dashboard
		fmt.Printf("  Refreshed for %s: %s left, %s saved, %s needed per month.\n",
			res.Stamp, cli.FormatDays(d.RemainingDays), cli.FormatPercent(d.Progress.Percentage), d.Requirement.PerMonth.Format())
		return nil
	})
}

func runEvents(cmd *cobra.Command, _ []string) error {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is not set")
	}
	logger := cli.SetupLogger(cfg, log.ComponentCLI)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, done := cli.GracefulShutdown(logger, 5*time.Second, nil)
	err = client.ConsumeRefresh(ctx, func(msg *amqp.RefreshMessage) error {
		fmt.Printf("  %s  %s  saved %s of %s  %s left  %s/month\n",
			msg.Timestamp.Local().Format("2006-01-02 15:04"),
			msg.Day,
			core.Amount(msg.Saved).Format(),
			core.Amount(msg.Target).Format(),
			cli.FormatDays(msg.RemainingDays),
			core.Amount(msg.NeededPerMonth).Format())
		return nil
	})
	if ctx.Err() != nil {
		cli.WaitForShutdown(ctx, done)
		return nil
	}
	return err
}
