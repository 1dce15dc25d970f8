package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
)

var flagOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of all data",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all data with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all records and restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		data, err := rt.Tracker.ExportJSON()
		if err != nil {
			return err
		}
		if flagOut == "" {
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(flagOut, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		s := rt.Tracker.ToSnapshot()
		fmt.Fprintf(os.Stderr, "  Exported %d expenses and %d income records to %s\n",
			s.Metadata.TotalExpenses, s.Metadata.TotalIncome, flagOut)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		return err
	}

	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		fmt.Println(cli.RenderKeyValue("Backup version", snap.Version))
		fmt.Println(cli.RenderKeyValue("Exported at", snap.ExportDate))
		fmt.Println(cli.RenderKeyValue("Expenses", fmt.Sprint(len(snap.Expenses))))
		fmt.Println(cli.RenderKeyValue("Income", fmt.Sprint(len(snap.Income))))
		if n := len(snap.Skipped); n > 0 {
			fmt.Println(cli.RenderKeyValue("Unreadable", cli.Warn(fmt.Sprintf("%d entries will be skipped", n))))
		}
		if !confirm("Replace all current data with this backup?") {
			fmt.Println("  Import cancelled.")
			return nil
		}
		if err := settle(ctx, rt.Tracker.LoadFromSnapshot(ctx, snap)); err != nil {
			return err
		}
		fmt.Println(cli.Good("  Backup imported."))
		return nil
	})
}

func runReset(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		if !confirm("Delete ALL expenses and income and restore default settings?") {
			return nil
		}
		if err := settle(ctx, rt.Tracker.ResetAll(ctx)); err != nil {
			return err
		}
		fmt.Println(cli.Good("  All data reset."))
		return nil
	})
}
