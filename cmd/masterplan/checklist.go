package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
)

var checklistCmd = &cobra.Command{
	Use:     "checklist",
	Aliases: []string{"todo"},
	Short:   "Show or edit the financial checklist",
	Args:    cobra.NoArgs,
	RunE:    runChecklistList,
}

var checklistAddCmd = &cobra.Command{
	Use:     "add TEXT...",
	Short:   "Add a checklist item",
	Example: `  masterplan checklist add "Open an emergency fund"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runChecklistAdd,
}

var checklistDoneCmd = &cobra.Command{
	Use:     "toggle ID",
	Aliases: []string{"done"},
	Short:   "Mark an item done, or open again",
	Args:    cobra.ExactArgs(1),
	RunE:    runChecklistToggle,
}

var checklistEditCmd = &cobra.Command{
	Use:   "edit ID TEXT...",
	Short: "Replace the text of an item",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runChecklistEdit,
}

var checklistRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a checklist item",
	Args:    cobra.ExactArgs(1),
	RunE:    runChecklistRm,
}

func init() {
	checklistCmd.AddCommand(checklistAddCmd, checklistDoneCmd, checklistEditCmd, checklistRmCmd)
	rootCmd.AddCommand(checklistCmd)
}

func printChecklistItem(item core.ChecklistItem) {
	mark := "[ ]"
	text := item.Text
	if item.Completed {
		mark = cli.Good("[x]")
		text = cli.Muted(text)
	}
	fmt.Printf("  %s %s  %s\n", mark, text, cli.Muted(item.ID.String()))
}

func runChecklistList(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		items := rt.Tracker.Checklist()
		done := 0
		for _, item := range items {
			if item.Completed {
				done++
			}
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("Checklist  %d/%d done", done, len(items))))
		fmt.Println()
		if len(items) == 0 {
			fmt.Println("  Nothing on the list. Add one with: masterplan checklist add TEXT")
		}
		for _, item := range items {
			printChecklistItem(item)
		}
		fmt.Println()
		return nil
	})
}

func runChecklistAdd(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		item, err := rt.Tracker.AddChecklistItem(ctx, strings.Join(args, " "))
		if err := settle(ctx, err); err != nil {
			return err
		}
		printChecklistItem(item)
		return nil
	})
}

func runChecklistToggle(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		item, err := rt.Tracker.ToggleChecklistItem(ctx, core.RecordID(args[0]))
		if err := settle(ctx, err); err != nil {
			return err
		}
		printChecklistItem(item)
		return nil
	})
}

func runChecklistEdit(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		item, err := rt.Tracker.SetChecklistText(ctx, core.RecordID(args[0]), strings.Join(args[1:], " "))
		if err := settle(ctx, err); err != nil {
			return err
		}
		printChecklistItem(item)
		return nil
	})
}

func runChecklistRm(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		if !confirm(fmt.Sprintf("Delete checklist item %s?", args[0])) {
			return nil
		}
		if err := settle(ctx, rt.Tracker.DeleteChecklistItem(ctx, core.RecordID(args[0]))); err != nil {
			return err
		}
		fmt.Println(cli.Good("  Item deleted."))
		return nil
	})
}
