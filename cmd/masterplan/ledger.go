package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
	"masterplan/internal/ledger"
)

var (
	flagDescription string
	flagAmount      string
	flagCategory    string
	flagSource      string
	flagDate        string
	flagNotes       string
	flagMonth       string
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Add, remove or list expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record an expense",
	Example: `  masterplan expense add -d "Groceries" -a 250.000 -c needs`,
	Args:    cobra.NoArgs,
	RunE:    runExpenseAdd,
}

var expenseRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseRm,
}

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses, newest first",
	Args:    cobra.NoArgs,
	RunE:    runExpenseList,
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Add, remove or list income",
}

var incomeAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record income",
	Example: `  masterplan income add -s primary_salary -a 15.000.000`,
	Args:    cobra.NoArgs,
	RunE:    runIncomeAdd,
}

var incomeRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete an income record",
	Args:    cobra.ExactArgs(1),
	RunE:    runIncomeRm,
}

var incomeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List income, newest first",
	Args:    cobra.NoArgs,
	RunE:    runIncomeList,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagDescription, "desc", "d", "", "Description")
	expenseAddCmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount, e.g. 250000 or 250.000")
	expenseAddCmd.Flags().StringVarP(&flagCategory, "category", "c", string(core.CategoryOther),
		"Category: "+joinKeys(core.Categories()))
	expenseAddCmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (default today)")
	expenseAddCmd.MarkFlagRequired("desc")
	expenseAddCmd.MarkFlagRequired("amount")

	incomeAddCmd.Flags().StringVarP(&flagSource, "source", "s", string(core.SourcePrimarySalary),
		"Source: "+joinKeys(core.Sources()))
	incomeAddCmd.Flags().StringVarP(&flagAmount, "amount", "a", "", "Amount, e.g. 15000000 or 15.000.000")
	incomeAddCmd.Flags().StringVar(&flagDate, "date", "", "Date as YYYY-MM-DD (default today)")
	incomeAddCmd.Flags().StringVar(&flagNotes, "notes", "", "Optional notes")
	incomeAddCmd.MarkFlagRequired("amount")

	for _, c := range []*cobra.Command{expenseListCmd, incomeListCmd} {
		c.Flags().StringVarP(&flagMonth, "month", "m", ledger.FilterCurrent,
			`Month as YYYY-MM, "current" or "all"`)
	}

	expenseCmd.AddCommand(expenseAddCmd, expenseRmCmd, expenseListCmd)
	incomeCmd.AddCommand(incomeAddCmd, incomeRmCmd, incomeListCmd)
	rootCmd.AddCommand(expenseCmd, incomeCmd)
}

func joinKeys[K ~string](keys []K) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

func runExpenseAdd(cmd *cobra.Command, _ []string) error {
	amount, err := core.ParseAmount(flagAmount)
	if err != nil {
		return err
	}
	category, err := core.ParseCategory(flagCategory)
	if err != nil {
		return err
	}

	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		e, err := rt.Tracker.AddExpense(ctx, core.ExpenseRecord{
			Description: flagDescription,
			Amount:      amount,
			Category:    category,
			Date:        flagDate,
		})
		if err := settle(ctx, err); err != nil {
			return err
		}
		fmt.Printf("  %s %s on %s (%s)  id %s\n", cli.Good("Added"), e.Amount.Format(), e.Date, e.Category, e.ID)
		return nil
	})
}

func runExpenseRm(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		if !confirm(fmt.Sprintf("Delete expense %s?", args[0])) {
			return nil
		}
		if err := settle(ctx, rt.Tracker.DeleteExpense(ctx, core.RecordID(args[0]))); err != nil {
			return err
		}
		fmt.Println(cli.Good("  Expense deleted."))
		return nil
	})
}

func runExpenseList(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		records := rt.Tracker.ExpensesForMonth(flagMonth)
		rows := make([][]string, 0, len(records)+2)
		for _, e := range records {
			rows = append(rows, []string{e.Date, cli.Truncate(e.Description, 32), string(e.Category.Bucket()), e.Amount.Format(), e.ID.String()})
		}
		rows = append(rows, []string{"---"}, []string{"Total", "", "", ledger.TotalOf(records).Format(), ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Expenses (%s)", flagMonth),
			Headers: []string{"Date", "Description", "Category", "Amount", "ID"},
			Rows:    rows,
		}))
		return nil
	})
}

func runIncomeAdd(cmd *cobra.Command, _ []string) error {
	amount, err := core.ParseAmount(flagAmount)
	if err != nil {
		return err
	}
	source, err := core.ParseSource(flagSource)
	if err != nil {
		return err
	}

	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		i, err := rt.Tracker.AddIncome(ctx, core.IncomeRecord{
			Source: source,
			Amount: amount,
			Date:   flagDate,
			Notes:  flagNotes,
		})
		if err := settle(ctx, err); err != nil {
			return err
		}
		fmt.Printf("  %s %s from %s on %s  id %s\n", cli.Good("Added"), i.Amount.Format(), i.SourceName, i.Date, i.ID)
		return nil
	})
}

func runIncomeRm(cmd *cobra.Command, args []string) error {
	return withRuntime(cmd, false, func(ctx context.Context, rt *cli.Runtime) error {
		if !confirm(fmt.Sprintf("Delete income %s?", args[0])) {
			return nil
		}
		if err := settle(ctx, rt.Tracker.DeleteIncome(ctx, core.RecordID(args[0]))); err != nil {
			return err
		}
		fmt.Println(cli.Good("  Income deleted."))
		return nil
	})
}

func runIncomeList(cmd *cobra.Command, _ []string) error {
	return withRuntime(cmd, false, func(_ context.Context, rt *cli.Runtime) error {
		records := rt.Tracker.IncomeForMonth(flagMonth)
		rows := make([][]string, 0, len(records)+2)
		for _, i := range records {
			rows = append(rows, []string{i.Date, i.Source.DisplayName(), cli.Truncate(i.Notes, 24), i.Amount.Format(), i.ID.String()})
		}
		rows = append(rows, []string{"---"}, []string{"Total", "", "", ledger.TotalOf(records).Format(), ""})

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Income (%s)", flagMonth),
			Headers: []string{"Date", "Source", "Notes", "Amount", "ID"},
			Rows:    rows,
		}))
		return nil
	})
}
