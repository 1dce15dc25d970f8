package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"masterplan/internal/cli"
	"masterplan/internal/core"
	"masterplan/internal/log"
	"masterplan/internal/timeline"
)

var flagYes bool

var rootCmd = &cobra.Command{
	Use:          "masterplan",
	Short:        "Personal savings tracker",
	Long:         "Track income and expenses against a savings target and a target date.",
	SilenceUsage: true,
	RunE:         runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to every confirmation")
}

// withRuntime loads the configuration, opens the store and runs fn with a
// loaded tracker.
func withRuntime(cmd *cobra.Command, withEvents bool, fn func(ctx context.Context, rt *cli.Runtime) error) error {
	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, log.ComponentCLI)
	ctx := log.WithContext(cmd.Context(), logger)

	rt, err := cli.OpenRuntime(ctx, logger, cfg, withEvents)
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(ctx, rt)
}

// confirmer returns the timeline confirmer for the current flags.
func confirmer() timeline.Confirmer {
	if flagYes {
		return timeline.AcceptAll{}
	}
	return cli.NewPromptConfirmer(os.Stdin, os.Stdout)
}

func confirm(question string) bool {
	if flagYes {
		return true
	}
	return cli.NewPromptConfirmer(os.Stdin, os.Stdout).Confirm(question)
}

// settle turns a persist warning into a printed notice. Other errors are
// returned unchanged.
func settle(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if core.IsWarning(err) {
		log.FromContext(ctx).DebugContext(ctx, "Continuing with unsaved changes",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeStorage)
		fmt.Fprintln(os.Stderr, cli.Warn("  Warning: "+err.Error()))
		fmt.Fprintln(os.Stderr, cli.Warn("  Changes are kept for this run only. Export a backup."))
		return nil
	}
	return err
}
