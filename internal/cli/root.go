// Package cli implements the curloop command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "curloop",
	Short: "Run a command in a loop and account for every outcome",
	Long: `Curloop repeatedly invokes an external command on a fixed cadence,
classifies every exit, and prints an outcome summary when the loop ends.
Bound the loop with --iterations, cap each invocation with --timeout, and
stop any time with Ctrl+C; the summary is printed either way.`,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("curloop version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which carries the
// process-wide signal cancellation installed in main.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
