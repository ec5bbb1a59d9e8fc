// Package cli implements the Cobra command hierarchy for the driftscan
// tool. The root command handles cross-cutting concerns -- logging
// initialization and mapping errors to process exit codes -- shared by
// every subcommand.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/driftscan/drift/internal/scanconfig"
)

var (
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "driftscan",
	Short: "Incrementally scan a project tree and diff it against its last snapshot.",
	Long: `driftscan walks a project directory, classifies every relevant source
file as added, modified, removed, or unchanged relative to a persisted
snapshot, and reports the diff. It is the entry point of a larger
static-analysis pipeline; it does not parse file contents or build
dependency graphs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := scanconfig.ResolveLogLevel(flagVerbose, flagQuiet)
		format := scanconfig.ResolveLogFormat()
		scanconfig.SetupLogging(level, format)
		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "only log errors")
}

// Execute runs the root command and returns a process exit code. Every
// error, scan-specific or not, currently maps to 1; ScanError is kept as a
// distinct type so callers that care about Kind (a future --quiet-on-io
// flag, say) can type-assert it out of Cobra's returned error without a
// change to this function's signature.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return 1
	}
	return 0
}

// RootCmd returns the root cobra.Command, for use in testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
