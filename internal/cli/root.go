// Package cli implements the Cobra command hierarchy for the scnr binary:
// a root command carrying shared flags and logging setup, with scan,
// extract, and jq subcommands built on top of internal/scan and
// internal/profiles.
package cli

import (
	"log/slog"

	"github.com/scnrgo/scnr/internal/scnrconfig"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scnr",
	Short: "Recursively scan and decode nested content.",
	Long: `scnr walks a root path (or a single file), dispatching each node it
finds to a decoder chosen by glob pattern. Archives are unpacked and their
entries are scanned in turn, so one invocation can recurse through a zip
inside a tar.gz inside a directory tree and decode everything structured it
finds along the way.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")

		level := scnrconfig.ResolveLogLevel(verbose, quiet)
		format := scnrconfig.ResolveLogFormat()
		scnrconfig.SetupLogging(level, format)

		slog.Debug("logging initialized", "level", level, "format", format)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log errors")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newJQCmd())
}

// Execute runs the root command and returns the process exit code the
// command's own RunE error maps to.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		return int(scnrerr.ExtractExitCode(err))
	}
	return int(scnrerr.ExitSuccess)
}

// RootCmd returns the root cobra.Command, for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
