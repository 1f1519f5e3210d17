package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtnorm/internal/buildinfo"
	"github.com/cleared-dev/stmtnorm/internal/logging"
)

const flagLogLevel = "log-level"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stmtnorm",
		Short:   "Normalize bank and credit-card statement exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}

// newLogger builds a stderr logger. fallback is used when --log-level was
// not given explicitly.
func newLogger(cmd *cobra.Command, fallback string) (*log.Logger, error) {
	level, _ := cmd.Flags().GetString(flagLogLevel)
	if !cmd.Flags().Changed(flagLogLevel) && fallback != "" {
		level = fallback
	}
	return logging.New(cmd.ErrOrStderr(), level)
}
