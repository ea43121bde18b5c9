package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/pwcheck/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pwcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pwcheck",
		Short: "Password strength checker",
		Long: `pwcheck estimates the strength of a password.

Every check reports the character classes, the Shannon entropy and a 0-4
score. Optional checks add a zxcvbn estimate, a local wordlist lookup and a
HaveIBeenPwned breach lookup. Only the first five characters of the
password's SHA-1 digest are sent to the breach service.

Breach lookups can be routed through Tor with --tor.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging and the detailed report")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger returns the redacting logger on the command's stderr, as text
// or JSON depending on --log-json.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	asJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		asJSON, _ = cmd.Root().PersistentFlags().GetBool("log-json") //nolint:errcheck // false when undefined
	}
	if asJSON {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}
