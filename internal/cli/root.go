// Package cli implements the cobra commands of the boxcheck CLI.
//
// Each subcommand (check, normalize, digit, import) lives in its own file.
// Commands write to cmd.OutOrStdout() so tests can capture their output.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitInvalid = 1 // at least one container number failed validation
	ExitError   = 2 // bad usage or unreadable input
)

// Build information injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// errInvalidFound signals that output was written and some input was invalid.
var errInvalidFound = errors.New("invalid container numbers found")

// options holds the global flags shared by all subcommands.
type options struct {
	json bool
}

// NewRootCommand creates the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "boxcheck",
		Short: "ISO 6346 container number validator",
		Long: `boxcheck normalizes and validates ISO 6346 shipping container numbers.

A container number is a 3 letter owner code, a category identifier,
a 6 digit serial number and a check digit, e.g. MSCU6639870.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newNormalizeCommand(opts))
	rootCmd.AddCommand(newDigitCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))

	return rootCmd
}

// Execute runs rootCmd and maps its outcome to an exit code. Errors other
// than a failed validation are printed to stderr.
func Execute(rootCmd *cobra.Command, stderr io.Writer) int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errInvalidFound):
		return ExitInvalid
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
