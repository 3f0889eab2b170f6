package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

func newNormalizeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <value>...",
		Short: "Print the canonical form of container numbers",
		Long: `Uppercase each value and remove all whitespace. No validation is done.

Examples:
  boxcheck normalize "mscu 663 987 0"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := make([]string, len(args))
			for i, a := range args {
				normalized[i] = valueobject.NormalizeContainerNumber(a)
			}

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string][]string{"normalized": normalized})
			}
			for _, n := range normalized {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
