package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

func newDigitCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "digit <prefix>",
		Short: "Compute the check digit of a 10 character prefix",
		Long: `Compute the ISO 6346 check digit for an owner code, category identifier
and serial number, e.g. MSCU663987.

Examples:
  boxcheck digit MSCU663987
  boxcheck digit "csqu 305438" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digit, err := valueobject.ComputeCheckDigit(args[0])
			if err != nil {
				return err
			}
			prefix := valueobject.NormalizeContainerNumber(args[0])

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"prefix":           prefix,
					"check_digit":      digit,
					"container_number": fmt.Sprintf("%s%d", prefix, digit),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), digit)
			return nil
		},
	}
}
