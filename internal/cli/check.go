package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

// checkResultJSON is the JSON shape of one checked value.
type checkResultJSON struct {
	Input              string `json:"input"`
	Normalized         string `json:"normalized"`
	Valid              bool   `json:"valid"`
	Reason             string `json:"reason,omitempty"`
	ExpectedCheckDigit *int   `json:"expected_check_digit,omitempty"`
}

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [container-number...]",
		Short: "Validate container numbers",
		Long: `Validate one or more container numbers. With no arguments, one number
is read per line from standard input.

The exit code is 1 when any number is invalid.

Examples:
  boxcheck check MSCU6639870
  boxcheck check "mscu 663 987 0" TEMU9876543 --json
  cut -d, -f3 export.csv | boxcheck check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				var err error
				inputs, err = readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			return runCheck(cmd.OutOrStdout(), opts, inputs)
		},
	}
}

func runCheck(w io.Writer, opts *options, inputs []string) error {
	results := make([]checkResultJSON, 0, len(inputs))
	invalid := 0
	for _, in := range inputs {
		c := valueobject.Diagnose(in)
		if !c.Valid {
			invalid++
		}
		results = append(results, toCheckResultJSON(c))
	}

	if opts.json {
		if err := writeJSON(w, map[string]interface{}{
			"results":       results,
			"valid_count":   len(results) - invalid,
			"invalid_count": invalid,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			fmt.Fprintln(w, formatCheckLine(r))
		}
	}

	if invalid > 0 {
		return errInvalidFound
	}
	return nil
}

func formatCheckLine(r checkResultJSON) string {
	if r.Valid {
		return fmt.Sprintf("%s\tvalid", r.Normalized)
	}
	switch {
	case r.ExpectedCheckDigit != nil:
		return fmt.Sprintf("%s\tinvalid container number (check digit should be %d)", r.Normalized, *r.ExpectedCheckDigit)
	case r.Normalized == "":
		return fmt.Sprintf("%q\tinvalid container number (empty)", r.Input)
	default:
		return fmt.Sprintf("%s\tinvalid container number (expected 4 letters and 7 digits)", r.Normalized)
	}
}

func toCheckResultJSON(c valueobject.Check) checkResultJSON {
	r := checkResultJSON{
		Input:      c.Raw,
		Normalized: c.Normalized,
		Valid:      c.Valid,
		Reason:     c.Reason,
	}
	if !c.Valid && c.ExpectedCheckDigit >= 0 {
		d := c.ExpectedCheckDigit
		r.ExpectedCheckDigit = &d
	}
	return r
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
