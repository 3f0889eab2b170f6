package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/importer"
)

type importFlags struct {
	column string
	all    bool
}

// importRowJSON is the JSON shape of one validated spreadsheet row.
type importRowJSON struct {
	Line int `json:"line"`
	checkResultJSON
}

func newImportCommand(opts *options) *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Validate the container column of a CSV export",
		Long: `Validate every cell of the container column of a CSV file offline.
The first record is the header. Use "-" to read standard input.

Only invalid rows are listed unless --all is given. The exit code is 1
when any row is invalid.

Examples:
  boxcheck import bookings.csv
  boxcheck import bookings.csv --column "Container No" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			source := "stdin"
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
				source = filepath.Base(args[0])
			}
			return runImport(cmd.OutOrStdout(), opts, flags, in, source)
		},
	}

	cmd.Flags().StringVar(&flags.column, "column", domain.DefaultImportColumn, "Header of the container number column")
	cmd.Flags().BoolVar(&flags.all, "all", false, "List valid rows too")

	return cmd
}

func runImport(w io.Writer, opts *options, flags *importFlags, in io.Reader, source string) error {
	rows, err := importer.ReadRows(in, flags.column)
	if err != nil {
		return err
	}

	batch := &entity.ImportBatch{Source: source, Rows: rows}
	report := batch.Evaluate(time.Now().UTC())

	listed := report.Rows
	if !flags.all {
		listed = report.InvalidRows()
	}

	if opts.json {
		out := make([]importRowJSON, 0, len(listed))
		for _, r := range listed {
			out = append(out, toImportRowJSON(r))
		}
		if err := writeJSON(w, map[string]interface{}{
			"source":        report.Source,
			"rows":          out,
			"valid_count":   report.ValidCount,
			"invalid_count": report.InvalidCount,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range listed {
			fmt.Fprintf(w, "line %d: %s\n", r.Line, formatCheckLine(toImportRowJSON(r).checkResultJSON))
		}
		fmt.Fprintf(w, "%s: %d valid, %d invalid\n", report.Source, report.ValidCount, report.InvalidCount)
	}

	if !report.AllValid() {
		return errInvalidFound
	}
	return nil
}

func toImportRowJSON(r entity.RowResult) importRowJSON {
	row := importRowJSON{
		Line: r.Line,
		checkResultJSON: checkResultJSON{
			Input:      r.Raw,
			Normalized: r.Normalized,
			Valid:      r.Valid,
			Reason:     r.Reason,
		},
	}
	if !r.Valid && r.ExpectedCheckDigit >= 0 {
		d := r.ExpectedCheckDigit
		row.ExpectedCheckDigit = &d
	}
	return row
}
