package entity

import "time"

// RowResult is the validation outcome of a single import row.
type RowResult struct {
	Line               int
	Raw                string
	Normalized         string
	Valid              bool
	Reason             string
	ExpectedCheckDigit int
}

// ImportReport summarizes the validation of an import batch.
type ImportReport struct {
	BatchID      string
	Source       string
	Rows         []RowResult
	ValidCount   int
	InvalidCount int
	EvaluatedAt  time.Time
}

// InvalidRows returns the rows that failed validation, in input order.
func (r *ImportReport) InvalidRows() []RowResult {
	var invalid []RowResult
	for _, row := range r.Rows {
		if !row.Valid {
			invalid = append(invalid, row)
		}
	}
	return invalid
}

// AllValid reports whether every row passed validation.
func (r *ImportReport) AllValid() bool {
	return r.InvalidCount == 0
}
