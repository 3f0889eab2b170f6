package entity

import (
	"math"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

// ImportRow is one container number cell taken from a spreadsheet import.
type ImportRow struct {
	Line  int
	Value string
}

// ImportBatch is a bulk container-number import whose validation report
// is delivered to a destination with exponential backoff on failure.
type ImportBatch struct {
	ID              string
	Attempt         int
	Source          string
	Rows            []ImportRow
	Destination     Destination
	DeadDestination Destination
	MaxRetries      int
	BaseDelay       int
	SubmittedAt     time.Time
}

// IncrementAttempt advances the attempt counter by one.
func (b *ImportBatch) IncrementAttempt() {
	b.Attempt++
}

// HasRetriesLeft reports whether report delivery can be retried.
func (b *ImportBatch) HasRetriesLeft() bool {
	return b.Attempt <= b.MaxRetries
}

// NextRetryDelay calculates the exponential backoff delay for the current attempt.
// Formula: baseDelay * 2^(attempt-1)
func (b *ImportBatch) NextRetryDelay() time.Duration {
	exponent := float64(b.Attempt - 1)
	if exponent < 0 {
		exponent = 0
	}
	multiplier := math.Pow(2, exponent)
	return time.Duration(float64(b.BaseDelay)*multiplier) * time.Second
}

// ShouldSendToDeadDestination reports whether the batch has exhausted
// all retries and its report should go to the dead-letter destination.
func (b *ImportBatch) ShouldSendToDeadDestination() bool {
	return !b.HasRetriesLeft()
}

// Evaluate validates every row and builds the import report.
func (b *ImportBatch) Evaluate(now time.Time) *ImportReport {
	report := &ImportReport{
		BatchID:     b.ID,
		Source:      b.Source,
		Rows:        make([]RowResult, 0, len(b.Rows)),
		EvaluatedAt: now,
	}

	for _, row := range b.Rows {
		check := valueobject.Diagnose(row.Value)
		report.Rows = append(report.Rows, RowResult{
			Line:               row.Line,
			Raw:                check.Raw,
			Normalized:         check.Normalized,
			Valid:              check.Valid,
			Reason:             check.Reason,
			ExpectedCheckDigit: check.ExpectedCheckDigit,
		})
		if check.Valid {
			report.ValidCount++
		} else {
			report.InvalidCount++
		}
	}

	return report
}
