package service

import (
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// reportMessage is the JSON payload delivered to report destinations.
type reportMessage struct {
	BatchID      string       `json:"batch_id"`
	Source       string       `json:"source"`
	ValidCount   int          `json:"valid_count"`
	InvalidCount int          `json:"invalid_count"`
	EvaluatedAt  time.Time    `json:"evaluated_at"`
	InvalidRows  []rowMessage `json:"invalid_rows"`
}

type rowMessage struct {
	Line               int    `json:"line"`
	Raw                string `json:"raw"`
	Normalized         string `json:"normalized"`
	Reason             string `json:"reason"`
	ExpectedCheckDigit *int   `json:"expected_check_digit,omitempty"`
}

// newReportMessage keeps only the rows that need correction; valid rows
// are represented by the count.
func newReportMessage(report *entity.ImportReport) reportMessage {
	msg := reportMessage{
		BatchID:      report.BatchID,
		Source:       report.Source,
		ValidCount:   report.ValidCount,
		InvalidCount: report.InvalidCount,
		EvaluatedAt:  report.EvaluatedAt,
		InvalidRows:  []rowMessage{},
	}

	for _, row := range report.InvalidRows() {
		rm := rowMessage{
			Line:       row.Line,
			Raw:        row.Raw,
			Normalized: row.Normalized,
			Reason:     row.Reason,
		}
		if row.ExpectedCheckDigit >= 0 {
			digit := row.ExpectedCheckDigit
			rm.ExpectedCheckDigit = &digit
		}
		msg.InvalidRows = append(msg.InvalidRows, rm)
	}

	return msg
}
