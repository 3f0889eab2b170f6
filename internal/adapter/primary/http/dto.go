package http

import (
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

// CheckRequest lists container numbers to validate.
type CheckRequest struct {
	ContainerNumbers []string `json:"container_numbers"`
}

// CheckResultDTO is the validation result of one container number.
type CheckResultDTO struct {
	Input              string `json:"input"`
	Normalized         string `json:"normalized"`
	Valid              bool   `json:"valid"`
	Reason             string `json:"reason,omitempty"`
	ExpectedCheckDigit *int   `json:"expected_check_digit,omitempty"`
}

// CheckResponse is returned by the check endpoint.
type CheckResponse struct {
	Results      []CheckResultDTO `json:"results"`
	ValidCount   int              `json:"valid_count"`
	InvalidCount int              `json:"invalid_count"`
}

// NormalizeRequest carries a raw value to normalize.
type NormalizeRequest struct {
	Value string `json:"value"`
}

// NormalizeResponse is returned by the normalize endpoint.
type NormalizeResponse struct {
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
}

// CheckDigitRequest carries a 10 character prefix.
type CheckDigitRequest struct {
	Prefix string `json:"prefix"`
}

// CheckDigitResponse is returned by the check-digit endpoint.
type CheckDigitResponse struct {
	Prefix          string `json:"prefix"`
	CheckDigit      int    `json:"check_digit"`
	ContainerNumber string `json:"container_number"`
}

// CreateImportRequest is the JSON form of an import submission.
type CreateImportRequest struct {
	ID              string         `json:"id"`
	Source          string         `json:"source"`
	Rows            []ImportRowDTO `json:"rows"`
	Destination     DestinationDTO `json:"destination"`
	DeadDestination DestinationDTO `json:"dead_destination"`
	MaxRetries      int            `json:"max_retries"`
	BaseDelay       int            `json:"base_delay"`
}

// ImportRowDTO is one submitted cell.
type ImportRowDTO struct {
	Line  int    `json:"line"`
	Value string `json:"value"`
}

// DestinationDTO describes where the report is delivered.
type DestinationDTO struct {
	Host  string `json:"host"`
	Port  string `json:"port"`
	Topic string `json:"topic"`
	URL   string `json:"url"`
}

// CreateImportResponse is returned on successful import submission.
type CreateImportResponse struct {
	BatchID string `json:"batch_id"`
	Rows    int    `json:"rows"`
	Message string `json:"message"`
}

// ReportResponse is the stored report of a processed import.
type ReportResponse struct {
	BatchID      string         `json:"batch_id"`
	Source       string         `json:"source"`
	ValidCount   int            `json:"valid_count"`
	InvalidCount int            `json:"invalid_count"`
	EvaluatedAt  time.Time      `json:"evaluated_at"`
	Rows         []RowResultDTO `json:"rows"`
}

// RowResultDTO is the validation result of one import row.
type RowResultDTO struct {
	Line               int    `json:"line"`
	Raw                string `json:"raw"`
	Normalized         string `json:"normalized"`
	Valid              bool   `json:"valid"`
	Reason             string `json:"reason,omitempty"`
	ExpectedCheckDigit *int   `json:"expected_check_digit,omitempty"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func toCheckResultDTO(c valueobject.Check) CheckResultDTO {
	return CheckResultDTO{
		Input:              c.Raw,
		Normalized:         c.Normalized,
		Valid:              c.Valid,
		Reason:             c.Reason,
		ExpectedCheckDigit: digitPtr(c.ExpectedCheckDigit),
	}
}

func (d DestinationDTO) toEntity() entity.Destination {
	return entity.Destination{Host: d.Host, Port: d.Port, Topic: d.Topic, URL: d.URL}
}

// toEntity converts a CreateImportRequest DTO to a domain entity.
func (r *CreateImportRequest) toEntity() *entity.ImportBatch {
	rows := make([]entity.ImportRow, len(r.Rows))
	for i, row := range r.Rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		rows[i] = entity.ImportRow{Line: line, Value: row.Value}
	}

	return &entity.ImportBatch{
		ID:              r.ID,
		Source:          r.Source,
		Rows:            rows,
		Destination:     r.Destination.toEntity(),
		DeadDestination: r.DeadDestination.toEntity(),
		MaxRetries:      r.MaxRetries,
		BaseDelay:       r.BaseDelay,
	}
}

func toReportResponse(report *entity.ImportReport) ReportResponse {
	rows := make([]RowResultDTO, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = RowResultDTO{
			Line:               row.Line,
			Raw:                row.Raw,
			Normalized:         row.Normalized,
			Valid:              row.Valid,
			Reason:             row.Reason,
			ExpectedCheckDigit: digitPtr(row.ExpectedCheckDigit),
		}
	}
	return ReportResponse{
		BatchID:      report.BatchID,
		Source:       report.Source,
		ValidCount:   report.ValidCount,
		InvalidCount: report.InvalidCount,
		EvaluatedAt:  report.EvaluatedAt,
		Rows:         rows,
	}
}

// digitPtr hides the -1 "not computed" marker from API clients.
func digitPtr(d int) *int {
	if d < 0 {
		return nil
	}
	return &d
}
