package redisstore

import (
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// batchDTO is the Redis-specific representation of an import batch.
// It translates between domain entities and JSON stored in Redis.
type batchDTO struct {
	ID              string    `json:"id"`
	Attempt         int       `json:"attempt"`
	Source          string    `json:"source"`
	Rows            []rowDTO  `json:"rows"`
	Destination     destDTO   `json:"destination"`
	DeadDestination destDTO   `json:"dead_destination"`
	MaxRetries      int       `json:"max_retries"`
	BaseDelay       int       `json:"base_delay"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type rowDTO struct {
	Line  int    `json:"line"`
	Value string `json:"value"`
}

type destDTO struct {
	Host  string `json:"host,omitempty"`
	Port  string `json:"port,omitempty"`
	Topic string `json:"topic,omitempty"`
	URL   string `json:"url,omitempty"`
}

type reportDTO struct {
	BatchID      string         `json:"batch_id"`
	Source       string         `json:"source"`
	Rows         []rowResultDTO `json:"rows"`
	ValidCount   int            `json:"valid_count"`
	InvalidCount int            `json:"invalid_count"`
	EvaluatedAt  time.Time      `json:"evaluated_at"`
}

type rowResultDTO struct {
	Line               int    `json:"line"`
	Raw                string `json:"raw"`
	Normalized         string `json:"normalized"`
	Valid              bool   `json:"valid"`
	Reason             string `json:"reason,omitempty"`
	ExpectedCheckDigit int    `json:"expected_check_digit"`
}

func toDestDTO(d entity.Destination) destDTO {
	return destDTO{Host: d.Host, Port: d.Port, Topic: d.Topic, URL: d.URL}
}

func (d destDTO) toEntity() entity.Destination {
	return entity.Destination{Host: d.Host, Port: d.Port, Topic: d.Topic, URL: d.URL}
}

func toBatchDTO(batch *entity.ImportBatch) batchDTO {
	rows := make([]rowDTO, len(batch.Rows))
	for i, r := range batch.Rows {
		rows[i] = rowDTO{Line: r.Line, Value: r.Value}
	}
	return batchDTO{
		ID:              batch.ID,
		Attempt:         batch.Attempt,
		Source:          batch.Source,
		Rows:            rows,
		Destination:     toDestDTO(batch.Destination),
		DeadDestination: toDestDTO(batch.DeadDestination),
		MaxRetries:      batch.MaxRetries,
		BaseDelay:       batch.BaseDelay,
		SubmittedAt:     batch.SubmittedAt,
	}
}

func (dto batchDTO) toEntity() *entity.ImportBatch {
	rows := make([]entity.ImportRow, len(dto.Rows))
	for i, r := range dto.Rows {
		rows[i] = entity.ImportRow{Line: r.Line, Value: r.Value}
	}
	return &entity.ImportBatch{
		ID:              dto.ID,
		Attempt:         dto.Attempt,
		Source:          dto.Source,
		Rows:            rows,
		Destination:     dto.Destination.toEntity(),
		DeadDestination: dto.DeadDestination.toEntity(),
		MaxRetries:      dto.MaxRetries,
		BaseDelay:       dto.BaseDelay,
		SubmittedAt:     dto.SubmittedAt,
	}
}

func toReportDTO(report *entity.ImportReport) reportDTO {
	rows := make([]rowResultDTO, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = rowResultDTO{
			Line:               r.Line,
			Raw:                r.Raw,
			Normalized:         r.Normalized,
			Valid:              r.Valid,
			Reason:             r.Reason,
			ExpectedCheckDigit: r.ExpectedCheckDigit,
		}
	}
	return reportDTO{
		BatchID:      report.BatchID,
		Source:       report.Source,
		Rows:         rows,
		ValidCount:   report.ValidCount,
		InvalidCount: report.InvalidCount,
		EvaluatedAt:  report.EvaluatedAt,
	}
}

func (dto reportDTO) toEntity() *entity.ImportReport {
	rows := make([]entity.RowResult, len(dto.Rows))
	for i, r := range dto.Rows {
		rows[i] = entity.RowResult{
			Line:               r.Line,
			Raw:                r.Raw,
			Normalized:         r.Normalized,
			Valid:              r.Valid,
			Reason:             r.Reason,
			ExpectedCheckDigit: r.ExpectedCheckDigit,
		}
	}
	return &entity.ImportReport{
		BatchID:      dto.BatchID,
		Source:       dto.Source,
		Rows:         rows,
		ValidCount:   dto.ValidCount,
		InvalidCount: dto.InvalidCount,
		EvaluatedAt:  dto.EvaluatedAt,
	}
}
