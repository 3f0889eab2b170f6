package redisstore

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

func TestBatchDTO_preservesRetryState(t *testing.T) {
	batch := &entity.ImportBatch{
		ID:      "import-1",
		Attempt: 2,
		Source:  "excel",
		Rows: []entity.ImportRow{
			{Line: 2, Value: "MSCU6639870"},
			{Line: 7, Value: ""},
		},
		Destination:     entity.Destination{Host: "localhost", Port: "9092", Topic: "container-reports"},
		DeadDestination: entity.Destination{URL: "http://dlq.local"},
		MaxRetries:      3,
		BaseDelay:       2,
		SubmittedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(toBatchDTO(batch))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var dto batchDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := dto.toEntity()
	if !got.SubmittedAt.Equal(batch.SubmittedAt) {
		t.Fatalf("SubmittedAt = %v, want %v", got.SubmittedAt, batch.SubmittedAt)
	}
	got.SubmittedAt = batch.SubmittedAt
	if !reflect.DeepEqual(got, batch) {
		t.Fatalf("batch changed through redis encoding:\n got %+v\nwant %+v", got, batch)
	}
}

func TestDestDTO_omitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(toDestDTO(entity.Destination{URL: "http://tos.local/hook"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"url":"http://tos.local/hook"}` {
		t.Fatalf("unexpected encoding: %s", data)
	}
}

func TestReportDTO_keepsExpectedCheckDigit(t *testing.T) {
	report := &entity.ImportReport{
		BatchID: "import-1",
		Rows: []entity.RowResult{
			{Line: 2, Raw: "MSCU6639871", Normalized: "MSCU6639871", Reason: "check_digit", ExpectedCheckDigit: 0},
			{Line: 3, Raw: "x", Normalized: "X", Reason: "format", ExpectedCheckDigit: -1},
		},
		InvalidCount: 2,
	}

	got := toReportDTO(report).toEntity()
	if got.Rows[0].ExpectedCheckDigit != 0 || got.Rows[1].ExpectedCheckDigit != -1 {
		t.Fatalf("unexpected expected digits: %+v", got.Rows)
	}
	if got.InvalidCount != 2 || got.BatchID != "import-1" {
		t.Fatalf("unexpected report header: %+v", got)
	}
}
