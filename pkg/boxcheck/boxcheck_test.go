package boxcheck

import (
	"testing"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

func TestImport_toDomain(t *testing.T) {
	imp := &Import{
		ID:     "import-1",
		Source: "excel",
		Rows: []Row{
			{Line: 5, Value: "MSCU6639870"},
			{Value: "CSQU3054383"},
		},
		Destination:     Destination{Host: "localhost", Port: "9092", Topic: "reports"},
		DeadDestination: Destination{URL: "http://dlq.local"},
		MaxRetries:      2,
		BaseDelay:       4,
	}

	batch := imp.toDomain()

	if batch.ID != "import-1" || batch.Source != "excel" {
		t.Fatalf("unexpected batch header: %+v", batch)
	}
	if batch.Rows[0].Line != 5 || batch.Rows[1].Line != 2 {
		t.Fatalf("unexpected line numbers: %+v", batch.Rows)
	}
	if batch.Destination.Address() != "localhost:9092" || batch.DeadDestination.URL != "http://dlq.local" {
		t.Fatalf("unexpected destinations: %+v / %+v", batch.Destination, batch.DeadDestination)
	}
	if batch.MaxRetries != 2 || batch.BaseDelay != 4 {
		t.Fatalf("unexpected retry settings: %d/%d", batch.MaxRetries, batch.BaseDelay)
	}
}

func TestReportFromDomain(t *testing.T) {
	evaluated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report := reportFromDomain(&entity.ImportReport{
		BatchID: "import-1",
		Source:  "excel",
		Rows: []entity.RowResult{
			{Line: 2, Raw: "mscu6639870", Normalized: "MSCU6639870", Valid: true},
			{Line: 3, Raw: "X", Normalized: "X", Reason: "format", ExpectedCheckDigit: -1},
		},
		ValidCount:   1,
		InvalidCount: 1,
		EvaluatedAt:  evaluated,
	})

	if report.BatchID != "import-1" || !report.EvaluatedAt.Equal(evaluated) {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if report.Rows[0].Input != "mscu6639870" || !report.Rows[0].Valid {
		t.Fatalf("unexpected first row: %+v", report.Rows[0])
	}
	if report.Rows[1].Line != 3 || report.Rows[1].Reason != "format" || report.Rows[1].ExpectedCheckDigit != -1 {
		t.Fatalf("unexpected second row: %+v", report.Rows[1])
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RedisAddr != "localhost:6379" || cfg.PollInterval != time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReportTTL <= 0 || cfg.WebhookTimeout <= 0 {
		t.Fatalf("expected positive TTL and webhook timeout: %+v", cfg)
	}
}
