package entity

import (
	"testing"
	"time"
)

func TestImportBatch_IncrementAttempt(t *testing.T) {
	batch := &ImportBatch{Attempt: 0}
	batch.IncrementAttempt()
	if batch.Attempt != 1 {
		t.Fatalf("expected attempt 1, got %d", batch.Attempt)
	}
}

func TestImportBatch_HasRetriesLeft(t *testing.T) {
	tests := []struct {
		name       string
		attempt    int
		maxRetries int
		want       bool
	}{
		{
			name:       "first attempt with retries available",
			attempt:    0,
			maxRetries: 3,
			want:       true,
		},
		{
			name:       "at max retries",
			attempt:    3,
			maxRetries: 3,
			want:       true,
		},
		{
			name:       "exceeded max retries",
			attempt:    4,
			maxRetries: 3,
			want:       false,
		},
		{
			name:       "no retries configured",
			attempt:    1,
			maxRetries: 0,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &ImportBatch{
				Attempt:    tt.attempt,
				MaxRetries: tt.maxRetries,
			}
			if got := batch.HasRetriesLeft(); got != tt.want {
				t.Fatalf("HasRetriesLeft() = %v, want %v", got, tt.want)
			}
			if got := batch.ShouldSendToDeadDestination(); got == tt.want {
				t.Fatalf("ShouldSendToDeadDestination() = %v, want %v", got, !tt.want)
			}
		})
	}
}

func TestImportBatch_NextRetryDelay(t *testing.T) {
	tests := []struct {
		name      string
		attempt   int
		baseDelay int
		want      time.Duration
	}{
		{name: "first retry", attempt: 1, baseDelay: 2, want: 2 * time.Second},
		{name: "second retry", attempt: 2, baseDelay: 2, want: 4 * time.Second},
		{name: "third retry", attempt: 3, baseDelay: 2, want: 8 * time.Second},
		{name: "zero attempt uses exponent 0", attempt: 0, baseDelay: 1, want: 1 * time.Second},
		{name: "base delay of 1", attempt: 4, baseDelay: 1, want: 8 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := &ImportBatch{
				Attempt:   tt.attempt,
				BaseDelay: tt.baseDelay,
			}
			if got := batch.NextRetryDelay(); got != tt.want {
				t.Fatalf("NextRetryDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImportBatch_Evaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := &ImportBatch{
		ID:     "import-1",
		Source: "hbl-upload",
		Rows: []ImportRow{
			{Line: 2, Value: "MSCU6639870"},
			{Line: 3, Value: "mscu 663 987 1"},
			{Line: 4, Value: "csqu3054383"},
			{Line: 5, Value: ""},
		},
	}

	report := batch.Evaluate(now)

	if report.BatchID != "import-1" || report.Source != "hbl-upload" {
		t.Fatalf("unexpected report identity: %+v", report)
	}
	if !report.EvaluatedAt.Equal(now) {
		t.Fatalf("EvaluatedAt = %v, want %v", report.EvaluatedAt, now)
	}
	if report.ValidCount != 2 || report.InvalidCount != 2 {
		t.Fatalf("counts = %d valid / %d invalid, want 2 / 2", report.ValidCount, report.InvalidCount)
	}
	if report.AllValid() {
		t.Fatal("expected AllValid() to be false")
	}

	invalid := report.InvalidRows()
	if len(invalid) != 2 {
		t.Fatalf("expected 2 invalid rows, got %d", len(invalid))
	}
	if invalid[0].Line != 3 || invalid[0].Normalized != "MSCU6639871" || invalid[0].Reason != "check_digit" {
		t.Fatalf("unexpected first invalid row: %+v", invalid[0])
	}
	if invalid[0].ExpectedCheckDigit != 0 {
		t.Fatalf("expected check digit 0, got %d", invalid[0].ExpectedCheckDigit)
	}
	if invalid[1].Line != 5 || invalid[1].Reason != "format" {
		t.Fatalf("unexpected second invalid row: %+v", invalid[1])
	}
}

func TestImportReport_AllValid(t *testing.T) {
	batch := &ImportBatch{Rows: []ImportRow{{Line: 1, Value: "CSQU3054383"}}}
	report := batch.Evaluate(time.Now())
	if !report.AllValid() {
		t.Fatal("expected AllValid() to be true")
	}
	if len(report.InvalidRows()) != 0 {
		t.Fatal("expected no invalid rows")
	}
}

func TestDestination(t *testing.T) {
	d := Destination{Host: "localhost", Port: "9092"}
	if got := d.Address(); got != "localhost:9092" {
		t.Fatalf("Address() = %q, want %q", got, "localhost:9092")
	}
	if !d.IsZero() {
		t.Fatal("expected destination without topic or URL to be zero")
	}
	if (Destination{URL: "http://x"}).IsZero() {
		t.Fatal("expected URL destination to be non-zero")
	}
}
