package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// mockScheduler implements secondary.ImportScheduler for testing.
type mockScheduler struct {
	scheduleFunc func(ctx context.Context, batch *entity.ImportBatch, delay time.Duration) error
	fetchDueFunc func(ctx context.Context, limit int) ([]*entity.ImportBatch, error)
	removeFunc   func(ctx context.Context, batchID string) (bool, error)

	scheduledBatches []scheduledCall
	fetchLimits      []int
	removedIDs       []string
}

type scheduledCall struct {
	Batch   *entity.ImportBatch
	Attempt int
	Delay   time.Duration
}

func (m *mockScheduler) Schedule(ctx context.Context, batch *entity.ImportBatch, delay time.Duration) error {
	if m.scheduleFunc != nil {
		if err := m.scheduleFunc(ctx, batch, delay); err != nil {
			return err
		}
	}
	m.scheduledBatches = append(m.scheduledBatches, scheduledCall{Batch: batch, Attempt: batch.Attempt, Delay: delay})
	return nil
}

func (m *mockScheduler) FetchDue(ctx context.Context, limit int) ([]*entity.ImportBatch, error) {
	m.fetchLimits = append(m.fetchLimits, limit)
	if m.fetchDueFunc != nil {
		return m.fetchDueFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockScheduler) Remove(ctx context.Context, batchID string) (bool, error) {
	m.removedIDs = append(m.removedIDs, batchID)
	if m.removeFunc != nil {
		return m.removeFunc(ctx, batchID)
	}
	return true, nil
}

// mockReportStore implements secondary.ReportStore in memory.
type mockReportStore struct {
	saveErr error
	reports map[string]*entity.ImportReport
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{reports: make(map[string]*entity.ImportReport)}
}

func (m *mockReportStore) Save(_ context.Context, report *entity.ImportReport) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.reports[report.BatchID] = report
	return nil
}

func (m *mockReportStore) Get(_ context.Context, batchID string) (*entity.ImportReport, error) {
	report, ok := m.reports[batchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrImportNotFound, batchID)
	}
	return report, nil
}

// mockProducer implements secondary.MessageProducer for testing.
type mockProducer struct {
	produceFunc func(ctx context.Context, destination entity.Destination, key, value []byte) error
	closeFunc   func() error

	produceCalls []produceCall
}

type produceCall struct {
	Destination entity.Destination
	Key         []byte
	Value       []byte
	Err         error
}

func (m *mockProducer) Produce(ctx context.Context, destination entity.Destination, key, value []byte) error {
	var err error
	if m.produceFunc != nil {
		err = m.produceFunc(ctx, destination, key, value)
	}
	m.produceCalls = append(m.produceCalls, produceCall{
		Destination: destination,
		Key:         key,
		Value:       value,
		Err:         err,
	})
	return err
}

func (m *mockProducer) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

// successfulProduceCalls returns only the calls that did not return an error.
func (m *mockProducer) successfulProduceCalls() []produceCall {
	var result []produceCall
	for _, c := range m.produceCalls {
		if c.Err == nil {
			result = append(result, c)
		}
	}
	return result
}

// testBatch returns a standard import batch fixture.
func testBatch() *entity.ImportBatch {
	return &entity.ImportBatch{
		ID:     "import-1",
		Source: "hbl-upload",
		Rows: []entity.ImportRow{
			{Line: 2, Value: "MSCU6639870"},
			{Line: 3, Value: "CSQU 305 438 3"},
			{Line: 4, Value: "TEMU9876543"},
		},
		Destination: entity.Destination{
			Host:  "localhost",
			Port:  "9092",
			Topic: "container-reports",
		},
		DeadDestination: entity.Destination{
			Host:  "localhost",
			Port:  "9092",
			Topic: "container-reports-dlq",
		},
		MaxRetries: 3,
		BaseDelay:  2,
	}
}

// testHTTPBatch returns an import batch delivered to a webhook.
func testHTTPBatch() *entity.ImportBatch {
	b := testBatch()
	b.ID = "import-http-1"
	b.Destination = entity.Destination{URL: "http://localhost:8090/reports"}
	b.DeadDestination = entity.Destination{}
	return b
}
