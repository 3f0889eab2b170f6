package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
	"github.com/ruudy-sib/boxcheck/internal/metrics"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// outcomeValid labels metrics for rows and checks that passed.
const outcomeValid = "valid"

// Limits bounds the work accepted and processed by ContainerService.
type Limits struct {
	// BatchSize is the maximum number of import batches fetched per poll.
	BatchSize int

	// MaxImportRows is the maximum number of rows in one import batch.
	MaxImportRows int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		BatchSize:     domain.DefaultBatchSize,
		MaxImportRows: domain.DefaultMaxImportRows,
	}
}

// ContainerService validates container numbers and runs the bulk import
// pipeline: queueing, per-row validation, report storage and delivery
// with retry.
type ContainerService struct {
	scheduler secondary.ImportScheduler
	reports   secondary.ReportStore
	producer  secondary.MessageProducer
	metrics   *metrics.Metrics
	limits    Limits
	now       func() time.Time
	logger    *zap.Logger
}

// NewContainerService creates a ContainerService with its dependencies injected.
// A nil metrics value disables instrumentation.
func NewContainerService(
	scheduler secondary.ImportScheduler,
	reports secondary.ReportStore,
	producer secondary.MessageProducer,
	m *metrics.Metrics,
	limits Limits,
	logger *zap.Logger,
) *ContainerService {
	defaults := DefaultLimits()
	if limits.BatchSize <= 0 {
		limits.BatchSize = defaults.BatchSize
	}
	if limits.MaxImportRows <= 0 {
		limits.MaxImportRows = defaults.MaxImportRows
	}

	return &ContainerService{
		scheduler: scheduler,
		reports:   reports,
		producer:  producer,
		metrics:   m,
		limits:    limits,
		now:       time.Now,
		logger:    logger.Named("container-service"),
	}
}

// Check validates a single raw container number.
func (s *ContainerService) Check(raw string) valueobject.Check {
	check := valueobject.Diagnose(raw)
	s.metrics.IncrementCheck(outcome(check.Valid, check.Reason))
	return check
}

// Normalize uppercases raw and strips all whitespace.
func (s *ContainerService) Normalize(raw string) string {
	return valueobject.NormalizeContainerNumber(raw)
}

// ComputeCheckDigit returns the check digit for a 10 character prefix.
func (s *ContainerService) ComputeCheckDigit(prefix string) (int, error) {
	return valueobject.ComputeCheckDigit(prefix)
}

// SubmitImport validates and schedules a new import batch for immediate processing.
// A batch without an ID gets a generated one.
func (s *ContainerService) SubmitImport(ctx context.Context, batch *entity.ImportBatch) error {
	if err := s.prepareBatch(batch); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	if err := s.scheduler.Schedule(ctx, batch, 0); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrScheduleFailed, err)
	}

	s.logger.Info("import scheduled",
		zap.String("batch_id", batch.ID),
		zap.String("source", batch.Source),
		zap.Int("rows", len(batch.Rows)),
	)

	return nil
}

// ProcessDueImports fetches due batches, validates their rows and delivers
// each report. Failed deliveries are rescheduled with exponential backoff.
// Batches that exceed max retries go to the dead-letter destination.
func (s *ContainerService) ProcessDueImports(ctx context.Context) error {
	batches, err := s.scheduler.FetchDue(ctx, s.limits.BatchSize)
	if err != nil {
		return fmt.Errorf("fetching due imports: %w", err)
	}

	for _, batch := range batches {
		s.processBatch(ctx, batch)
	}

	return nil
}

// CancelImport removes a queued batch before it is processed. It returns
// ErrImportNotFound when the batch is unknown or already being processed.
// A batch waiting for a delivery retry is queued and can be cancelled.
func (s *ContainerService) CancelImport(ctx context.Context, batchID string) error {
	id, err := valueobject.NewBatchID(batchID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImportNotFound, err)
	}

	removed, err := s.scheduler.Remove(ctx, id.String())
	if err != nil {
		return fmt.Errorf("cancelling import: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not queued", domain.ErrImportNotFound, id)
	}

	s.logger.Info("import cancelled", zap.String("batch_id", id.String()))
	return nil
}

// GetReport returns the stored report of a processed batch.
func (s *ContainerService) GetReport(ctx context.Context, batchID string) (*entity.ImportReport, error) {
	id, err := valueobject.NewBatchID(batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportNotFound, err)
	}
	return s.reports.Get(ctx, id.String())
}

func (s *ContainerService) processBatch(ctx context.Context, batch *entity.ImportBatch) {
	logger := s.logger.With(
		zap.String("batch_id", batch.ID),
		zap.Int("attempt", batch.Attempt),
	)

	logger.Info("processing import")

	report := batch.Evaluate(s.now())
	if batch.Attempt == 0 {
		s.recordRows(report)
	}

	if err := s.reports.Save(ctx, report); err != nil {
		logger.Warn("failed to store import report", zap.Error(err))
	}

	payload, err := json.Marshal(newReportMessage(report))
	if err != nil {
		logger.Error("failed to encode import report, dropping batch", zap.Error(err))
		s.metrics.IncrementDelivery("dropped")
		return
	}

	key := []byte(fmt.Sprintf("%s|%d", batch.ID, batch.Attempt))
	if err := s.producer.Produce(ctx, batch.Destination, key, payload); err != nil {
		logger.Warn("delivery failed", zap.Error(err))
		s.handleFailure(ctx, batch, payload, logger)
		return
	}

	s.metrics.IncrementDelivery("delivered")
	logger.Info("import report delivered",
		zap.Int("valid", report.ValidCount),
		zap.Int("invalid", report.InvalidCount),
	)
}

func (s *ContainerService) recordRows(report *entity.ImportReport) {
	s.metrics.ObserveBatchSize(len(report.Rows))
	counts := make(map[string]int)
	for _, row := range report.Rows {
		counts[outcome(row.Valid, row.Reason)]++
	}
	for label, n := range counts {
		s.metrics.AddImportRows(label, n)
	}
}

func (s *ContainerService) handleFailure(ctx context.Context, batch *entity.ImportBatch, payload []byte, logger *zap.Logger) {
	batch.IncrementAttempt()

	if batch.ShouldSendToDeadDestination() {
		logger.Error("max retries exceeded, sending report to dead-letter destination",
			zap.Int("max_retries", batch.MaxRetries),
			zap.Int("attempts", batch.Attempt),
		)
		s.sendToDeadLetter(ctx, batch, payload, logger)
		return
	}

	delay := batch.NextRetryDelay()
	logger.Info("scheduling retry",
		zap.Duration("delay", delay),
		zap.Int("next_attempt", batch.Attempt),
	)

	if err := s.scheduler.Schedule(ctx, batch, delay); err != nil {
		logger.Error("failed to reschedule import", zap.Error(err))
		return
	}
	s.metrics.IncrementDelivery("retried")
}

func (s *ContainerService) sendToDeadLetter(ctx context.Context, batch *entity.ImportBatch, payload []byte, logger *zap.Logger) {
	if batch.DeadDestination.IsZero() {
		logger.Warn("no dead-letter destination configured, dropping report")
		s.metrics.IncrementDelivery("dropped")
		return
	}

	key := []byte(fmt.Sprintf("%s|dead|%d", batch.ID, batch.Attempt))
	if err := s.producer.Produce(ctx, batch.DeadDestination, key, payload); err != nil {
		logger.Error("failed to send to dead-letter destination",
			zap.Error(fmt.Errorf("%w: %w", domain.ErrMaxRetriesExceeded, err)),
		)
		s.metrics.IncrementDelivery("dropped")
		return
	}
	s.metrics.IncrementDelivery("dead_lettered")
}

func (s *ContainerService) prepareBatch(batch *entity.ImportBatch) error {
	if batch.ID == "" {
		batch.ID = valueobject.GenerateBatchID().String()
	} else {
		id, err := valueobject.NewBatchID(batch.ID)
		if err != nil {
			return err
		}
		batch.ID = id.String()
	}

	if batch.Source == "" {
		return fmt.Errorf("source is required")
	}
	if len(batch.Rows) == 0 {
		return fmt.Errorf("at least one row is required")
	}
	if len(batch.Rows) > s.limits.MaxImportRows {
		return fmt.Errorf("import has %d rows, limit is %d", len(batch.Rows), s.limits.MaxImportRows)
	}
	if batch.Destination.IsZero() {
		return fmt.Errorf("destination topic or url is required")
	}
	if batch.MaxRetries < 0 || batch.MaxRetries > domain.MaxRetryLimit {
		return fmt.Errorf("max_retries must be between 0 and %d", domain.MaxRetryLimit)
	}
	if batch.BaseDelay < domain.MinBaseDelay || batch.BaseDelay > domain.MaxBaseDelay {
		return fmt.Errorf("base_delay must be between %d and %d", domain.MinBaseDelay, domain.MaxBaseDelay)
	}

	batch.Attempt = 0
	if batch.SubmittedAt.IsZero() {
		batch.SubmittedAt = s.now()
	}
	return nil
}

func outcome(valid bool, reason string) string {
	if valid {
		return outcomeValid
	}
	return reason
}
