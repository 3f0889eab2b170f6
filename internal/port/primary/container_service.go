package primary

import (
	"context"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
)

// ContainerService defines the primary port for container number operations
// exposed to driving adapters (HTTP handlers, CLI, worker).
type ContainerService interface {
	// Check validates a single raw container number.
	Check(raw string) valueobject.Check

	// Normalize uppercases raw and strips all whitespace.
	Normalize(raw string) string

	// ComputeCheckDigit returns the check digit for a 10 character prefix.
	ComputeCheckDigit(prefix string) (int, error)

	// SubmitImport validates and queues an import batch for processing.
	SubmitImport(ctx context.Context, batch *entity.ImportBatch) error

	// ProcessDueImports validates and delivers reports for all due batches.
	ProcessDueImports(ctx context.Context) error

	// CancelImport dequeues a batch that has not been processed yet.
	CancelImport(ctx context.Context, batchID string) error

	// GetReport returns the stored report of a processed batch.
	GetReport(ctx context.Context, batchID string) (*entity.ImportReport, error)
}
