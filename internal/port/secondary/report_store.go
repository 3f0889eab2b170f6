package secondary

import (
	"context"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// ReportStore persists import reports so clients can fetch them after processing.
type ReportStore interface {
	// Save stores the report, replacing any previous report of the same batch.
	Save(ctx context.Context, report *entity.ImportReport) error

	// Get returns the report for batchID or an error wrapping domain.ErrImportNotFound.
	Get(ctx context.Context, batchID string) (*entity.ImportReport, error)
}
