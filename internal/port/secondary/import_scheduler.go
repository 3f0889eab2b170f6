package secondary

import (
	"context"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

// ImportScheduler defines the secondary port for scheduling and retrieving
// import batches from a time-based queue (e.g., Redis sorted set).
type ImportScheduler interface {
	// Schedule adds a batch to the queue with the given delay from now.
	// Scheduling an ID that is already queued replaces it.
	Schedule(ctx context.Context, batch *entity.ImportBatch, delay time.Duration) error

	// FetchDue retrieves and dequeues up to limit batches whose scheduled time has passed.
	FetchDue(ctx context.Context, limit int) ([]*entity.ImportBatch, error)

	// Remove dequeues the batch with the given ID. It reports false when
	// the batch was not queued.
	Remove(ctx context.Context, batchID string) (bool, error)
}
