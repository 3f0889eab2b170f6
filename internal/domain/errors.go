package domain

import "errors"

var (
	// ErrInvalidContainerNumber indicates a container number that is malformed
	// or whose check digit does not match.
	ErrInvalidContainerNumber = errors.New("invalid container number")

	// ErrInvalidImport indicates the import batch failed validation.
	ErrInvalidImport = errors.New("invalid import")

	// ErrImportNotFound indicates no report exists for the requested batch.
	ErrImportNotFound = errors.New("import not found")

	// ErrScheduleFailed indicates a failure when scheduling an import batch.
	ErrScheduleFailed = errors.New("failed to schedule import")

	// ErrDeliveryFailed indicates the report could not be delivered to the destination.
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrMaxRetriesExceeded indicates the batch exhausted all delivery attempts.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
