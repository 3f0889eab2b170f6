package valueobject

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// maxBatchIDLength bounds IDs used as Redis keys and Kafka message keys.
const maxBatchIDLength = 128

// BatchID is an immutable value object identifying an import batch.
type BatchID struct {
	value string
}

// NewBatchID creates a validated BatchID from a string.
func NewBatchID(value string) (BatchID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return BatchID{}, fmt.Errorf("batch ID must not be empty")
	}
	if len(trimmed) > maxBatchIDLength {
		return BatchID{}, fmt.Errorf("batch ID must be at most %d characters", maxBatchIDLength)
	}
	if strings.ContainsAny(trimmed, "| \t\n") {
		return BatchID{}, fmt.Errorf("batch ID must not contain whitespace or '|'")
	}
	return BatchID{value: trimmed}, nil
}

// GenerateBatchID returns a random UUID based BatchID.
func GenerateBatchID() BatchID {
	return BatchID{value: uuid.NewString()}
}

// String returns the string representation of the BatchID.
func (b BatchID) String() string {
	return b.value
}

// Equals checks equality with another BatchID.
func (b BatchID) Equals(other BatchID) bool {
	return b.value == other.value
}
