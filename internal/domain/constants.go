package domain

import "time"

const (
	// RedisImportQueueKey is the sorted set of queued batch IDs scored by due time.
	RedisImportQueueKey = "boxcheck:{imports}:schedule"

	// RedisImportBatchKey is the hash holding queued batch payloads by ID.
	// It shares a hash tag with RedisImportQueueKey so both live on one cluster slot.
	RedisImportBatchKey = "boxcheck:{imports}:batches"

	// RedisReportKeyPrefix prefixes the string keys holding import reports.
	RedisReportKeyPrefix = "boxcheck:imports:report:"

	// DefaultPollInterval is the interval between worker polling cycles.
	DefaultPollInterval = 1 * time.Second

	// DefaultBatchSize is the maximum number of import batches fetched per poll cycle.
	DefaultBatchSize = 10

	// DefaultMaxImportRows caps the rows accepted in a single import batch.
	DefaultMaxImportRows = 50000

	// DefaultReportTTL is how long import reports are kept.
	DefaultReportTTL = 7 * 24 * time.Hour

	// DefaultImportColumn is the CSV header holding container numbers.
	DefaultImportColumn = "container_no"

	// MaxBaseDelay caps the base delay to prevent excessively long waits.
	MaxBaseDelay = 3600

	// MinBaseDelay ensures a minimum delay between retries.
	MinBaseDelay = 1

	// MaxRetryLimit caps the maximum number of retries allowed.
	MaxRetryLimit = 100
)
