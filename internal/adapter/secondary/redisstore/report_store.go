package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// ReportStore implements secondary.ReportStore with one Redis string per report.
type ReportStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewReportStore creates a Redis-backed report store. Reports expire after
// ttl; a non-positive ttl keeps them forever.
func NewReportStore(client redis.UniversalClient, ttl time.Duration) secondary.ReportStore {
	if ttl < 0 {
		ttl = 0
	}
	return &ReportStore{client: client, ttl: ttl}
}

// Save writes the report under its batch key.
func (s *ReportStore) Save(ctx context.Context, report *entity.ImportReport) error {
	data, err := json.Marshal(toReportDTO(report))
	if err != nil {
		return fmt.Errorf("marshaling import report: %w", err)
	}

	if err := s.client.Set(ctx, reportKey(report.BatchID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing import report in redis: %w", err)
	}
	return nil
}

// Get loads the report of batchID.
func (s *ReportStore) Get(ctx context.Context, batchID string) (*entity.ImportReport, error) {
	data, err := s.client.Get(ctx, reportKey(batchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrImportNotFound, batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading import report from redis: %w", err)
	}

	var dto reportDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decoding import report: %w", err)
	}
	return dto.toEntity(), nil
}

func reportKey(batchID string) string {
	return domain.RedisReportKeyPrefix + batchID
}
