package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// Scheduler implements secondary.ImportScheduler with a Redis sorted set of
// batch IDs scored by due time (Unix seconds) and a hash of batch payloads.
type Scheduler struct {
	client   redis.UniversalClient
	queueKey string
	batchKey string
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler creates a Redis-backed import scheduler.
func NewScheduler(client redis.UniversalClient, logger *zap.Logger) secondary.ImportScheduler {
	return &Scheduler{
		client:   client,
		queueKey: domain.RedisImportQueueKey,
		batchKey: domain.RedisImportBatchKey,
		now:      time.Now,
		logger:   logger.Named("redis-scheduler"),
	}
}

// Schedule stores the batch payload and queues its ID with score = now + delay.
func (s *Scheduler) Schedule(ctx context.Context, batch *entity.ImportBatch, delay time.Duration) error {
	data, err := json.Marshal(toBatchDTO(batch))
	if err != nil {
		return fmt.Errorf("marshaling import batch: %w", err)
	}

	score := float64(s.now().Add(delay).Unix())
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.batchKey, batch.ID, data)
		pipe.ZAdd(ctx, s.queueKey, redis.Z{Score: score, Member: batch.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("scheduling import batch in redis: %w", err)
	}

	return nil
}

// FetchDue retrieves batches whose score (scheduled time) is <= now and
// dequeues them. A batch is returned only by the caller whose ZREM
// actually removed its ID.
func (s *Scheduler) FetchDue(ctx context.Context, limit int) ([]*entity.ImportBatch, error) {
	now := strconv.FormatInt(s.now().Unix(), 10)

	ids, err := s.client.ZRangeByScore(ctx, s.queueKey, &redis.ZRangeBy{
		Min:    "-inf",
		Max:    now,
		Offset: 0,
		Count:  int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("fetching due imports from redis: %w", err)
	}

	batches := make([]*entity.ImportBatch, 0, len(ids))
	for _, id := range ids {
		logger := s.logger.With(zap.String("batch_id", id))

		data, claimed, err := s.claim(ctx, id)
		if err != nil {
			logger.Error("failed to claim import", zap.Error(err))
			continue
		}
		if !claimed {
			// claimed by another worker
			continue
		}
		if data == nil {
			logger.Warn("queued import has no payload, skipping")
			continue
		}

		var dto batchDTO
		if err := json.Unmarshal(data, &dto); err != nil {
			logger.Warn("invalid import data in redis",
				zap.Error(err),
				zap.Int("raw_size", len(data)),
			)
			continue
		}

		batches = append(batches, dto.toEntity())
	}

	return batches, nil
}

// Remove dequeues a batch before it is processed.
func (s *Scheduler) Remove(ctx context.Context, batchID string) (bool, error) {
	_, claimed, err := s.claim(ctx, batchID)
	if err != nil {
		return false, fmt.Errorf("removing import from redis: %w", err)
	}
	return claimed, nil
}

// claim removes id from the queue and, when this caller removed it, takes
// its payload out of the hash. data is nil when the payload is missing.
func (s *Scheduler) claim(ctx context.Context, id string) ([]byte, bool, error) {
	removed, err := s.client.ZRem(ctx, s.queueKey, id).Result()
	if err != nil {
		return nil, false, err
	}
	if removed == 0 {
		return nil, false, nil
	}

	var get *redis.StringCmd
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, s.batchKey, id)
		pipe.HDel(ctx, s.batchKey, id)
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, true, nil
	}
	if err != nil {
		return nil, true, err
	}

	data, err := get.Bytes()
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}
