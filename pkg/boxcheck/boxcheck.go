// Package boxcheck validates ISO 6346 container numbers and, through
// Client, runs the asynchronous bulk-import pipeline inside another Go
// application.
package boxcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/adapter/primary/worker"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/httpproducer"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/kafkaproducer"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/producerfactory"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/boxcheck/internal/config"
	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/domain/service"
	"github.com/ruudy-sib/boxcheck/internal/domain/valueobject"
	"github.com/ruudy-sib/boxcheck/internal/metrics"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// Errors returned by Client and CheckDigit. Match them with errors.Is.
var (
	ErrInvalidContainerNumber = domain.ErrInvalidContainerNumber
	ErrInvalidImport          = domain.ErrInvalidImport
	ErrImportNotFound         = domain.ErrImportNotFound
)

// Normalize uppercases raw and strips every whitespace character.
func Normalize(raw string) string {
	return valueobject.NormalizeContainerNumber(raw)
}

// IsValid reports whether raw is a valid ISO 6346 container number.
func IsValid(raw string) bool {
	return valueobject.IsValidContainerNumber(raw)
}

// CheckDigit computes the check digit of a 10 character prefix.
func CheckDigit(prefix string) (int, error) {
	return valueobject.ComputeCheckDigit(prefix)
}

// Result explains the validation of one container number.
type Result struct {
	Input      string
	Normalized string
	Valid      bool

	// Reason is "format" or "check_digit" when Valid is false.
	Reason string

	// ExpectedCheckDigit is -1 when the input is not well formed.
	ExpectedCheckDigit int
}

// Check validates raw and explains the outcome.
func Check(raw string) Result {
	c := valueobject.Diagnose(raw)
	return Result{
		Input:              c.Raw,
		Normalized:         c.Normalized,
		Valid:              c.Valid,
		Reason:             c.Reason,
		ExpectedCheckDigit: c.ExpectedCheckDigit,
	}
}

// Client runs the bulk-import pipeline against Redis and delivers reports
// to Kafka topics or webhooks.
type Client struct {
	service     primary.ContainerService
	worker      *worker.ImportWorker
	producer    secondary.MessageProducer
	redisClient goredis.UniversalClient
	logger      *zap.Logger
	config      *Config
}

// Config holds configuration for Client.
type Config struct {
	// Redis mode: "standalone" (default), "sentinel", "cluster"
	RedisMode string

	// Standalone Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Sentinel Redis (RedisMode = "sentinel")
	RedisMasterName    string
	RedisSentinelAddrs []string

	// Cluster Redis (RedisMode = "cluster")
	RedisClusterAddrs []string

	// Worker configuration
	PollInterval time.Duration
	BatchSize    int

	// Import limits
	MaxImportRows int
	ReportTTL     time.Duration

	// WebhookTimeout bounds each webhook delivery.
	WebhookTimeout time.Duration

	// Registerer, when set, receives the validation and import metrics.
	Registerer prometheus.Registerer

	// Logger (if nil, a production logger is created)
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RedisAddr:      "localhost:6379",
		PollInterval:   domain.DefaultPollInterval,
		BatchSize:      domain.DefaultBatchSize,
		MaxImportRows:  domain.DefaultMaxImportRows,
		ReportTTL:      domain.DefaultReportTTL,
		WebhookTimeout: config.DefaultWebhookTimeout,
	}
}

// New connects to Redis and assembles the import pipeline.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	ttl := cfg.ReportTTL
	if ttl <= 0 {
		ttl = domain.DefaultReportTTL
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = domain.DefaultPollInterval
	}

	internalCfg := &config.Config{
		RedisMode:          cfg.RedisMode,
		RedisAddr:          cfg.RedisAddr,
		RedisPassword:      cfg.RedisPassword,
		RedisDB:            cfg.RedisDB,
		RedisMasterName:    cfg.RedisMasterName,
		RedisSentinelAddrs: cfg.RedisSentinelAddrs,
		RedisClusterAddrs:  cfg.RedisClusterAddrs,
		PollInterval:       pollInterval,
		BatchSize:          cfg.BatchSize,
		MaxImportRows:      cfg.MaxImportRows,
		ReportTTL:          ttl,
		WebhookTimeout:     cfg.WebhookTimeout,
	}

	redisClient, err := redisstore.NewClient(context.Background(), internalCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating redis client: %w", err)
	}

	// Kafka connections are opened per destination at delivery time.
	producer := producerfactory.NewFactory(
		kafkaproducer.NewDestinationProducer(logger),
		httpproducer.NewProducer(internalCfg, logger),
		logger,
	)

	var m *metrics.Metrics
	if cfg.Registerer != nil {
		m = metrics.New(cfg.Registerer)
	}

	svc := service.NewContainerService(
		redisstore.NewScheduler(redisClient, logger),
		redisstore.NewReportStore(redisClient, ttl),
		producer,
		m,
		service.Limits{BatchSize: cfg.BatchSize, MaxImportRows: cfg.MaxImportRows},
		logger,
	)

	return &Client{
		service:     svc,
		worker:      worker.NewImportWorker(svc, pollInterval, logger),
		producer:    producer,
		redisClient: redisClient,
		logger:      logger,
		config:      cfg,
	}, nil
}

// Start runs the import worker in the background until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	c.logger.Info("starting boxcheck import worker")
	go func() {
		_ = c.worker.Run(ctx)
	}()
	return nil
}

// SubmitImport queues an import for validation and returns its batch ID.
// An empty Import.ID is replaced by a generated one.
func (c *Client) SubmitImport(ctx context.Context, imp *Import) (string, error) {
	batch := imp.toDomain()
	if err := c.service.SubmitImport(ctx, batch); err != nil {
		return "", err
	}
	return batch.ID, nil
}

// CancelImport dequeues an import that has not been processed yet. It
// returns ErrImportNotFound when the import is no longer queued.
func (c *Client) CancelImport(ctx context.Context, batchID string) error {
	return c.service.CancelImport(ctx, batchID)
}

// Report returns the stored report of a processed import.
func (c *Client) Report(ctx context.Context, batchID string) (*Report, error) {
	report, err := c.service.GetReport(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return reportFromDomain(report), nil
}

// Close releases the producers and the Redis connection.
func (c *Client) Close() error {
	c.logger.Info("shutting down boxcheck client")

	var errs []error
	if err := c.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing producer: %w", err))
	}
	if err := c.redisClient.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing redis client: %w", err))
	}
	return errors.Join(errs...)
}

// Import is a batch of container numbers to validate asynchronously.
type Import struct {
	// ID identifies the batch; generated when empty.
	ID string

	// Source names the originating upload or system.
	Source string

	// Rows holds the cells to validate.
	Rows []Row

	// Destination receives the report; DeadDestination receives it after
	// MaxRetries failed deliveries.
	Destination     Destination
	DeadDestination Destination

	// MaxRetries is the maximum number of delivery retries (0-100)
	MaxRetries int

	// BaseDelay is the base delay in seconds for exponential backoff (1-3600)
	BaseDelay int
}

// Row is one spreadsheet cell. Line is 1-based; zero means its position.
type Row struct {
	Line  int
	Value string
}

// Destination specifies where a report should be delivered.
// For Kafka: use Host, Port, and Topic.
// For HTTP: use URL.
type Destination struct {
	Host  string
	Port  string
	Topic string
	URL   string
}

// Report is the validation outcome of an import.
type Report struct {
	BatchID      string
	Source       string
	Rows         []RowResult
	ValidCount   int
	InvalidCount int
	EvaluatedAt  time.Time
}

// RowResult is the outcome for one row of an import.
type RowResult struct {
	Line int
	Result
}

func (d Destination) toDomain() entity.Destination {
	return entity.Destination{Host: d.Host, Port: d.Port, Topic: d.Topic, URL: d.URL}
}

func (imp *Import) toDomain() *entity.ImportBatch {
	rows := make([]entity.ImportRow, len(imp.Rows))
	for i, r := range imp.Rows {
		line := r.Line
		if line == 0 {
			line = i + 1
		}
		rows[i] = entity.ImportRow{Line: line, Value: r.Value}
	}
	return &entity.ImportBatch{
		ID:              imp.ID,
		Source:          imp.Source,
		Rows:            rows,
		Destination:     imp.Destination.toDomain(),
		DeadDestination: imp.DeadDestination.toDomain(),
		MaxRetries:      imp.MaxRetries,
		BaseDelay:       imp.BaseDelay,
	}
}

func reportFromDomain(r *entity.ImportReport) *Report {
	rows := make([]RowResult, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = RowResult{
			Line: row.Line,
			Result: Result{
				Input:              row.Raw,
				Normalized:         row.Normalized,
				Valid:              row.Valid,
				Reason:             row.Reason,
				ExpectedCheckDigit: row.ExpectedCheckDigit,
			},
		}
	}
	return &Report{
		BatchID:      r.BatchID,
		Source:       r.Source,
		Rows:         rows,
		ValidCount:   r.ValidCount,
		InvalidCount: r.InvalidCount,
		EvaluatedAt:  r.EvaluatedAt,
	}
}
