package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	httphandler "github.com/ruudy-sib/boxcheck/internal/adapter/primary/http"
	"github.com/ruudy-sib/boxcheck/internal/adapter/primary/worker"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/httpproducer"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/kafkaproducer"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/producerfactory"
	"github.com/ruudy-sib/boxcheck/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/boxcheck/internal/config"
	"github.com/ruudy-sib/boxcheck/internal/domain/service"
	"github.com/ruudy-sib/boxcheck/internal/metrics"
	"github.com/ruudy-sib/boxcheck/internal/port/primary"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

func buildContainer(ctx context.Context) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(config.New); err != nil {
		return nil, err
	}

	// --- Logger ---
	if err := c.Provide(newLogger); err != nil {
		return nil, err
	}

	// --- Metrics ---
	if err := c.Provide(func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(func(reg *prometheus.Registry) *metrics.Metrics {
		return metrics.New(reg)
	}); err != nil {
		return nil, err
	}

	// --- Secondary Adapters (infrastructure) ---

	// Redis client (standalone, sentinel or cluster)
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (goredis.UniversalClient, error) {
		return redisstore.NewClient(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Import queue (implements secondary.ImportScheduler)
	if err := c.Provide(func(client goredis.UniversalClient, logger *zap.Logger) secondary.ImportScheduler {
		return redisstore.NewScheduler(client, logger)
	}); err != nil {
		return nil, err
	}

	// Report store (implements secondary.ReportStore)
	if err := c.Provide(func(client goredis.UniversalClient, cfg *config.Config) secondary.ReportStore {
		return redisstore.NewReportStore(client, cfg.ReportTTL)
	}); err != nil {
		return nil, err
	}

	// Collect all health checks
	if err := c.Provide(func(client goredis.UniversalClient, cfg *config.Config) []secondary.HealthChecker {
		checks := []secondary.HealthChecker{redisstore.NewHealthCheck(client)}
		if len(cfg.KafkaBrokers) > 0 {
			checks = append(checks, kafkaproducer.NewHealthCheck(cfg.KafkaBrokers))
		}
		return checks
	}); err != nil {
		return nil, err
	}

	// Kafka producer: global brokers when configured, otherwise one writer per destination
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) secondary.MessageProducer {
		if len(cfg.KafkaBrokers) == 0 {
			return kafkaproducer.NewDestinationProducer(logger)
		}
		return kafkaproducer.NewProducer(cfg, logger)
	}, dig.Name("kafka")); err != nil {
		return nil, err
	}

	// Webhook producer
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) secondary.MessageProducer {
		return httpproducer.NewProducer(cfg, logger)
	}, dig.Name("http")); err != nil {
		return nil, err
	}

	// Producer factory routes each report to Kafka or the webhook
	type producerParams struct {
		dig.In
		KafkaProd secondary.MessageProducer `name:"kafka"`
		HTTPProd  secondary.MessageProducer `name:"http"`
		Logger    *zap.Logger
	}

	if err := c.Provide(func(params producerParams) secondary.MessageProducer {
		return producerfactory.NewFactory(params.KafkaProd, params.HTTPProd, params.Logger)
	}); err != nil {
		return nil, err
	}

	// --- Domain Services ---

	if err := c.Provide(func(
		scheduler secondary.ImportScheduler,
		reports secondary.ReportStore,
		producer secondary.MessageProducer,
		m *metrics.Metrics,
		cfg *config.Config,
		logger *zap.Logger,
	) *service.ContainerService {
		limits := service.Limits{BatchSize: cfg.BatchSize, MaxImportRows: cfg.MaxImportRows}
		return service.NewContainerService(scheduler, reports, producer, m, limits, logger)
	}); err != nil {
		return nil, err
	}

	// Bind concrete ContainerService to the primary port interface
	if err := c.Provide(func(s *service.ContainerService) primary.ContainerService {
		return s
	}); err != nil {
		return nil, err
	}

	// --- Primary Adapters ---

	// HTTP router
	if err := c.Provide(func(
		svc primary.ContainerService,
		checks []secondary.HealthChecker,
		reg *prometheus.Registry,
		logger *zap.Logger,
	) http.Handler {
		return httphandler.NewRouter(svc, checks, reg, logger)
	}); err != nil {
		return nil, err
	}

	// Import worker
	if err := c.Provide(func(svc primary.ContainerService, cfg *config.Config, logger *zap.Logger) *worker.ImportWorker {
		return worker.NewImportWorker(svc, cfg.PollInterval, logger)
	}); err != nil {
		return nil, err
	}

	return c, nil
}
