package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ruudy-sib/boxcheck/internal/domain"
)

// Redis deployment modes.
const (
	RedisModeStandalone = "standalone"
	RedisModeSentinel   = "sentinel"
	RedisModeCluster    = "cluster"
)

// DefaultWebhookTimeout bounds a single HTTP report delivery.
const DefaultWebhookTimeout = 30 * time.Second

// Config holds all application configuration values.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Redis
	RedisMode          string // "standalone" (default), "sentinel", "cluster"
	RedisAddr          string // standalone: host:port
	RedisPassword      string
	RedisDB            int
	RedisMasterName    string   // sentinel: master name
	RedisSentinelAddrs []string // sentinel: sentinel node addresses
	RedisClusterAddrs  []string // cluster: cluster node addresses

	// Kafka
	KafkaBrokers []string

	// Imports
	PollInterval   time.Duration
	BatchSize      int
	MaxImportRows  int
	ReportTTL      time.Duration
	WebhookTimeout time.Duration

	// Application
	Environment string
	LogLevel    string
}

// New creates a Config populated from environment variables with sensible defaults.
// Malformed numeric or duration values fall back to their defaults.
func New() *Config {
	cfg := &Config{
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		RedisMode:      getEnv("REDIS_MODE", RedisModeStandalone),
		RedisAddr:      getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		PollInterval:   getEnvDuration("POLL_INTERVAL", domain.DefaultPollInterval),
		BatchSize:      getEnvInt("BATCH_SIZE", domain.DefaultBatchSize),
		MaxImportRows:  getEnvInt("MAX_IMPORT_ROWS", domain.DefaultMaxImportRows),
		ReportTTL:      getEnvDuration("REPORT_TTL", domain.DefaultReportTTL),
		WebhookTimeout: getEnvDuration("WEBHOOK_TIMEOUT", DefaultWebhookTimeout),
		Environment:    getEnv("ENVIRONMENT", "local"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if v := getEnv("REDIS_MASTER_NAME", ""); v != "" {
		cfg.RedisMasterName = v
	}
	if v := getEnv("REDIS_SENTINEL_ADDRS", ""); v != "" {
		cfg.RedisSentinelAddrs = splitList(v)
	}
	if v := getEnv("REDIS_CLUSTER_ADDRS", ""); v != "" {
		cfg.RedisClusterAddrs = splitList(v)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
