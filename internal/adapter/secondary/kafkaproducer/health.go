package kafkaproducer

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// HealthCheck implements secondary.HealthChecker by dialing the configured
// brokers. It is healthy when any broker accepts a connection.
type HealthCheck struct {
	brokers []string
	dialer  *kafka.Dialer
}

// NewHealthCheck creates a Kafka health checker for brokers.
func NewHealthCheck(brokers []string) secondary.HealthChecker {
	return &HealthCheck{brokers: brokers, dialer: &kafka.Dialer{}}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "kafka"
}

// Check dials each broker in turn until one answers.
func (h *HealthCheck) Check(ctx context.Context) error {
	if len(h.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	var errs []error
	for _, broker := range h.brokers {
		conn, err := h.dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", broker, err))
			continue
		}
		return conn.Close()
	}
	return errors.Join(errs...)
}
