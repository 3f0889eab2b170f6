package kafkaproducer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// DestinationProducer implements secondary.MessageProducer by creating Kafka
// writers on demand per broker address taken from the batch destination.
// Writers are cached by "host:port" and reused across calls.
// This is used when no global broker list is configured (library mode).
type DestinationProducer struct {
	writers map[string]*kafka.Writer
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewDestinationProducer creates a Kafka producer that connects per destination.
func NewDestinationProducer(logger *zap.Logger) secondary.MessageProducer {
	return &DestinationProducer{
		writers: make(map[string]*kafka.Writer),
		logger:  logger.Named("kafka-destination-producer"),
	}
}

// Produce sends a report to the broker and topic specified in destination.
func (p *DestinationProducer) Produce(ctx context.Context, destination entity.Destination, key, value []byte) error {
	if destination.Host == "" || destination.Port == "" {
		return fmt.Errorf("kafka destination requires host and port")
	}
	if destination.Topic == "" {
		return fmt.Errorf("kafka destination requires a topic")
	}

	addr := destination.Address()
	writer := p.writerFor(addr)

	if err := writer.WriteMessages(ctx, reportMessage(destination.Topic, key, value)); err != nil {
		return fmt.Errorf("writing report to kafka topic %q at %q: %w", destination.Topic, addr, err)
	}

	p.logger.Debug("report produced",
		zap.String("broker", addr),
		zap.String("topic", destination.Topic),
		zap.Int("value_size", len(value)),
	)

	return nil
}

// Close shuts down all cached writers.
func (p *DestinationProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for addr, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for %s: %w", addr, err))
		}
	}
	p.writers = make(map[string]*kafka.Writer)

	return errors.Join(errs...)
}

func (p *DestinationProducer) writerFor(addr string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[addr]; ok {
		return w
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(addr),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}
	p.writers[addr] = w

	p.logger.Info("kafka writer created", zap.String("broker", addr))

	return w
}
