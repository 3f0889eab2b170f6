package kafkaproducer

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/config"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// Producer implements secondary.MessageProducer using segmentio/kafka-go.
// It keeps a single writer for the configured broker list; the topic
// comes from each destination.
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a Kafka producer from the application configuration.
func NewProducer(cfg *config.Config, logger *zap.Logger) secondary.MessageProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("kafka producer initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
	)

	return &Producer{
		writer: writer,
		logger: logger.Named("kafka-producer"),
	}
}

// Produce sends a report to the destination topic.
func (p *Producer) Produce(ctx context.Context, destination entity.Destination, key, value []byte) error {
	if destination.Topic == "" {
		return fmt.Errorf("kafka destination requires a topic")
	}

	if err := p.writer.WriteMessages(ctx, reportMessage(destination.Topic, key, value)); err != nil {
		return fmt.Errorf("writing report to kafka topic %q: %w", destination.Topic, err)
	}

	p.logger.Debug("report produced",
		zap.String("topic", destination.Topic),
		zap.Int("value_size", len(value)),
	)

	return nil
}

// Close shuts down the Kafka writer and releases its resources.
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// reportMessage builds the Kafka message carrying a JSON import report.
// Keys hash to partitions so all attempts of a batch stay ordered.
func reportMessage(topic string, key, value []byte) kafka.Message {
	return kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "producer", Value: []byte("boxcheck")},
		},
	}
}
