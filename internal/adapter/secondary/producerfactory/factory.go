package producerfactory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain"
	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
	"github.com/ruudy-sib/boxcheck/internal/port/secondary"
)

// Factory routes report delivery to the producer matching the destination.
type Factory struct {
	kafkaProducer secondary.MessageProducer
	httpProducer  secondary.MessageProducer
	logger        *zap.Logger
}

// NewFactory creates a producer factory with both Kafka and HTTP producers.
func NewFactory(
	kafkaProducer secondary.MessageProducer,
	httpProducer secondary.MessageProducer,
	logger *zap.Logger,
) secondary.MessageProducer {
	return &Factory{
		kafkaProducer: kafkaProducer,
		httpProducer:  httpProducer,
		logger:        logger.Named("producer-factory"),
	}
}

// Produce routes the report to HTTP when a URL is set, otherwise to Kafka.
func (f *Factory) Produce(ctx context.Context, destination entity.Destination, key, value []byte) error {
	if destination.URL != "" {
		f.logger.Debug("routing to http producer", zap.String("url", destination.URL))
		return f.httpProducer.Produce(ctx, destination, key, value)
	}

	if destination.Topic != "" {
		f.logger.Debug("routing to kafka producer", zap.String("topic", destination.Topic))
		return f.kafkaProducer.Produce(ctx, destination, key, value)
	}

	return fmt.Errorf("%w: neither url nor topic is set", domain.ErrDeliveryFailed)
}

// Close closes all underlying producers.
func (f *Factory) Close() error {
	var errs []error

	if err := f.kafkaProducer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing kafka producer: %w", err))
	}

	if err := f.httpProducer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing http producer: %w", err))
	}

	return errors.Join(errs...)
}
