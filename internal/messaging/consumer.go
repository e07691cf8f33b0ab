package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var consumerTracer = otel.Tracer("messaging/consumer")

// Handler processes one message payload. Returning an error stops
// consumption without committing the message.
type Handler func(ctx context.Context, payload []byte) error

// Consumer reads one event type from a topic within a consumer group.
type Consumer struct {
	reader    *kafka.Reader
	topic     string
	groupID   string
	eventType string
	logger    *slog.Logger
}

type ConsumerOption func(*kafka.ReaderConfig)

func WithStartOffset(offset int64) ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.StartOffset = offset
	}
}

func WithMaxWait(d time.Duration) ConsumerOption {
	return func(cfg *kafka.ReaderConfig) {
		cfg.MaxWait = d
	}
}

// NewConsumer returns a consumer for eventType. Messages stamped with another
// event type are committed and skipped. An empty eventType accepts everything.
func NewConsumer(brokers []string, topic, groupID, eventType string, logger *slog.Logger, opts ...ConsumerOption) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		MaxWait: time.Second,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer{
		reader:    kafka.NewReader(cfg),
		topic:     topic,
		groupID:   groupID,
		eventType: eventType,
		logger:    logger,
	}
}

// Consume runs until ctx is cancelled or handler fails. Cancellation is not
// reported as an error.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", c.topic, err)
		}

		if c.accepts(msg) {
			if err := c.processMessage(ctx, msg, handler); err != nil {
				return fmt.Errorf("handle %s offset %d: %w", c.topic, msg.Offset, err)
			}
		} else {
			c.logger.Debug("skipping message of another event type",
				"topic", c.topic, "event_type", EventType(msg), "offset", msg.Offset)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("commit %s offset %d: %w", c.topic, msg.Offset, err)
		}
	}
}

func (c *Consumer) accepts(msg kafka.Message) bool {
	if c.eventType == "" {
		return true
	}
	eventType, ok := header(msg, eventTypeHeader)
	return !ok || eventType == c.eventType
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message, handler Handler) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, headerCarrier{msg: &msg})

	spanCtx, span := consumerTracer.Start(parentCtx, "process "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
