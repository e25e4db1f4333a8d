package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"SquareBridge/internal/messaging"
	"SquareBridge/pkg/correlation"
	"SquareBridge/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const commitTimeout = 5 * time.Second

// Consumer reads order envelopes for one consumer group and commits each
// offset only after the handler accepted the message.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a new Kafka consumer.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            topic,
		GroupID:          groupID,
		MinBytes:         1,
		MaxBytes:         10e6, // 10MB
		CommitInterval:   0,    // synchronous commits
		StartOffset:      kafka.FirstOffset,
		MaxWait:          500 * time.Millisecond,
		RebalanceTimeout: 5 * time.Second,
	})

	return &Consumer{reader: reader}
}

// Start consumes messages and passes them to the handler.
// Blocks until context is cancelled or an unrecoverable error occurs.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	cfg := c.reader.Config()
	slog.Info("Consumer started", "topic", cfg.Topic, "group_id", cfg.GroupID)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Info("Consumer stopped (context cancelled)", "topic", cfg.Topic)
				return nil
			}
			slog.Error("Failed to fetch message", "topic", cfg.Topic, slog.Any("error", err))
			return err
		}

		msgCtx := extractCorrelationID(ctx, msg.Headers)
		recordLag(msg)

		slog.DebugContext(msgCtx, "Message received",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key))

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			// not committed: redelivered after restart or rebalance
			slog.ErrorContext(msgCtx, "Handler error, message not committed",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				slog.Any("error", err))
			continue
		}

		// Commit must survive shutdown of the main context.
		commitCtx, cancel := context.WithTimeout(context.Background(), commitTimeout)
		err = c.reader.CommitMessages(commitCtx, msg)
		cancel()
		if err != nil {
			slog.ErrorContext(msgCtx, "Failed to commit message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				slog.Any("error", err))
		}
	}
}

// Close closes the Kafka reader.
func (c *Consumer) Close() error {
	cfg := c.reader.Config()
	slog.Info("Closing consumer", "topic", cfg.Topic, "group_id", cfg.GroupID)
	return c.reader.Close()
}

// extractCorrelationID carries the webhook request's correlation ID over to
// the consumer side, generating one for messages published without it.
func extractCorrelationID(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == correlation.KafkaHeaderName && len(h.Value) > 0 {
			return correlation.WithID(ctx, string(h.Value))
		}
	}
	ctx, _ = correlation.Ensure(ctx)
	return ctx
}

// recordLag reports how far the consumer trails the partition head.
func recordLag(msg kafka.Message) {
	lag := msg.HighWaterMark - msg.Offset - 1
	if lag < 0 {
		lag = 0
	}
	metrics.KafkaConsumerLag.WithLabelValues(msg.Topic, strconv.Itoa(msg.Partition)).Set(float64(lag))
}
