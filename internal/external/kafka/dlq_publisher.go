package kafka

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"SquareBridge/internal/external/upstream"
	"SquareBridge/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// DLQPublisher publishes failed messages to a Dead Letter Queue topic.
type DLQPublisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

// NewDLQPublisher creates a new DLQ publisher.
func NewDLQPublisher(brokers []string, dlqTopic string) *DLQPublisher {
	return &DLQPublisher{
		writer: newWriter(brokers, dlqTopic),
		topic:  dlqTopic,
		now:    time.Now,
	}
}

// PublishToDLQ stores the original key and value unchanged. The failure and
// whether it was transient travel in headers, so an operator can replay
// transient failures once the payments API recovers.
func (p *DLQPublisher) PublishToDLQ(ctx context.Context, key, value []byte, err error) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(err.Error())},
			{Key: "failed_at", Value: []byte(p.now().UTC().Format(time.RFC3339))},
			{Key: "transient", Value: []byte(strconv.FormatBool(upstream.IsTransient(err)))},
		},
	}

	if writeErr := p.writer.WriteMessages(ctx, msg); writeErr != nil {
		slog.ErrorContext(ctx, "Failed to publish to DLQ",
			"topic", p.topic,
			"key", string(key),
			slog.Any("error", writeErr),
			slog.Any("original_error", err))
		return writeErr
	}

	metrics.KafkaDeadLetteredTotal.WithLabelValues(p.topic).Inc()
	slog.WarnContext(ctx, "Message sent to DLQ",
		"topic", p.topic,
		"key", string(key),
		slog.Any("error", err))
	return nil
}

// Close closes the DLQ writer.
func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}
