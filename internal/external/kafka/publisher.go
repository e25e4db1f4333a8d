package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"SquareBridge/internal/messaging"
	"SquareBridge/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event_type"

// Publisher writes webhook envelopes to the orders topic.
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher creates a new Kafka publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: newWriter(brokers, topic),
		topic:  topic,
	}
}

// Publish sends an envelope keyed by env.Key, so events for one order share a partition.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(env.Type)},
		},
	}

	if corrID := correlation.FromContext(ctx); corrID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   correlation.KafkaHeaderName,
			Value: []byte(corrID),
		})
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish message",
			"topic", p.topic,
			"key", env.Key,
			slog.Any("error", err))
		return err
	}

	slog.DebugContext(ctx, "Message published",
		"topic", p.topic,
		"key", env.Key,
		"event_id", env.EventID)
	return nil
}

// Close closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
