package bridge

import (
	"log/slog"

	"SquareBridge/config"
	"SquareBridge/internal/controller/message"
	"SquareBridge/internal/external/kafka"
	"SquareBridge/internal/external/upstream"
	"SquareBridge/internal/messaging"
	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/metrics"
)

// NewOrderRunner builds the order.created consumer with metrics, retry and DLQ
// middleware. Only transient payments API failures are retried; the rest go
// straight to the DLQ. The returned DLQ publisher must be closed after the
// runner stops.
func NewOrderRunner(cfg config.Config, service webhook.EventService) (*messaging.Runner, *kafka.DLQPublisher) {
	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersDLQ)

	retry := messaging.DefaultRetryConfig()
	if cfg.KafkaRetryAttempts > 0 {
		retry.MaxAttempts = cfg.KafkaRetryAttempts
	}
	retry.Retryable = upstream.IsTransient
	retry.OnRetry = func(attempt int, err error) {
		metrics.KafkaRetriesTotal.WithLabelValues(cfg.KafkaOrdersTopic).Inc()
		slog.Warn("Retrying order message", "attempt", attempt, slog.Any("error", err))
	}

	controller := message.NewOrderMessageController(service)
	handler := messaging.WithDLQ(
		messaging.WithMetrics(
			messaging.WithRetry(controller.HandleMessage, retry),
			cfg.KafkaOrdersTopic,
			cfg.KafkaOrdersGroup,
		),
		dlq,
	)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, cfg.KafkaOrdersGroup)
	return messaging.NewRunner([]messaging.Worker{consumer}, handler), dlq
}
