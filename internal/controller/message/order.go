package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/messaging"
	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/correlation"
)

// ErrUndecodable marks messages that will never parse, whatever the retry count.
var ErrUndecodable = errors.New("undecodable message")

// OrderMessageController handles order.created events from Kafka.
type OrderMessageController struct {
	service webhook.EventService
}

// NewOrderMessageController creates a new order message controller.
func NewOrderMessageController(s webhook.EventService) *OrderMessageController {
	return &OrderMessageController{service: s}
}

// HandleMessage processes a single order.created message.
// A returned error means the payments API fetch failed; CRM failures are
// logged by the service and never surface here.
func (c *OrderMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	env, err := messaging.DecodeEnvelope(value)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to decode envelope", "key", string(key), slog.Any("error", err))
		return fmt.Errorf("%w: envelope: %v", ErrUndecodable, err)
	}
	ctx = correlation.WithMerchant(ctx, env.MerchantID)

	slog.DebugContext(ctx, "Processing order message",
		"event_id", env.EventID,
		"key", env.Key,
		"type", env.Type)

	var event ordersync.Event
	if err := env.Decode(&event); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal webhook payload", "event_id", env.EventID, slog.Any("error", err))
		return fmt.Errorf("%w: payload: %v", ErrUndecodable, err)
	}

	res, err := c.service.ProcessEvent(ctx, event)
	if err != nil {
		if errors.Is(err, ordersync.ErrMissingOrderID) {
			slog.WarnContext(ctx, "Order event without order id dropped", "event_id", event.EventID)
			return nil
		}

		slog.ErrorContext(ctx, "Failed to process order event",
			"event_id", event.EventID,
			"order_id", event.OrderID(),
			slog.Any("error", err))
		return err
	}

	slog.InfoContext(ctx, "Order event processed",
		"event_id", event.EventID,
		"order_id", event.OrderID(),
		"outcome", string(res.Outcome))

	return nil
}
