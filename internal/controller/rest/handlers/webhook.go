package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/correlation"
	"SquareBridge/pkg/metrics"

	"github.com/gin-gonic/gin"
)

const (
	ackOK      = "ok"
	ackIgnored = "ignored"
)

const (
	outcomeMalformed = "malformed"
	outcomeIgnored   = "ignored"
	outcomeNoOrderID = "missing_order_id"
	outcomeFailed    = "failed"
	outcomeProcessed = "processed"
)

// WebhookHandler receives Square event notifications.
//
// Every request is answered with 200: "ignored" for events the bridge does
// not handle, "ok" otherwise. Processing errors are logged and counted, never
// returned to the sender.
type WebhookHandler struct {
	processor webhook.Processor
	journal   webhook.Journal
	now       func() time.Time
}

// NewWebhookHandler creates the handler. journal may be nil.
func NewWebhookHandler(processor webhook.Processor, journal webhook.Journal) WebhookHandler {
	return WebhookHandler{
		processor: processor,
		journal:   journal,
		now:       time.Now,
	}
}

// Square reads the delivery, then journals and processes it on a context
// detached from the request: a sender that hangs up must not abort an order
// sync halfway through its CRM writes.
func (h *WebhookHandler) Square(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read webhook body", slog.Any("error", err))
		h.ack(c, "", outcomeMalformed, ackIgnored)
		return
	}

	var event ordersync.Event
	parseErr := json.Unmarshal(body, &event)

	h.record(ctx, event, body)

	if parseErr != nil {
		slog.WarnContext(ctx, "Malformed webhook body", slog.Any("error", parseErr))
		h.ack(c, "", outcomeMalformed, ackIgnored)
		return
	}

	ctx = correlation.WithMerchant(ctx, event.MerchantID)
	slog.InfoContext(ctx, "Webhook received",
		"type", event.Type,
		"event_id", event.EventID)

	if !event.IsOrderCreated() {
		h.ack(c, event.Type, outcomeIgnored, ackIgnored)
		return
	}

	err = h.processor.ProcessOrderEvent(ctx, event)
	switch {
	case errors.Is(err, ordersync.ErrMissingOrderID):
		slog.WarnContext(ctx, "order.created event without order id", "event_id", event.EventID)
		h.ack(c, event.Type, outcomeNoOrderID, ackOK)
	case err != nil:
		slog.ErrorContext(ctx, "Order event processing failed",
			"event_id", event.EventID,
			"order_id", event.OrderID(),
			slog.Any("error", err))
		h.ack(c, event.Type, outcomeFailed, ackOK)
	default:
		h.ack(c, event.Type, outcomeProcessed, ackOK)
	}
}

func (h *WebhookHandler) ack(c *gin.Context, eventType, outcome, body string) {
	metrics.WebhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
	c.String(http.StatusOK, body)
}

// record journals the delivery; journal failures never affect the response.
func (h *WebhookHandler) record(ctx context.Context, event ordersync.Event, body []byte) {
	if h.journal == nil {
		return
	}

	err := h.journal.Append(ctx, webhook.Received{
		EventID:    event.EventID,
		Type:       event.Type,
		MerchantID: event.MerchantID,
		OrderID:    event.OrderID(),
		Payload:    body,
		ReceivedAt: h.now().UTC(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to journal webhook", slog.Any("error", err))
	}
}
