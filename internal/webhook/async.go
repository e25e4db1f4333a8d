package webhook

import (
	"context"
	"fmt"

	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/messaging"
)

// EnvelopeTypeOrderCreated tags order.created events on the orders topic.
const EnvelopeTypeOrderCreated = "square." + ordersync.EventTypeOrderCreated

// AsyncProcessor hands events to Kafka; a consumer runs the order sync later.
type AsyncProcessor struct {
	publisher messaging.Publisher
}

func NewAsyncProcessor(publisher messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{publisher: publisher}
}

func (p *AsyncProcessor) ProcessOrderEvent(ctx context.Context, event ordersync.Event) error {
	envelope, err := messaging.NewEnvelope(event.EventID, event.OrderID(), EnvelopeTypeOrderCreated, event)
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	envelope.MerchantID = event.MerchantID
	return p.publisher.Publish(ctx, envelope)
}
