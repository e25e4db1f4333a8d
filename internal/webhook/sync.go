package webhook

import (
	"context"

	"SquareBridge/internal/domain/ordersync"
)

// SyncProcessor runs the order sync inline, before the webhook is acknowledged.
type SyncProcessor struct {
	service EventService
}

func NewSyncProcessor(service EventService) *SyncProcessor {
	return &SyncProcessor{service: service}
}

func (p *SyncProcessor) ProcessOrderEvent(ctx context.Context, event ordersync.Event) error {
	_, err := p.service.ProcessEvent(ctx, event)
	return err
}
