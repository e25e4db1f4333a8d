package webhook

import (
	"context"
	"errors"
	"time"

	"SquareBridge/internal/domain/ordersync"
)

//go:generate mockgen -source=processor.go -destination=mock_processor.go -package=webhook

// Processor defines the interface for processing order.created webhooks.
// Implementations can handle them synchronously or asynchronously.
type Processor interface {
	ProcessOrderEvent(ctx context.Context, event ordersync.Event) error
}

// EventService runs the order sync for one event.
type EventService interface {
	ProcessEvent(ctx context.Context, event ordersync.Event) (ordersync.Result, error)
}

// Journal records every received webhook. Append-only, redeliveries included.
type Journal interface {
	Append(ctx context.Context, r Received) error
}

// Received is one webhook delivery as it arrived.
type Received struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	MerchantID string    `json:"merchant_id"`
	OrderID    string    `json:"order_id"`
	Payload    []byte    `json:"-"`
	ReceivedAt time.Time `json:"received_at"`
}

// ErrInvalidCursor is returned by JournalReader for a cursor it did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

// JournalQuery selects journal entries, newest first.
type JournalQuery struct {
	OrderID string
	Limit   int
	Cursor  string
}

type JournalEntry struct {
	ID string `json:"id"`
	Received
}

type JournalPage struct {
	Items      []JournalEntry `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

// JournalReader pages through recorded webhooks.
type JournalReader interface {
	List(ctx context.Context, q JournalQuery) (JournalPage, error)
}
