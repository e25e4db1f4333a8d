package ordersync

import "strings"

const EventTypeOrderCreated = "order.created"

// Event is the Square webhook envelope.
type Event struct {
	MerchantID string    `json:"merchant_id"`
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	CreatedAt  string    `json:"created_at,omitempty"`
	Data       EventData `json:"data"`
}

type EventData struct {
	Type   string      `json:"type"`
	ID     string      `json:"id"`
	Object EventObject `json:"object"`
}

type EventObject struct {
	OrderCreated *OrderCreated `json:"order_created,omitempty"`
}

type OrderCreated struct {
	OrderID    string `json:"order_id"`
	LocationID string `json:"location_id,omitempty"`
	State      string `json:"state,omitempty"`
	Version    int    `json:"version,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

func (e Event) IsOrderCreated() bool {
	return e.Type == EventTypeOrderCreated
}

// OrderID returns the created order's id, or "" when the payload carries none.
func (e Event) OrderID() string {
	if e.Data.Object.OrderCreated == nil {
		return ""
	}
	return strings.TrimSpace(e.Data.Object.OrderCreated.OrderID)
}
