package ordersync

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=ordersync

// PaymentsGateway reads orders and customers from the payments platform.
type PaymentsGateway interface {
	// GetOrder returns (nil, nil) when the provider returns no order object.
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	// GetCustomer returns (nil, nil) when the provider returns no customer object.
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
}

// CRMGateway writes records into the CRM.
type CRMGateway interface {
	CreateOrderRecord(ctx context.Context, record OrderRecord) (recordID string, err error)
	CreateContact(ctx context.Context, contact Contact) (contactID string, err error)
	CreateAssociation(ctx context.Context, a Association) error
}

// SyncIndex receives every order that reached the CRM. Optional.
type SyncIndex interface {
	IndexSyncedOrder(ctx context.Context, s SyncedOrder) error
}

// SyncedOrder is what the bridge knows about one processed order.
type SyncedOrder struct {
	OrderID    string      `json:"order_id"`
	MerchantID string      `json:"merchant_id,omitempty"`
	EventID    string      `json:"event_id,omitempty"`
	Record     OrderRecord `json:"record"`
	RecordID   string      `json:"record_id,omitempty"`
	ContactID  string      `json:"contact_id,omitempty"`
	Associated bool        `json:"associated"`
	SyncedAt   time.Time   `json:"synced_at"`
}
