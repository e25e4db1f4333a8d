package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"SquareBridge/internal/domain/ordersync"

	"github.com/opensearch-project/opensearch-go"
)

var _ ordersync.SyncIndex = (*OrderIndex)(nil)

// OrderIndex keeps one document per CRM order record.
type OrderIndex struct {
	client *opensearch.Client
	index  string
}

func NewOrderIndex(ctx context.Context, urls []string, index string) (*OrderIndex, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}

	idx := &OrderIndex{client: client, index: index}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *OrderIndex) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"order_id":           map[string]any{"type": "keyword"},
				"merchant_id":        map[string]any{"type": "keyword"},
				"event_id":           map[string]any{"type": "keyword"},
				"record_id":          map[string]any{"type": "keyword"},
				"contact_id":         map[string]any{"type": "keyword"},
				"square_customer_id": map[string]any{"type": "keyword"},
				"line_items":         map[string]any{"type": "text"},
				"total_amount":       map[string]any{"type": "keyword"},
				"source":             map[string]any{"type": "keyword"},
				"associated":         map[string]any{"type": "boolean"},
				"synced_at":          map[string]any{"type": "date"},
			},
		},
		"settings": map[string]any{
			"number_of_replicas": 0,
		},
	}
	buf, _ := json.Marshal(body)
	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()
	if cr.IsError() {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type syncedOrderDoc struct {
	OrderID          string    `json:"order_id"`
	MerchantID       string    `json:"merchant_id,omitempty"`
	EventID          string    `json:"event_id,omitempty"`
	RecordID         string    `json:"record_id"`
	ContactID        string    `json:"contact_id,omitempty"`
	SquareCustomerID string    `json:"square_customer_id"`
	LineItems        string    `json:"line_items"`
	TotalAmount      string    `json:"total_amount"`
	Source           string    `json:"source"`
	Associated       bool      `json:"associated"`
	SyncedAt         time.Time `json:"synced_at"`
}

func newSyncedOrderDoc(s ordersync.SyncedOrder) syncedOrderDoc {
	return syncedOrderDoc{
		OrderID:          s.OrderID,
		MerchantID:       s.MerchantID,
		EventID:          s.EventID,
		RecordID:         s.RecordID,
		ContactID:        s.ContactID,
		SquareCustomerID: s.Record.SquareCustomerID,
		LineItems:        s.Record.LineItems,
		TotalAmount:      s.Record.TotalAmount,
		Source:           s.Record.Source,
		Associated:       s.Associated,
		SyncedAt:         s.SyncedAt.UTC(),
	}
}

// IndexSyncedOrder stores the order under its CRM record id, so a redelivered
// event that produced a new record also produces a new document.
func (s *OrderIndex) IndexSyncedOrder(ctx context.Context, synced ordersync.SyncedOrder) error {
	payload, err := json.Marshal(newSyncedOrderDoc(synced))
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(synced.RecordID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}
	return nil
}

// Ping checks cluster reachability.
func (s *OrderIndex) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping error: %s", res.String())
	}
	return nil
}
