//go:build !integration

package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"SquareBridge/internal/domain/ordersync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	body   []byte
}

type fakeCluster struct {
	mu          sync.Mutex
	requests    []recorded
	indexExists bool
	indexStatus int
}

func (f *fakeCluster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recorded{method: r.Method, path: r.URL.Path, body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/synced-orders":
		if f.indexExists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && r.URL.Path == "/synced-orders":
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case r.Method == http.MethodPut:
		w.WriteHeader(f.indexStatus)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	case r.URL.Path == "/":
		_, _ = w.Write([]byte(`{"version":{"number":"2.11.0","distribution":"opensearch"},"tagline":"The OpenSearch Project: https://opensearch.org/"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// calls returns the index requests, leaving out cluster info and ping.
func (f *fakeCluster) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []recorded
	for _, r := range f.requests {
		if r.path != "/" {
			out = append(out, r)
		}
	}
	return out
}

func TestNewOrderIndex(t *testing.T) {
	t.Run("creates a missing index", func(t *testing.T) {
		cluster := &fakeCluster{indexStatus: http.StatusCreated}
		srv := httptest.NewServer(cluster)
		defer srv.Close()

		_, err := NewOrderIndex(context.Background(), []string{srv.URL}, "synced-orders")

		require.NoError(t, err)
		calls := cluster.calls()
		require.Len(t, calls, 2)
		assert.Equal(t, http.MethodPut, calls[1].method)
		assert.Contains(t, string(calls[1].body), `"record_id":{"type":"keyword"}`)
	})

	t.Run("keeps an existing index", func(t *testing.T) {
		cluster := &fakeCluster{indexExists: true}
		srv := httptest.NewServer(cluster)
		defer srv.Close()

		_, err := NewOrderIndex(context.Background(), []string{srv.URL}, "synced-orders")

		require.NoError(t, err)
		assert.Len(t, cluster.calls(), 1)
	})

	t.Run("requires addresses", func(t *testing.T) {
		_, err := NewOrderIndex(context.Background(), nil, "synced-orders")

		assert.Error(t, err)
	})
}

func TestOrderIndex_IndexSyncedOrder(t *testing.T) {
	synced := ordersync.SyncedOrder{
		OrderID:    "ORDER-1",
		MerchantID: "MERCHANT-1",
		EventID:    "evt-1",
		Record: ordersync.OrderRecord{
			OrderID:          "ORDER-1",
			SquareCustomerID: "CUST-1",
			LineItems:        "Widget (2)",
			TotalAmount:      "12.34 USD",
			Source:           "Point of Sale",
		},
		RecordID:   "rec-1",
		ContactID:  "contact-1",
		Associated: true,
		SyncedAt:   time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("stores the document under the record id", func(t *testing.T) {
		cluster := &fakeCluster{indexExists: true, indexStatus: http.StatusCreated}
		srv := httptest.NewServer(cluster)
		defer srv.Close()
		idx, err := NewOrderIndex(context.Background(), []string{srv.URL}, "synced-orders")
		require.NoError(t, err)

		err = idx.IndexSyncedOrder(context.Background(), synced)

		require.NoError(t, err)
		calls := cluster.calls()
		last := calls[len(calls)-1]
		assert.Equal(t, "/synced-orders/_doc/rec-1", last.path)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(last.body, &doc))
		assert.Equal(t, "ORDER-1", doc["order_id"])
		assert.Equal(t, "12.34 USD", doc["total_amount"])
		assert.Equal(t, "contact-1", doc["contact_id"])
		assert.Equal(t, true, doc["associated"])
		assert.Equal(t, "2025-11-01T12:00:00Z", doc["synced_at"])
	})

	t.Run("reports cluster errors", func(t *testing.T) {
		cluster := &fakeCluster{indexExists: true, indexStatus: http.StatusBadRequest}
		srv := httptest.NewServer(cluster)
		defer srv.Close()
		idx, err := NewOrderIndex(context.Background(), []string{srv.URL}, "synced-orders")
		require.NoError(t, err)

		err = idx.IndexSyncedOrder(context.Background(), synced)

		assert.ErrorContains(t, err, "index error")
	})
}

func TestOrderIndex_Ping(t *testing.T) {
	cluster := &fakeCluster{indexExists: true}
	srv := httptest.NewServer(cluster)
	defer srv.Close()
	idx, err := NewOrderIndex(context.Background(), []string{srv.URL}, "synced-orders")
	require.NoError(t, err)

	assert.NoError(t, idx.Ping(context.Background()))
}
