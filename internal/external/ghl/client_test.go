//go:build !integration

package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/external/upstream"
	"SquareBridge/pkg/pointers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(objectsURL, restURL string) *Client {
	return New(Config{
		BaseURL:       objectsURL,
		RestBaseURL:   restURL,
		Token:         "pit-token",
		APIKey:        "rest-key",
		APIVersion:    "2021-07-28",
		LocationID:    "loc-1",
		AssociationID: "assoc-1",
	})
}

func TestClient_CreateOrderRecord(t *testing.T) {
	t.Run("posts the record under the location", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/objects/custom_objects.orders/records", r.URL.Path)
			assert.Equal(t, "Bearer pit-token", r.Header.Get("Authorization"))
			assert.Equal(t, "2021-07-28", r.Header.Get("Version"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "loc-1", body["locationId"])
			assert.Equal(t, map[string]any{
				"orderid":          "ORDER-1",
				"squarecustomerid": "N/A",
				"lineitems":        "Widget (2), Gadget (1)",
				"totalamount":      "12.34 USD",
				"source":           "Unknown",
			}, body["properties"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"record":{"id":"rec-1"}}`))
		}))
		defer server.Close()

		id, err := newTestClient(server.URL, "").CreateOrderRecord(context.Background(), ordersync.OrderRecord{
			OrderID:          "ORDER-1",
			SquareCustomerID: "N/A",
			LineItems:        "Widget (2), Gadget (1)",
			TotalAmount:      "12.34 USD",
			Source:           "Unknown",
		})

		require.NoError(t, err)
		assert.Equal(t, "rec-1", id)
	})

	t.Run("surfaces auth failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid JWT"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL, "").CreateOrderRecord(context.Background(), ordersync.OrderRecord{})

		assert.ErrorIs(t, err, upstream.ErrUnauthorized)
	})
}

func TestClient_CreateContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contacts/", r.URL.Path)
		assert.Equal(t, "Bearer rest-key", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"email": "ada@example.com",
			"tags":  []any{"Squad Customers"},
		}, body)

		_, _ = w.Write([]byte(`{"contact":{"id":"contact-1"}}`))
	}))
	defer server.Close()

	id, err := newTestClient("", server.URL).CreateContact(context.Background(), ordersync.Contact{
		Email: pointers.Ptr("ada@example.com"),
		Tags:  []string{"Squad Customers"},
	})

	require.NoError(t, err)
	assert.Equal(t, "contact-1", id)
}

func TestClient_CreateAssociation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/associations/relations", r.URL.Path)
		assert.Equal(t, "Bearer pit-token", r.Header.Get("Authorization"))

		var req createRelationReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, createRelationReq{
			LocationID:     "loc-1",
			AssociationID:  "assoc-1",
			FirstRecordID:  "contact-1",
			SecondRecordID: "rec-1",
		}, req)

		_, _ = w.Write([]byte(`{"id":"rel-1"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL, "").CreateAssociation(context.Background(), ordersync.Association{
		ContactID:     "contact-1",
		OrderRecordID: "rec-1",
	})

	assert.NoError(t, err)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

func TestClient_LogsResponses(t *testing.T) {
	t.Run("successful writes log ids and status at info", func(t *testing.T) {
		buf := captureLogs(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/objects/custom_objects.orders/records":
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"record":{"id":"rec-1"}}`))
			case "/v1/contacts/":
				_, _ = w.Write([]byte(`{"contact":{"id":"contact-1"}}`))
			case "/associations/relations":
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"rel-1"}`))
			}
		}))
		defer server.Close()
		client := newTestClient(server.URL, server.URL)

		_, err := client.CreateOrderRecord(context.Background(), ordersync.OrderRecord{OrderID: "ORDER-1"})
		require.NoError(t, err)
		_, err = client.CreateContact(context.Background(), ordersync.Contact{})
		require.NoError(t, err)
		require.NoError(t, client.CreateAssociation(context.Background(), ordersync.Association{ContactID: "contact-1", OrderRecordID: "rec-1"}))

		lines := decodeLines(t, buf)
		require.Len(t, lines, 3)

		assert.Equal(t, "INFO", lines[0]["level"])
		assert.Equal(t, "GHL order record response", lines[0]["msg"])
		assert.Equal(t, "rec-1", lines[0]["record_id"])
		assert.Equal(t, "ORDER-1", lines[0]["order_id"])
		assert.Equal(t, float64(http.StatusCreated), lines[0]["status"])

		assert.Equal(t, "INFO", lines[1]["level"])
		assert.Equal(t, "contact-1", lines[1]["contact_id"])
		assert.Equal(t, float64(http.StatusOK), lines[1]["status"])

		assert.Equal(t, "INFO", lines[2]["level"])
		assert.Equal(t, "rel-1", lines[2]["relation_id"])
		assert.Equal(t, float64(http.StatusCreated), lines[2]["status"])
	})

	t.Run("error responses log status at warn", func(t *testing.T) {
		buf := captureLogs(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"duplicate"}`))
		}))
		defer server.Close()

		_, err := newTestClient("", server.URL).CreateContact(context.Background(), ordersync.Contact{})
		require.Error(t, err)

		lines := decodeLines(t, buf)
		require.Len(t, lines, 1)
		assert.Equal(t, "WARN", lines[0]["level"])
		assert.Equal(t, float64(http.StatusUnprocessableEntity), lines[0]["status"])
	})
}
