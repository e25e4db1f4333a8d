//go:build !integration

package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"SquareBridge/internal/domain/oauth"
	"SquareBridge/internal/external/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return New(Config{
		BaseURL:     baseURL,
		AppID:       "sq0idp-app",
		AppSecret:   "sq0csp-secret",
		AccessToken: "EAAA-token",
		Scope:       "ORDERS_READ CUSTOMERS_READ",
	})
}

func TestClient_AuthorizeURL(t *testing.T) {
	c := newTestClient("https://connect.squareupsandbox.com/")

	got := c.AuthorizeURL()

	assert.Equal(t,
		"https://connect.squareupsandbox.com/oauth2/authorize?client_id=sq0idp-app&scope=ORDERS_READ+CUSTOMERS_READ&session=false",
		got)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "ORDERS_READ CUSTOMERS_READ", u.Query().Get("scope"))
}

func TestClient_ObtainToken(t *testing.T) {
	t.Run("exchanges the code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/oauth2/token", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			var req obtainTokenReq
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, obtainTokenReq{
				ClientID:     "sq0idp-app",
				ClientSecret: "sq0csp-secret",
				Code:         "code-1",
				GrantType:    "authorization_code",
			}, req)

			_, _ = w.Write([]byte(`{"access_token":"EAAA-new","token_type":"bearer","merchant_id":"M1","refresh_token":"r"}`))
		}))
		defer server.Close()

		token, err := newTestClient(server.URL).ObtainToken(context.Background(), "code-1")

		require.NoError(t, err)
		assert.Equal(t, oauth.Token{AccessToken: "EAAA-new", TokenType: "bearer", MerchantID: "M1", RefreshToken: "r"}, token)
	})

	t.Run("rejected code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Authorization code is already redeemed","type":"invalid_request"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).ObtainToken(context.Background(), "used")

		assert.ErrorIs(t, err, upstream.ErrUnauthorized)
	})
}

func TestClient_GetOrder(t *testing.T) {
	t.Run("returns the order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v2/orders/ORDER-1", r.URL.Path)
			assert.Equal(t, "Bearer EAAA-token", r.Header.Get("Authorization"))

			_, _ = w.Write([]byte(`{"order":{
				"id":"ORDER-1",
				"line_items":[{"name":"Widget","quantity":"2"}],
				"total_money":{"amount":1234,"currency":"USD"},
				"source":{"name":"Point of Sale"},
				"customer_id":"CUST-1"}}`))
		}))
		defer server.Close()

		order, err := newTestClient(server.URL).GetOrder(context.Background(), "ORDER-1")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "ORDER-1", order.ID)
		assert.Equal(t, "CUST-1", order.CustomerID)
		assert.Equal(t, int64(1234), order.TotalMoney.Amount)
		assert.Equal(t, "Point of Sale", order.Source.Name)
		require.Len(t, order.LineItems, 1)
		assert.EqualValues(t, "2", order.LineItems[0].Quantity)
	})

	t.Run("404 yields no order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"category":"INVALID_REQUEST_ERROR","code":"NOT_FOUND"}]}`))
		}))
		defer server.Close()

		order, err := newTestClient(server.URL).GetOrder(context.Background(), "missing")

		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("2xx without order object yields no order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		order, err := newTestClient(server.URL).GetOrder(context.Background(), "ORDER-1")

		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("5xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetOrder(context.Background(), "ORDER-1")

		assert.ErrorIs(t, err, upstream.ErrUnavailable)
	})

	t.Run("escapes the id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/orders/a%2Fb", r.URL.EscapedPath())
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetOrder(context.Background(), "a/b")

		require.NoError(t, err)
	})
}

func TestClient_GetCustomer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/customers/CUST-1", r.URL.Path)
		assert.Equal(t, "Bearer EAAA-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"customer":{"id":"CUST-1","given_name":"Ada","email_address":"ada@example.com"}}`))
	}))
	defer server.Close()

	customer, err := newTestClient(server.URL).GetCustomer(context.Background(), "CUST-1")

	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Ada", *customer.GivenName)
	assert.Equal(t, "ada@example.com", *customer.EmailAddress)
	assert.Nil(t, customer.PhoneNumber)
}
