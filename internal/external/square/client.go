// Package square is the client for the Square Connect API: OAuth,
// orders and customers.
package square

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"SquareBridge/internal/domain/oauth"
	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/external/upstream"

	"github.com/google/go-querystring/query"
)

const serviceName = "square"

var (
	_ ordersync.PaymentsGateway = (*Client)(nil)
	_ oauth.Provider            = (*Client)(nil)
)

type Config struct {
	BaseURL     string
	AppID       string
	AppSecret   string
	AccessToken string
	// Scope is space separated, e.g. "ORDERS_READ CUSTOMERS_READ".
	Scope      string
	HTTPClient *http.Client
}

type Client struct {
	baseURL   string
	appID     string
	appSecret string
	scope     string
	api       *upstream.Client
	oauth     *upstream.Client
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		baseURL:   baseURL,
		appID:     cfg.AppID,
		appSecret: cfg.AppSecret,
		scope:     cfg.Scope,
		api: upstream.New(upstream.Config{
			Service:    serviceName,
			BaseURL:    baseURL,
			Headers:    map[string]string{"Authorization": upstream.BearerAuth(cfg.AccessToken)},
			HTTPClient: cfg.HTTPClient,
		}),
		oauth: upstream.New(upstream.Config{
			Service:    serviceName,
			BaseURL:    baseURL,
			HTTPClient: cfg.HTTPClient,
		}),
	}
}

type authorizeParams struct {
	ClientID string `url:"client_id"`
	Scope    string `url:"scope"`
	Session  bool   `url:"session"`
}

// AuthorizeURL is the consent page the seller is redirected to.
func (c *Client) AuthorizeURL() string {
	v, _ := query.Values(authorizeParams{
		ClientID: c.appID,
		Scope:    c.scope,
		Session:  false,
	})
	return c.baseURL + "/oauth2/authorize?" + v.Encode()
}

type obtainTokenReq struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	GrantType    string `json:"grant_type"`
}

func (c *Client) ObtainToken(ctx context.Context, code string) (oauth.Token, error) {
	req := obtainTokenReq{
		ClientID:     c.appID,
		ClientSecret: c.appSecret,
		Code:         code,
		GrantType:    "authorization_code",
	}

	var out oauth.Token
	if err := c.oauth.Do(ctx, "obtain_token", http.MethodPost, "/oauth2/token", req, &out); err != nil {
		return oauth.Token{}, err
	}
	return out, nil
}

type retrieveOrderResp struct {
	Order  *ordersync.Order `json:"order"`
	Errors []apiError       `json:"errors,omitempty"`
}

type retrieveCustomerResp struct {
	Customer *ordersync.Customer `json:"customer"`
	Errors   []apiError          `json:"errors,omitempty"`
}

type apiError struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
}

// GetOrder returns (nil, nil) when Square answers 404 or a body without an order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*ordersync.Order, error) {
	var out retrieveOrderResp
	err := c.api.Do(ctx, "get_order", http.MethodGet, "/v2/orders/"+url.PathEscape(orderID), nil, &out)
	if errors.Is(err, upstream.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if out.Order == nil {
		logErrors(ctx, "get_order", out.Errors)
	}
	return out.Order, nil
}

// GetCustomer returns (nil, nil) when Square answers 404 or a body without a customer.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*ordersync.Customer, error) {
	var out retrieveCustomerResp
	err := c.api.Do(ctx, "get_customer", http.MethodGet, "/v2/customers/"+url.PathEscape(customerID), nil, &out)
	if errors.Is(err, upstream.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if out.Customer == nil {
		logErrors(ctx, "get_customer", out.Errors)
	}
	return out.Customer, nil
}

func logErrors(ctx context.Context, operation string, errs []apiError) {
	for _, e := range errs {
		slog.WarnContext(ctx, "Square API error",
			"operation", operation,
			"category", e.Category,
			"code", e.Code,
			"detail", e.Detail)
	}
}
