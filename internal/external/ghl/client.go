// Package ghl writes order records, contacts and associations into
// GoHighLevel. Custom objects and associations go through the LeadConnector
// API with a private integration token; contacts go through the v1 REST API
// with a location API key.
package ghl

import (
	"context"
	"log/slog"
	"net/http"

	"SquareBridge/internal/domain/ordersync"
	"SquareBridge/internal/external/upstream"
)

const (
	serviceObjects  = "ghl"
	serviceContacts = "ghl_rest"
)

var _ ordersync.CRMGateway = (*Client)(nil)

type Config struct {
	BaseURL       string
	RestBaseURL   string
	Token         string
	APIKey        string
	APIVersion    string
	LocationID    string
	AssociationID string
	HTTPClient    *http.Client
}

type Client struct {
	locationID    string
	associationID string
	objects       *upstream.Client
	contacts      *upstream.Client
}

func New(cfg Config) *Client {
	return &Client{
		locationID:    cfg.LocationID,
		associationID: cfg.AssociationID,
		objects: upstream.New(upstream.Config{
			Service: serviceObjects,
			BaseURL: cfg.BaseURL,
			Headers: map[string]string{
				"Authorization": upstream.BearerAuth(cfg.Token),
				"Version":       cfg.APIVersion,
			},
			HTTPClient: cfg.HTTPClient,
		}),
		contacts: upstream.New(upstream.Config{
			Service:    serviceContacts,
			BaseURL:    cfg.RestBaseURL,
			Headers:    map[string]string{"Authorization": upstream.BearerAuth(cfg.APIKey)},
			HTTPClient: cfg.HTTPClient,
		}),
	}
}

type createRecordReq struct {
	LocationID string                `json:"locationId"`
	Properties ordersync.OrderRecord `json:"properties"`
}

type createRecordResp struct {
	Record struct {
		ID string `json:"id"`
	} `json:"record"`
}

func (c *Client) CreateOrderRecord(ctx context.Context, record ordersync.OrderRecord) (string, error) {
	req := createRecordReq{LocationID: c.locationID, Properties: record}

	var out createRecordResp
	status, err := c.objects.Call(ctx, "create_order_record", http.MethodPost, "/objects/custom_objects.orders/records", req, &out)
	logResponse(ctx, "GHL order record response", status, err,
		"order_id", record.OrderID, "record_id", out.Record.ID)
	if err != nil {
		return "", err
	}
	return out.Record.ID, nil
}

type createContactResp struct {
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

func (c *Client) CreateContact(ctx context.Context, contact ordersync.Contact) (string, error) {
	var out createContactResp
	status, err := c.contacts.Call(ctx, "create_contact", http.MethodPost, "/v1/contacts/", contact, &out)
	logResponse(ctx, "GHL contact response", status, err, "contact_id", out.Contact.ID)
	if err != nil {
		return "", err
	}
	return out.Contact.ID, nil
}

type createRelationReq struct {
	LocationID     string `json:"locationId"`
	AssociationID  string `json:"associationId"`
	FirstRecordID  string `json:"firstRecordId"`
	SecondRecordID string `json:"secondRecordId"`
}

type createRelationResp struct {
	ID string `json:"id"`
}

func (c *Client) CreateAssociation(ctx context.Context, a ordersync.Association) error {
	req := createRelationReq{
		LocationID:     c.locationID,
		AssociationID:  c.associationID,
		FirstRecordID:  a.ContactID,
		SecondRecordID: a.OrderRecordID,
	}

	var out createRelationResp
	status, err := c.objects.Call(ctx, "create_association", http.MethodPost, "/associations/relations", req, &out)
	logResponse(ctx, "GHL relation response", status, err,
		"relation_id", out.ID, "contact_id", a.ContactID, "record_id", a.OrderRecordID)
	return err
}

// logResponse records every CRM answer: info on success, warn when the CRM
// answered with an error. Transport failures carry no response and are left
// to the caller.
func logResponse(ctx context.Context, msg string, status int, err error, args ...any) {
	args = append(args, "status", status)
	switch {
	case err == nil:
		slog.InfoContext(ctx, msg, args...)
	case status > 0:
		slog.WarnContext(ctx, msg, append(args, slog.Any("error", err))...)
	}
}
