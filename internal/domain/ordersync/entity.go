package ordersync

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Order is the subset of a Square order the bridge maps into the CRM.
type Order struct {
	ID         string     `json:"id"`
	LineItems  []LineItem `json:"line_items,omitempty"`
	TotalMoney *Money     `json:"total_money,omitempty"`
	Source     *Source    `json:"source,omitempty"`
	CustomerID string     `json:"customer_id,omitempty"`
}

type LineItem struct {
	Name     string   `json:"name"`
	Quantity Quantity `json:"quantity"`
}

// Quantity is a decimal quantity. Square sends it as a string ("2"),
// but a bare JSON number is accepted as well.
type Quantity string

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity(n.String())
	return nil
}

// Money is an amount in the currency's smallest unit.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

type Source struct {
	Name string `json:"name,omitempty"`
}

// Customer is the subset of a Square customer used to build a CRM contact.
// Pointer fields distinguish an absent field from an empty one.
type Customer struct {
	ID           string  `json:"id"`
	GivenName    *string `json:"given_name,omitempty"`
	EmailAddress *string `json:"email_address,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
}
