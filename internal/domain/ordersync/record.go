package ordersync

import (
	"strings"

	"SquareBridge/pkg/pointers"

	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency   = "USD"
	DefaultSource     = "Unknown"
	MissingCustomerID = "N/A"
	MissingLineItems  = "N/A"
)

// OrderRecord is the CRM "orders" custom object record.
type OrderRecord struct {
	OrderID          string `json:"orderid"`
	SquareCustomerID string `json:"squarecustomerid"`
	LineItems        string `json:"lineitems"`
	TotalAmount      string `json:"totalamount"`
	Source           string `json:"source"`
}

// NewOrderRecord maps an order, substituting fallback strings for missing fields.
func NewOrderRecord(o Order) OrderRecord {
	customerID := o.CustomerID
	if customerID == "" {
		customerID = MissingCustomerID
	}

	source := DefaultSource
	if o.Source != nil && o.Source.Name != "" {
		source = o.Source.Name
	}

	return OrderRecord{
		OrderID:          o.ID,
		SquareCustomerID: customerID,
		LineItems:        FormatLineItems(o.LineItems),
		TotalAmount:      FormatTotal(o.TotalMoney),
		Source:           source,
	}
}

// FormatLineItems renders items as "name (quantity)" joined by ", ".
func FormatLineItems(items []LineItem) string {
	if len(items) == 0 {
		return MissingLineItems
	}

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Name+" ("+string(it.Quantity)+")")
	}
	return strings.Join(parts, ", ")
}

// FormatTotal renders minor units as "<major> <currency>", e.g. 1234 USD -> "12.34 USD".
// Trailing zeros are dropped: 1200 -> "12 USD".
func FormatTotal(m *Money) string {
	amount := decimal.Zero
	currency := DefaultCurrency
	if m != nil {
		amount = decimal.New(m.Amount, -2)
		if m.Currency != "" {
			currency = m.Currency
		}
	}
	return amount.String() + " " + currency
}

// Contact is the CRM contact payload. Absent source fields stay nil and are
// omitted from the request; unlike the order record no fallback is applied.
type Contact struct {
	Name  *string  `json:"name,omitempty"`
	Email *string  `json:"email,omitempty"`
	Phone *string  `json:"phone,omitempty"`
	Tags  []string `json:"tags"`
}

func NewContact(c Customer, tag string) Contact {
	return Contact{
		Name:  pointers.Map(c.GivenName, strings.TrimSpace),
		Email: pointers.Map(c.EmailAddress, normalizeEmail),
		Phone: pointers.Map(c.PhoneNumber, strings.TrimSpace),
		Tags:  []string{tag},
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Association links a CRM contact to a CRM order record.
type Association struct {
	ContactID     string
	OrderRecordID string
}
