// Package correlation carries request-scoped identifiers (the correlation ID
// and the Square merchant the request acts for) through HTTP handlers, Kafka
// messages and log records.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is used both as the HTTP header and the Kafka header.
const HeaderName = "X-Correlation-ID"

const KafkaHeaderName = HeaderName

type (
	idKey       struct{}
	merchantKey struct{}
)

// FromContext returns the correlation ID, or "" when absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// Ensure returns ctx unchanged when it already carries an ID,
// otherwise a copy with a freshly generated one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewID()
	return WithID(ctx, id), id
}

// NewID generates a UUID v4.
func NewID() string {
	return uuid.New().String()
}

// WithMerchant tags ctx with the merchant a webhook was delivered for.
// An empty id leaves ctx untouched.
func WithMerchant(ctx context.Context, merchantID string) context.Context {
	if merchantID == "" {
		return ctx
	}
	return context.WithValue(ctx, merchantKey{}, merchantID)
}

func MerchantFromContext(ctx context.Context) string {
	id, _ := ctx.Value(merchantKey{}).(string)
	return id
}
