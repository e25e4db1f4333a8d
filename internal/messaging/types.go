package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyPayload is returned by DecodeEnvelope for envelopes without a payload.
var ErrEmptyPayload = errors.New("envelope has no payload")

// Envelope is the Kafka value wrapping one webhook event.
type Envelope struct {
	// EventID is the provider's event id when it has one, a UUID otherwise.
	EventID    string          `json:"event_id"`
	Key        string          `json:"key"`
	Type       string          `json:"type"`
	MerchantID string          `json:"merchant_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewEnvelope marshals payload into an envelope keyed by key.
// An empty eventID is replaced by a generated one.
func NewEnvelope(eventID, key, msgType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	if eventID == "" {
		eventID = uuid.New().String()
	}

	return Envelope{
		EventID:   eventID,
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// DecodeEnvelope parses a Kafka message value.
func DecodeEnvelope(value []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return Envelope{}, err
	}
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return Envelope{}, ErrEmptyPayload
	}
	return env, nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// MessageHandler processes one message. A nil error commits its offset.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Worker feeds messages from one subscription to a handler until ctx ends.
type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}
