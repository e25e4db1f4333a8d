package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		h := WithRetry(func(context.Context, []byte, []byte) error {
			attempts++
			if attempts < 3 {
				return errTransient
			}
			return nil
		}, fastRetry())

		err := h(context.Background(), nil, nil)

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		var retried []int
		cfg := fastRetry()
		cfg.OnRetry = func(attempt int, _ error) { retried = append(retried, attempt) }
		h := WithRetry(func(context.Context, []byte, []byte) error {
			attempts++
			return errTransient
		}, cfg)

		err := h(context.Background(), nil, nil)

		assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, []int{1, 2}, retried)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		permanent := errors.New("unauthorized")
		cfg := fastRetry()
		cfg.Retryable = func(err error) bool { return errors.Is(err, errTransient) }

		attempts := 0
		h := WithRetry(func(context.Context, []byte, []byte) error {
			attempts++
			return permanent
		}, cfg)

		err := h(context.Background(), nil, nil)

		assert.ErrorIs(t, err, permanent)
		assert.NotErrorIs(t, err, ErrMaxRetriesExceeded)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		cfg := fastRetry()
		cfg.InitialBackoff = time.Second
		cfg.MaxBackoff = time.Second

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		h := WithRetry(func(context.Context, []byte, []byte) error { return errTransient }, cfg)

		assert.ErrorIs(t, h(ctx, nil, nil), context.DeadlineExceeded)
	})
}

type fakeDLQ struct {
	key, value []byte
	err        error
}

func (f *fakeDLQ) PublishToDLQ(_ context.Context, key, value []byte, err error) error {
	f.key, f.value, f.err = key, value, err
	return nil
}

func TestWithDLQ(t *testing.T) {
	t.Run("routes failures to the DLQ and commits", func(t *testing.T) {
		dlq := &fakeDLQ{}
		h := WithDLQ(func(context.Context, []byte, []byte) error { return errTransient }, dlq)

		err := h(context.Background(), []byte("ORDER-1"), []byte("{}"))

		assert.NoError(t, err)
		assert.Equal(t, []byte("ORDER-1"), dlq.key)
		assert.ErrorIs(t, dlq.err, errTransient)
	})

	t.Run("leaves successes alone", func(t *testing.T) {
		dlq := &fakeDLQ{}
		h := WithDLQ(func(context.Context, []byte, []byte) error { return nil }, dlq)

		assert.NoError(t, h(context.Background(), []byte("k"), nil))
		assert.Nil(t, dlq.key)
	})
}

func TestNewEnvelope(t *testing.T) {
	t.Run("keeps provider event id", func(t *testing.T) {
		env, err := NewEnvelope("evt-1", "ORDER-1", "square.order.created", map[string]string{"type": "order.created"})

		assert.NoError(t, err)
		assert.Equal(t, "evt-1", env.EventID)
		assert.Equal(t, "ORDER-1", env.Key)
		assert.JSONEq(t, `{"type":"order.created"}`, string(env.Payload))
	})

	t.Run("generates event id", func(t *testing.T) {
		env, err := NewEnvelope("", "ORDER-1", "square.order.created", struct{}{})

		assert.NoError(t, err)
		assert.NotEmpty(t, env.EventID)
	})
}

func TestDecodeEnvelope(t *testing.T) {
	t.Run("round trips payload", func(t *testing.T) {
		env, err := NewEnvelope("evt-1", "ORDER-1", "square.order.created", map[string]string{"merchant_id": "M1"})
		assert.NoError(t, err)
		env.MerchantID = "M1"
		value, err := json.Marshal(env)
		assert.NoError(t, err)

		got, err := DecodeEnvelope(value)

		assert.NoError(t, err)
		assert.Equal(t, "M1", got.MerchantID)
		var payload map[string]string
		assert.NoError(t, got.Decode(&payload))
		assert.Equal(t, "M1", payload["merchant_id"])
	})

	t.Run("rejects missing payload", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte(`{"event_id":"e","payload":null}`))

		assert.ErrorIs(t, err, ErrEmptyPayload)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte(`{`))

		assert.Error(t, err)
	})
}
