package correlation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsure(t *testing.T) {
	t.Run("keeps existing id", func(t *testing.T) {
		ctx := WithID(context.Background(), "corr-1")

		got, id := Ensure(ctx)

		assert.Equal(t, "corr-1", id)
		assert.Equal(t, "corr-1", FromContext(got))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		got, id := Ensure(context.Background())

		assert.NotEmpty(t, id)
		assert.Equal(t, id, FromContext(got))
	})
}

func TestWithMerchant(t *testing.T) {
	ctx := WithMerchant(context.Background(), "MERCHANT-1")
	assert.Equal(t, "MERCHANT-1", MerchantFromContext(ctx))

	bare := context.Background()
	assert.Equal(t, bare, WithMerchant(bare, ""))
	assert.Empty(t, MerchantFromContext(bare))
}
