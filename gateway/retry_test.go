package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/gateway"
)

func TestAttemptState_OnUnauthorized(t *testing.T) {
	t.Parallel()

	t.Run("first 401 permits one retry", func(t *testing.T) {
		t.Parallel()

		next, err := gateway.OnUnauthorized(gateway.FirstAttempt)
		require.NoError(t, err)
		assert.Equal(t, gateway.Retried, next)
	})

	t.Run("second 401 terminates", func(t *testing.T) {
		t.Parallel()

		_, err := gateway.OnUnauthorized(gateway.Retried)
		assert.ErrorIs(t, err, studiochat.ErrGatewayUnauthorized)
	})
}
