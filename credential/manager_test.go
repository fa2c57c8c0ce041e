package credential_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/credential"
	"github.com/poly-workshop/studiochat/mock"
)

func TestManager_Ensure(t *testing.T) {
	t.Parallel()

	t.Run("reissues when expiry is inside the on-demand skew", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		store := credential.NewStore()
		store.Set(now.Add(100 * time.Second))

		var calls int
		newExp := now.Add(time.Hour)
		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				calls++
				return newExp, nil
			},
		}

		m := credential.NewManager(store, issuer)
		require.NoError(t, m.Ensure(context.Background()))
		assert.Equal(t, 1, calls)

		got, ok := store.Get()
		require.True(t, ok)
		assert.Equal(t, newExp, got)
	})

	t.Run("no-op when credential is fresh", func(t *testing.T) {
		t.Parallel()

		store := credential.NewStore()
		store.Set(time.Now().Add(1000 * time.Second))

		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				t.Fatal("issuer should not be called")
				return time.Time{}, nil
			},
		}

		m := credential.NewManager(store, issuer)
		require.NoError(t, m.Ensure(context.Background()))
	})

	t.Run("issuance failure leaves prior expiry in place", func(t *testing.T) {
		t.Parallel()

		store := credential.NewStore()
		stale := time.Now().Add(-time.Minute)
		store.Set(stale)

		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				return time.Time{}, &studiochat.IssuanceError{Status: 500}
			},
		}

		m := credential.NewManager(store, issuer)
		err := m.Ensure(context.Background())

		var ie *studiochat.IssuanceError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 500, ie.Status)

		got, ok := store.Get()
		assert.True(t, ok)
		assert.Equal(t, stale, got)
	})

	t.Run("unauthenticated issuance propagates", func(t *testing.T) {
		t.Parallel()

		store := credential.NewStore()
		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				return time.Time{}, studiochat.ErrUnauthenticated
			},
		}

		m := credential.NewManager(store, issuer)
		assert.ErrorIs(t, m.Ensure(context.Background()), studiochat.ErrUnauthenticated)
	})
}

func TestManager_ForceReissue(t *testing.T) {
	t.Parallel()

	t.Run("invalidates before issuing", func(t *testing.T) {
		t.Parallel()

		store := credential.NewStore()
		store.Set(time.Now().Add(time.Hour)) // still "fresh", but the gateway said 401

		newExp := time.Now().Add(2 * time.Hour)
		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				// The recorded expiry must already be gone.
				_, ok := store.Get()
				assert.False(t, ok)
				return newExp, nil
			},
		}

		m := credential.NewManager(store, issuer)
		require.NoError(t, m.ForceReissue(context.Background()))

		got, ok := store.Get()
		require.True(t, ok)
		assert.Equal(t, newExp, got)
	})

	t.Run("failed reissue leaves store invalidated", func(t *testing.T) {
		t.Parallel()

		store := credential.NewStore()
		store.Set(time.Now().Add(time.Hour))

		issuer := &mock.Issuer{
			IssueFn: func(context.Context) (time.Time, error) {
				return time.Time{}, &studiochat.IssuanceError{Status: 502}
			},
		}

		m := credential.NewManager(store, issuer)
		require.Error(t, m.ForceReissue(context.Background()))

		_, ok := store.Get()
		assert.False(t, ok)
	})
}
