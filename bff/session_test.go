package bff_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/bff"
	"github.com/poly-workshop/studiochat/credential"
)

func TestUserSession(t *testing.T) {
	t.Parallel()

	t.Run("refresh caches the latest snapshot", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			_, _ = w.Write([]byte(`{"user_id":"u-1","role":"admin","email":"a@b.c","nickname":"ann"}`))
		}))
		defer srv.Close()

		s := bff.NewUserSession(bff.NewClient(srv.URL, srv.Client()), nil)

		_, ok := s.Current()
		assert.False(t, ok)

		me, err := s.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "u-1", me.UserID)

		cached, ok := s.Current()
		assert.True(t, ok)
		assert.Equal(t, me, cached)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("failed refresh keeps no snapshot", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		s := bff.NewUserSession(bff.NewClient(srv.URL, srv.Client()), nil)
		_, err := s.Refresh(context.Background())
		assert.ErrorIs(t, err, studiochat.ErrUnauthenticated)

		_, ok := s.Current()
		assert.False(t, ok)
	})

	t.Run("logout clears the snapshot and the credential expiry", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/me" {
				_, _ = w.Write([]byte(`{"user_id":"u-1","role":"user","email":"a@b.c","nickname":"ann"}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		creds := credential.NewStore()
		creds.Set(time.Now().Add(time.Hour))

		s := bff.NewUserSession(bff.NewClient(srv.URL, srv.Client()), creds)
		_, err := s.Refresh(context.Background())
		require.NoError(t, err)

		require.NoError(t, s.Logout(context.Background()))

		_, ok := s.Current()
		assert.False(t, ok)
		_, ok = creds.Get()
		assert.False(t, ok)
	})
}
