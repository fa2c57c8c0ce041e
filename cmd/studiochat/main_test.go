package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	studiochat "github.com/poly-workshop/studiochat"
)

func TestPreferModel(t *testing.T) {
	t.Parallel()

	catalog := []studiochat.Model{
		{ID: "alpha"},
		{ID: "beta"},
		{ID: "gamma"},
	}

	t.Run("empty ID keeps order", func(t *testing.T) {
		t.Parallel()
		got := preferModel(catalog, "")
		assert.Equal(t, catalog, got)
	})

	t.Run("known ID moves to front", func(t *testing.T) {
		t.Parallel()
		got := preferModel(catalog, "beta")
		assert.Equal(t, []studiochat.Model{{ID: "beta"}, {ID: "alpha"}, {ID: "gamma"}}, got)
	})

	t.Run("already first is unchanged", func(t *testing.T) {
		t.Parallel()
		got := preferModel(catalog, "alpha")
		assert.Equal(t, catalog, got)
	})

	t.Run("unknown ID keeps order", func(t *testing.T) {
		t.Parallel()
		got := preferModel(catalog, "nope")
		assert.Equal(t, catalog, got)
	})

	t.Run("nil catalog stays nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, preferModel(nil, "anything"))
	})
}
