package cache

import (
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCache(t *testing.T) {
	stores := []model.Store{
		{ID: 1, Name: "Store A"},
		{ID: 2, Name: "Store B"},
	}

	t.Run("miss before set", func(t *testing.T) {
		c := NewStoreCache(time.Minute)
		_, ok := c.Get()
		assert.False(t, ok)
	})

	t.Run("hit after set", func(t *testing.T) {
		c := NewStoreCache(time.Minute)
		c.Set(stores)

		got, ok := c.Get()
		require.True(t, ok)
		assert.Equal(t, stores, got)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		c := NewStoreCache(time.Minute)
		c.Set(stores)

		got, ok := c.Get()
		require.True(t, ok)
		got[0].Name = "mutated"

		again, ok := c.Get()
		require.True(t, ok)
		assert.Equal(t, "Store A", again[0].Name)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		c := NewStoreCache(10 * time.Millisecond)
		c.Set(stores)

		time.Sleep(20 * time.Millisecond)
		_, ok := c.Get()
		assert.False(t, ok)
	})

	t.Run("invalidate drops entry", func(t *testing.T) {
		c := NewStoreCache(time.Minute)
		c.Set(stores)
		c.Invalidate()

		_, ok := c.Get()
		assert.False(t, ok)
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		c := NewStoreCache(0)
		c.Set(stores)

		_, ok := c.Get()
		assert.False(t, ok)
	})

	t.Run("stop drops entry", func(t *testing.T) {
		c := NewStoreCache(time.Minute)
		c.Set(stores)
		c.Stop()

		_, ok := c.Get()
		assert.False(t, ok)
	})
}
