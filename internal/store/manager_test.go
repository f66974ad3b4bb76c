package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/domain"
)

func TestManagerGetReturnsSameStore(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Get("sess-1")
	s.AddProduct(domain.Product{ID: "1", Price: decimal.RequireFromString("1.00")})

	again := m.Get("sess-1")
	assert.Same(t, s, again)
	assert.Equal(t, 1, again.ItemCount())

	other := m.Get("sess-2")
	assert.NotSame(t, s, other)
	assert.Equal(t, 2, m.Len())
}

func TestManagerDrop(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Get("sess-1")
	s.AddProduct(domain.Product{ID: "1", Price: decimal.RequireFromString("1.00")})

	m.Drop("sess-1")
	require.Equal(t, 0, m.Len())

	// A fresh store after a drop: session state is gone.
	assert.Equal(t, 0, m.Get("sess-1").ItemCount())
}

func TestManagerSweepDropsIdleStores(t *testing.T) {
	m := NewManager(30 * time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Get("old")
	now = now.Add(time.Hour)
	m.Get("fresh")

	dropped := m.Sweep()
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, m.Len())

	// Touching a store resets its idle clock.
	m.Get("fresh")
	assert.Equal(t, 0, m.Sweep())
}
