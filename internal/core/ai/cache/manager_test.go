package cache

import (
	"context"
	"testing"
	"time"

	"bakery-pricing/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int) *Manager {
	t.Helper()
	m := NewManager(config.CacheConfig{
		Enabled:         true,
		MaxSize:         maxSize,
		TTL:             time.Minute,
		CleanupInterval: time.Hour,
	})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManager_GetSet(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10)

	_, err := m.Get(ctx, "2 cups flour")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set(ctx, "2 cups flour", `[{"name":"flour"}]`))

	value, err := m.Get(ctx, "2 cups flour")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"flour"}]`, value)

	stats := m.GetStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 10)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "sugar", "cached"))

	now = now.Add(2 * time.Minute)
	_, err := m.Get(ctx, "sugar")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.GetStats().Size)
	assert.Equal(t, int64(1), m.GetStats().Evictions)
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, 2)

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrMiss)

	value, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestManager_Disabled(t *testing.T) {
	m := NewManager(config.CacheConfig{Enabled: false})
	assert.Nil(t, m)

	_, err := m.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.NoError(t, m.Set(context.Background(), "x", "y"))
	assert.Equal(t, Stats{}, m.GetStats())
	assert.NoError(t, m.Close())
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("flour"), Key("flour"))
	assert.NotEqual(t, Key("flour"), Key("sugar"))
	assert.Contains(t, Key("flour"), "text:")
}
