package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type payload struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func newTestCache(maxEntries int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	return NewMemoryCache(maxEntries, time.Minute, WithClock(clock.Now)), clock
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10)

	require.NoError(t, c.Set(ctx, "k1", payload{Name: "Salão A", Total: 150.5}, 0))

	var got payload
	found, err := c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "Salão A", Total: 150.5}, got)

	found, err = c.Get(ctx, "inexistente", &got)
	require.NoError(t, err)
	assert.False(t, found)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Keys)
	assert.Equal(t, 50.0, stats.HitRate())
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(10)

	require.NoError(t, c.Set(ctx, "curto", 1, 30*time.Second))
	require.NoError(t, c.Set(ctx, "padrao", 2, 0))

	clock.Advance(31 * time.Second)

	var v int
	found, _ := c.Get(ctx, "curto", &v)
	assert.False(t, found, "entrada expirada nunca deve ser retornada")
	assert.False(t, c.Has(ctx, "curto"))

	found, _ = c.Get(ctx, "padrao", &v)
	assert.True(t, found)
	assert.Equal(t, 2, v)

	clock.Advance(30 * time.Second)
	assert.False(t, c.Has(ctx, "padrao"))
	assert.Equal(t, 0, c.Stats().Keys)
}

func TestMemoryCache_BoundedSize(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(2)

	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))
	require.NoError(t, c.Set(ctx, "c", 3, 0))

	assert.False(t, c.Has(ctx, "a"), "a entrada mais antiga deve ser removida")
	assert.True(t, c.Has(ctx, "b"))
	assert.True(t, c.Has(ctx, "c"))
	assert.Equal(t, 2, c.Stats().Keys)
}

func TestMemoryCache_DeletePrefixAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10)

	require.NoError(t, c.Set(ctx, PermissionsKey("biz1", 1), []string{"sales.create"}, 0))
	require.NoError(t, c.Set(ctx, PermissionsKey("biz1", 2), []string{"sales.view"}, 0))
	require.NoError(t, c.Set(ctx, PermissionsKey("biz2", 1), []string{"sales.view"}, 0))
	require.NoError(t, c.Set(ctx, RulesKey("biz1"), map[string]any{}, 0))

	removed, err := c.DeletePrefix(ctx, PermissionsPrefix("biz1"))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.True(t, c.Has(ctx, PermissionsKey("biz2", 1)))
	assert.True(t, c.Has(ctx, RulesKey("biz1")))

	require.NoError(t, c.Delete(ctx, RulesKey("biz1")))
	assert.False(t, c.Has(ctx, RulesKey("biz1")))

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Stats().Keys)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(10)

	original := []string{"a", "b"}
	require.NoError(t, c.Set(ctx, "lista", original, 0))
	original[0] = "alterado"

	var got []string
	found, err := c.Get(ctx, "lista", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("Executa o loader apenas uma vez enquanto a entrada é válida", func(t *testing.T) {
		c, _ := newTestCache(10)
		calls := 0
		loader := func(context.Context) (payload, error) {
			calls++
			return payload{Name: "x", Total: 10}, nil
		}

		first, err := GetOrSet(ctx, c, "chave", time.Minute, loader)
		require.NoError(t, err)
		second, err := GetOrSet(ctx, c, "chave", time.Minute, loader)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
	})

	t.Run("Não grava quando o loader falha", func(t *testing.T) {
		c, _ := newTestCache(10)
		loaderErr := errors.New("falha no banco")

		_, err := GetOrSet(ctx, c, "chave", time.Minute, func(context.Context) (int, error) {
			return 0, loaderErr
		})

		assert.ErrorIs(t, err, loaderErr)
		assert.False(t, c.Has(ctx, "chave"))
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "perms:biz1:42", PermissionsKey("biz1", 42))
	assert.Equal(t, "rules:biz1", RulesKey("biz1"))
	assert.Equal(t, "dashboard:business:biz1", BusinessDashboardKey("biz1"))
}
