package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultMaxEntries = 1000
	defaultTTL        = 5 * time.Minute
	// teto de vida de qualquer entrada; TTLs maiores são limitados a ele
	defaultMaxTTL = time.Hour
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache é um cache local limitado por quantidade de entradas, com TTL por chave
type MemoryCache struct {
	entries    *expirable.LRU[string, memoryEntry]
	defaultTTL time.Duration
	maxTTL     time.Duration
	now        func() time.Time
	hits       atomic.Uint64
	misses     atomic.Uint64
}

type MemoryOption func(*MemoryCache)

// WithClock troca o relógio usado para expirar entradas
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

func NewMemoryCache(maxEntries int, ttl time.Duration, opts ...MemoryOption) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	maxTTL := defaultMaxTTL
	if ttl > maxTTL {
		maxTTL = ttl
	}

	c := &MemoryCache{
		entries:    expirable.NewLRU[string, memoryEntry](maxEntries, nil, maxTTL),
		defaultTTL: ttl,
		maxTTL:     maxTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *MemoryCache) lookup(key string) (memoryEntry, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return memoryEntry{}, false
	}

	if !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return memoryEntry{}, false
	}

	return entry, true
}

func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	entry, ok := c.lookup(key)
	if !ok {
		c.misses.Add(1)
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		c.entries.Remove(key)
		c.misses.Add(1)
		return false, err
	}

	c.hits.Add(1)
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if ttl > c.maxTTL {
		ttl = c.maxTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.entries.Add(key, memoryEntry{data: data, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *MemoryCache) Has(_ context.Context, key string) bool {
	_, ok := c.lookup(key)
	return ok
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) (int, error) {
	removed := 0
	for _, key := range c.entries.Keys() {
		if strings.HasPrefix(key, prefix) && c.entries.Remove(key) {
			removed++
		}
	}
	return removed, nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.entries.Purge()
	return nil
}

// Stats conta apenas chaves ainda válidas
func (c *MemoryCache) Stats() Stats {
	keys := 0
	now := c.now()
	for _, entry := range c.entries.Values() {
		if now.Before(entry.expiresAt) {
			keys++
		}
	}

	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Keys:   keys,
	}
}
