package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	redisNamespace = "beauty:"
	scanBatchSize  = 200
)

// RedisCache compartilha o cache entre instâncias da API
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	hits       atomic.Uint64
	misses     atomic.Uint64
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisCache(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisCache, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, defaultTTL: ttl}, nil
}

func namespaced(key string) string {
	return redisNamespace + key
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return false, nil
	}
	if err != nil {
		c.misses.Add(1)
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.misses.Add(1)
		return false, err
	}

	c.hits.Add(1)
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, namespaced(key), data, ttl).Err()
}

func (c *RedisCache) Has(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, namespaced(key)).Result()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao consultar chave no Redis")
		return false
	}
	return n > 0
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, namespaced(key)).Err()
}

func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	removed := 0
	iter := c.client.Scan(ctx, 0, namespaced(prefix)+"*", scanBatchSize).Iterator()

	keys := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatchSize {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}

	if len(keys) > 0 {
		n, err := c.client.Del(ctx, keys...).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}

	return removed, nil
}

// Clear remove apenas as chaves da aplicação, nunca o banco inteiro do Redis
func (c *RedisCache) Clear(ctx context.Context) error {
	_, err := c.DeletePrefix(ctx, "")
	return err
}

func (c *RedisCache) Stats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	keys := 0
	iter := c.client.Scan(ctx, 0, redisNamespace+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys++
	}
	if err := iter.Err(); err != nil {
		logrus.WithError(err).Warn("Erro ao contar chaves no Redis")
	}

	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Keys:   keys,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
