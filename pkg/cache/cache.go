// Package cache guarda respostas calculadas (dashboards, regras efetivas, permissões)
// por um tempo limitado. Os valores são serializados em JSON, então o chamador sempre
// recebe uma cópia e nunca compartilha ponteiros com outras requisições.
package cache

import (
	"context"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Keys   int    `json:"keys"`
}

// HitRate retorna o percentual de acertos
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

type Cache interface {
	// Get preenche dest e retorna true quando a chave existe e não expirou
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set grava o valor; ttl <= 0 usa o TTL padrão do cache
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Has(ctx context.Context, key string) bool
	Delete(ctx context.Context, key string) error
	// DeletePrefix remove todas as chaves iniciadas pelo prefixo e retorna quantas foram removidas
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Clear(ctx context.Context) error
	Stats() Stats
}

// GetOrSet retorna o valor em cache ou executa o loader e grava o resultado.
// Falhas do cache não impedem a resposta: o loader é a fonte da verdade.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	var value T

	found, err := c.Get(ctx, key, &value)
	if err == nil && found {
		return value, nil
	}

	value, err = loader(ctx)
	if err != nil {
		return value, err
	}

	_ = c.Set(ctx, key, value, ttl)

	return value, nil
}

// Chaves compartilhadas entre os casos de uso
const (
	OwnerDashboardKey     = "dashboard:owner"
	businessDashboardBase = "dashboard:business:"
	rulesBase             = "rules:"
	permissionsBase       = "perms:"
)

func BusinessDashboardKey(businessID string) string {
	return businessDashboardBase + businessID
}

func RulesKey(businessID string) string {
	return rulesBase + businessID
}

func PermissionsKey(businessID string, userID int) string {
	return permissionsBase + businessID + ":" + strconv.Itoa(userID)
}

// PermissionsPrefix cobre todas as permissões em cache de um negócio;
// com businessID vazio cobre as permissões de todos os negócios
func PermissionsPrefix(businessID string) string {
	if businessID == "" {
		return permissionsBase
	}
	return permissionsBase + businessID + ":"
}

type Options struct {
	Driver     string
	MaxEntries int
	DefaultTTL time.Duration
	Redis      RedisConfig
}

// New cria o cache conforme o driver configurado; sem Redis disponível cai para memória
func New(ctx context.Context, opts Options) Cache {
	if opts.Driver == DriverRedis {
		redisCache, err := NewRedisCache(ctx, opts.Redis, opts.DefaultTTL)
		if err == nil {
			logrus.WithField("addr", opts.Redis.Addr).Info("Cache Redis inicializado")
			return redisCache
		}
		logrus.WithError(err).Warn("Não foi possível conectar ao Redis, usando cache em memória")
	}

	logrus.WithField("max_entries", opts.MaxEntries).Info("Cache em memória inicializado")
	return NewMemoryCache(opts.MaxEntries, opts.DefaultTTL)
}
