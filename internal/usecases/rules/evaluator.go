package rules

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Evaluator é a visão de leitura das regras usada pelos fluxos de venda, caixa e tratamentos
type Evaluator interface {
	GetBool(ctx context.Context, businessID, key string, fallback bool) (bool, error)
	GetNumber(ctx context.Context, businessID, key string, fallback float64) (float64, error)
}

// GetBool retorna o valor booleano da regra. Regra inexistente ou de outro tipo devolve o fallback.
func (s *BusinessService) GetBool(ctx context.Context, businessID, key string, fallback bool) (bool, error) {
	value, found, err := s.lookup(ctx, businessID, key)
	if err != nil || !found {
		return fallback, err
	}

	switch value.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	}
	return fallback, nil
}

func (s *BusinessService) GetNumber(ctx context.Context, businessID, key string, fallback float64) (float64, error) {
	value, found, err := s.lookup(ctx, businessID, key)
	if err != nil || !found {
		return fallback, err
	}

	if value.Type != gjson.Number {
		return fallback, nil
	}
	return value.Float(), nil
}

func (s *BusinessService) lookup(ctx context.Context, businessID, key string) (gjson.Result, bool, error) {
	rule, err := s.GetRuleValue(ctx, businessID, key)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return gjson.Result{}, false, nil
		}
		return gjson.Result{}, false, err
	}
	return gjson.ParseBytes(rule.EffectiveValue), true, nil
}
