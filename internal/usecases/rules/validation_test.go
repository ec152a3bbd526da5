package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diana0617/beauty-control-api/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name     string
		template *domain.RuleTemplate
		value    string
		valid    bool
	}{
		{"Booleano válido", &domain.RuleTemplate{Key: "A", ValueType: domain.RuleValueBoolean}, `true`, true},
		{"Booleano recebendo texto", &domain.RuleTemplate{Key: "A", ValueType: domain.RuleValueBoolean}, `"true"`, false},
		{"Número dentro dos limites", &domain.RuleTemplate{Key: "N", ValueType: domain.RuleValueNumber, MinValue: floatPtr(0), MaxValue: floatPtr(100)}, `19.5`, true},
		{"Número abaixo do mínimo", &domain.RuleTemplate{Key: "N", ValueType: domain.RuleValueNumber, MinValue: floatPtr(0)}, `-1`, false},
		{"Número acima do máximo", &domain.RuleTemplate{Key: "N", ValueType: domain.RuleValueNumber, MaxValue: floatPtr(100)}, `101`, false},
		{"Texto entre os permitidos", &domain.RuleTemplate{Key: "S", ValueType: domain.RuleValueString, AllowedValues: []string{"FIFO", "LIFO"}}, `"FIFO"`, true},
		{"Texto fora dos permitidos", &domain.RuleTemplate{Key: "S", ValueType: domain.RuleValueString, AllowedValues: []string{"FIFO", "LIFO"}}, `"MEDIO"`, false},
		{"JSON objeto", &domain.RuleTemplate{Key: "J", ValueType: domain.RuleValueJSON}, `{"dias":[1,2]}`, true},
		{"JSON escalar", &domain.RuleTemplate{Key: "J", ValueType: domain.RuleValueJSON}, `10`, false},
		{"Valor vazio", &domain.RuleTemplate{Key: "A", ValueType: domain.RuleValueBoolean}, ``, false},
		{"JSON malformado", &domain.RuleTemplate{Key: "J", ValueType: domain.RuleValueJSON}, `{"a":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValue(tt.template, json.RawMessage(tt.value))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	base := func() *domain.RuleTemplate {
		return &domain.RuleTemplate{
			Key:          "SALES_TAX_PERCENTAGE",
			Name:         "Imposto",
			Category:     domain.RuleCategorySales,
			ValueType:    domain.RuleValueNumber,
			DefaultValue: json.RawMessage(`0`),
		}
	}

	t.Run("Template válido", func(t *testing.T) {
		assert.NoError(t, validateTemplate(base()))
	})

	t.Run("Categoria desconhecida", func(t *testing.T) {
		template := base()
		template.Category = "MARKETING"
		assert.ErrorIs(t, validateTemplate(template), ErrInvalidTemplate)
	})

	t.Run("Mínimo maior que máximo", func(t *testing.T) {
		template := base()
		template.MinValue = floatPtr(10)
		template.MaxValue = floatPtr(5)
		assert.ErrorIs(t, validateTemplate(template), ErrInvalidTemplate)
	})

	t.Run("Dependência de si mesmo", func(t *testing.T) {
		template := base()
		template.RequiredRules = []string{"SALES_TAX_PERCENTAGE"}
		assert.ErrorIs(t, validateTemplate(template), ErrInvalidTemplate)
	})

	t.Run("Mesma chave como dependência e conflito", func(t *testing.T) {
		template := base()
		template.RequiredRules = []string{"X"}
		template.ConflictingRules = []string{"X"}
		assert.ErrorIs(t, validateTemplate(template), ErrInvalidTemplate)
	})

	t.Run("Valor padrão fora do tipo", func(t *testing.T) {
		template := base()
		template.DefaultValue = json.RawMessage(`"dez"`)
		assert.ErrorIs(t, validateTemplate(template), ErrInvalidValue)
	})
}

func TestNormalizeKeys(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, normalizeKeys([]string{" a", "B", "a ", ""}))
}

func TestSameJSON(t *testing.T) {
	assert.True(t, sameJSON(json.RawMessage(`{"a": 1}`), json.RawMessage(`{"a":1}`)))
	assert.False(t, sameJSON(json.RawMessage(`{"a":1}`), json.RawMessage(`{"a":2}`)))
}
