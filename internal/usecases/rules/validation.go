package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
)

var validCategories = map[domain.RuleCategory]bool{
	domain.RuleCategoryPayment:    true,
	domain.RuleCategoryInventory:  true,
	domain.RuleCategorySales:      true,
	domain.RuleCategoryTreatment:  true,
	domain.RuleCategoryCommission: true,
	domain.RuleCategoryCash:       true,
	domain.RuleCategoryGeneral:    true,
}

// ValidateValue confere se o valor respeita o tipo e as restrições do template
func ValidateValue(template *domain.RuleTemplate, raw json.RawMessage) error {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return NewRuleErrorWithKey(ErrInvalidValue, apiErrors.ErrInvalidRuleValue, template.Key, "O valor deve ser um JSON válido")
	}

	value := gjson.ParseBytes(raw)

	switch template.ValueType {
	case domain.RuleValueBoolean:
		if value.Type != gjson.True && value.Type != gjson.False {
			return invalidValue(template, "esperado um booleano")
		}
	case domain.RuleValueNumber:
		if value.Type != gjson.Number {
			return invalidValue(template, "esperado um número")
		}
		n := value.Float()
		if template.MinValue != nil && n < *template.MinValue {
			return invalidValue(template, fmt.Sprintf("o valor mínimo é %v", *template.MinValue))
		}
		if template.MaxValue != nil && n > *template.MaxValue {
			return invalidValue(template, fmt.Sprintf("o valor máximo é %v", *template.MaxValue))
		}
	case domain.RuleValueString:
		if value.Type != gjson.String {
			return invalidValue(template, "esperado um texto")
		}
	case domain.RuleValueJSON:
		if !value.IsObject() && !value.IsArray() {
			return invalidValue(template, "esperado um objeto ou lista JSON")
		}
	default:
		return invalidValue(template, "tipo de valor desconhecido")
	}

	if len(template.AllowedValues) > 0 && template.ValueType != domain.RuleValueJSON {
		if !contains(template.AllowedValues, value.String()) {
			return invalidValue(template, "valores permitidos: "+strings.Join(template.AllowedValues, ", "))
		}
	}

	return nil
}

func invalidValue(template *domain.RuleTemplate, details string) error {
	return NewRuleErrorWithKey(ErrInvalidValue, apiErrors.ErrInvalidRuleValue, template.Key, fmt.Sprintf("Valor inválido para %s: %s", template.Key, details))
}

// validateTemplate confere os campos estruturais do template antes de gravar
func validateTemplate(template *domain.RuleTemplate) error {
	if template.Key == "" || strings.TrimSpace(template.Name) == "" {
		return NewRuleError(ErrInvalidTemplate, apiErrors.ErrMissingRequiredData, "Chave e nome são obrigatórios")
	}
	if !validCategories[template.Category] {
		return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrInvalidFormat, template.Key, "Categoria inválida")
	}
	if !template.ValueType.IsValid() {
		return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrInvalidFormat, template.Key, "Tipo de valor inválido")
	}
	if template.MinValue != nil && template.MaxValue != nil && *template.MinValue > *template.MaxValue {
		return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrInvalidFormat, template.Key, "O mínimo não pode ser maior que o máximo")
	}
	if contains(template.RequiredRules, template.Key) || contains(template.ConflictingRules, template.Key) {
		return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrInvalidFormat, template.Key, "Um template não pode depender ou conflitar consigo mesmo")
	}
	for _, key := range template.RequiredRules {
		if contains(template.ConflictingRules, key) {
			return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrInvalidFormat, template.Key, "A regra "+key+" não pode ser dependência e conflito ao mesmo tempo")
		}
	}

	return ValidateValue(template, template.DefaultValue)
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

func normalizeKeys(keys []string) []string {
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if k := normalizeKey(key); k != "" && !contains(normalized, k) {
			normalized = append(normalized, k)
		}
	}
	return normalized
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameJSON compara dois valores JSON ignorando espaços
func sameJSON(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
