package domain

import (
	"encoding/json"
	"time"
)

type RuleValueType string

const (
	RuleValueBoolean RuleValueType = "BOOLEAN"
	RuleValueNumber  RuleValueType = "NUMBER"
	RuleValueString  RuleValueType = "STRING"
	RuleValueJSON    RuleValueType = "JSON"
)

func (t RuleValueType) IsValid() bool {
	switch t {
	case RuleValueBoolean, RuleValueNumber, RuleValueString, RuleValueJSON:
		return true
	}
	return false
}

type RuleCategory string

const (
	RuleCategoryPayment    RuleCategory = "PAYMENT"
	RuleCategoryInventory  RuleCategory = "INVENTORY"
	RuleCategorySales      RuleCategory = "SALES"
	RuleCategoryTreatment  RuleCategory = "TREATMENT"
	RuleCategoryCommission RuleCategory = "COMMISSION"
	RuleCategoryCash       RuleCategory = "CASH_REGISTER"
	RuleCategoryGeneral    RuleCategory = "GENERAL"
)

// Chaves de regras consultadas pelos fluxos de negócio
const (
	RuleCashRequireOpenShift        = "CASH_REQUIRE_OPEN_SHIFT"
	RuleInventoryAllowNegativeStock = "INVENTORY_ALLOW_NEGATIVE_STOCK"
	RuleSalesTaxPercentage          = "SALES_TAX_PERCENTAGE"
	RuleCommissionOnProducts        = "COMMISSION_ON_PRODUCTS"
	RuleTreatmentAllowReschedule    = "TREATMENT_ALLOW_RESCHEDULE"
	RuleCommissionDefaultPercentage = "COMMISSION_DEFAULT_PERCENTAGE"
)

type RuleTemplate struct {
	ID                 string          `json:"id"`
	Key                string          `json:"key"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	Category           RuleCategory    `json:"category"`
	ValueType          RuleValueType   `json:"value_type"`
	DefaultValue       json.RawMessage `json:"default_value"`
	AllowCustomization bool            `json:"allow_customization"`
	MinValue           *float64        `json:"min_value"`
	MaxValue           *float64        `json:"max_value"`
	AllowedValues      []string        `json:"allowed_values"`
	RequiredRules      []string        `json:"required_rules"`
	ConflictingRules   []string        `json:"conflicting_rules"`
	Version            int             `json:"version"`
	IsActive           bool            `json:"is_active"`
	CreatedBy          *int            `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type BusinessRule struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"business_id"`
	TemplateID      string          `json:"template_id"`
	CustomValue     json.RawMessage `json:"custom_value"`
	IsActive        bool            `json:"is_active"`
	TemplateVersion int             `json:"template_version"`
	Notes           *string         `json:"notes"`
	UpdatedBy       *int            `json:"updated_by"`
	AppliedAt       time.Time       `json:"applied_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BusinessRuleWithTemplate é a regra do negócio junto do template que a originou
type BusinessRuleWithTemplate struct {
	Rule     *BusinessRule
	Template *RuleTemplate
}

// EffectiveRule é a visão resolvida de uma regra para um negócio
type EffectiveRule struct {
	RuleID          string          `json:"rule_id,omitempty"`
	TemplateID      string          `json:"template_id"`
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Category        RuleCategory    `json:"category"`
	ValueType       RuleValueType   `json:"value_type"`
	EffectiveValue  json.RawMessage `json:"effective_value"`
	DefaultValue    json.RawMessage `json:"default_value"`
	CustomValue     json.RawMessage `json:"custom_value,omitempty"`
	IsActive        bool            `json:"is_active"`
	TemplateActive  bool            `json:"template_active"`
	IsCustomized    bool            `json:"is_customized"`
	Outdated        bool            `json:"outdated"`
	TemplateVersion int             `json:"template_version"`
	RuleVersion     int             `json:"rule_version"`
}

type RuleTemplateFilters struct {
	Category *RuleCategory
	IsActive *bool
	Search   *string
}

type CreateRuleTemplateRequest struct {
	Key                string          `json:"key"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	Category           RuleCategory    `json:"category"`
	ValueType          RuleValueType   `json:"value_type"`
	DefaultValue       json.RawMessage `json:"default_value"`
	AllowCustomization *bool           `json:"allow_customization"`
	MinValue           *float64        `json:"min_value"`
	MaxValue           *float64        `json:"max_value"`
	AllowedValues      []string        `json:"allowed_values"`
	RequiredRules      []string        `json:"required_rules"`
	ConflictingRules   []string        `json:"conflicting_rules"`
	CreatedBy          int             `json:"-"`
}

type UpdateRuleTemplateRequest struct {
	ID                 string          `json:"-"`
	Name               *string         `json:"name"`
	Description        *string         `json:"description"`
	Category           *RuleCategory   `json:"category"`
	ValueType          *RuleValueType  `json:"value_type"`
	DefaultValue       json.RawMessage `json:"default_value"`
	AllowCustomization *bool           `json:"allow_customization"`
	MinValue           *float64        `json:"min_value"`
	MaxValue           *float64        `json:"max_value"`
	AllowedValues      []string        `json:"allowed_values"`
	RequiredRules      []string        `json:"required_rules"`
	ConflictingRules   []string        `json:"conflicting_rules"`
	IsActive           *bool           `json:"is_active"`
}

type RuleTemplateUsage struct {
	TemplateID      string `json:"template_id"`
	TotalBusinesses int    `json:"total_businesses"`
	ActiveRules     int    `json:"active_rules"`
	CustomizedRules int    `json:"customized_rules"`
	OutdatedRules   int    `json:"outdated_rules"`
	CurrentVersion  int    `json:"current_version"`
}

type AssignRuleRequest struct {
	BusinessID  string          `json:"-"`
	TemplateID  string          `json:"template_id"`
	CustomValue json.RawMessage `json:"custom_value"`
	Notes       *string         `json:"notes"`
	UpdatedBy   int             `json:"-"`
}

type SyncRuleVersionsResult struct {
	Updated int      `json:"updated"`
	Reset   []string `json:"reset"`
}
