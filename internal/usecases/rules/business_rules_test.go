package rules

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

func newBusinessRulesService(t *testing.T) (*BusinessService, *mocks.MockRuleRepository, *cache.MemoryCache) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRuleRepository(ctrl)
	store := cache.NewMemoryCache(100, time.Minute)
	service := NewBusinessRulesService(repo, store, time.Minute)
	service.now = func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }
	return service, repo, store
}

func newTemplate(id, key string, valueType domain.RuleValueType, value string) *domain.RuleTemplate {
	return &domain.RuleTemplate{
		ID:                 id,
		Key:                key,
		Name:               key,
		Category:           domain.RuleCategoryGeneral,
		ValueType:          valueType,
		DefaultValue:       json.RawMessage(value),
		AllowCustomization: true,
		Version:            1,
		IsActive:           true,
	}
}

func assignedRule(tpl *domain.RuleTemplate, active bool, custom string) *domain.BusinessRuleWithTemplate {
	rule := &domain.BusinessRule{
		ID:              "rule-" + tpl.ID,
		BusinessID:      "biz-1",
		TemplateID:      tpl.ID,
		IsActive:        active,
		TemplateVersion: tpl.Version,
	}
	if custom != "" {
		rule.CustomValue = json.RawMessage(custom)
	}
	return &domain.BusinessRuleWithTemplate{Rule: rule, Template: tpl}
}

func TestBusinessService_AssignTemplate(t *testing.T) {
	ctx := context.Background()
	commissionOnProducts := newTemplate("tpl-cp", domain.RuleCommissionOnProducts, domain.RuleValueBoolean, `false`)
	commissionOnProducts.RequiredRules = []string{domain.RuleCommissionDefaultPercentage}
	defaultPercentage := newTemplate("tpl-dp", domain.RuleCommissionDefaultPercentage, domain.RuleValueNumber, `10`)

	tests := []struct {
		name     string
		req      *domain.AssignRuleRequest
		setup    func(repo *mocks.MockRuleRepository)
		validate func(t *testing.T, rule *domain.EffectiveRule, err error)
	}{
		{
			name: "Dependência ausente",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-cp"},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-cp").Return(commissionOnProducts, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
			},
			validate: func(t *testing.T, _ *domain.EffectiveRule, err error) {
				assert.ErrorIs(t, err, ErrDependency)
			},
		},
		{
			name: "Dependência inativa",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-cp"},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-cp").Return(commissionOnProducts, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{
					assignedRule(defaultPercentage, false, ""),
				}, nil)
			},
			validate: func(t *testing.T, _ *domain.EffectiveRule, err error) {
				assert.ErrorIs(t, err, ErrDependency)
			},
		},
		{
			name: "Conflito declarado pela regra já ativa",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-dp"},
			setup: func(repo *mocks.MockRuleRepository) {
				other := newTemplate("tpl-x", "FIXED_COMMISSION", domain.RuleValueBoolean, `true`)
				other.ConflictingRules = []string{domain.RuleCommissionDefaultPercentage}
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-dp").Return(defaultPercentage, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{
					assignedRule(other, true, ""),
				}, nil)
			},
			validate: func(t *testing.T, _ *domain.EffectiveRule, err error) {
				assert.ErrorIs(t, err, ErrConflict)
			},
		},
		{
			name: "Regra já atribuída",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-dp"},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-dp").Return(defaultPercentage, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{
					assignedRule(defaultPercentage, true, ""),
				}, nil)
			},
			validate: func(t *testing.T, _ *domain.EffectiveRule, err error) {
				assert.ErrorIs(t, err, ErrAlreadyAssigned)
			},
		},
		{
			name: "Valor personalizado inválido",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-dp", CustomValue: json.RawMessage(`"quinze"`)},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-dp").Return(defaultPercentage, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
			},
			validate: func(t *testing.T, _ *domain.EffectiveRule, err error) {
				assert.ErrorIs(t, err, ErrInvalidValue)
			},
		},
		{
			name: "Atribui com valor personalizado",
			req:  &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-dp", CustomValue: json.RawMessage(`15`), UpdatedBy: 7},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplate(gomock.Any(), "tpl-dp").Return(defaultPercentage, nil)
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
				repo.EXPECT().CreateBusinessRule(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rule *domain.BusinessRule) error {
					assert.Equal(t, 1, rule.TemplateVersion)
					assert.Equal(t, 7, *rule.UpdatedBy)
					assert.True(t, rule.IsActive)
					return nil
				})
			},
			validate: func(t *testing.T, rule *domain.EffectiveRule, err error) {
				require.NoError(t, err)
				assert.JSONEq(t, `15`, string(rule.EffectiveValue))
				assert.True(t, rule.IsCustomized)
				assert.False(t, rule.Outdated)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newBusinessRulesService(t)
			tt.setup(repo)

			rule, err := service.AssignTemplate(ctx, tt.req)
			tt.validate(t, rule, err)
		})
	}
}

func TestBusinessService_CustomizeRule(t *testing.T) {
	ctx := context.Background()

	t.Run("Template sem personalização", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		tpl := newTemplate("tpl-1", domain.RuleCashRequireOpenShift, domain.RuleValueBoolean, `false`)
		tpl.AllowCustomization = false
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(assignedRule(tpl, true, ""), nil)

		_, err := service.CustomizeRule(ctx, &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-1", CustomValue: json.RawMessage(`true`)})
		assert.ErrorIs(t, err, ErrNotCustomizable)
	})

	t.Run("Regra não atribuída", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(nil, nil)

		_, err := service.CustomizeRule(ctx, &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-1", CustomValue: json.RawMessage(`true`)})
		assert.ErrorIs(t, err, ErrNotAssigned)
	})

	t.Run("Personaliza e invalida o cache", func(t *testing.T) {
		service, repo, store := newBusinessRulesService(t)
		require.NoError(t, store.Set(ctx, cache.RulesKey("biz-1"), []string{"x"}, 0))
		tpl := newTemplate("tpl-1", domain.RuleCashRequireOpenShift, domain.RuleValueBoolean, `false`)
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(assignedRule(tpl, true, ""), nil)
		repo.EXPECT().UpdateBusinessRule(gomock.Any(), gomock.Any()).Return(nil)

		rule, err := service.CustomizeRule(ctx, &domain.AssignRuleRequest{BusinessID: "biz-1", TemplateID: "tpl-1", CustomValue: json.RawMessage(`true`), UpdatedBy: 3})
		require.NoError(t, err)
		assert.JSONEq(t, `true`, string(rule.EffectiveValue))
		assert.False(t, store.Has(ctx, cache.RulesKey("biz-1")))
	})
}

func TestBusinessService_ResetRule(t *testing.T) {
	service, repo, _ := newBusinessRulesService(t)
	tpl := newTemplate("tpl-1", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
	repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(assignedRule(tpl, true, `19`), nil)
	repo.EXPECT().UpdateBusinessRule(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rule *domain.BusinessRule) error {
		assert.Nil(t, rule.CustomValue)
		return nil
	})

	rule, err := service.ResetRule(context.Background(), "biz-1", "tpl-1", 1)
	require.NoError(t, err)
	assert.False(t, rule.IsCustomized)
	assert.JSONEq(t, `0`, string(rule.EffectiveValue))
}

func TestBusinessService_ToggleRule(t *testing.T) {
	ctx := context.Background()
	base := newTemplate("tpl-dp", domain.RuleCommissionDefaultPercentage, domain.RuleValueNumber, `10`)
	dependent := newTemplate("tpl-cp", domain.RuleCommissionOnProducts, domain.RuleValueBoolean, `true`)
	dependent.RequiredRules = []string{domain.RuleCommissionDefaultPercentage}

	t.Run("Não desativa regra da qual outra ativa depende", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		current := assignedRule(base, true, "")
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-dp").Return(current, nil)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{current, assignedRule(dependent, true, "")}, nil)

		_, err := service.ToggleRule(ctx, "biz-1", "tpl-dp", 1)
		assert.ErrorIs(t, err, ErrDependency)
	})

	t.Run("Desativa quando a dependente também está inativa", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		current := assignedRule(base, true, "")
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-dp").Return(current, nil)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{current, assignedRule(dependent, false, "")}, nil)
		repo.EXPECT().UpdateBusinessRule(gomock.Any(), gomock.Any()).Return(nil)

		rule, err := service.ToggleRule(ctx, "biz-1", "tpl-dp", 1)
		require.NoError(t, err)
		assert.False(t, rule.IsActive)
	})

	t.Run("Ativação confere dependências", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		current := assignedRule(dependent, false, "")
		repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-cp").Return(current, nil)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{current, assignedRule(base, false, "")}, nil)

		_, err := service.ToggleRule(ctx, "biz-1", "tpl-cp", 1)
		assert.ErrorIs(t, err, ErrDependency)
	})
}

func TestBusinessService_RemoveRule(t *testing.T) {
	service, repo, _ := newBusinessRulesService(t)
	tpl := newTemplate("tpl-1", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
	current := assignedRule(tpl, true, "")
	repo.EXPECT().GetBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(current, nil)
	repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{current}, nil)
	repo.EXPECT().DeleteBusinessRule(gomock.Any(), "biz-1", "tpl-1").Return(nil)

	require.NoError(t, service.RemoveRule(context.Background(), "biz-1", "tpl-1"))
}

func TestBusinessService_GetBusinessRules(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newBusinessRulesService(t)

	tpl := newTemplate("tpl-1", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
	tpl.Version = 3
	rule := assignedRule(tpl, true, `12`)
	rule.Rule.TemplateVersion = 2

	// a segunda chamada vem do cache
	repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{rule}, nil).Times(1)

	for i := 0; i < 2; i++ {
		rules, err := service.GetBusinessRules(ctx, "biz-1")
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.JSONEq(t, `12`, string(rules[0].EffectiveValue))
		assert.True(t, rules[0].IsCustomized)
		assert.True(t, rules[0].Outdated)
	}
}

func TestBusinessService_GetRuleValue(t *testing.T) {
	ctx := context.Background()

	t.Run("Regra inativa usa o valor padrão", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		tpl := newTemplate("tpl-1", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{assignedRule(tpl, false, `19`)}, nil)

		rule, err := service.GetRuleValue(ctx, "biz-1", "sales_tax_percentage")
		require.NoError(t, err)
		assert.JSONEq(t, `0`, string(rule.EffectiveValue))
	})

	t.Run("Regra não atribuída usa o padrão do template", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
		repo.EXPECT().GetTemplateByKey(gomock.Any(), domain.RuleCashRequireOpenShift).
			Return(newTemplate("tpl-2", domain.RuleCashRequireOpenShift, domain.RuleValueBoolean, `true`), nil)

		rule, err := service.GetRuleValue(ctx, "biz-1", domain.RuleCashRequireOpenShift)
		require.NoError(t, err)
		assert.JSONEq(t, `true`, string(rule.EffectiveValue))
		assert.Empty(t, rule.RuleID)
	})

	t.Run("Chave desconhecida", func(t *testing.T) {
		service, repo, _ := newBusinessRulesService(t)
		repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
		repo.EXPECT().GetTemplateByKey(gomock.Any(), "UNKNOWN").Return(nil, nil)

		_, err := service.GetRuleValue(ctx, "biz-1", "UNKNOWN")
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	deactivated := func() *domain.RuleTemplate {
		tpl := newTemplate("tpl-3", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `5`)
		tpl.IsActive = false
		return tpl
	}

	tests := []struct {
		name  string
		setup func(repo *mocks.MockRuleRepository)
	}{
		{
			name: "Template desativado e atribuído ao negócio",
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").
					Return([]*domain.BusinessRuleWithTemplate{assignedRule(deactivated(), true, `19`)}, nil)
				repo.EXPECT().GetTemplateByKey(gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name: "Template desativado e não atribuído",
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return(nil, nil)
				repo.EXPECT().GetTemplateByKey(gomock.Any(), domain.RuleSalesTaxPercentage).Return(deactivated(), nil).Times(2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newBusinessRulesService(t)
			tt.setup(repo)

			_, err := service.GetRuleValue(ctx, "biz-1", domain.RuleSalesTaxPercentage)
			assert.ErrorIs(t, err, ErrTemplateNotFound)

			rate, err := service.GetNumber(ctx, "biz-1", domain.RuleSalesTaxPercentage, 0)
			require.NoError(t, err)
			assert.Equal(t, 0.0, rate)
		})
	}
}

func TestBusinessService_GetRuleValuePath(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newBusinessRulesService(t)
	tpl := newTemplate("tpl-1", "BUSINESS_HOURS", domain.RuleValueJSON, `{"monday":{"open":"08:00","close":"18:00"}}`)
	repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{assignedRule(tpl, true, "")}, nil)

	value, err := service.GetRuleValuePath(ctx, "biz-1", "BUSINESS_HOURS", "monday.open")
	require.NoError(t, err)
	assert.JSONEq(t, `"08:00"`, string(value))

	_, err = service.GetRuleValuePath(ctx, "biz-1", "BUSINESS_HOURS", "sunday.open")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestBusinessService_SyncRuleVersions(t *testing.T) {
	service, repo, _ := newBusinessRulesService(t)

	tax := newTemplate("tpl-1", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
	tax.MaxValue = floatPtr(20)
	tax.Version = 2
	outdatedInvalid := assignedRule(tax, true, `25`)
	outdatedInvalid.Rule.TemplateVersion = 1

	shift := newTemplate("tpl-2", domain.RuleCashRequireOpenShift, domain.RuleValueBoolean, `false`)
	shift.Version = 3
	outdatedValid := assignedRule(shift, true, `true`)
	outdatedValid.Rule.TemplateVersion = 2

	current := assignedRule(newTemplate("tpl-3", domain.RuleTreatmentAllowReschedule, domain.RuleValueBoolean, `true`), true, "")

	repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{outdatedInvalid, outdatedValid, current}, nil)
	repo.EXPECT().UpdateBusinessRule(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := service.SyncRuleVersions(context.Background(), "biz-1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, []string{domain.RuleSalesTaxPercentage}, result.Reset)
	assert.Nil(t, outdatedInvalid.Rule.CustomValue)
	assert.Equal(t, 2, outdatedInvalid.Rule.TemplateVersion)
	assert.JSONEq(t, `true`, string(outdatedValid.Rule.CustomValue))
}

func TestBusinessService_Evaluator(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := newBusinessRulesService(t)

	shift := newTemplate("tpl-1", domain.RuleCashRequireOpenShift, domain.RuleValueBoolean, `false`)
	tax := newTemplate("tpl-2", domain.RuleSalesTaxPercentage, domain.RuleValueNumber, `0`)
	repo.EXPECT().ListBusinessRules(gomock.Any(), "biz-1").Return([]*domain.BusinessRuleWithTemplate{
		assignedRule(shift, true, `true`),
		assignedRule(tax, true, `19`),
	}, nil)
	repo.EXPECT().GetTemplateByKey(gomock.Any(), domain.RuleInventoryAllowNegativeStock).Return(nil, nil)

	var evaluator Evaluator = service

	requireShift, err := evaluator.GetBool(ctx, "biz-1", domain.RuleCashRequireOpenShift, false)
	require.NoError(t, err)
	assert.True(t, requireShift)

	rate, err := evaluator.GetNumber(ctx, "biz-1", domain.RuleSalesTaxPercentage, 0)
	require.NoError(t, err)
	assert.Equal(t, 19.0, rate)

	negative, err := evaluator.GetBool(ctx, "biz-1", domain.RuleInventoryAllowNegativeStock, true)
	require.NoError(t, err)
	assert.True(t, negative)
}
