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
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

func newTemplateService(t *testing.T) (RuleTemplateService, *mocks.MockRuleRepository, *cache.MemoryCache) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRuleRepository(ctrl)
	store := cache.NewMemoryCache(100, time.Minute)
	return NewTemplateService(repo, store), repo, store
}

func numberTemplate() *domain.RuleTemplate {
	return &domain.RuleTemplate{
		ID:                 "tpl-1",
		Key:                "SALES_TAX_PERCENTAGE",
		Name:               "Imposto sobre vendas",
		Category:           domain.RuleCategorySales,
		ValueType:          domain.RuleValueNumber,
		DefaultValue:       json.RawMessage(`0`),
		AllowCustomization: true,
		MinValue:           floatPtr(0),
		MaxValue:           floatPtr(100),
		Version:            1,
		IsActive:           true,
	}
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.CreateRuleTemplateRequest
		setup    func(repo *mocks.MockRuleRepository)
		validate func(t *testing.T, template *domain.RuleTemplate, err error)
	}{
		{
			name: "Cria template com chave normalizada",
			req: &domain.CreateRuleTemplateRequest{
				Key:          " sales_tax_percentage ",
				Name:         "Imposto",
				Category:     domain.RuleCategorySales,
				ValueType:    domain.RuleValueNumber,
				DefaultValue: json.RawMessage(`5`),
				CreatedBy:    1,
			},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplateByKey(gomock.Any(), "SALES_TAX_PERCENTAGE").Return(nil, nil)
				repo.EXPECT().CreateTemplate(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, template *domain.RuleTemplate, err error) {
				require.NoError(t, err)
				assert.Equal(t, "SALES_TAX_PERCENTAGE", template.Key)
				assert.Equal(t, 1, template.Version)
				assert.True(t, template.IsActive)
				assert.True(t, template.AllowCustomization)
			},
		},
		{
			name: "Chave repetida",
			req: &domain.CreateRuleTemplateRequest{
				Key:          "SALES_TAX_PERCENTAGE",
				Name:         "Imposto",
				Category:     domain.RuleCategorySales,
				ValueType:    domain.RuleValueNumber,
				DefaultValue: json.RawMessage(`5`),
			},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplateByKey(gomock.Any(), "SALES_TAX_PERCENTAGE").Return(numberTemplate(), nil)
			},
			validate: func(t *testing.T, _ *domain.RuleTemplate, err error) {
				var ruleErr *RuleError
				require.ErrorAs(t, err, &ruleErr)
				assert.Equal(t, apiErrors.ErrRuleTemplateExists, ruleErr.APICode())
			},
		},
		{
			name: "Dependência inexistente",
			req: &domain.CreateRuleTemplateRequest{
				Key:           "COMMISSION_ON_PRODUCTS",
				Name:          "Comissão em produtos",
				Category:      domain.RuleCategoryCommission,
				ValueType:     domain.RuleValueBoolean,
				DefaultValue:  json.RawMessage(`false`),
				RequiredRules: []string{"commission_default_percentage"},
			},
			setup: func(repo *mocks.MockRuleRepository) {
				repo.EXPECT().GetTemplateByKey(gomock.Any(), "COMMISSION_ON_PRODUCTS").Return(nil, nil)
				repo.EXPECT().GetTemplateByKey(gomock.Any(), "COMMISSION_DEFAULT_PERCENTAGE").Return(nil, nil)
			},
			validate: func(t *testing.T, _ *domain.RuleTemplate, err error) {
				assert.ErrorIs(t, err, ErrInvalidTemplate)
			},
		},
		{
			name: "Valor padrão inválido não chega ao banco",
			req: &domain.CreateRuleTemplateRequest{
				Key:          "CASH_REQUIRE_OPEN_SHIFT",
				Name:         "Exige caixa aberto",
				Category:     domain.RuleCategoryCash,
				ValueType:    domain.RuleValueBoolean,
				DefaultValue: json.RawMessage(`1`),
			},
			setup: func(*mocks.MockRuleRepository) {},
			validate: func(t *testing.T, _ *domain.RuleTemplate, err error) {
				assert.ErrorIs(t, err, ErrInvalidValue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newTemplateService(t)
			tt.setup(repo)

			template, err := service.CreateTemplate(ctx, tt.req)
			tt.validate(t, template, err)
		})
	}
}

func TestTemplateService_UpdateTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Alterar o valor padrão incrementa a versão e limpa o cache dos negócios", func(t *testing.T) {
		service, repo, store := newTemplateService(t)
		require.NoError(t, store.Set(ctx, cache.RulesKey("biz-1"), []string{"x"}, 0))

		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(numberTemplate(), nil)
		repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ListRulesByTemplate(gomock.Any(), "tpl-1").Return([]*domain.BusinessRule{{BusinessID: "biz-1"}}, nil)

		template, err := service.UpdateTemplate(ctx, &domain.UpdateRuleTemplateRequest{
			ID:           "tpl-1",
			DefaultValue: json.RawMessage(`10`),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, template.Version)
		assert.False(t, store.Has(ctx, cache.RulesKey("biz-1")))
	})

	t.Run("Alterar só o nome mantém a versão", func(t *testing.T) {
		service, repo, _ := newTemplateService(t)
		name := "Imposto estadual"

		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(numberTemplate(), nil)
		repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ListRulesByTemplate(gomock.Any(), "tpl-1").Return(nil, nil)

		template, err := service.UpdateTemplate(ctx, &domain.UpdateRuleTemplateRequest{ID: "tpl-1", Name: &name})

		require.NoError(t, err)
		assert.Equal(t, 1, template.Version)
		assert.Equal(t, name, template.Name)
	})

	t.Run("Template inexistente", func(t *testing.T) {
		service, repo, _ := newTemplateService(t)
		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-x").Return(nil, nil)

		_, err := service.UpdateTemplate(ctx, &domain.UpdateRuleTemplateRequest{ID: "tpl-x"})
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestTemplateService_DeleteTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Template sem uso é removido", func(t *testing.T) {
		service, repo, _ := newTemplateService(t)
		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(numberTemplate(), nil)
		repo.EXPECT().TemplateUsage(gomock.Any(), "tpl-1").Return(&domain.RuleTemplateUsage{TemplateID: "tpl-1"}, nil)
		repo.EXPECT().DeleteTemplate(gomock.Any(), "tpl-1").Return(nil)

		deactivated, err := service.DeleteTemplate(ctx, "tpl-1", false)
		require.NoError(t, err)
		assert.False(t, deactivated)
	})

	t.Run("Template em uso sem force é recusado", func(t *testing.T) {
		service, repo, _ := newTemplateService(t)
		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(numberTemplate(), nil)
		repo.EXPECT().TemplateUsage(gomock.Any(), "tpl-1").Return(&domain.RuleTemplateUsage{TemplateID: "tpl-1", TotalBusinesses: 3}, nil)

		_, err := service.DeleteTemplate(ctx, "tpl-1", false)
		assert.ErrorIs(t, err, ErrTemplateInUse)
	})

	t.Run("Template em uso com force é desativado", func(t *testing.T) {
		service, repo, _ := newTemplateService(t)
		repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(numberTemplate(), nil)
		repo.EXPECT().TemplateUsage(gomock.Any(), "tpl-1").Return(&domain.RuleTemplateUsage{TemplateID: "tpl-1", TotalBusinesses: 3}, nil)
		repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, template *domain.RuleTemplate) error {
			assert.False(t, template.IsActive)
			return nil
		})
		repo.EXPECT().ListRulesByTemplate(gomock.Any(), "tpl-1").Return(nil, nil)

		deactivated, err := service.DeleteTemplate(ctx, "tpl-1", true)
		require.NoError(t, err)
		assert.True(t, deactivated)
	})
}

func TestTemplateService_GetTemplateUsage(t *testing.T) {
	service, repo, _ := newTemplateService(t)
	template := numberTemplate()
	template.Version = 4

	repo.EXPECT().GetTemplate(gomock.Any(), "tpl-1").Return(template, nil)
	repo.EXPECT().TemplateUsage(gomock.Any(), "tpl-1").Return(&domain.RuleTemplateUsage{TemplateID: "tpl-1", TotalBusinesses: 2, OutdatedRules: 1}, nil)

	usage, err := service.GetTemplateUsage(context.Background(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, 4, usage.CurrentVersion)
	assert.Equal(t, 2, usage.TotalBusinesses)
}
