package rules

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

// RuleTemplateService administra o catálogo de templates da plataforma (OWNER)
type RuleTemplateService interface {
	CreateTemplate(ctx context.Context, req *domain.CreateRuleTemplateRequest) (*domain.RuleTemplate, error)
	UpdateTemplate(ctx context.Context, req *domain.UpdateRuleTemplateRequest) (*domain.RuleTemplate, error)
	DeleteTemplate(ctx context.Context, id string, force bool) (bool, error)
	ListTemplates(ctx context.Context, filters domain.RuleTemplateFilters) ([]*domain.RuleTemplate, error)
	GetTemplate(ctx context.Context, id string) (*domain.RuleTemplate, error)
	GetTemplateUsage(ctx context.Context, id string) (*domain.RuleTemplateUsage, error)
}

type TemplateService struct {
	repo  repository.RuleRepository
	cache cache.Cache
}

func NewTemplateService(repo repository.RuleRepository, cacheStore cache.Cache) RuleTemplateService {
	return &TemplateService{repo: repo, cache: cacheStore}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req *domain.CreateRuleTemplateRequest) (*domain.RuleTemplate, error) {
	allowCustomization := true
	if req.AllowCustomization != nil {
		allowCustomization = *req.AllowCustomization
	}

	createdBy := req.CreatedBy
	template := &domain.RuleTemplate{
		ID:                 utils.NewUUID(),
		Key:                normalizeKey(req.Key),
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		Category:           req.Category,
		ValueType:          req.ValueType,
		DefaultValue:       req.DefaultValue,
		AllowCustomization: allowCustomization,
		MinValue:           req.MinValue,
		MaxValue:           req.MaxValue,
		AllowedValues:      req.AllowedValues,
		RequiredRules:      normalizeKeys(req.RequiredRules),
		ConflictingRules:   normalizeKeys(req.ConflictingRules),
		Version:            1,
		IsActive:           true,
		CreatedBy:          &createdBy,
	}

	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetTemplateByKey(ctx, template.Key)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar templates")
	}
	if existing != nil {
		return nil, NewRuleErrorWithKey(ErrTemplateExists, apiErrors.ErrRuleTemplateExists, template.Key, "Já existe um template com a chave "+template.Key)
	}

	if err := s.ensureKeysExist(ctx, template); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewRuleErrorWithKey(ErrTemplateExists, apiErrors.ErrRuleTemplateExists, template.Key, "Já existe um template com a chave "+template.Key)
		}
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar template")
	}

	log.ForContext(ctx).WithField("rule_key", template.Key).Info("Template de regra criado")

	return template, nil
}

// ensureKeysExist garante que dependências e conflitos apontam para templates existentes
func (s *TemplateService) ensureKeysExist(ctx context.Context, template *domain.RuleTemplate) error {
	keys := append(append([]string{}, template.RequiredRules...), template.ConflictingRules...)
	for _, key := range keys {
		related, err := s.repo.GetTemplateByKey(ctx, key)
		if err != nil {
			return NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar templates")
		}
		if related == nil {
			return NewRuleErrorWithKey(ErrInvalidTemplate, apiErrors.ErrRuleTemplateNotFound, key, "Template referenciado não existe: "+key)
		}
	}
	return nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*domain.RuleTemplate, error) {
	template, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar template")
	}
	if template == nil {
		return nil, NewRuleError(ErrTemplateNotFound, apiErrors.ErrRuleTemplateNotFound, "Template não encontrado")
	}
	return template, nil
}

func (s *TemplateService) ListTemplates(ctx context.Context, filters domain.RuleTemplateFilters) ([]*domain.RuleTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx, filters)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar templates")
	}
	return templates, nil
}

// UpdateTemplate aplica as alterações e incrementa a versão quando o valor padrão,
// o tipo ou as restrições mudam, para que os negócios saibam que estão desatualizados
func (s *TemplateService) UpdateTemplate(ctx context.Context, req *domain.UpdateRuleTemplateRequest) (*domain.RuleTemplate, error) {
	template, err := s.GetTemplate(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.Name != nil {
		template.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		template.Description = req.Description
	}
	if req.Category != nil {
		template.Category = *req.Category
	}
	if req.AllowCustomization != nil {
		template.AllowCustomization = *req.AllowCustomization
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.ValueType != nil && *req.ValueType != template.ValueType {
		template.ValueType = *req.ValueType
		changed = true
	}
	if req.DefaultValue != nil && !sameJSON(req.DefaultValue, template.DefaultValue) {
		template.DefaultValue = req.DefaultValue
		changed = true
	}
	if req.MinValue != nil && !sameFloat(req.MinValue, template.MinValue) {
		template.MinValue = req.MinValue
		changed = true
	}
	if req.MaxValue != nil && !sameFloat(req.MaxValue, template.MaxValue) {
		template.MaxValue = req.MaxValue
		changed = true
	}
	if req.AllowedValues != nil && !sameStrings(req.AllowedValues, template.AllowedValues) {
		template.AllowedValues = req.AllowedValues
		changed = true
	}
	if req.RequiredRules != nil {
		keys := normalizeKeys(req.RequiredRules)
		if !sameStrings(keys, template.RequiredRules) {
			template.RequiredRules = keys
			changed = true
		}
	}
	if req.ConflictingRules != nil {
		keys := normalizeKeys(req.ConflictingRules)
		if !sameStrings(keys, template.ConflictingRules) {
			template.ConflictingRules = keys
			changed = true
		}
	}

	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	if err := s.ensureKeysExist(ctx, template); err != nil {
		return nil, err
	}

	if changed {
		template.Version++
	}

	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar template")
	}

	s.invalidateBusinesses(ctx, template.ID)

	log.ForContext(ctx).WithFields(log.Fields{
		"rule_key": template.Key,
		"version":  template.Version,
	}).Info("Template de regra atualizado")

	return template, nil
}

// DeleteTemplate remove o template. Em uso, só é desativado quando force é verdadeiro;
// o retorno indica se houve desativação em vez de remoção.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id string, force bool) (bool, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return false, err
	}

	usage, err := s.repo.TemplateUsage(ctx, id)
	if err != nil {
		return false, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar uso do template")
	}

	if usage != nil && usage.TotalBusinesses > 0 {
		if !force {
			return false, NewRuleErrorWithKey(ErrTemplateInUse, apiErrors.ErrRuleTemplateInUse, template.Key, "Template em uso por negócios, use force para desativá-lo")
		}

		template.IsActive = false
		if err := s.repo.UpdateTemplate(ctx, template); err != nil {
			return false, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao desativar template")
		}
		s.invalidateBusinesses(ctx, id)
		return true, nil
	}

	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		return false, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover template")
	}

	return false, nil
}

func (s *TemplateService) GetTemplateUsage(ctx context.Context, id string) (*domain.RuleTemplateUsage, error) {
	template, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	usage, err := s.repo.TemplateUsage(ctx, id)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar uso do template")
	}
	if usage == nil {
		usage = &domain.RuleTemplateUsage{TemplateID: id}
	}
	usage.CurrentVersion = template.Version

	return usage, nil
}

// invalidateBusinesses limpa o cache de regras de todos os negócios que usam o template
func (s *TemplateService) invalidateBusinesses(ctx context.Context, templateID string) {
	rules, err := s.repo.ListRulesByTemplate(ctx, templateID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao listar negócios do template, limpando todo o cache de regras")
		if _, err := s.cache.DeletePrefix(ctx, cache.RulesKey("")); err != nil {
			log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de regras")
		}
		return
	}

	for _, rule := range rules {
		if err := s.cache.Delete(ctx, cache.RulesKey(rule.BusinessID)); err != nil {
			log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de regras")
		}
	}
}
