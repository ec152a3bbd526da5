package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

// BusinessRulesService administra as regras atribuídas a cada negócio
type BusinessRulesService interface {
	ListAvailableTemplates(ctx context.Context, businessID string) ([]*domain.RuleTemplate, error)
	AssignTemplate(ctx context.Context, req *domain.AssignRuleRequest) (*domain.EffectiveRule, error)
	CustomizeRule(ctx context.Context, req *domain.AssignRuleRequest) (*domain.EffectiveRule, error)
	ResetRule(ctx context.Context, businessID, templateID string, updatedBy int) (*domain.EffectiveRule, error)
	ToggleRule(ctx context.Context, businessID, templateID string, updatedBy int) (*domain.EffectiveRule, error)
	RemoveRule(ctx context.Context, businessID, templateID string) error
	GetBusinessRules(ctx context.Context, businessID string) ([]*domain.EffectiveRule, error)
	GetRuleValue(ctx context.Context, businessID, key string) (*domain.EffectiveRule, error)
	GetRuleValuePath(ctx context.Context, businessID, key, path string) (json.RawMessage, error)
	SyncRuleVersions(ctx context.Context, businessID string, updatedBy int) (*domain.SyncRuleVersionsResult, error)
}

type BusinessService struct {
	repo  repository.RuleRepository
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewBusinessRulesService retorna o serviço concreto, que também atende a Evaluator
func NewBusinessRulesService(repo repository.RuleRepository, cacheStore cache.Cache, ttl time.Duration) *BusinessService {
	return &BusinessService{
		repo:  repo,
		cache: cacheStore,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *BusinessService) ListAvailableTemplates(ctx context.Context, businessID string) ([]*domain.RuleTemplate, error) {
	active := true
	templates, err := s.repo.ListTemplates(ctx, domain.RuleTemplateFilters{IsActive: &active})
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar templates")
	}

	assigned, err := s.assignedByKey(ctx, businessID)
	if err != nil {
		return nil, err
	}

	available := make([]*domain.RuleTemplate, 0, len(templates))
	for _, template := range templates {
		if _, ok := assigned[template.Key]; !ok {
			available = append(available, template)
		}
	}

	return available, nil
}

func (s *BusinessService) AssignTemplate(ctx context.Context, req *domain.AssignRuleRequest) (*domain.EffectiveRule, error) {
	template, err := s.repo.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar template")
	}
	if template == nil || !template.IsActive {
		return nil, NewRuleError(ErrTemplateNotFound, apiErrors.ErrRuleTemplateNotFound, "Template não encontrado")
	}

	assigned, err := s.assignedByKey(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if _, ok := assigned[template.Key]; ok {
		return nil, NewRuleErrorWithKey(ErrAlreadyAssigned, apiErrors.ErrRuleAlreadyAssigned, template.Key, "A regra já está atribuída ao negócio")
	}

	if err := checkActivation(template, assigned); err != nil {
		return nil, err
	}

	var customValue json.RawMessage
	if !isNullJSON(req.CustomValue) {
		if !template.AllowCustomization {
			return nil, NewRuleErrorWithKey(ErrNotCustomizable, apiErrors.ErrRuleNotCustomizable, template.Key, "O template não permite personalização")
		}
		if err := ValidateValue(template, req.CustomValue); err != nil {
			return nil, err
		}
		customValue = req.CustomValue
	}

	updatedBy := req.UpdatedBy
	rule := &domain.BusinessRule{
		ID:              utils.NewUUID(),
		BusinessID:      req.BusinessID,
		TemplateID:      template.ID,
		CustomValue:     customValue,
		IsActive:        true,
		TemplateVersion: template.Version,
		Notes:           req.Notes,
		UpdatedBy:       &updatedBy,
		AppliedAt:       s.now(),
	}

	if err := s.repo.CreateBusinessRule(ctx, rule); err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atribuir regra")
	}

	s.invalidate(ctx, req.BusinessID)

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": req.BusinessID,
		"rule_key":    template.Key,
	}).Info("Regra atribuída ao negócio")

	return toEffective(rule, template), nil
}

func (s *BusinessService) CustomizeRule(ctx context.Context, req *domain.AssignRuleRequest) (*domain.EffectiveRule, error) {
	current, err := s.getAssigned(ctx, req.BusinessID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	if !current.Template.AllowCustomization {
		return nil, NewRuleErrorWithKey(ErrNotCustomizable, apiErrors.ErrRuleNotCustomizable, current.Template.Key, "O template não permite personalização")
	}
	if err := ValidateValue(current.Template, req.CustomValue); err != nil {
		return nil, err
	}

	rule := current.Rule
	rule.CustomValue = req.CustomValue
	rule.TemplateVersion = current.Template.Version
	if req.Notes != nil {
		rule.Notes = req.Notes
	}

	return s.save(ctx, rule, current.Template, req.UpdatedBy)
}

func (s *BusinessService) ResetRule(ctx context.Context, businessID, templateID string, updatedBy int) (*domain.EffectiveRule, error) {
	current, err := s.getAssigned(ctx, businessID, templateID)
	if err != nil {
		return nil, err
	}

	rule := current.Rule
	rule.CustomValue = nil
	rule.TemplateVersion = current.Template.Version

	return s.save(ctx, rule, current.Template, updatedBy)
}

// ToggleRule alterna o estado da regra. Desativar exige que nenhuma regra ativa dependa
// dela; ativar repete as checagens de dependência e conflito da atribuição.
func (s *BusinessService) ToggleRule(ctx context.Context, businessID, templateID string, updatedBy int) (*domain.EffectiveRule, error) {
	current, err := s.getAssigned(ctx, businessID, templateID)
	if err != nil {
		return nil, err
	}

	assigned, err := s.assignedByKey(ctx, businessID)
	if err != nil {
		return nil, err
	}

	rule := current.Rule
	if rule.IsActive {
		if err := checkDependents(current.Template, assigned); err != nil {
			return nil, err
		}
	} else {
		if err := checkActivation(current.Template, assigned); err != nil {
			return nil, err
		}
	}
	rule.IsActive = !rule.IsActive

	return s.save(ctx, rule, current.Template, updatedBy)
}

func (s *BusinessService) RemoveRule(ctx context.Context, businessID, templateID string) error {
	current, err := s.getAssigned(ctx, businessID, templateID)
	if err != nil {
		return err
	}

	assigned, err := s.assignedByKey(ctx, businessID)
	if err != nil {
		return err
	}
	if err := checkDependents(current.Template, assigned); err != nil {
		return err
	}

	if err := s.repo.DeleteBusinessRule(ctx, businessID, templateID); err != nil {
		return NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover regra")
	}

	s.invalidate(ctx, businessID)

	return nil
}

// GetBusinessRules retorna as regras efetivas do negócio, servidas do cache quando possível
func (s *BusinessService) GetBusinessRules(ctx context.Context, businessID string) ([]*domain.EffectiveRule, error) {
	return cache.GetOrSet(ctx, s.cache, cache.RulesKey(businessID), s.ttl, func(ctx context.Context) ([]*domain.EffectiveRule, error) {
		rules, err := s.repo.ListBusinessRules(ctx, businessID)
		if err != nil {
			return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar regras do negócio")
		}

		effective := make([]*domain.EffectiveRule, 0, len(rules))
		for _, r := range rules {
			effective = append(effective, toEffective(r.Rule, r.Template))
		}
		return effective, nil
	})
}

// GetRuleValue resolve o valor efetivo de uma chave. Regras inativas ou não atribuídas
// usam o valor padrão do template; templates desativados são tratados como inexistentes,
// estejam ou não atribuídos ao negócio.
func (s *BusinessService) GetRuleValue(ctx context.Context, businessID, key string) (*domain.EffectiveRule, error) {
	key = normalizeKey(key)

	rules, err := s.GetBusinessRules(ctx, businessID)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if rule.Key != key {
			continue
		}
		if !rule.TemplateActive {
			return nil, NewRuleErrorWithKey(ErrTemplateNotFound, apiErrors.ErrRuleTemplateNotFound, key, "Regra não encontrada: "+key)
		}
		if !rule.IsActive {
			rule.EffectiveValue = rule.DefaultValue
		}
		return rule, nil
	}

	template, err := s.repo.GetTemplateByKey(ctx, key)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar template")
	}
	if template == nil || !template.IsActive {
		return nil, NewRuleErrorWithKey(ErrTemplateNotFound, apiErrors.ErrRuleTemplateNotFound, key, "Regra não encontrada: "+key)
	}

	return &domain.EffectiveRule{
		TemplateID:      template.ID,
		Key:             template.Key,
		Name:            template.Name,
		Category:        template.Category,
		ValueType:       template.ValueType,
		EffectiveValue:  template.DefaultValue,
		DefaultValue:    template.DefaultValue,
		TemplateActive:  true,
		TemplateVersion: template.Version,
	}, nil
}

// GetRuleValuePath extrai um trecho do valor efetivo usando a sintaxe de caminho do gjson
func (s *BusinessService) GetRuleValuePath(ctx context.Context, businessID, key, path string) (json.RawMessage, error) {
	rule, err := s.GetRuleValue(ctx, businessID, key)
	if err != nil {
		return nil, err
	}

	result := gjson.GetBytes(rule.EffectiveValue, path)
	if !result.Exists() {
		return nil, NewRuleErrorWithKey(ErrInvalidValue, apiErrors.ErrInvalidRuleValue, rule.Key, "Caminho não encontrado no valor da regra: "+path)
	}

	return json.RawMessage(result.Raw), nil
}

// SyncRuleVersions alinha as regras do negócio à versão atual dos templates.
// Valores personalizados que deixaram de ser válidos voltam ao padrão.
func (s *BusinessService) SyncRuleVersions(ctx context.Context, businessID string, updatedBy int) (*domain.SyncRuleVersionsResult, error) {
	rules, err := s.repo.ListBusinessRules(ctx, businessID)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar regras do negócio")
	}

	result := &domain.SyncRuleVersionsResult{Reset: []string{}}
	for _, r := range rules {
		if r.Template.Version <= r.Rule.TemplateVersion {
			continue
		}

		if !isNullJSON(r.Rule.CustomValue) && ValidateValue(r.Template, r.Rule.CustomValue) != nil {
			r.Rule.CustomValue = nil
			result.Reset = append(result.Reset, r.Template.Key)
		}
		r.Rule.TemplateVersion = r.Template.Version
		r.Rule.UpdatedBy = &updatedBy
		r.Rule.AppliedAt = s.now()

		if err := s.repo.UpdateBusinessRule(ctx, r.Rule); err != nil {
			return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao sincronizar regra "+r.Template.Key)
		}
		result.Updated++
	}

	if result.Updated > 0 {
		s.invalidate(ctx, businessID)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": businessID,
		"updated":     result.Updated,
		"reset":       len(result.Reset),
	}).Info("Versões de regras sincronizadas")

	return result, nil
}

func (s *BusinessService) getAssigned(ctx context.Context, businessID, templateID string) (*domain.BusinessRuleWithTemplate, error) {
	current, err := s.repo.GetBusinessRule(ctx, businessID, templateID)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar regra do negócio")
	}
	if current == nil {
		return nil, NewRuleError(ErrNotAssigned, apiErrors.ErrRuleNotAssigned, "Regra não atribuída ao negócio")
	}
	return current, nil
}

func (s *BusinessService) assignedByKey(ctx context.Context, businessID string) (map[string]*domain.BusinessRuleWithTemplate, error) {
	rules, err := s.repo.ListBusinessRules(ctx, businessID)
	if err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar regras do negócio")
	}

	byKey := make(map[string]*domain.BusinessRuleWithTemplate, len(rules))
	for _, r := range rules {
		byKey[r.Template.Key] = r
	}
	return byKey, nil
}

func (s *BusinessService) save(ctx context.Context, rule *domain.BusinessRule, template *domain.RuleTemplate, updatedBy int) (*domain.EffectiveRule, error) {
	rule.UpdatedBy = &updatedBy
	rule.AppliedAt = s.now()

	if err := s.repo.UpdateBusinessRule(ctx, rule); err != nil {
		return nil, NewRuleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar regra")
	}

	s.invalidate(ctx, rule.BusinessID)

	return toEffective(rule, template), nil
}

func (s *BusinessService) invalidate(ctx context.Context, businessID string) {
	if err := s.cache.Delete(ctx, cache.RulesKey(businessID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de regras")
	}
}

// checkActivation exige dependências atribuídas e ativas e nenhum conflito ativo nos dois sentidos
func checkActivation(template *domain.RuleTemplate, assigned map[string]*domain.BusinessRuleWithTemplate) error {
	for _, key := range template.RequiredRules {
		dep, ok := assigned[key]
		if !ok || !isActive(dep) {
			return NewRuleErrorWithKey(ErrDependency, apiErrors.ErrRuleDependency, template.Key, "A regra depende de "+key+" ativa")
		}
	}

	for _, key := range template.ConflictingRules {
		if other, ok := assigned[key]; ok && isActive(other) {
			return NewRuleErrorWithKey(ErrConflict, apiErrors.ErrRuleConflict, template.Key, "A regra conflita com "+key)
		}
	}

	for key, other := range assigned {
		if key == template.Key || !isActive(other) {
			continue
		}
		if contains(other.Template.ConflictingRules, template.Key) {
			return NewRuleErrorWithKey(ErrConflict, apiErrors.ErrRuleConflict, template.Key, "A regra "+key+" conflita com esta regra")
		}
	}

	return nil
}

// checkDependents impede desligar uma regra da qual outra regra ativa depende
func checkDependents(template *domain.RuleTemplate, assigned map[string]*domain.BusinessRuleWithTemplate) error {
	for key, other := range assigned {
		if key == template.Key || !isActive(other) {
			continue
		}
		if contains(other.Template.RequiredRules, template.Key) {
			return NewRuleErrorWithKey(ErrDependency, apiErrors.ErrRuleDependency, template.Key, "A regra "+key+" depende desta regra")
		}
	}
	return nil
}

func isActive(r *domain.BusinessRuleWithTemplate) bool {
	return r.Rule.IsActive && r.Template.IsActive
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func toEffective(rule *domain.BusinessRule, template *domain.RuleTemplate) *domain.EffectiveRule {
	customized := !isNullJSON(rule.CustomValue)

	effective := template.DefaultValue
	var custom json.RawMessage
	if customized {
		effective = rule.CustomValue
		custom = rule.CustomValue
	}

	return &domain.EffectiveRule{
		RuleID:          rule.ID,
		TemplateID:      template.ID,
		Key:             template.Key,
		Name:            template.Name,
		Category:        template.Category,
		ValueType:       template.ValueType,
		EffectiveValue:  effective,
		DefaultValue:    template.DefaultValue,
		CustomValue:     custom,
		IsActive:        rule.IsActive && template.IsActive,
		TemplateActive:  template.IsActive,
		IsCustomized:    customized,
		Outdated:        template.Version > rule.TemplateVersion,
		TemplateVersion: template.Version,
		RuleVersion:     rule.TemplateVersion,
	}
}
