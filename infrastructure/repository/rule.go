package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/lib/pq"
)

const (
	ruleTemplatesTable = "rule_templates"
	businessRulesTable = "business_rules"
)

var templateColumns = []string{
	"t.id", "t.key", "t.name", "t.description", "t.category", "t.value_type", "t.default_value",
	"t.allow_customization", "t.min_value", "t.max_value", "t.allowed_values", "t.required_rules",
	"t.conflicting_rules", "t.version", "t.is_active", "t.created_by", "t.created_at", "t.updated_at",
}

var businessRuleColumns = []string{
	"br.id", "br.business_id", "br.template_id", "br.custom_value", "br.is_active", "br.template_version",
	"br.notes", "br.updated_by", "br.applied_at", "br.created_at", "br.updated_at",
}

type RuleRepository interface {
	CreateTemplate(ctx context.Context, template *domain.RuleTemplate) error
	GetTemplate(ctx context.Context, id string) (*domain.RuleTemplate, error)
	GetTemplateByKey(ctx context.Context, key string) (*domain.RuleTemplate, error)
	ListTemplates(ctx context.Context, filters domain.RuleTemplateFilters) ([]*domain.RuleTemplate, error)
	UpdateTemplate(ctx context.Context, template *domain.RuleTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	TemplateUsage(ctx context.Context, templateID string) (*domain.RuleTemplateUsage, error)
	ListBusinessRules(ctx context.Context, businessID string) ([]*domain.BusinessRuleWithTemplate, error)
	GetBusinessRule(ctx context.Context, businessID, templateID string) (*domain.BusinessRuleWithTemplate, error)
	ListRulesByTemplate(ctx context.Context, templateID string) ([]*domain.BusinessRule, error)
	CreateBusinessRule(ctx context.Context, rule *domain.BusinessRule) error
	UpdateBusinessRule(ctx context.Context, rule *domain.BusinessRule) error
	DeleteBusinessRule(ctx context.Context, businessID, templateID string) error
}

type ruleRepository struct {
	conn postgres.Conn
}

func NewRuleRepository(conn postgres.Conn) RuleRepository {
	return &ruleRepository{conn: conn}
}

func (r *ruleRepository) CreateTemplate(ctx context.Context, t *domain.RuleTemplate) error {
	query, args, err := psql.
		Insert(ruleTemplatesTable).
		Columns("id", "key", "name", "description", "category", "value_type", "default_value",
			"allow_customization", "min_value", "max_value", "allowed_values", "required_rules",
			"conflicting_rules", "version", "is_active", "created_by").
		Values(t.ID, t.Key, t.Name, t.Description, t.Category, t.ValueType, string(t.DefaultValue),
			t.AllowCustomization, t.MinValue, t.MaxValue, pq.Array(nonNil(t.AllowedValues)), pq.Array(nonNil(t.RequiredRules)),
			pq.Array(nonNil(t.ConflictingRules)), t.Version, t.IsActive, t.CreatedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de template: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *ruleRepository) GetTemplate(ctx context.Context, id string) (*domain.RuleTemplate, error) {
	return r.getTemplate(ctx, squirrel.Eq{"t.id": id})
}

func (r *ruleRepository) GetTemplateByKey(ctx context.Context, key string) (*domain.RuleTemplate, error) {
	return r.getTemplate(ctx, squirrel.Eq{"t.key": key})
}

func (r *ruleRepository) getTemplate(ctx context.Context, where squirrel.Eq) (*domain.RuleTemplate, error) {
	query, args, err := psql.
		Select(templateColumns...).
		From(ruleTemplatesTable + " t").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	template, err := scanTemplate(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar template de regra: %w", err)
	}

	return template, nil
}

func (r *ruleRepository) ListTemplates(ctx context.Context, filters domain.RuleTemplateFilters) ([]*domain.RuleTemplate, error) {
	queryBuilder := psql.
		Select(templateColumns...).
		From(ruleTemplatesTable + " t").
		OrderBy("t.category ASC", "t.name ASC")

	if filters.Category != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"t.category": *filters.Category})
	}
	if filters.IsActive != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"t.is_active": *filters.IsActive})
	}
	if filters.Search != nil && *filters.Search != "" {
		like := "%" + *filters.Search + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"t.name": like},
			squirrel.ILike{"t.key": like},
		})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*domain.RuleTemplate, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

func (r *ruleRepository) UpdateTemplate(ctx context.Context, t *domain.RuleTemplate) error {
	query, args, err := psql.
		Update(ruleTemplatesTable).
		SetMap(map[string]interface{}{
			"name":                t.Name,
			"description":         t.Description,
			"category":            t.Category,
			"value_type":          t.ValueType,
			"default_value":       string(t.DefaultValue),
			"allow_customization": t.AllowCustomization,
			"min_value":           t.MinValue,
			"max_value":           t.MaxValue,
			"allowed_values":      pq.Array(nonNil(t.AllowedValues)),
			"required_rules":      pq.Array(nonNil(t.RequiredRules)),
			"conflicting_rules":   pq.Array(nonNil(t.ConflictingRules)),
			"version":             t.Version,
			"is_active":           t.IsActive,
			"updated_at":          squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *ruleRepository) DeleteTemplate(ctx context.Context, id string) error {
	_, err := r.conn.ExecContext(ctx, "DELETE FROM rule_templates WHERE id = $1", id)
	return err
}

func (r *ruleRepository) TemplateUsage(ctx context.Context, templateID string) (*domain.RuleTemplateUsage, error) {
	usage := &domain.RuleTemplateUsage{TemplateID: templateID}
	err := r.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(br.id),
			COUNT(br.id) FILTER (WHERE br.is_active),
			COUNT(br.id) FILTER (WHERE br.custom_value IS NOT NULL),
			COUNT(br.id) FILTER (WHERE br.template_version < t.version),
			t.version
		FROM rule_templates t
		LEFT JOIN business_rules br ON br.template_id = t.id
		WHERE t.id = $1
		GROUP BY t.version`,
		templateID,
	).Scan(
		&usage.TotalBusinesses,
		&usage.ActiveRules,
		&usage.CustomizedRules,
		&usage.OutdatedRules,
		&usage.CurrentVersion,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar uso do template: %w", err)
	}

	return usage, nil
}

func (r *ruleRepository) ListBusinessRules(ctx context.Context, businessID string) ([]*domain.BusinessRuleWithTemplate, error) {
	query, args, err := businessRuleSelect().
		Where(squirrel.Eq{"br.business_id": businessID}).
		OrderBy("t.category ASC", "t.name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar regras do negócio: %w", err)
	}
	defer rows.Close()

	rules := make([]*domain.BusinessRuleWithTemplate, 0)
	for rows.Next() {
		rule, err := scanBusinessRuleWithTemplate(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *ruleRepository) GetBusinessRule(ctx context.Context, businessID, templateID string) (*domain.BusinessRuleWithTemplate, error) {
	query, args, err := businessRuleSelect().
		Where(squirrel.Eq{"br.business_id": businessID, "br.template_id": templateID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rule, err := scanBusinessRuleWithTemplate(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar regra do negócio: %w", err)
	}

	return rule, nil
}

func businessRuleSelect() squirrel.SelectBuilder {
	columns := append(append([]string{}, businessRuleColumns...), templateColumns...)
	return psql.
		Select(columns...).
		From(businessRulesTable + " br").
		Join(ruleTemplatesTable + " t ON t.id = br.template_id")
}

func (r *ruleRepository) ListRulesByTemplate(ctx context.Context, templateID string) ([]*domain.BusinessRule, error) {
	query, args, err := psql.
		Select(businessRuleColumns...).
		From(businessRulesTable + " br").
		Where(squirrel.Eq{"br.template_id": templateID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar regras do template: %w", err)
	}
	defer rows.Close()

	rules := make([]*domain.BusinessRule, 0)
	for rows.Next() {
		rule, err := scanBusinessRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (r *ruleRepository) CreateBusinessRule(ctx context.Context, rule *domain.BusinessRule) error {
	query, args, err := psql.
		Insert(businessRulesTable).
		Columns("id", "business_id", "template_id", "custom_value", "is_active", "template_version", "notes", "updated_by", "applied_at").
		Values(rule.ID, rule.BusinessID, rule.TemplateID, nullJSON(rule.CustomValue), rule.IsActive,
			rule.TemplateVersion, rule.Notes, rule.UpdatedBy, rule.AppliedAt).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *ruleRepository) UpdateBusinessRule(ctx context.Context, rule *domain.BusinessRule) error {
	query, args, err := psql.
		Update(businessRulesTable).
		Set("custom_value", nullJSON(rule.CustomValue)).
		Set("is_active", rule.IsActive).
		Set("template_version", rule.TemplateVersion).
		Set("notes", rule.Notes).
		Set("updated_by", rule.UpdatedBy).
		Set("applied_at", rule.AppliedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *ruleRepository) DeleteBusinessRule(ctx context.Context, businessID, templateID string) error {
	_, err := r.conn.ExecContext(ctx,
		"DELETE FROM business_rules WHERE business_id = $1 AND template_id = $2",
		businessID, templateID,
	)
	return err
}

func scanTemplateInto(t *domain.RuleTemplate, defaultValue *[]byte) []interface{} {
	return []interface{}{
		&t.ID,
		&t.Key,
		&t.Name,
		&t.Description,
		&t.Category,
		&t.ValueType,
		defaultValue,
		&t.AllowCustomization,
		&t.MinValue,
		&t.MaxValue,
		pq.Array(&t.AllowedValues),
		pq.Array(&t.RequiredRules),
		pq.Array(&t.ConflictingRules),
		&t.Version,
		&t.IsActive,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanBusinessRuleInto(rule *domain.BusinessRule, customValue *[]byte) []interface{} {
	return []interface{}{
		&rule.ID,
		&rule.BusinessID,
		&rule.TemplateID,
		customValue,
		&rule.IsActive,
		&rule.TemplateVersion,
		&rule.Notes,
		&rule.UpdatedBy,
		&rule.AppliedAt,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	}
}

func scanTemplate(row scanner) (*domain.RuleTemplate, error) {
	var (
		t            domain.RuleTemplate
		defaultValue []byte
	)
	if err := row.Scan(scanTemplateInto(&t, &defaultValue)...); err != nil {
		return nil, err
	}
	t.DefaultValue = copyBytes(defaultValue)
	return &t, nil
}

func scanBusinessRule(row scanner) (*domain.BusinessRule, error) {
	var (
		rule        domain.BusinessRule
		customValue []byte
	)
	if err := row.Scan(scanBusinessRuleInto(&rule, &customValue)...); err != nil {
		return nil, err
	}
	rule.CustomValue = copyBytes(customValue)
	return &rule, nil
}

func scanBusinessRuleWithTemplate(row scanner) (*domain.BusinessRuleWithTemplate, error) {
	var (
		rule         domain.BusinessRule
		template     domain.RuleTemplate
		customValue  []byte
		defaultValue []byte
	)

	dest := append(scanBusinessRuleInto(&rule, &customValue), scanTemplateInto(&template, &defaultValue)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	rule.CustomValue = copyBytes(customValue)
	template.DefaultValue = copyBytes(defaultValue)

	return &domain.BusinessRuleWithTemplate{Rule: &rule, Template: &template}, nil
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
