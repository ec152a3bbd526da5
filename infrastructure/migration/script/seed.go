package main

import (
	"context"
	_ "embed"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

//go:embed seeds.yaml
var defaultSeeds []byte

type seedPermission struct {
	Key         string  `yaml:"key"`
	Module      string  `yaml:"module"`
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
}

type seedTemplate struct {
	Key                string               `yaml:"key"`
	Name               string               `yaml:"name"`
	Description        *string              `yaml:"description"`
	Category           domain.RuleCategory  `yaml:"category"`
	ValueType          domain.RuleValueType `yaml:"value_type"`
	DefaultValue       any                  `yaml:"default_value"`
	AllowCustomization bool                 `yaml:"allow_customization"`
	MinValue           *float64             `yaml:"min_value"`
	MaxValue           *float64             `yaml:"max_value"`
	AllowedValues      []string             `yaml:"allowed_values"`
}

type seedFile struct {
	Permissions   []seedPermission `yaml:"permissions"`
	RoleDefaults  map[int][]string `yaml:"role_defaults"`
	RuleTemplates []seedTemplate   `yaml:"rule_templates"`
}

type seedResult struct {
	Permissions      int
	Roles            int
	TemplatesCreated int
	TemplatesSkipped int
}

func loadSeed(data []byte) (*seedFile, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "erro ao ler arquivo de seed")
	}

	known := make(map[string]bool, len(seed.Permissions))
	for _, p := range seed.Permissions {
		if p.Key == "" || p.Module == "" {
			return nil, errors.Errorf("permissão sem chave ou módulo: %+v", p)
		}
		known[p.Key] = true
	}

	for roleID, keys := range seed.RoleDefaults {
		if !domain.IsValidRole(roleID) || roleID == domain.RoleOwner {
			return nil, errors.Errorf("papel %d não aceita permissões padrão", roleID)
		}
		for _, key := range keys {
			if !known[key] {
				return nil, errors.Errorf("papel %d referencia permissão desconhecida %q", roleID, key)
			}
		}
	}

	for _, t := range seed.RuleTemplates {
		if t.Key == "" || !t.ValueType.IsValid() {
			return nil, errors.Errorf("template de regra inválido: %q", t.Key)
		}
	}

	return &seed, nil
}

// applySeed grava o catálogo de permissões, os padrões por papel e os
// templates de regra que ainda não existem
func applySeed(ctx context.Context, permissions repository.PermissionRepository, rules repository.RuleRepository, seed *seedFile) (*seedResult, error) {
	result := &seedResult{}

	catalog := make([]*domain.Permission, 0, len(seed.Permissions))
	for _, p := range seed.Permissions {
		catalog = append(catalog, &domain.Permission{
			Key:         p.Key,
			Module:      p.Module,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	if len(catalog) > 0 {
		if err := permissions.SavePermissions(ctx, catalog); err != nil {
			return nil, errors.Wrap(err, "erro ao gravar permissões")
		}
	}
	result.Permissions = len(catalog)

	for roleID, keys := range seed.RoleDefaults {
		if err := permissions.ReplaceRoleDefaults(ctx, roleID, keys); err != nil {
			return nil, errors.Wrapf(err, "erro ao gravar permissões do papel %s", domain.RoleName(roleID))
		}
		result.Roles++
	}

	for _, t := range seed.RuleTemplates {
		existing, err := rules.GetTemplateByKey(ctx, t.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao buscar template %s", t.Key)
		}
		if existing != nil {
			logrus.WithField("key", t.Key).Debug("Template já existe, mantendo versão atual")
			result.TemplatesSkipped++
			continue
		}

		defaultValue, err := jsoniter.Marshal(t.DefaultValue)
		if err != nil {
			return nil, errors.Wrapf(err, "valor padrão inválido para %s", t.Key)
		}

		template := &domain.RuleTemplate{
			ID:                 utils.NewUUID(),
			Key:                t.Key,
			Name:               t.Name,
			Description:        t.Description,
			Category:           t.Category,
			ValueType:          t.ValueType,
			DefaultValue:       defaultValue,
			AllowCustomization: t.AllowCustomization,
			MinValue:           t.MinValue,
			MaxValue:           t.MaxValue,
			AllowedValues:      t.AllowedValues,
			Version:            1,
			IsActive:           true,
		}
		if err := rules.CreateTemplate(ctx, template); err != nil {
			return nil, errors.Wrapf(err, "erro ao criar template %s", t.Key)
		}
		result.TemplatesCreated++
	}

	return result, nil
}
