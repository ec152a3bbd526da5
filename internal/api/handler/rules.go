package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/rules"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

// Templates de regra (OWNER)

func ListRuleTemplates(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := domain.RuleTemplateFilters{
			IsActive: utils.QueryBool(r, "is_active"),
			Search:   utils.QueryString(r, "search"),
		}
		if category := utils.QueryString(r, "category"); category != nil {
			parsed := domain.RuleCategory(*category)
			filters.Category = &parsed
		}

		templates, err := service.ListTemplates(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar templates de regra")
			return
		}

		writeJSON(w, http.StatusOK, templates)
	}
}

func GetRuleTemplate(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		template, err := service.GetTemplate(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar template de regra")
			return
		}

		writeJSON(w, http.StatusOK, template)
	}
}

func GetRuleTemplateUsage(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := service.GetTemplateUsage(r.Context(), pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar uso do template")
			return
		}

		writeJSON(w, http.StatusOK, usage)
	}
}

func CreateRuleTemplate(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateRuleTemplate")

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req domain.CreateRuleTemplateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.CreatedBy = claims.UserID

		template, err := service.CreateTemplate(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar template de regra")
			return
		}

		writeJSON(w, http.StatusCreated, template)
	}
}

func UpdateRuleTemplate(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateRuleTemplateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		template, err := service.UpdateTemplate(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar template de regra")
			return
		}

		writeJSON(w, http.StatusOK, template)
	}
}

// DeleteRuleTemplate aceita ?force=true para desativar um template em uso
func DeleteRuleTemplate(service rules.RuleTemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		force := false
		if f := utils.QueryBool(r, "force"); f != nil {
			force = *f
		}

		deactivated, err := service.DeleteTemplate(r.Context(), pathParam(r, "id"), force)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao excluir template de regra")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{
			"deleted":     !deactivated,
			"deactivated": deactivated,
		})
	}
}

// Regras do negócio

func ListAvailableRuleTemplates(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		templates, err := service.ListAvailableTemplates(r.Context(), businessID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar templates disponíveis")
			return
		}

		writeJSON(w, http.StatusOK, templates)
	}
}

func GetBusinessRules(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		effective, err := service.GetBusinessRules(r.Context(), businessID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar regras do negócio")
			return
		}

		writeJSON(w, http.StatusOK, effective)
	}
}

// GetRuleValue aceita ?path= (sintaxe gjson) para ler um trecho de regras JSON
func GetRuleValue(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		key := pathParam(r, "key")

		if path := utils.QueryString(r, "path"); path != nil {
			value, err := service.GetRuleValuePath(r.Context(), businessID, key, *path)
			if err != nil {
				writeServiceError(w, r, err, "Erro ao buscar valor da regra")
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"key":   key,
				"path":  *path,
				"value": value,
			})
			return
		}

		rule, err := service.GetRuleValue(r.Context(), businessID, key)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar valor da regra")
			return
		}

		writeJSON(w, http.StatusOK, rule)
	}
}

func AssignRule(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - AssignRule")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.AssignRuleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.TemplateID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "template_id é obrigatório", nil)
			return
		}
		req.BusinessID = businessID
		req.UpdatedBy = claims.UserID

		rule, err := service.AssignTemplate(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atribuir regra")
			return
		}

		writeJSON(w, http.StatusCreated, rule)
	}
}

func CustomizeRule(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.AssignRuleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.TemplateID = pathParam(r, "template_id")
		req.BusinessID = businessID
		req.UpdatedBy = claims.UserID

		rule, err := service.CustomizeRule(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao personalizar regra")
			return
		}

		writeJSON(w, http.StatusOK, rule)
	}
}

func ResetRule(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		rule, err := service.ResetRule(r.Context(), businessID, pathParam(r, "template_id"), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao restaurar regra")
			return
		}

		writeJSON(w, http.StatusOK, rule)
	}
}

func ToggleRule(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		rule, err := service.ToggleRule(r.Context(), businessID, pathParam(r, "template_id"), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao alterar status da regra")
			return
		}

		writeJSON(w, http.StatusOK, rule)
	}
}

func RemoveRule(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		if err := service.RemoveRule(r.Context(), businessID, pathParam(r, "template_id")); err != nil {
			writeServiceError(w, r, err, "Erro ao remover regra")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SyncRuleVersions(service rules.BusinessRulesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		result, err := service.SyncRuleVersions(r.Context(), businessID, claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao sincronizar versões das regras")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
