package handler

import (
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/middleware"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return false
	}
	return true
}

// writeServiceError responde com o código carregado pelo erro do caso de uso
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	logger := log.ForContext(r.Context()).WithError(err)

	apiErr := apiErrors.FromError(err, apiErrors.ErrInternalServer)
	if apiErrors.StatusFor(apiErr.Code) >= http.StatusInternalServerError {
		logger.Error(fallbackMessage)
		apiErrors.WriteError(w, apiErr.Code, fallbackMessage, nil)
		return
	}

	logger.Warn(fallbackMessage)
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
}

func currentClaims(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

// businessScope resolve o negócio da requisição. Usuários de negócio ficam
// presos ao próprio tenant; o OWNER informa ?business_id=
func businessScope(w http.ResponseWriter, r *http.Request) (*domain.Claims, string, bool) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return nil, "", false
	}

	if claims.UserRoleID == domain.RoleOwner {
		businessID := r.URL.Query().Get("business_id")
		if businessID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro business_id é obrigatório", nil)
			return nil, "", false
		}
		return claims, businessID, true
	}

	if claims.UserBusinessID == "" {
		apiErrors.WriteError(w, apiErrors.ErrBusinessAccessDenied, "Usuário sem negócio vinculado", nil)
		return nil, "", false
	}

	return claims, claims.UserBusinessID, true
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func intPathParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(pathParam(r, name))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+name+" inválido", nil)
		return 0, false
	}
	return value, true
}

func pagination(r *http.Request) domain.Pagination {
	page := domain.Pagination{
		Page:     utils.QueryInt(r, "page", 1),
		PageSize: utils.QueryInt(r, "page_size", domain.DefaultPageSize),
	}
	page.Normalize()
	return page
}

// dateRange lê start_date e end_date (yyyy-mm-dd) da query string
func dateRange(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	start, err := utils.QueryDate(r, "start_date")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, use yyyy-mm-dd", nil)
		return nil, nil, false
	}

	end, err := utils.QueryDate(r, "end_date")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, use yyyy-mm-dd", nil)
		return nil, nil, false
	}

	if end != nil {
		endOfDay := utils.EndOfDay(*end)
		end = &endOfDay
	}

	return start, end, true
}
