package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/business"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type ChangeBusinessStatusRequest struct {
	Status domain.BusinessStatus `json:"status"`
}

// RegisterBusiness é público: cria o negócio em período de teste e o administrador
func RegisterBusiness(service business.BusinessService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RegisterBusiness")

		var req domain.RegisterBusinessRequest
		if !decodeBody(w, r, &req) {
			return
		}

		resp, err := service.RegisterBusiness(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cadastrar negócio")
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

func GetBusiness(service business.BusinessService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		result, err := service.GetBusiness(r.Context(), claims, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar negócio")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func UpdateBusiness(service business.BusinessService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req domain.UpdateBusinessRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")

		result, err := service.UpdateBusiness(r.Context(), claims, &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar negócio")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func ListBusinesses(service business.BusinessService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *domain.BusinessStatus
		if s := utils.QueryString(r, "status"); s != nil {
			parsed := domain.BusinessStatus(*s)
			status = &parsed
		}

		businesses, err := service.ListBusinesses(r.Context(), status)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar negócios")
			return
		}

		writeJSON(w, http.StatusOK, businesses)
	}
}

func ChangeBusinessStatus(service business.BusinessService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ChangeBusinessStatus")

		var req ChangeBusinessStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := service.ChangeStatus(r.Context(), pathParam(r, "id"), req.Status)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao alterar status do negócio")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
