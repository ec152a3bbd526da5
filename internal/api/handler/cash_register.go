package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/cashregister"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

func OpenShift(service cashregister.CashRegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - OpenShift")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.OpenShiftRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.UserID = claims.UserID

		shift, err := service.OpenShift(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao abrir turno de caixa")
			return
		}

		writeJSON(w, http.StatusCreated, shift)
	}
}

// GetActiveShift retorna o turno aberto do usuário logado; sem turno responde null
func GetActiveShift(service cashregister.CashRegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		shift, err := service.GetActiveShift(r.Context(), businessID, claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar turno ativo")
			return
		}

		writeJSON(w, http.StatusOK, shift)
	}
}

func GetShiftSummary(service cashregister.CashRegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		summary, err := service.GetShiftSummary(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar resumo do turno")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func CloseShift(service cashregister.CashRegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CloseShift")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.CloseShiftRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.UserID = claims.UserID
		req.ShiftID = pathParam(r, "id")

		summary, err := service.CloseShift(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao fechar turno de caixa")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func ListShifts(service cashregister.CashRegisterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		start, end, ok := dateRange(w, r)
		if !ok {
			return
		}

		filters := domain.ShiftFilters{
			StartDate:  start,
			EndDate:    end,
			Pagination: pagination(r),
		}
		if userID := utils.QueryInt(r, "user_id", 0); userID > 0 {
			filters.UserID = &userID
		}
		if status := utils.QueryString(r, "status"); status != nil {
			parsed := domain.ShiftStatus(*status)
			filters.Status = &parsed
		}

		page, err := service.ListShifts(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar turnos de caixa")
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}
