package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/selling"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CreateSale registra uma venda no PDV do negócio
func CreateSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateSale")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.CreateSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.UserID = claims.UserID

		sale, err := service.CreateSale(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar venda")
			return
		}

		writeJSON(w, http.StatusCreated, sale)
	}
}

func CancelSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CancelSale")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.CancelSaleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.SaleID = pathParam(r, "id")
		req.BusinessID = businessID
		req.UserID = claims.UserID

		sale, err := service.CancelSale(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cancelar venda")
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

func GetSale(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		sale, err := service.GetSale(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar venda")
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

func saleFilters(w http.ResponseWriter, r *http.Request) (domain.SaleFilters, bool) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return domain.SaleFilters{}, false
	}

	filters := domain.SaleFilters{
		StartDate:       start,
		EndDate:         end,
		SpecialistID:    utils.QueryString(r, "specialist_id"),
		PaymentMethodID: utils.QueryString(r, "payment_method_id"),
		ShiftID:         utils.QueryString(r, "shift_id"),
		Pagination:      pagination(r),
	}

	if status := utils.QueryString(r, "status"); status != nil {
		parsed := domain.SaleStatus(*status)
		filters.Status = &parsed
	}

	if userID := utils.QueryInt(r, "user_id", 0); userID > 0 {
		filters.UserID = &userID
	}

	return filters, true
}

func ListSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters, ok := saleFilters(w, r)
		if !ok {
			return
		}

		page, err := service.ListSales(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar vendas")
			return
		}

		writeJSON(w, http.StatusOK, page)
	}
}

func GetSalesSummary(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters, ok := saleFilters(w, r)
		if !ok {
			return
		}

		summary, err := service.GetSalesSummary(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar resumo de vendas")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// ExportSales devolve a planilha xlsx das vendas filtradas
func ExportSales(service selling.SaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters, ok := saleFilters(w, r)
		if !ok {
			return
		}

		content, err := service.ExportSales(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar vendas")
			return
		}

		filename := fmt.Sprintf("vendas-%s.xlsx", time.Now().Format("20060102-150405"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha")
		}
	}
}
