package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/commission"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type CommissionPreviewRequest struct {
	SpecialistID string  `json:"specialist_id"`
	ServiceID    *string `json:"service_id"`
	BaseAmount   float64 `json:"base_amount"`
}

func ListSpecialists(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		onlyActive := false
		if active := utils.QueryBool(r, "active"); active != nil {
			onlyActive = *active
		}

		specialists, err := service.ListSpecialists(r.Context(), businessID, onlyActive)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar especialistas")
			return
		}

		writeJSON(w, http.StatusOK, specialists)
	}
}

func GetSpecialist(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		specialist, err := service.GetSpecialist(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar especialista")
			return
		}

		writeJSON(w, http.StatusOK, specialist)
	}
}

func CreateSpecialist(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var specialist domain.SpecialistProfile
		if !decodeBody(w, r, &specialist) {
			return
		}
		specialist.BusinessID = businessID

		created, err := service.CreateSpecialist(r.Context(), &specialist)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cadastrar especialista")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateSpecialist(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.UpdateSpecialistRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")
		req.BusinessID = businessID

		specialist, err := service.UpdateSpecialist(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar especialista")
			return
		}

		writeJSON(w, http.StatusOK, specialist)
	}
}

// PreviewCommission calcula a comissão sem gravar, para exibir no PDV
func PreviewCommission(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req CommissionPreviewRequest
		if !decodeBody(w, r, &req) {
			return
		}

		detail, err := service.CalculateCommission(r.Context(), &domain.CommissionInput{
			BusinessID:   businessID,
			SpecialistID: req.SpecialistID,
			Source:       domain.CommissionSourceSale,
			ServiceID:    req.ServiceID,
			BaseAmount:   req.BaseAmount,
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular comissão")
			return
		}

		writeJSON(w, http.StatusOK, detail)
	}
}

// GetCommissionSummary mostra os totais pendentes, solicitados e pagos de um especialista
func GetCommissionSummary(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		start, end, ok := dateRange(w, r)
		if !ok {
			return
		}

		summary, err := service.GetSummary(r.Context(), businessID, pathParam(r, "id"), start, end)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar resumo de comissões")
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func ListCommissionDetails(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		start, end, ok := dateRange(w, r)
		if !ok {
			return
		}

		filters := domain.CommissionFilters{
			SpecialistID: utils.QueryString(r, "specialist_id"),
			StartDate:    start,
			EndDate:      end,
		}
		if status := utils.QueryString(r, "status"); status != nil {
			parsed := domain.CommissionStatus(*status)
			filters.Status = &parsed
		}

		details, err := service.ListDetails(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar comissões")
			return
		}

		writeJSON(w, http.StatusOK, details)
	}
}

func CreateCommissionPaymentRequest(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateCommissionPaymentRequest")

		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.CreatePaymentRequestRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID

		request, err := service.CreatePaymentRequest(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao solicitar pagamento de comissões")
			return
		}

		writeJSON(w, http.StatusCreated, request)
	}
}

func ListCommissionPaymentRequests(service commission.CommissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var status *domain.PaymentRequestStatus
		if s := utils.QueryString(r, "status"); s != nil {
			parsed := domain.PaymentRequestStatus(*s)
			status = &parsed
		}

		requests, err := service.ListPaymentRequests(r.Context(), businessID, utils.QueryString(r, "specialist_id"), status)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar solicitações de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, requests)
	}
}

type reviewFunc func(r *http.Request, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error)

// reviewPaymentRequest trata aprovação, rejeição e pagamento, que recebem o mesmo corpo
func reviewPaymentRequest(review reviewFunc, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.ReviewPaymentRequestRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.RequestID = pathParam(r, "id")
		req.ReviewerID = claims.UserID

		request, err := review(r, &req)
		if err != nil {
			writeServiceError(w, r, err, message)
			return
		}

		writeJSON(w, http.StatusOK, request)
	}
}

func ApproveCommissionPaymentRequest(service commission.CommissionService) http.HandlerFunc {
	return reviewPaymentRequest(func(r *http.Request, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
		return service.ApprovePaymentRequest(r.Context(), req)
	}, "Erro ao aprovar solicitação de pagamento")
}

func RejectCommissionPaymentRequest(service commission.CommissionService) http.HandlerFunc {
	return reviewPaymentRequest(func(r *http.Request, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
		return service.RejectPaymentRequest(r.Context(), req)
	}, "Erro ao rejeitar solicitação de pagamento")
}

func PayCommissionPaymentRequest(service commission.CommissionService) http.HandlerFunc {
	return reviewPaymentRequest(func(r *http.Request, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
		return service.MarkPaymentRequestPaid(r.Context(), req)
	}, "Erro ao registrar pagamento de comissões")
}
