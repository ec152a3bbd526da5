package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/treatment"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type CompleteSessionRequest struct {
	Notes *string `json:"notes"`
}

func CreateTreatmentPlan(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateTreatmentPlan")

		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.CreateTreatmentPlanRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.CreatedBy = claims.UserID

		plan, err := service.CreatePlan(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar plano de tratamento")
			return
		}

		writeJSON(w, http.StatusCreated, plan)
	}
}

func GetTreatmentPlan(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		plan, err := service.GetPlan(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar plano de tratamento")
			return
		}

		writeJSON(w, http.StatusOK, plan)
	}
}

func ListTreatmentPlans(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		filters := domain.TreatmentPlanFilters{
			SpecialistID: utils.QueryString(r, "specialist_id"),
		}
		if clientID := utils.QueryInt(r, "client_id", 0); clientID > 0 {
			filters.ClientID = &clientID
		}
		if status := utils.QueryString(r, "status"); status != nil {
			parsed := domain.TreatmentPlanStatus(*status)
			filters.Status = &parsed
		}

		plans, err := service.ListPlans(r.Context(), businessID, filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar planos de tratamento")
			return
		}

		writeJSON(w, http.StatusOK, plans)
	}
}

func ScheduleTreatmentSession(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.ScheduleSessionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.SessionID = pathParam(r, "id")

		session, err := service.ScheduleSession(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao agendar sessão")
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

func CompleteTreatmentSession(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		// corpo opcional
		var req CompleteSessionRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}

		plan, err := service.CompleteSession(r.Context(), businessID, pathParam(r, "id"), req.Notes)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao concluir sessão")
			return
		}

		writeJSON(w, http.StatusOK, plan)
	}
}

// sessionAction cobre as transições de sessão que não recebem corpo
func sessionAction(action func(r *http.Request, businessID, id string) (*domain.TreatmentSession, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		session, err := action(r, businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, message)
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}

func MarkTreatmentSessionMissed(service treatment.TreatmentService) http.HandlerFunc {
	return sessionAction(func(r *http.Request, businessID, id string) (*domain.TreatmentSession, error) {
		return service.MarkMissed(r.Context(), businessID, id)
	}, "Erro ao marcar falta na sessão")
}

func CancelTreatmentSession(service treatment.TreatmentService) http.HandlerFunc {
	return sessionAction(func(r *http.Request, businessID, id string) (*domain.TreatmentSession, error) {
		return service.CancelSession(r.Context(), businessID, id)
	}, "Erro ao cancelar sessão")
}

func RegisterTreatmentPayment(service treatment.TreatmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RegisterTreatmentPayment")

		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.RegisterTreatmentPaymentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.PlanID = pathParam(r, "id")

		plan, err := service.RegisterPayment(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar pagamento do tratamento")
			return
		}

		writeJSON(w, http.StatusOK, plan)
	}
}

func planAction(action func(r *http.Request, businessID, id string) (*domain.TreatmentPlan, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		plan, err := action(r, businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, message)
			return
		}

		writeJSON(w, http.StatusOK, plan)
	}
}

func PauseTreatmentPlan(service treatment.TreatmentService) http.HandlerFunc {
	return planAction(func(r *http.Request, businessID, id string) (*domain.TreatmentPlan, error) {
		return service.PausePlan(r.Context(), businessID, id)
	}, "Erro ao pausar plano de tratamento")
}

func ResumeTreatmentPlan(service treatment.TreatmentService) http.HandlerFunc {
	return planAction(func(r *http.Request, businessID, id string) (*domain.TreatmentPlan, error) {
		return service.ResumePlan(r.Context(), businessID, id)
	}, "Erro ao retomar plano de tratamento")
}

func CancelTreatmentPlan(service treatment.TreatmentService) http.HandlerFunc {
	return planAction(func(r *http.Request, businessID, id string) (*domain.TreatmentPlan, error) {
		return service.CancelPlan(r.Context(), businessID, id)
	}, "Erro ao cancelar plano de tratamento")
}
