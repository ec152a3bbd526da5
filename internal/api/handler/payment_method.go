package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/payment"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type ReorderPaymentMethodsRequest struct {
	IDs []string `json:"ids"`
}

func ListPaymentMethods(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		onlyActive := false
		if active := utils.QueryBool(r, "active"); active != nil {
			onlyActive = *active
		}

		methods, err := service.List(r.Context(), businessID, onlyActive)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar métodos de pagamento")
			return
		}

		// negócios importados sem meios de pagamento recebem o padrão no primeiro acesso
		if len(methods) == 0 && !onlyActive {
			if err := service.EnsureDefaults(r.Context(), businessID); err != nil {
				writeServiceError(w, r, err, "Erro ao criar métodos de pagamento padrão")
				return
			}
			if methods, err = service.List(r.Context(), businessID, false); err != nil {
				writeServiceError(w, r, err, "Erro ao listar métodos de pagamento")
				return
			}
		}

		writeJSON(w, http.StatusOK, methods)
	}
}

func GetPaymentMethod(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		method, err := service.Get(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar método de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, method)
	}
}

func CreatePaymentMethod(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var method domain.PaymentMethod
		if !decodeBody(w, r, &method) {
			return
		}
		method.BusinessID = businessID

		created, err := service.Create(r.Context(), &method)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar método de pagamento")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdatePaymentMethod(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req domain.UpdatePaymentMethodRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathParam(r, "id")
		req.BusinessID = businessID

		method, err := service.Update(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar método de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, method)
	}
}

func TogglePaymentMethod(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		method, err := service.Toggle(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao alterar status do método de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, method)
	}
}

// DeletePaymentMethod informa se o método foi apenas desativado por estar em uso
func DeletePaymentMethod(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		soft, err := service.Delete(r.Context(), businessID, pathParam(r, "id"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao excluir método de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{
			"deleted":     !soft,
			"deactivated": soft,
		})
	}
}

func ReorderPaymentMethods(service payment.PaymentMethodService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		var req ReorderPaymentMethodsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if len(req.IDs) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe a ordem dos métodos de pagamento", nil)
			return
		}

		methods, err := service.Reorder(r.Context(), businessID, req.IDs)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao reordenar métodos de pagamento")
			return
		}

		writeJSON(w, http.StatusOK, methods)
	}
}
