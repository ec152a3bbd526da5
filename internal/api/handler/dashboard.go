package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/usecases/dashboard"
)

// GetOwnerDashboard retorna as métricas consolidadas da plataforma
func GetOwnerDashboard(service dashboard.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := service.GetOwnerDashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar métricas da plataforma")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func GetBusinessDashboard(service dashboard.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		metrics, err := service.GetBusinessDashboard(r.Context(), businessID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar métricas do negócio")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	}
}

func GetDashboardCacheStats(service dashboard.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.CacheStats())
	}
}
