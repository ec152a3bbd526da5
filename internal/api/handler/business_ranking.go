package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/usecases/ranking"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

// GetBusinessRanking retorna o ranking de receita dos negócios; ?month=mm-yyyy, padrão mês corrente
func GetBusinessRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := ""
		if m := utils.QueryString(r, "month"); m != nil {
			month = *m
		}

		result, err := service.GetRanking(r.Context(), month)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar ranking dos negócios")
			return
		}

		if len(result) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrBusinessNotFound, "Nenhum ranking encontrado", nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
