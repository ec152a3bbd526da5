package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/diana0617/beauty-control-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Banco indisponível no healthcheck")
				status["status"] = "degraded"
				status["database"] = "unreachable"
				writeJSON(w, http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		}

		writeJSON(w, http.StatusOK, status)
	})
}
