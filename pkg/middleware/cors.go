package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Cors libera as origens configuradas do painel web e do app
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}
