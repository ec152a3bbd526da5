package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// TokenValidator é satisfeito pelo serviço de autenticação
type TokenValidator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
}

var publicPaths = map[string]bool{
	"/v1/login":    true,
	"/v1/register": true,
	"/healthcheck": true,
	"/metrics":     true,
}

func isPublic(r *http.Request) bool {
	return r.Method == http.MethodOptions || publicPaths[r.URL.Path]
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Token inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			ctx = log.WithUser(ctx, claims.UserID, claims.UserBusinessID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext retorna as claims do usuário autenticado
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

// WithClaims injeta claims no contexto; usado por testes de handlers
func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, ContextKeyUser, claims)
}
