package middleware

import (
	"context"
	"net/http"

	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

// PermissionChecker resolve as permissões efetivas de um usuário no negócio
type PermissionChecker interface {
	HasPermission(ctx context.Context, businessID string, userID, roleID int, key string) (bool, error)
}

// RequirePermission bloqueia a rota quando o usuário não possui a permissão informada
func RequirePermission(checker PermissionChecker, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			allowed, err := checker.HasPermission(r.Context(), claims.UserBusinessID, claims.UserID, claims.UserRoleID, key)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Error("Erro ao verificar permissão")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao verificar permissão", nil)
				return
			}

			if !allowed {
				log.ForContext(r.Context()).WithField("permission", key).Warn("Permissão negada")
				apiErrors.WriteError(w, apiErrors.ErrPermissionDenied, "Você não possui a permissão "+key, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
