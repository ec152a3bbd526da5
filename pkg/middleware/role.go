package middleware

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos roles
// allowedRoles é um array de IDs de roles que têm permissão para acessar a rota
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				log.ForContext(r.Context()).Warnf("Acesso negado para usuário ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOnly libera apenas o dono da plataforma
func OwnerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleOwner})
}

// BusinessAdmin libera o dono da plataforma e o administrador do negócio
func BusinessAdmin() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{domain.RoleOwner, domain.RoleBusiness})
}

// Staff libera quem trabalha no negócio
func Staff() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{
		domain.RoleOwner,
		domain.RoleBusiness,
		domain.RoleSpecialist,
		domain.RoleReceptionist,
		domain.RoleReceptionistSpecialist,
	})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{
		domain.RoleOwner,
		domain.RoleBusiness,
		domain.RoleSpecialist,
		domain.RoleReceptionist,
		domain.RoleReceptionistSpecialist,
		domain.RoleClient,
	})
}
