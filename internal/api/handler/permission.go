package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/permission"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

type RoleDefaultsRequest struct {
	Permissions []string `json:"permissions"`
}

func ListPermissions(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := service.ListPermissions(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar permissões")
			return
		}

		writeJSON(w, http.StatusOK, groups)
	}
}

func GetRoleDefaults(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roleID, ok := intPathParam(w, r, "role_id")
		if !ok {
			return
		}

		keys, err := service.GetRoleDefaults(r.Context(), roleID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar permissões do papel")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"role_id":     roleID,
			"permissions": keys,
		})
	}
}

func UpdateRoleDefaults(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateRoleDefaults")

		roleID, ok := intPathParam(w, r, "role_id")
		if !ok {
			return
		}

		var req RoleDefaultsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		keys, err := service.UpdateRoleDefaults(r.Context(), roleID, req.Permissions)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar permissões do papel")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"role_id":     roleID,
			"permissions": keys,
		})
	}
}

func GetUserPermissions(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		userID, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		perms, err := service.GetUserPermissions(r.Context(), businessID, userID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar permissões do usuário")
			return
		}

		writeJSON(w, http.StatusOK, perms)
	}
}

type permissionChange func(r *http.Request, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error)

func changeUserPermission(change permissionChange, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		userID, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		var req domain.PermissionChangeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.BusinessID = businessID
		req.UserID = userID
		req.ChangedBy = claims.UserID

		perms, err := change(r, &req)
		if err != nil {
			writeServiceError(w, r, err, message)
			return
		}

		writeJSON(w, http.StatusOK, perms)
	}
}

func GrantUserPermission(service permission.PermissionService) http.HandlerFunc {
	return changeUserPermission(func(r *http.Request, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error) {
		return service.GrantPermission(r.Context(), req)
	}, "Erro ao conceder permissão")
}

func RevokeUserPermission(service permission.PermissionService) http.HandlerFunc {
	return changeUserPermission(func(r *http.Request, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error) {
		return service.RevokePermission(r.Context(), req)
	}, "Erro ao revogar permissão")
}

func ResetUserPermissions(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, businessID, ok := businessScope(w, r)
		if !ok {
			return
		}

		userID, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		perms, err := service.ResetUserPermissions(r.Context(), businessID, userID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao restaurar permissões do usuário")
			return
		}

		writeJSON(w, http.StatusOK, perms)
	}
}

// GetMyPermissions devolve as permissões efetivas do usuário logado, usado pelo front para montar menus
func GetMyPermissions(service permission.PermissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		if claims.UserRoleID == domain.RoleOwner {
			ownerPermissions(w, r, service, claims)
			return
		}

		perms, err := service.GetUserPermissions(r.Context(), claims.UserBusinessID, claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar permissões")
			return
		}

		writeJSON(w, http.StatusOK, perms)
	}
}

// o OWNER não pertence a um negócio e tem todo o catálogo
func ownerPermissions(w http.ResponseWriter, r *http.Request, service permission.PermissionService, claims *domain.Claims) {
	groups, err := service.ListPermissions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Erro ao buscar permissões")
		return
	}

	keys := make([]string, 0)
	for _, group := range groups {
		for _, p := range group.Permissions {
			keys = append(keys, p.Key)
		}
	}

	writeJSON(w, http.StatusOK, &domain.UserPermissions{
		UserID:    claims.UserID,
		RoleID:    claims.UserRoleID,
		Effective: keys,
		Defaults:  keys,
		Overrides: []*domain.UserPermissionOverride{},
	})
}
