package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/authenticating"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

// GetUser retorna informações do usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		id, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar usuário")
			return
		}

		if user == nil || !sameTenant(claims, user) {
			apiErrors.WriteError(w, apiErrors.ErrUserNotFound, "Usuário não encontrado", nil)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func sameTenant(claims *domain.Claims, user *domain.User) bool {
	if claims.UserRoleID == domain.RoleOwner || claims.UserID == user.ID {
		return true
	}
	return user.BusinessID != nil && *user.BusinessID == claims.UserBusinessID
}

// CreateUser cria um usuário no negócio de quem faz a requisição
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - CreateUser")

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var user domain.User
		if !decodeBody(w, r, &user) {
			return
		}

		if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), claims, &user)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar usuário")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// ListUsers lista os usuários do negócio; o OWNER vê todos
func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		users, err := service.ListUser(r.Context(), claims)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar usuários")
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// UpdateUser atualiza informações do usuário
func UpdateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - UpdateUser")

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		id, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		var req domain.UpdateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		if err := service.UpdateUser(r.Context(), claims, &req); err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar usuário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
