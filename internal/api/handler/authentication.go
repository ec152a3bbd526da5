package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/internal/usecases/authenticating"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// handleLoginError não revela se o email existe: usuário ausente vira credencial inválida
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Falha no login")

	switch {
	case errors.Is(err, authenticating.ErrUserNotFound), errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)

	case errors.Is(err, authenticating.ErrUserDisabled):
		apiErrors.WriteError(w, apiErrors.ErrUserDisabled, "Usuário desativado", nil)

	case errors.Is(err, authenticating.ErrBusinessInactive):
		apiErrors.WriteError(w, apiErrors.ErrBusinessInactive, "Negócio suspenso ou inativo", nil)

	default:
		var authErr *authenticating.AuthError
		if errors.As(err, &authErr) {
			apiErrors.WriteError(w, authErr.APICode(), authErr.APIMessage(), nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
	}
}

// ChangePassword permite que o usuário altere a própria senha
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - ChangePassword")

		targetUserID, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if claims.UserID != targetUserID {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Não autorizado a alterar a senha de outro usuário", nil)
			return
		}

		if err := service.ChangePassword(r.Context(), targetUserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GeneratePassword gera uma senha forte para outro usuário do mesmo negócio
func GeneratePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GeneratePassword")

		claims, ok := currentClaims(w, r)
		if !ok {
			return
		}

		targetUserID, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		newPassword, err := service.GenerateStrongPassword(r.Context(), claims, targetUserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar senha")
			return
		}

		writeJSON(w, http.StatusOK, GeneratePasswordResponse{
			Password: newPassword,
		})
	}
}
