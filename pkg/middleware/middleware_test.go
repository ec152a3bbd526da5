package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	claims *domain.Claims
	err    error
}

func (f fakeValidator) ValidateToken(string) (*domain.Claims, error) {
	return f.claims, f.err
}

type fakeChecker struct {
	allowed bool
	err     error
	gotKey  string
}

func (f *fakeChecker) HasPermission(_ context.Context, _ string, _, _ int, key string) (bool, error) {
	f.gotKey = key
	return f.allowed, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 7, UserRoleID: domain.RoleBusiness, UserBusinessID: "biz1"}

	tests := []struct {
		name           string
		path           string
		header         string
		validator      fakeValidator
		expectedStatus int
	}{
		{name: "Rota pública não exige token", path: "/v1/login", expectedStatus: http.StatusNoContent},
		{name: "Sem cabeçalho retorna 401", path: "/v1/sales", expectedStatus: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer retorna 401", path: "/v1/sales", header: "abc", expectedStatus: http.StatusUnauthorized},
		{
			name:           "Token inválido retorna 401",
			path:           "/v1/sales",
			header:         "Bearer abc",
			validator:      fakeValidator{err: errors.New("expirado")},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Token válido segue para o handler",
			path:           "/v1/sales",
			header:         "Bearer abc",
			validator:      fakeValidator{claims: claims},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.validator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		expectedStatus int
	}{
		{name: "Sem claims retorna 401", expectedStatus: http.StatusUnauthorized},
		{name: "Recepcionista não acessa rota administrativa", claims: &domain.Claims{UserRoleID: domain.RoleReceptionist}, expectedStatus: http.StatusForbidden},
		{name: "Administrador do negócio acessa", claims: &domain.Claims{UserRoleID: domain.RoleBusiness}, expectedStatus: http.StatusNoContent},
		{name: "Owner acessa", claims: &domain.Claims{UserRoleID: domain.RoleOwner}, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/rules", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			BusinessAdmin()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	claims := &domain.Claims{UserID: 3, UserRoleID: domain.RoleReceptionist, UserBusinessID: "biz1"}

	tests := []struct {
		name           string
		checker        *fakeChecker
		expectedStatus int
		expectedCode   string
	}{
		{name: "Permissão concedida", checker: &fakeChecker{allowed: true}, expectedStatus: http.StatusNoContent},
		{name: "Permissão negada", checker: &fakeChecker{}, expectedStatus: http.StatusForbidden, expectedCode: apiErrors.ErrPermissionDenied},
		{name: "Falha ao consultar", checker: &fakeChecker{err: errors.New("db")}, expectedStatus: http.StatusInternalServerError, expectedCode: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/sales", nil)
			req = req.WithContext(WithClaims(req.Context(), claims))
			rec := httptest.NewRecorder()

			RequirePermission(tt.checker, "sales.create")(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "sales.create", tt.checker.gotKey)
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.Handler(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, statuses)

	// outro IP tem seu próprio balde
	req := httptest.NewRequest(http.MethodPost, "/v1/login", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "200.1.1.1, 10.0.0.1")
	assert.Equal(t, "200.1.1.1", clientIP(req))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
