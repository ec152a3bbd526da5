package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/internal/domain"
	businessmocks "github.com/diana0617/beauty-control-api/internal/usecases/business/mocks"
	rankingmocks "github.com/diana0617/beauty-control-api/internal/usecases/ranking/mocks"
	"github.com/diana0617/beauty-control-api/internal/usecases/treatment"
	treatmentmocks "github.com/diana0617/beauty-control-api/internal/usecases/treatment/mocks"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/middleware"
)

func newRequest(method, target, body string, claims *domain.Claims, params httprouter.Params) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if claims != nil {
		ctx = middleware.WithClaims(ctx, claims)
	}
	if params != nil {
		ctx = context.WithValue(ctx, httprouter.ParamsKey, params)
	}
	return req.WithContext(ctx)
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestGetTreatmentPlan_EscopoDoNegocio(t *testing.T) {
	owner := &domain.Claims{UserID: 1, UserRoleID: domain.RoleOwner}
	admin := &domain.Claims{UserID: 2, UserRoleID: domain.RoleBusiness, UserBusinessID: "biz-1"}
	orphan := &domain.Claims{UserID: 3, UserRoleID: domain.RoleBusiness}

	tests := []struct {
		name           string
		target         string
		claims         *domain.Claims
		expectedBiz    string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "usuário de negócio usa o próprio tenant",
			target:         "/v1/treatments/plan-1?business_id=outro",
			claims:         admin,
			expectedBiz:    "biz-1",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "owner informa business_id",
			target:         "/v1/treatments/plan-1?business_id=biz-9",
			claims:         owner,
			expectedBiz:    "biz-9",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "owner sem business_id",
			target:         "/v1/treatments/plan-1",
			claims:         owner,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:           "usuário sem negócio vinculado",
			target:         "/v1/treatments/plan-1",
			claims:         orphan,
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrBusinessAccessDenied,
		},
		{
			name:           "sem autenticação",
			target:         "/v1/treatments/plan-1",
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := treatmentmocks.NewMockTreatmentService(ctrl)

			if tt.expectedBiz != "" {
				service.EXPECT().
					GetPlan(gomock.Any(), tt.expectedBiz, "plan-1").
					Return(&domain.TreatmentPlan{ID: "plan-1", BusinessID: tt.expectedBiz}, nil)
			}

			rec := httptest.NewRecorder()
			req := newRequest(http.MethodGet, tt.target, "", tt.claims, httprouter.Params{{Key: "id", Value: "plan-1"}})
			GetTreatmentPlan(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec).Code)
				return
			}

			var plan domain.TreatmentPlan
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&plan))
			assert.Equal(t, tt.expectedBiz, plan.BusinessID)
		})
	}
}

func TestGetTreatmentPlan_MapeamentoDeErros(t *testing.T) {
	admin := &domain.Claims{UserID: 2, UserRoleID: domain.RoleBusiness, UserBusinessID: "biz-1"}

	tests := []struct {
		name            string
		serviceErr      error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "erro tipado mantém código e mensagem",
			serviceErr:      treatment.NewTreatmentErrorWithID(treatment.ErrPlanNotFound, apiErrors.ErrTreatmentPlanNotFound, "plan-1", ""),
			expectedStatus:  http.StatusNotFound,
			expectedCode:    apiErrors.ErrTreatmentPlanNotFound,
			expectedMessage: treatment.ErrPlanNotFound.Error(),
		},
		{
			name:            "erro desconhecido esconde detalhes",
			serviceErr:      errors.New("pq: connection reset"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    apiErrors.ErrInternalServer,
			expectedMessage: "Erro ao buscar plano de tratamento",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := treatmentmocks.NewMockTreatmentService(ctrl)
			service.EXPECT().GetPlan(gomock.Any(), "biz-1", "plan-1").Return(nil, tt.serviceErr)

			rec := httptest.NewRecorder()
			req := newRequest(http.MethodGet, "/v1/treatments/plan-1", "", admin, httprouter.Params{{Key: "id", Value: "plan-1"}})
			GetTreatmentPlan(service).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			apiErr := decodeAPIError(t, rec)
			assert.Equal(t, tt.expectedCode, apiErr.Code)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
		})
	}
}

func TestGetBusinessRanking(t *testing.T) {
	t.Run("ranking vazio retorna não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := rankingmocks.NewMockRankingService(ctrl)
		service.EXPECT().GetRanking(gomock.Any(), "09-2026").Return([]*domain.BusinessRankingItem{}, nil)

		rec := httptest.NewRecorder()
		GetBusinessRanking(service).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/businesses-ranking?month=09-2026", "", nil, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrBusinessNotFound, decodeAPIError(t, rec).Code)
	})

	t.Run("mês padrão é repassado vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := rankingmocks.NewMockRankingService(ctrl)
		service.EXPECT().GetRanking(gomock.Any(), "").Return([]*domain.BusinessRankingItem{
			{BusinessID: "biz-1", BusinessName: "Studio Aurora", Position: 1, Revenue: 1500},
		}, nil)

		rec := httptest.NewRecorder()
		GetBusinessRanking(service).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/businesses-ranking", "", nil, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []domain.BusinessRankingItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "Studio Aurora", items[0].BusinessName)
	})
}

func TestChangeBusinessStatus(t *testing.T) {
	t.Run("corpo inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := businessmocks.NewMockBusinessService(ctrl)

		rec := httptest.NewRecorder()
		req := newRequest(http.MethodPut, "/v1/businesses/biz-1/status", "{status", nil, httprouter.Params{{Key: "id", Value: "biz-1"}})
		ChangeBusinessStatus(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
	})

	t.Run("suspende o negócio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := businessmocks.NewMockBusinessService(ctrl)
		service.EXPECT().
			ChangeStatus(gomock.Any(), "biz-1", domain.BusinessStatusSuspended).
			Return(&domain.Business{ID: "biz-1", Status: domain.BusinessStatusSuspended}, nil)

		rec := httptest.NewRecorder()
		req := newRequest(http.MethodPut, "/v1/businesses/biz-1/status", `{"status":"SUSPENDED"}`, nil, httprouter.Params{{Key: "id", Value: "biz-1"}})
		ChangeBusinessStatus(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"SUSPENDED"`)
	})
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedBody   string
	}{
		{name: "banco disponível", db: fakePinger{}, expectedStatus: http.StatusOK, expectedBody: `"database":"ok"`},
		{name: "banco indisponível", db: fakePinger{err: errors.New("timeout")}, expectedStatus: http.StatusServiceUnavailable, expectedBody: `"status":"degraded"`},
		{name: "sem banco configurado", expectedStatus: http.StatusOK, expectedBody: `"status":"ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		jobType        string
		expectedStatus int
		expectedCode   string
	}{
		{name: "todas as jobs", jobType: CronJobTypeAll, expectedStatus: http.StatusAccepted},
		{name: "tipo desconhecido", jobType: "meta-sync", expectedStatus: http.StatusBadRequest, expectedCode: apiErrors.ErrInvalidRequest},
		{name: "serviço não configurado", jobType: CronJobTypeSessionReminder, expectedStatus: http.StatusInternalServerError, expectedCode: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := newRequest(http.MethodPost, "/v1/cron/run/"+tt.jobType, "", nil, httprouter.Params{{Key: "type", Value: tt.jobType}})
			RunCronJob(CronJobServices{}).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(t, rec).Code)
			}
		})
	}
}

func TestGetCronStatus_SemServicos(t *testing.T) {
	rec := httptest.NewRecorder()
	GetCronStatus(CronJobServices{}).ServeHTTP(rec, newRequest(http.MethodGet, "/v1/cron/status", "", nil, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}
