package commission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
	rulesMocks "github.com/diana0617/beauty-control-api/internal/usecases/rules/mocks"
)

type testDeps struct {
	repo        *mocks.MockCommissionRepository
	serviceRepo *mocks.MockServiceRepository
	userRepo    *mocks.MockUserRepository
	rules       *rulesMocks.MockEvaluator
}

func newTestService(t *testing.T) (*Service, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		repo:        mocks.NewMockCommissionRepository(ctrl),
		serviceRepo: mocks.NewMockServiceRepository(ctrl),
		userRepo:    mocks.NewMockUserRepository(ctrl),
		rules:       rulesMocks.NewMockEvaluator(ctrl),
	}
	service := NewService(deps.repo, deps.serviceRepo, deps.userRepo, deps.rules).(*Service)
	service.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return service, deps
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestService_CalculateCommission_ResolucaoDoPercentual(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		serviceID  *string
		specialist *domain.SpecialistProfile
		setup      func(deps testDeps)
		wantRate   float64
		wantAmount float64
	}{
		{
			name:       "Percentual do serviço tem prioridade",
			serviceID:  strPtr("srv-1"),
			specialist: &domain.SpecialistProfile{ID: "sp-1", CommissionRate: floatPtr(30)},
			setup: func(deps testDeps) {
				deps.serviceRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "srv-1").Return(&domain.Service{ID: "srv-1", CommissionPercentage: floatPtr(40)}, nil)
			},
			wantRate:   40,
			wantAmount: 80,
		},
		{
			name:       "Sem percentual no serviço usa o do especialista",
			serviceID:  strPtr("srv-1"),
			specialist: &domain.SpecialistProfile{ID: "sp-1", CommissionRate: floatPtr(30)},
			setup: func(deps testDeps) {
				deps.serviceRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "srv-1").Return(&domain.Service{ID: "srv-1"}, nil)
			},
			wantRate:   30,
			wantAmount: 60,
		},
		{
			name:       "Sem percentuais usa a regra do negócio",
			specialist: &domain.SpecialistProfile{ID: "sp-1"},
			setup: func(deps testDeps) {
				deps.rules.EXPECT().GetNumber(gomock.Any(), "biz-1", domain.RuleCommissionDefaultPercentage, 0.0).Return(12.5, nil)
			},
			wantRate:   12.5,
			wantAmount: 25,
		},
		{
			name:       "Falha ao consultar a regra resulta em zero",
			specialist: &domain.SpecialistProfile{ID: "sp-1"},
			setup: func(deps testDeps) {
				deps.rules.EXPECT().GetNumber(gomock.Any(), "biz-1", domain.RuleCommissionDefaultPercentage, 0.0).Return(0.0, errors.New("cache fora"))
			},
			wantRate:   0,
			wantAmount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t)
			deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(tt.specialist, nil)
			tt.setup(deps)

			detail, err := service.CalculateCommission(ctx, &domain.CommissionInput{
				BusinessID:   "biz-1",
				SpecialistID: "sp-1",
				Source:       domain.CommissionSourceSale,
				SourceID:     "sale-1",
				ServiceID:    tt.serviceID,
				BaseAmount:   200,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantRate, detail.Rate)
			assert.Equal(t, tt.wantAmount, detail.Amount)
			assert.Equal(t, domain.CommissionPending, detail.Status)
		})
	}
}

func TestService_RecordCommission(t *testing.T) {
	ctx := context.Background()
	input := &domain.CommissionInput{BusinessID: "biz-1", SpecialistID: "sp-1", Source: domain.CommissionSourceTreatmentSession, SourceID: "ses-1", BaseAmount: 150}

	t.Run("Grava comissão positiva", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(&domain.SpecialistProfile{ID: "sp-1", CommissionRate: floatPtr(10)}, nil)
		deps.repo.EXPECT().CreateDetail(gomock.Any(), gomock.Any()).Return(nil)

		detail, err := service.RecordCommission(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 15.0, detail.Amount)
	})

	t.Run("Percentual zero não grava", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(&domain.SpecialistProfile{ID: "sp-1", CommissionRate: floatPtr(0)}, nil)

		detail, err := service.RecordCommission(ctx, input)
		require.NoError(t, err)
		assert.Nil(t, detail)
	})

	t.Run("Especialista inexistente", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(nil, nil)

		_, err := service.RecordCommission(ctx, input)
		assert.ErrorIs(t, err, ErrSpecialistNotFound)
	})
}

func TestService_CreateSpecialist(t *testing.T) {
	ctx := context.Background()
	businessID := "biz-1"

	t.Run("Percentual fora da faixa", func(t *testing.T) {
		service, _ := newTestService(t)
		_, err := service.CreateSpecialist(ctx, &domain.SpecialistProfile{BusinessID: businessID, UserID: 3, CommissionRate: floatPtr(120)})
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("Usuário recepcionista não pode ser especialista", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, BusinessID: &businessID, RoleID: domain.RoleReceptionist}, nil)

		_, err := service.CreateSpecialist(ctx, &domain.SpecialistProfile{BusinessID: businessID, UserID: 3})
		assert.ErrorIs(t, err, ErrInvalidSpecialistUser)
	})

	t.Run("Perfil duplicado", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, BusinessID: &businessID, RoleID: domain.RoleSpecialist}, nil)
		deps.repo.EXPECT().GetSpecialistByUser(gomock.Any(), businessID, 3).Return(&domain.SpecialistProfile{ID: "sp-1"}, nil)

		_, err := service.CreateSpecialist(ctx, &domain.SpecialistProfile{BusinessID: businessID, UserID: 3})
		assert.ErrorIs(t, err, ErrSpecialistExists)
	})

	t.Run("Cria especialista ativo", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 3).Return(&domain.User{ID: 3, BusinessID: &businessID, RoleID: domain.RoleSpecialist, Name: "Ana", Lastname: "Lima"}, nil)
		deps.repo.EXPECT().GetSpecialistByUser(gomock.Any(), businessID, 3).Return(nil, nil)
		deps.repo.EXPECT().CreateSpecialist(gomock.Any(), gomock.Any()).Return(nil)

		specialist, err := service.CreateSpecialist(ctx, &domain.SpecialistProfile{BusinessID: businessID, UserID: 3, CommissionRate: floatPtr(35)})
		require.NoError(t, err)
		assert.NotEmpty(t, specialist.ID)
		assert.True(t, specialist.IsActive)
		assert.Equal(t, "Ana Lima", specialist.UserName)
	})
}

func TestService_CreatePaymentRequest(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)

	t.Run("Período invertido", func(t *testing.T) {
		service, _ := newTestService(t)
		_, err := service.CreatePaymentRequest(ctx, &domain.CreatePaymentRequestRequest{BusinessID: "biz-1", SpecialistID: "sp-1", PeriodFrom: to, PeriodTo: from})
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("Sem comissões pendentes", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(&domain.SpecialistProfile{ID: "sp-1"}, nil)
		deps.repo.EXPECT().CreatePaymentRequest(gomock.Any(), gomock.Any()).Return(repository.ErrNoPendingCommissions)

		_, err := service.CreatePaymentRequest(ctx, &domain.CreatePaymentRequestRequest{BusinessID: "biz-1", SpecialistID: "sp-1", PeriodFrom: from, PeriodTo: to})
		assert.ErrorIs(t, err, ErrNoPendingCommissions)
	})

	t.Run("Cria solicitação cobrindo os dias inteiros", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().GetSpecialist(gomock.Any(), "biz-1", "sp-1").Return(&domain.SpecialistProfile{ID: "sp-1"}, nil)
		deps.repo.EXPECT().CreatePaymentRequest(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req *domain.CommissionPaymentRequest) error {
			assert.Equal(t, 0, req.PeriodFrom.Hour())
			assert.Equal(t, 23, req.PeriodTo.Hour())
			assert.Equal(t, domain.PaymentRequestSubmitted, req.Status)
			req.TotalAmount = 320
			req.DetailsCount = 4
			return nil
		})

		request, err := service.CreatePaymentRequest(ctx, &domain.CreatePaymentRequestRequest{BusinessID: "biz-1", SpecialistID: "sp-1", PeriodFrom: from, PeriodTo: to})
		require.NoError(t, err)
		assert.Equal(t, 320.0, request.TotalAmount)
	})
}

func TestService_ReviewPaymentRequest(t *testing.T) {
	ctx := context.Background()
	review := &domain.ReviewPaymentRequestRequest{BusinessID: "biz-1", RequestID: "req-1", ReviewerID: 2, PaymentMethod: strPtr("PIX")}

	tests := []struct {
		name       string
		current    domain.PaymentRequestStatus
		action     func(s *Service) (*domain.CommissionPaymentRequest, error)
		wantStatus domain.PaymentRequestStatus
		wantDetail domain.CommissionStatus
		wantErr    error
	}{
		{
			name:       "Aprova solicitação enviada",
			current:    domain.PaymentRequestSubmitted,
			action:     func(s *Service) (*domain.CommissionPaymentRequest, error) { return s.ApprovePaymentRequest(ctx, review) },
			wantStatus: domain.PaymentRequestApproved,
			wantDetail: domain.CommissionRequested,
		},
		{
			name:       "Rejeição devolve comissões para pendente",
			current:    domain.PaymentRequestSubmitted,
			action:     func(s *Service) (*domain.CommissionPaymentRequest, error) { return s.RejectPaymentRequest(ctx, review) },
			wantStatus: domain.PaymentRequestRejected,
			wantDetail: domain.CommissionPending,
		},
		{
			name:       "Pagamento de solicitação aprovada",
			current:    domain.PaymentRequestApproved,
			action:     func(s *Service) (*domain.CommissionPaymentRequest, error) { return s.MarkPaymentRequestPaid(ctx, review) },
			wantStatus: domain.PaymentRequestPaid,
			wantDetail: domain.CommissionPaid,
		},
		{
			name:    "Não paga solicitação ainda não aprovada",
			current: domain.PaymentRequestSubmitted,
			action:  func(s *Service) (*domain.CommissionPaymentRequest, error) { return s.MarkPaymentRequestPaid(ctx, review) },
			wantErr: ErrInvalidRequestState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t)
			deps.repo.EXPECT().GetPaymentRequest(gomock.Any(), "biz-1", "req-1").Return(&domain.CommissionPaymentRequest{ID: "req-1", BusinessID: "biz-1", Status: tt.current}, nil)
			if tt.wantErr == nil {
				deps.repo.EXPECT().ReviewPaymentRequest(gomock.Any(), gomock.Any(), tt.current, tt.wantDetail).Return(nil)
			}

			request, err := tt.action(service)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, request.Status)
			assert.Equal(t, 2, *request.ReviewedBy)
			assert.Equal(t, "PIX", *request.PaymentMethod)
		})
	}
}
