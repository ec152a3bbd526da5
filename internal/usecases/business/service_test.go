package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

type passwordPolicyFunc func(string) error

func (f passwordPolicyFunc) ValidatePasswordStrength(p string) error { return f(p) }

var acceptAll = passwordPolicyFunc(func(string) error { return nil })

type fixture struct {
	service      *Service
	businessRepo *mocks.MockBusinessRepository
	userRepo     *mocks.MockUserRepository
	cache        cache.Cache
}

func newFixture(t *testing.T, trialDays int) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		businessRepo: mocks.NewMockBusinessRepository(ctrl),
		userRepo:     mocks.NewMockUserRepository(ctrl),
		cache:        cache.NewMemoryCache(10, time.Minute),
	}

	cfg := &config.Config{Business: config.Business{TrialDays: trialDays}}
	f.service = NewService(f.businessRepo, f.userRepo, acceptAll, f.cache, cfg).(*Service)
	f.service.now = func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC) }

	return f
}

func validRequest() *domain.RegisterBusinessRequest {
	return &domain.RegisterBusinessRequest{
		Name:          "Salão Bela",
		Email:         " Contato@Bela.com ",
		AdminName:     "Diana",
		AdminLastname: "Lopes",
		AdminEmail:    "diana@bela.com",
		AdminPassword: "Forte@2024",
	}
}

func TestService_RegisterBusiness(t *testing.T) {
	ctx := context.Background()

	t.Run("Cria negócio em teste com administrador e meio de pagamento padrão", func(t *testing.T) {
		f := newFixture(t, 15)
		require.NoError(t, f.cache.Set(ctx, cache.OwnerDashboardKey, "antigo", 0))

		f.businessRepo.EXPECT().GetByEmail(gomock.Any(), "contato@bela.com").Return(nil, nil)
		f.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "diana@bela.com").Return(nil, nil)
		f.businessRepo.EXPECT().CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *domain.Business, admin *domain.User, methods []*domain.PaymentMethod) error {
				assert.Equal(t, domain.BusinessStatusTrial, b.Status)
				require.NotNil(t, b.TrialEndsAt)
				assert.Equal(t, time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), b.TrialEndsAt.Truncate(24*time.Hour))
				assert.Len(t, b.Code, 8)
				assert.Equal(t, domain.RoleBusiness, admin.RoleID)
				require.Len(t, methods, 1)
				assert.Equal(t, domain.PaymentMethodCash, methods[0].Type)
				admin.ID = 42
				admin.BusinessID = &b.ID
				return nil
			})

		resp, err := f.service.RegisterBusiness(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "contato@bela.com", resp.Business.Email)
		assert.Equal(t, 42, resp.Admin.ID)
		assert.Empty(t, resp.Admin.PasswordHash)
		assert.False(t, f.cache.Has(ctx, cache.OwnerDashboardKey))
	})

	t.Run("Sem dias de teste o negócio nasce ativo", func(t *testing.T) {
		f := newFixture(t, 0)
		f.businessRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.userRepo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.businessRepo.EXPECT().CreateWithAdmin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		resp, err := f.service.RegisterBusiness(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.BusinessStatusActive, resp.Business.Status)
		assert.Nil(t, resp.Business.TrialEndsAt)
	})

	t.Run("Email de negócio repetido", func(t *testing.T) {
		f := newFixture(t, 15)
		f.businessRepo.EXPECT().GetByEmail(gomock.Any(), "contato@bela.com").Return(&domain.Business{ID: "b1"}, nil)

		_, err := f.service.RegisterBusiness(ctx, validRequest())
		assert.ErrorIs(t, err, ErrBusinessExists)
	})

	t.Run("Senha do administrador fraca", func(t *testing.T) {
		f := newFixture(t, 15)
		weak := errors.New("senha fraca")
		f.service.passwords = passwordPolicyFunc(func(string) error { return weak })

		_, err := f.service.RegisterBusiness(ctx, validRequest())
		assert.ErrorIs(t, err, weak)
	})

	t.Run("Campos obrigatórios", func(t *testing.T) {
		f := newFixture(t, 15)
		req := validRequest()
		req.AdminPassword = ""

		_, err := f.service.RegisterBusiness(ctx, req)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_GetBusiness_OtherTenant(t *testing.T) {
	f := newFixture(t, 15)

	_, err := f.service.GetBusiness(context.Background(), &domain.Claims{UserRoleID: domain.RoleBusiness, UserBusinessID: "b1"}, "b2")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Status inválido", func(t *testing.T) {
		f := newFixture(t, 15)
		_, err := f.service.ChangeStatus(ctx, "b1", domain.BusinessStatus("X"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Suspende negócio ativo", func(t *testing.T) {
		f := newFixture(t, 15)
		f.businessRepo.EXPECT().GetByID(gomock.Any(), "b1").Return(&domain.Business{ID: "b1", Status: domain.BusinessStatusActive}, nil)
		f.businessRepo.EXPECT().UpdateStatus(gomock.Any(), "b1", domain.BusinessStatusSuspended).Return(nil)

		business, err := f.service.ChangeStatus(ctx, "b1", domain.BusinessStatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, domain.BusinessStatusSuspended, business.Status)
	})

	t.Run("Negócio inexistente", func(t *testing.T) {
		f := newFixture(t, 15)
		f.businessRepo.EXPECT().GetByID(gomock.Any(), "b9").Return(nil, nil)

		_, err := f.service.ChangeStatus(ctx, "b9", domain.BusinessStatusActive)
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})
}

func TestService_SuspendExpiredTrials(t *testing.T) {
	f := newFixture(t, 15)
	ctx := context.Background()
	require.NoError(t, f.cache.Set(ctx, cache.OwnerDashboardKey, 1, 0))

	f.businessRepo.EXPECT().SuspendExpiredTrials(gomock.Any(), f.service.now()).Return([]string{"b1", "b2"}, nil)

	ids, err := f.service.SuspendExpiredTrials(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, ids)
	assert.False(t, f.cache.Has(ctx, cache.OwnerDashboardKey))
}
