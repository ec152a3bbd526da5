package cashregister

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

var fixedNow = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *mocks.MockCashRegisterRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCashRegisterRepository(ctrl)
	service := NewService(repo).(*Service)
	service.now = func() time.Time { return fixedNow }
	return service, repo
}

func openShift() *domain.CashRegisterShift {
	return &domain.CashRegisterShift{
		ID:             "shift-1",
		BusinessID:     "biz-1",
		UserID:         5,
		ShiftNumber:    "C-ABC123",
		Status:         domain.ShiftOpen,
		OpeningBalance: 100,
	}
}

func TestService_OpenShift(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.OpenShiftRequest
		setup    func(repo *mocks.MockCashRegisterRepository)
		validate func(t *testing.T, shift *domain.CashRegisterShift, err error)
	}{
		{
			name:  "Saldo de abertura negativo",
			req:   &domain.OpenShiftRequest{BusinessID: "biz-1", UserID: 5, OpeningBalance: -1},
			setup: func(*mocks.MockCashRegisterRepository) {},
			validate: func(t *testing.T, _ *domain.CashRegisterShift, err error) {
				assert.ErrorIs(t, err, ErrInvalidBalance)
			},
		},
		{
			name: "Usuário já possui turno aberto",
			req:  &domain.OpenShiftRequest{BusinessID: "biz-1", UserID: 5, OpeningBalance: 50},
			setup: func(repo *mocks.MockCashRegisterRepository) {
				repo.EXPECT().GetActive(gomock.Any(), "biz-1", 5).Return(openShift(), nil)
			},
			validate: func(t *testing.T, _ *domain.CashRegisterShift, err error) {
				assert.ErrorIs(t, err, ErrShiftAlreadyOpen)
			},
		},
		{
			name: "Abertura concorrente barrada pelo índice único",
			req:  &domain.OpenShiftRequest{BusinessID: "biz-1", UserID: 5, OpeningBalance: 50},
			setup: func(repo *mocks.MockCashRegisterRepository) {
				repo.EXPECT().GetActive(gomock.Any(), "biz-1", 5).Return(nil, nil)
				repo.EXPECT().Open(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicated)
			},
			validate: func(t *testing.T, _ *domain.CashRegisterShift, err error) {
				assert.ErrorIs(t, err, ErrShiftAlreadyOpen)
			},
		},
		{
			name: "Abre turno",
			req:  &domain.OpenShiftRequest{BusinessID: "biz-1", UserID: 5, OpeningBalance: 150.456},
			setup: func(repo *mocks.MockCashRegisterRepository) {
				repo.EXPECT().GetActive(gomock.Any(), "biz-1", 5).Return(nil, nil)
				repo.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, shift *domain.CashRegisterShift, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ShiftOpen, shift.Status)
				assert.Equal(t, 150.46, shift.OpeningBalance)
				assert.Regexp(t, `^C-[A-Z0-9]{6}$`, shift.ShiftNumber)
				assert.Equal(t, fixedNow, shift.OpenedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			shift, err := service.OpenShift(ctx, tt.req)
			tt.validate(t, shift, err)
		})
	}
}

func TestService_GetShiftSummary(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().GetByID(gomock.Any(), "biz-1", "shift-1").Return(openShift(), nil)
	repo.EXPECT().SalesByPaymentMethod(gomock.Any(), "biz-1", "shift-1").Return([]*domain.SalesByPaymentMethod{
		{PaymentMethodType: domain.PaymentMethodCash, Count: 2, Total: 80.5},
		{PaymentMethodType: domain.PaymentMethodCard, Count: 3, Total: 210},
	}, nil)

	summary, err := service.GetShiftSummary(context.Background(), "biz-1", "shift-1")

	require.NoError(t, err)
	assert.Equal(t, 5, summary.SalesCount)
	assert.Equal(t, 290.5, summary.SalesTotal)
	assert.Equal(t, 80.5, summary.CashSales)
	assert.Equal(t, 180.5, summary.ExpectedCash)
}

func TestService_CloseShift(t *testing.T) {
	ctx := context.Background()

	t.Run("Fecha com diferença", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetActive(gomock.Any(), "biz-1", 5).Return(openShift(), nil)
		repo.EXPECT().SalesByPaymentMethod(gomock.Any(), "biz-1", "shift-1").Return([]*domain.SalesByPaymentMethod{
			{PaymentMethodType: domain.PaymentMethodCash, Count: 1, Total: 50},
		}, nil)
		repo.EXPECT().Close(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, shift *domain.CashRegisterShift) error {
			assert.Equal(t, 150.0, *shift.ExpectedClosingBalance)
			assert.Equal(t, 140.0, *shift.ActualClosingBalance)
			assert.Equal(t, -10.0, *shift.Difference)
			assert.Equal(t, fixedNow, *shift.ClosedAt)
			return nil
		})

		summary, err := service.CloseShift(ctx, &domain.CloseShiftRequest{BusinessID: "biz-1", UserID: 5, ActualClosingBalance: 140})
		require.NoError(t, err)
		assert.Equal(t, 150.0, summary.ExpectedCash)
	})

	t.Run("Turno já fechado", func(t *testing.T) {
		service, repo := newTestService(t)
		closed := openShift()
		closed.Status = domain.ShiftClosed
		repo.EXPECT().GetByID(gomock.Any(), "biz-1", "shift-1").Return(closed, nil)

		_, err := service.CloseShift(ctx, &domain.CloseShiftRequest{BusinessID: "biz-1", ShiftID: "shift-1", ActualClosingBalance: 10})
		assert.ErrorIs(t, err, ErrShiftClosed)
	})

	t.Run("Fechamento concorrente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "biz-1", "shift-1").Return(openShift(), nil)
		repo.EXPECT().SalesByPaymentMethod(gomock.Any(), "biz-1", "shift-1").Return(nil, nil)
		repo.EXPECT().Close(gomock.Any(), gomock.Any()).Return(repository.ErrStaleState)

		_, err := service.CloseShift(ctx, &domain.CloseShiftRequest{BusinessID: "biz-1", ShiftID: "shift-1", ActualClosingBalance: 100})
		assert.ErrorIs(t, err, ErrShiftClosed)
	})

	t.Run("Sem turno aberto", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetActive(gomock.Any(), "biz-1", 5).Return(nil, nil)

		_, err := service.CloseShift(ctx, &domain.CloseShiftRequest{BusinessID: "biz-1", UserID: 5})
		assert.ErrorIs(t, err, ErrShiftNotFound)
	})

	t.Run("Saldo negativo", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CloseShift(ctx, &domain.CloseShiftRequest{BusinessID: "biz-1", UserID: 5, ActualClosingBalance: -5})
		assert.ErrorIs(t, err, ErrInvalidBalance)
	})
}

func TestService_ListShifts(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().List(gomock.Any(), "biz-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, filters domain.ShiftFilters) ([]*domain.CashRegisterShift, int, error) {
			assert.Equal(t, 1, filters.Page)
			assert.Equal(t, domain.DefaultPageSize, filters.PageSize)
			return []*domain.CashRegisterShift{openShift()}, 1, nil
		})

	page, err := service.ListShifts(context.Background(), "biz-1", domain.ShiftFilters{})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Items, 1)
}
