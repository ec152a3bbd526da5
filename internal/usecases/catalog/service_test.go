package catalog

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
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

type fixture struct {
	service     CatalogService
	productRepo *mocks.MockProductRepository
	serviceRepo *mocks.MockServiceRepository
	cache       cache.Cache
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		productRepo: mocks.NewMockProductRepository(ctrl),
		serviceRepo: mocks.NewMockServiceRepository(ctrl),
		cache:       cache.NewMemoryCache(10, time.Minute),
	}
	f.service = NewService(f.productRepo, f.serviceRepo, f.cache)
	return f
}

func TestValidateService(t *testing.T) {
	tests := []struct {
		name    string
		service domain.Service
		wantErr error
	}{
		{
			name:    "Serviço simples é normalizado para SINGLE",
			service: domain.Service{Name: "Corte", DurationMinutes: 30, Price: 50, SessionsCount: 5},
		},
		{
			name:    "Pacote com uma sessão",
			service: domain.Service{Name: "Laser", DurationMinutes: 30, IsPackage: true, PackageType: domain.PackageMultiSession, SessionsCount: 1},
			wantErr: ErrInvalidPackage,
		},
		{
			name: "Manutenção em pacote MULTI_SESSION",
			service: domain.Service{Name: "Laser", DurationMinutes: 30, IsPackage: true, PackageType: domain.PackageMultiSession,
				SessionsCount: 4, MaintenanceSessions: 1},
			wantErr: ErrInvalidPackage,
		},
		{
			name: "WITH_MAINTENANCE sem sessões de manutenção",
			service: domain.Service{Name: "Laser", DurationMinutes: 30, IsPackage: true, PackageType: domain.PackageWithMaintenance,
				SessionsCount: 4},
			wantErr: ErrInvalidPackage,
		},
		{
			name:    "Tipo de pacote desconhecido",
			service: domain.Service{Name: "Laser", DurationMinutes: 30, IsPackage: true, PackageType: "OUTRO", SessionsCount: 4},
			wantErr: ErrInvalidPackage,
		},
		{
			name:    "Duração zerada",
			service: domain.Service{Name: "Corte", DurationMinutes: 0},
			wantErr: ErrInvalidService,
		},
		{
			name:    "Comissão acima de 100",
			service: domain.Service{Name: "Corte", DurationMinutes: 30, CommissionPercentage: floatPtr(120)},
			wantErr: ErrInvalidService,
		},
		{
			name: "Pacote com manutenção válido",
			service: domain.Service{Name: "Depilação", DurationMinutes: 45, IsPackage: true, PackageType: domain.PackageWithMaintenance,
				SessionsCount: 6, MaintenanceSessions: 2, SessionIntervalDays: 30, PackagePrice: floatPtr(900)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := tt.service
			err := validateService(&service)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if !service.IsPackage {
				assert.Equal(t, domain.PackageSingle, service.PackageType)
				assert.Equal(t, 1, service.SessionsCount)
			}
		})
	}
}

func TestService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: "p1", BusinessID: "biz-1", Stock: 3, TrackInventory: true}

	t.Run("Ajuste que deixaria o estoque negativo", func(t *testing.T) {
		f := newFixture(t)
		f.productRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "p1").Return(product, nil)
		f.productRepo.EXPECT().AdjustStock(gomock.Any(), gomock.Any(), false).Return(repository.ErrInsufficientStock)

		_, err := f.service.AdjustStock(ctx, &domain.StockAdjustmentRequest{ProductID: "p1", BusinessID: "biz-1", Quantity: -5, Reason: "Quebra"})
		assert.ErrorIs(t, err, ErrNegativeStock)
	})

	t.Run("Motivo obrigatório", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.AdjustStock(ctx, &domain.StockAdjustmentRequest{ProductID: "p1", BusinessID: "biz-1", Quantity: 2})
		assert.ErrorIs(t, err, ErrInvalidAdjustment)
	})

	t.Run("Produto sem controle de estoque", func(t *testing.T) {
		f := newFixture(t)
		f.productRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "p2").Return(&domain.Product{ID: "p2"}, nil)

		_, err := f.service.AdjustStock(ctx, &domain.StockAdjustmentRequest{ProductID: "p2", BusinessID: "biz-1", Quantity: 2, Reason: "Compra"})
		assert.ErrorIs(t, err, ErrInventoryNotTracked)
	})

	t.Run("Entrada registra movimentação e invalida o dashboard", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.cache.Set(ctx, cache.BusinessDashboardKey("biz-1"), 1, 0))

		f.productRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "p1").Return(product, nil)
		f.productRepo.EXPECT().AdjustStock(gomock.Any(), gomock.Any(), false).
			DoAndReturn(func(_ context.Context, m *domain.InventoryMovement, _ bool) error {
				assert.Equal(t, domain.MovementAdjustment, m.Type)
				assert.Equal(t, 4, m.Quantity)
				m.PreviousStock = 3
				m.NewStock = 7
				return nil
			})

		movement, err := f.service.AdjustStock(ctx, &domain.StockAdjustmentRequest{ProductID: "p1", BusinessID: "biz-1", UserID: 9, Quantity: 4, Reason: " Compra "})
		require.NoError(t, err)
		assert.Equal(t, 7, movement.NewStock)
		assert.Equal(t, "Compra", *movement.Notes)
		assert.False(t, f.cache.Has(ctx, cache.BusinessDashboardKey("biz-1")))
	})
}

func TestService_CreateProduct_DuplicatedSKU(t *testing.T) {
	f := newFixture(t)
	f.productRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicated)

	_, err := f.service.CreateProduct(context.Background(), &domain.Product{BusinessID: "biz-1", Name: "Shampoo", Price: 20})
	assert.ErrorIs(t, err, ErrDuplicateSKU)
}

func TestService_UpdateService_RevalidatesPackage(t *testing.T) {
	f := newFixture(t)
	f.serviceRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "s1").Return(&domain.Service{
		ID:              "s1",
		Name:            "Laser",
		DurationMinutes: 30,
		IsPackage:       true,
		PackageType:     domain.PackageMultiSession,
		SessionsCount:   4,
	}, nil)

	_, err := f.service.UpdateService(context.Background(), &domain.UpdateServiceRequest{ID: "s1", BusinessID: "biz-1", SessionsCount: intPtr(1)})
	assert.ErrorIs(t, err, ErrInvalidPackage)
}
