package selling

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
	commissionMocks "github.com/diana0617/beauty-control-api/internal/usecases/commission/mocks"
	rulesMocks "github.com/diana0617/beauty-control-api/internal/usecases/rules/mocks"
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

type testDeps struct {
	saleRepo    *mocks.MockSaleRepository
	productRepo *mocks.MockProductRepository
	paymentRepo *mocks.MockPaymentMethodRepository
	shiftRepo   *mocks.MockCashRegisterRepository
	commissions *commissionMocks.MockCommissionService
	rules       *rulesMocks.MockEvaluator
	store       *cache.MemoryCache
}

func newTestService(t *testing.T) (SaleService, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		saleRepo:    mocks.NewMockSaleRepository(ctrl),
		productRepo: mocks.NewMockProductRepository(ctrl),
		paymentRepo: mocks.NewMockPaymentMethodRepository(ctrl),
		shiftRepo:   mocks.NewMockCashRegisterRepository(ctrl),
		commissions: commissionMocks.NewMockCommissionService(ctrl),
		rules:       rulesMocks.NewMockEvaluator(ctrl),
		store:       cache.NewMemoryCache(100, time.Minute),
	}
	service := NewService(deps.saleRepo, deps.productRepo, deps.paymentRepo, deps.shiftRepo, deps.commissions, deps.rules, deps.store)
	return service, deps
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func cashMethod() *domain.PaymentMethod {
	return &domain.PaymentMethod{ID: "pm-1", BusinessID: "biz-1", Name: "Dinheiro", Type: domain.PaymentMethodCash, IsActive: true}
}

func catalog() map[string]*domain.Product {
	return map[string]*domain.Product{
		"p-shampoo": {ID: "p-shampoo", Name: "Shampoo", Price: 50, Cost: 20, Stock: 10, TrackInventory: true, IsActive: true},
		"p-gift":    {ID: "p-gift", Name: "Vale presente", Price: 100, IsActive: true},
	}
}

// expectRules configura as regras consultadas na venda
func expectRules(deps testDeps, requireShift, allowNegative bool, taxRate float64) {
	deps.rules.EXPECT().GetBool(gomock.Any(), "biz-1", domain.RuleCashRequireOpenShift, false).Return(requireShift, nil)
	deps.rules.EXPECT().GetBool(gomock.Any(), "biz-1", domain.RuleInventoryAllowNegativeStock, false).Return(allowNegative, nil).AnyTimes()
	deps.rules.EXPECT().GetNumber(gomock.Any(), "biz-1", domain.RuleSalesTaxPercentage, 0.0).Return(taxRate, nil).AnyTimes()
}

func TestService_CreateSale(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      *domain.CreateSaleRequest
		setup    func(deps testDeps)
		validate func(t *testing.T, sale *domain.Sale, err error, deps testDeps)
	}{
		{
			name:  "Venda sem itens",
			req:   &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1"},
			setup: func(testDeps) {},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInvalidItems)
			},
		},
		{
			name: "Quantidade zero",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1", Items: []*domain.CreateSaleItemRequest{
				{ProductID: "p-shampoo", Quantity: 0},
			}},
			setup: func(testDeps) {},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInvalidItems)
			},
		},
		{
			name: "Desconto percentual acima de 100",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1", DiscountType: domain.DiscountPercentage, DiscountValue: 120,
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 1}}},
			setup: func(testDeps) {},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInvalidDiscount)
			},
		},
		{
			name: "Forma de pagamento inativa",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 1}}},
			setup: func(deps testDeps) {
				method := cashMethod()
				method.IsActive = false
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(method, nil)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrPaymentMethodInactive)
			},
		},
		{
			name: "Turno obrigatório sem turno aberto",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 1}}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, true, false, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrShiftRequired)
			},
		},
		{
			name: "Estoque insuficiente somando itens repetidos",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{
					{ProductID: "p-shampoo", Quantity: 6},
					{ProductID: "p-shampoo", Quantity: 5},
				}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, false, false, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", []string{"p-shampoo", "p-shampoo"}).Return(catalog(), nil)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInsufficientStock)
			},
		},
		{
			name: "Produto inativo",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-old", Quantity: 1}}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, false, false, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
				products := catalog()
				products["p-old"] = &domain.Product{ID: "p-old", IsActive: false}
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", []string{"p-old"}).Return(products, nil)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrProductUnavailable)
			},
		},
		{
			name: "Valor pago menor que o total",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1", PaidAmount: floatPtr(40),
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 1}}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, false, false, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", gomock.Any()).Return(catalog(), nil)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInsufficientPayment)
			},
		},
		{
			name: "Venda completa com desconto, imposto, turno e comissão",
			req: &domain.CreateSaleRequest{
				BusinessID:      "biz-1",
				UserID:          1,
				SpecialistID:    strPtr("sp-1"),
				PaymentMethodID: "pm-1",
				DiscountType:    domain.DiscountPercentage,
				DiscountValue:   10,
				PaidAmount:      floatPtr(300),
				Items: []*domain.CreateSaleItemRequest{
					{ProductID: "p-shampoo", Quantity: 2, Discount: 10},
					{ProductID: "p-gift", Quantity: 1},
				},
			},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, true, false, 10)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(&domain.CashRegisterShift{ID: "shift-1"}, nil)
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", []string{"p-shampoo", "p-gift"}).Return(catalog(), nil)
				deps.rules.EXPECT().GetBool(gomock.Any(), "biz-1", domain.RuleCommissionOnProducts, false).Return(true, nil)
				deps.commissions.EXPECT().CalculateCommission(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, input *domain.CommissionInput) (*domain.CommissionDetail, error) {
						assert.Equal(t, 171.0, input.BaseAmount)
						assert.Equal(t, domain.CommissionSourceSale, input.Source)
						return &domain.CommissionDetail{ID: "c-1", Amount: 17.1}, nil
					})
				deps.saleRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, sale *domain.Sale, changes []domain.StockChange, detail *domain.CommissionDetail) error {
						require.Len(t, changes, 1)
						assert.Equal(t, domain.StockChange{ProductID: "p-shampoo", Quantity: 2}, changes[0])
						require.NotNil(t, detail)
						assert.Equal(t, "c-1", detail.ID)
						return nil
					})
				require.NoError(t, deps.store.Set(context.Background(), cache.BusinessDashboardKey("biz-1"), map[string]int{"x": 1}, 0))
			},
			validate: func(t *testing.T, sale *domain.Sale, err error, deps testDeps) {
				require.NoError(t, err)
				// itens: 2 x 50 - 10 = 90 e 100; subtotal 190; desconto 10% = 19; imposto 10% de 171 = 17.1
				assert.Equal(t, 190.0, sale.Subtotal)
				assert.Equal(t, 19.0, sale.Discount)
				assert.Equal(t, 17.1, sale.Tax)
				assert.Equal(t, 188.1, sale.Total)
				assert.Equal(t, 300.0, sale.PaidAmount)
				assert.Equal(t, 111.9, sale.ChangeAmount)
				assert.Equal(t, "shift-1", *sale.ShiftID)
				assert.Regexp(t, `^V-[A-Z0-9]{8}$`, sale.SaleNumber)
				assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
				assert.False(t, deps.store.Has(context.Background(), cache.BusinessDashboardKey("biz-1")))
			},
		},
		{
			name: "Estoque negativo permitido pela regra",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 15}}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, false, true, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", gomock.Any()).Return(catalog(), nil)
				deps.saleRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), nil).DoAndReturn(
					func(_ context.Context, sale *domain.Sale, changes []domain.StockChange, _ *domain.CommissionDetail) error {
						assert.True(t, changes[0].AllowNegative)
						assert.Nil(t, sale.ShiftID)
						return nil
					})
			},
			validate: func(t *testing.T, sale *domain.Sale, err error, _ testDeps) {
				require.NoError(t, err)
				assert.Equal(t, 750.0, sale.Total)
				assert.Equal(t, 0.0, sale.ChangeAmount)
			},
		},
		{
			name: "Baixa concorrente de estoque",
			req: &domain.CreateSaleRequest{BusinessID: "biz-1", UserID: 1, PaymentMethodID: "pm-1",
				Items: []*domain.CreateSaleItemRequest{{ProductID: "p-shampoo", Quantity: 1}}},
			setup: func(deps testDeps) {
				deps.paymentRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(cashMethod(), nil)
				expectRules(deps, false, false, 0)
				deps.shiftRepo.EXPECT().GetActive(gomock.Any(), "biz-1", 1).Return(nil, nil)
				deps.productRepo.EXPECT().GetByIDs(gomock.Any(), "biz-1", gomock.Any()).Return(catalog(), nil)
				deps.saleRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.ErrInsufficientStock)
			},
			validate: func(t *testing.T, _ *domain.Sale, err error, _ testDeps) {
				assert.ErrorIs(t, err, ErrInsufficientStock)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t)
			tt.setup(deps)

			sale, err := service.CreateSale(ctx, tt.req)
			tt.validate(t, sale, err, deps)
		})
	}
}

func TestService_CancelSale(t *testing.T) {
	ctx := context.Background()

	completed := func() *domain.Sale {
		return &domain.Sale{
			ID:         "sale-1",
			BusinessID: "biz-1",
			Status:     domain.SaleStatusCompleted,
			Items: []*domain.SaleItem{
				{ProductID: "p-shampoo", Quantity: 2},
				{ProductID: "p-gift", Quantity: 1},
			},
		}
	}

	t.Run("Devolve apenas o que a venda baixou", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-1").Return(completed(), nil)
		deps.saleRepo.EXPECT().GetSoldStock(gomock.Any(), "biz-1", "sale-1").Return([]domain.StockChange{{ProductID: "p-shampoo", Quantity: 2}}, nil)
		deps.saleRepo.EXPECT().Cancel(gomock.Any(), gomock.Any(), []domain.StockChange{{ProductID: "p-shampoo", Quantity: 2}}, 7, "cliente desistiu").Return(nil)

		_, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-1", BusinessID: "biz-1", UserID: 7, Reason: "cliente desistiu"})
		require.NoError(t, err)
	})

	t.Run("Controle de estoque alterado depois da venda", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-1").Return(completed(), nil)
		// p-shampoo deixou de controlar estoque e p-gift passou a controlar após a venda:
		// só a baixa registrada de p-shampoo é devolvida
		deps.productRepo.EXPECT().GetByIDs(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.saleRepo.EXPECT().GetSoldStock(gomock.Any(), "biz-1", "sale-1").Return([]domain.StockChange{{ProductID: "p-shampoo", Quantity: 2}}, nil)
		deps.saleRepo.EXPECT().Cancel(gomock.Any(), gomock.Any(), []domain.StockChange{{ProductID: "p-shampoo", Quantity: 2}}, 7, "").Return(nil)

		sale, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-1", BusinessID: "biz-1", UserID: 7})
		require.NoError(t, err)
		assert.Equal(t, "sale-1", sale.ID)
	})

	t.Run("Venda sem baixa de estoque não devolve nada", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-1").Return(completed(), nil)
		deps.saleRepo.EXPECT().GetSoldStock(gomock.Any(), "biz-1", "sale-1").Return([]domain.StockChange{}, nil)
		deps.saleRepo.EXPECT().Cancel(gomock.Any(), gomock.Any(), []domain.StockChange{}, 7, "").Return(nil)

		_, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-1", BusinessID: "biz-1", UserID: 7})
		require.NoError(t, err)
	})

	t.Run("Venda já cancelada", func(t *testing.T) {
		service, deps := newTestService(t)
		sale := completed()
		sale.Status = domain.SaleStatusCancelled
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-1").Return(sale, nil)

		_, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-1", BusinessID: "biz-1", UserID: 7})
		assert.ErrorIs(t, err, ErrSaleAlreadyCancelled)
	})

	t.Run("Cancelamento concorrente", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-1").Return(completed(), nil)
		deps.saleRepo.EXPECT().GetSoldStock(gomock.Any(), "biz-1", "sale-1").Return(nil, nil)
		deps.saleRepo.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any(), 7, "").Return(repository.ErrStaleState)

		_, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-1", BusinessID: "biz-1", UserID: 7})
		assert.ErrorIs(t, err, ErrSaleAlreadyCancelled)
	})

	t.Run("Venda inexistente", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.saleRepo.EXPECT().GetByID(gomock.Any(), "biz-1", "sale-x").Return(nil, nil)

		_, err := service.CancelSale(ctx, &domain.CancelSaleRequest{SaleID: "sale-x", BusinessID: "biz-1"})
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})
}

func TestService_ListSales(t *testing.T) {
	service, deps := newTestService(t)
	deps.saleRepo.EXPECT().List(gomock.Any(), "biz-1", gomock.Any()).Return([]*domain.Sale{{ID: "sale-1"}}, 41, nil)

	page, err := service.ListSales(context.Background(), "biz-1", domain.SaleFilters{Pagination: domain.Pagination{Page: 3, PageSize: 500}})

	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, domain.MaxPageSize, page.PageSize)
}

func TestService_GetSalesSummary(t *testing.T) {
	service, deps := newTestService(t)
	deps.saleRepo.EXPECT().Summary(gomock.Any(), "biz-1", gomock.Any()).Return(&domain.SalesSummary{Count: 3, Total: 100}, nil)

	summary, err := service.GetSalesSummary(context.Background(), "biz-1", domain.SaleFilters{})

	require.NoError(t, err)
	assert.Equal(t, 33.33, summary.AverageTicket)
}

func TestService_ExportSales(t *testing.T) {
	service, deps := newTestService(t)
	deps.saleRepo.EXPECT().ListAll(gomock.Any(), "biz-1", gomock.Any()).Return([]*domain.Sale{
		{
			SaleNumber: "V-AAAA2222",
			Status:     domain.SaleStatusCompleted,
			Total:      188.1,
			CreatedAt:  time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
			Items:      []*domain.SaleItem{{Quantity: 2}, {Quantity: 1}},
		},
	}, nil)

	data, err := service.ExportSales(context.Background(), "biz-1", domain.SaleFilters{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(salesSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Número", header)

	number, _ := f.GetCellValue(salesSheet, "A2")
	assert.Equal(t, "V-AAAA2222", number)

	items, _ := f.GetCellValue(salesSheet, "D2")
	assert.Equal(t, "3", items)
}
