package selling

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/commission"
	"github.com/diana0617/beauty-control-api/internal/usecases/rules"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/metrics"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type SaleService interface {
	CreateSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error)
	CancelSale(ctx context.Context, req *domain.CancelSaleRequest) (*domain.Sale, error)
	GetSale(ctx context.Context, businessID, id string) (*domain.Sale, error)
	ListSales(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.Page[*domain.Sale], error)
	GetSalesSummary(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.SalesSummary, error)
	ExportSales(ctx context.Context, businessID string, filters domain.SaleFilters) ([]byte, error)
}

type Service struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	paymentRepo repository.PaymentMethodRepository
	shiftRepo   repository.CashRegisterRepository
	commissions commission.CommissionService
	rules       rules.Evaluator
	cache       cache.Cache
	now         func() time.Time
}

func NewService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentMethodRepository,
	shiftRepo repository.CashRegisterRepository,
	commissions commission.CommissionService,
	evaluator rules.Evaluator,
	cacheStore cache.Cache,
) SaleService {
	return &Service{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		shiftRepo:   shiftRepo,
		commissions: commissions,
		rules:       evaluator,
		cache:       cacheStore,
		now:         time.Now,
	}
}

// CreateSale valida a venda, aplica as regras do negócio e grava tudo numa única transação:
// venda, itens, baixa de estoque, movimentações e comissão do especialista
func (s *Service) CreateSale(ctx context.Context, req *domain.CreateSaleRequest) (*domain.Sale, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"business_id": req.BusinessID,
		"user_id":     req.UserID,
	})

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	method, err := s.paymentRepo.GetByID(ctx, req.BusinessID, req.PaymentMethodID)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar forma de pagamento")
	}
	if method == nil {
		return nil, NewSaleErrorWithID(ErrPaymentMethodNotFound, apiErrors.ErrPaymentMethodNotFound, req.PaymentMethodID, "")
	}
	if !method.IsActive {
		return nil, NewSaleErrorWithID(ErrPaymentMethodInactive, apiErrors.ErrPaymentMethodInactive, method.ID, "A forma de pagamento "+method.Name+" está inativa")
	}

	shiftID, err := s.resolveShift(ctx, req)
	if err != nil {
		return nil, err
	}

	allowNegative, err := s.rules.GetBool(ctx, req.BusinessID, domain.RuleInventoryAllowNegativeStock, false)
	if err != nil {
		logger.WithError(err).Warn("Erro ao consultar regra de estoque negativo, mantendo bloqueio")
		allowNegative = false
	}

	number, err := utils.GenerateCode("V", 8)
	if err != nil {
		return nil, NewSaleError(ErrGenerateNumber, apiErrors.ErrInternalServer, "")
	}

	sale := &domain.Sale{
		ID:              utils.NewUUID(),
		BusinessID:      req.BusinessID,
		SaleNumber:      number,
		ClientID:        req.ClientID,
		UserID:          req.UserID,
		SpecialistID:    req.SpecialistID,
		ShiftID:         shiftID,
		PaymentMethodID: method.ID,
		Status:          domain.SaleStatusCompleted,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		Notes:           req.Notes,
	}

	changes, err := s.buildItems(ctx, req, sale, allowNegative)
	if err != nil {
		return nil, err
	}

	taxRate, err := s.rules.GetNumber(ctx, req.BusinessID, domain.RuleSalesTaxPercentage, 0)
	if err != nil {
		logger.WithError(err).Warn("Erro ao consultar regra de imposto, usando zero")
		taxRate = 0
	}

	if err := applyTotals(sale, taxRate, req.PaidAmount); err != nil {
		return nil, err
	}

	detail, err := s.saleCommission(ctx, sale)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Create(ctx, sale, changes, detail); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, NewSaleError(ErrInsufficientStock, apiErrors.ErrInsufficientStock, "O estoque mudou durante a venda, tente novamente")
		}
		logger.WithError(err).Error("Erro ao gravar venda")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao registrar venda")
	}

	metrics.RecordSale(string(sale.Status), sale.Total)
	s.invalidateDashboard(ctx, sale.BusinessID)

	logger.WithFields(log.Fields{
		"sale_number": sale.SaleNumber,
		"total":       sale.Total,
		"items":       len(sale.Items),
	}).Info("Venda registrada")

	return sale, nil
}

func validateRequest(req *domain.CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return NewSaleError(ErrInvalidItems, apiErrors.ErrInvalidSaleItems, "A venda precisa de ao menos um item")
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return NewSaleError(ErrInvalidItems, apiErrors.ErrInvalidSaleItems, "Cada item precisa de produto e quantidade maior que zero")
		}
		if item.Discount < 0 || (item.UnitPrice != nil && *item.UnitPrice < 0) {
			return NewSaleErrorWithID(ErrInvalidItems, apiErrors.ErrInvalidSaleItems, item.ProductID, "Preço e desconto do item não podem ser negativos")
		}
	}

	if req.PaymentMethodID == "" {
		return NewSaleError(ErrPaymentMethodNotFound, apiErrors.ErrMissingRequiredData, "Informe a forma de pagamento")
	}

	if req.DiscountType == "" {
		req.DiscountType = domain.DiscountFixed
	}
	if req.DiscountType != domain.DiscountFixed && req.DiscountType != domain.DiscountPercentage {
		return NewSaleError(ErrInvalidDiscount, apiErrors.ErrInvalidDiscount, "Tipo de desconto inválido")
	}
	if req.DiscountValue < 0 {
		return NewSaleError(ErrInvalidDiscount, apiErrors.ErrInvalidDiscount, "O desconto não pode ser negativo")
	}
	if req.DiscountType == domain.DiscountPercentage && req.DiscountValue > 100 {
		return NewSaleError(ErrInvalidDiscount, apiErrors.ErrInvalidDiscount, "O desconto percentual não pode passar de 100%")
	}

	return nil
}

// resolveShift devolve o turno aberto do vendedor. Quando a regra CASH_REQUIRE_OPEN_SHIFT
// está ligada a venda é recusada sem turno; caso contrário o turno é apenas anotado se existir.
func (s *Service) resolveShift(ctx context.Context, req *domain.CreateSaleRequest) (*string, error) {
	required, err := s.rules.GetBool(ctx, req.BusinessID, domain.RuleCashRequireOpenShift, false)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao consultar regra de turno obrigatório")
		required = false
	}

	shift, err := s.shiftRepo.GetActive(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar turno de caixa")
	}
	if shift == nil {
		if required {
			return nil, NewSaleError(ErrShiftRequired, apiErrors.ErrShiftRequired, "Abra um turno de caixa antes de vender")
		}
		return nil, nil
	}

	return &shift.ID, nil
}

// buildItems carrega os produtos do negócio, monta os itens e as baixas de estoque agregadas por produto
func (s *Service) buildItems(ctx context.Context, req *domain.CreateSaleRequest, sale *domain.Sale, allowNegative bool) ([]domain.StockChange, error) {
	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, req.BusinessID, ids)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar produtos")
	}

	quantities := make(map[string]int)
	order := make([]string, 0, len(req.Items))

	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok || product == nil || !product.IsActive {
			return nil, NewSaleErrorWithID(ErrProductUnavailable, apiErrors.ErrProductUnavailable, item.ProductID, "Produto não encontrado ou inativo")
		}

		unitPrice := product.Price
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}

		gross := unitPrice * float64(item.Quantity)
		if item.Discount > gross {
			return nil, NewSaleErrorWithID(ErrInvalidDiscount, apiErrors.ErrInvalidDiscount, product.ID, "O desconto do item não pode superar o valor do item")
		}

		sale.Items = append(sale.Items, &domain.SaleItem{
			ID:        utils.NewUUID(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: utils.RoundWithTwoDecimalPlace(unitPrice),
			UnitCost:  product.Cost,
			Discount:  utils.RoundWithTwoDecimalPlace(item.Discount),
			Subtotal:  utils.RoundWithTwoDecimalPlace(gross - item.Discount),
		})

		if !product.TrackInventory {
			continue
		}
		if _, seen := quantities[product.ID]; !seen {
			order = append(order, product.ID)
		}
		quantities[product.ID] += item.Quantity
	}

	changes := make([]domain.StockChange, 0, len(order))
	for _, id := range order {
		product := products[id]
		if !allowNegative && product.Stock < quantities[id] {
			return nil, NewSaleErrorWithID(ErrInsufficientStock, apiErrors.ErrInsufficientStock, id,
				"Estoque insuficiente para "+product.Name)
		}
		changes = append(changes, domain.StockChange{
			ProductID:     id,
			Quantity:      quantities[id],
			AllowNegative: allowNegative,
		})
	}

	return changes, nil
}

// applyTotals calcula subtotal, desconto, imposto, total, valor pago e troco
func applyTotals(sale *domain.Sale, taxRate float64, paid *float64) error {
	subtotal := 0.0
	for _, item := range sale.Items {
		subtotal += item.Subtotal
	}
	subtotal = utils.RoundWithTwoDecimalPlace(subtotal)

	discount := sale.DiscountValue
	if sale.DiscountType == domain.DiscountPercentage {
		discount = utils.PercentageOf(subtotal, sale.DiscountValue)
	}
	discount = utils.RoundWithTwoDecimalPlace(discount)
	if discount > subtotal {
		return NewSaleError(ErrInvalidDiscount, apiErrors.ErrInvalidDiscount, "O desconto não pode superar o subtotal")
	}

	taxable := subtotal - discount
	tax := 0.0
	if taxRate > 0 {
		tax = utils.PercentageOf(taxable, taxRate)
	}

	sale.Subtotal = subtotal
	sale.Discount = discount
	sale.Tax = tax
	sale.Total = utils.RoundWithTwoDecimalPlace(taxable + tax)

	sale.PaidAmount = sale.Total
	if paid != nil {
		sale.PaidAmount = utils.RoundWithTwoDecimalPlace(*paid)
	}
	if sale.PaidAmount < sale.Total {
		return NewSaleError(ErrInsufficientPayment, apiErrors.ErrInsufficientPayment, "O valor pago é menor que o total da venda")
	}
	sale.ChangeAmount = utils.RoundWithTwoDecimalPlace(sale.PaidAmount - sale.Total)

	return nil
}

// saleCommission gera a comissão do especialista quando COMMISSION_ON_PRODUCTS está ligada.
// A base é o valor da venda sem impostos.
func (s *Service) saleCommission(ctx context.Context, sale *domain.Sale) (*domain.CommissionDetail, error) {
	if sale.SpecialistID == nil {
		return nil, nil
	}

	enabled, err := s.rules.GetBool(ctx, sale.BusinessID, domain.RuleCommissionOnProducts, false)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao consultar regra de comissão sobre produtos")
		return nil, nil
	}
	if !enabled {
		return nil, nil
	}

	detail, err := s.commissions.CalculateCommission(ctx, &domain.CommissionInput{
		BusinessID:   sale.BusinessID,
		SpecialistID: *sale.SpecialistID,
		Source:       domain.CommissionSourceSale,
		SourceID:     sale.ID,
		BaseAmount:   sale.Subtotal - sale.Discount,
	})
	if err != nil {
		return nil, err
	}
	if detail.Amount <= 0 {
		return nil, nil
	}

	return detail, nil
}

// CancelSale devolve o estoque baixado pela venda e cancela as comissões pendentes da venda
func (s *Service) CancelSale(ctx context.Context, req *domain.CancelSaleRequest) (*domain.Sale, error) {
	sale, err := s.GetSale(ctx, req.BusinessID, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sale.Status != domain.SaleStatusCompleted {
		return nil, NewSaleErrorWithID(ErrSaleAlreadyCancelled, apiErrors.ErrSaleAlreadyCancelled, sale.ID, "")
	}

	// A devolução segue o que a venda baixou, não o controle de estoque atual do produto
	changes, err := s.saleRepo.GetSoldStock(ctx, sale.BusinessID, sale.ID)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar baixas de estoque da venda")
	}

	if err := s.saleRepo.Cancel(ctx, sale, changes, req.UserID, req.Reason); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewSaleErrorWithID(ErrSaleAlreadyCancelled, apiErrors.ErrSaleAlreadyCancelled, sale.ID, "")
		}
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cancelar venda")
	}

	metrics.RecordSale(string(domain.SaleStatusCancelled), 0)
	s.invalidateDashboard(ctx, sale.BusinessID)

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": sale.BusinessID,
		"sale_number": sale.SaleNumber,
		"reason":      req.Reason,
	}).Info("Venda cancelada")

	return sale, nil
}

func (s *Service) GetSale(ctx context.Context, businessID, id string) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar venda")
	}
	if sale == nil {
		return nil, NewSaleErrorWithID(ErrSaleNotFound, apiErrors.ErrSaleNotFound, id, "")
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.Page[*domain.Sale], error) {
	filters.Normalize()

	sales, total, err := s.saleRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar vendas")
	}

	return &domain.Page[*domain.Sale]{
		Items:    sales,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

func (s *Service) GetSalesSummary(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.SalesSummary, error) {
	summary, err := s.saleRepo.Summary(ctx, businessID, filters)
	if err != nil {
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao calcular resumo de vendas")
	}

	if summary.Count > 0 {
		summary.AverageTicket = utils.RoundWithTwoDecimalPlace(summary.Total / float64(summary.Count))
	}

	return summary, nil
}

func (s *Service) invalidateDashboard(ctx context.Context, businessID string) {
	if err := s.cache.Delete(ctx, cache.BusinessDashboardKey(businessID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache do dashboard")
	}
}
