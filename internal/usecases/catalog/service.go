package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const defaultLowStockLimit = 50

type CatalogService interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, businessID, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, businessID string, filters domain.ProductFilters) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, businessID, id string) error
	AdjustStock(ctx context.Context, req *domain.StockAdjustmentRequest) (*domain.InventoryMovement, error)
	ListLowStock(ctx context.Context, businessID string) ([]*domain.Product, error)
	ListInventoryMovements(ctx context.Context, businessID string, productID *string, page domain.Pagination) ([]*domain.InventoryMovement, error)

	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, businessID, id string) (*domain.Service, error)
	ListServices(ctx context.Context, businessID string, filters domain.ServiceFilters) ([]*domain.Service, error)
	UpdateService(ctx context.Context, req *domain.UpdateServiceRequest) (*domain.Service, error)
	DeactivateService(ctx context.Context, businessID, id string) error
}

type Service struct {
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	cache       cache.Cache
}

func NewService(productRepo repository.ProductRepository, serviceRepo repository.ServiceRepository, cacheStore cache.Cache) CatalogService {
	return &Service{
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		cache:       cacheStore,
	}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrMissingRequiredData, "Nome do produto é obrigatório")
	}
	if product.Price < 0 || product.Cost < 0 {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidFormat, "Preço e custo não podem ser negativos")
	}
	if product.Stock < 0 || product.MinStock < 0 {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidFormat, "Estoque não pode ser negativo")
	}

	product.ID = utils.NewUUID()
	product.IsActive = true
	product.Price = utils.RoundWithTwoDecimalPlace(product.Price)
	product.Cost = utils.RoundWithTwoDecimalPlace(product.Cost)

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewCatalogError(ErrDuplicateSKU, apiErrors.ErrDuplicateSKU, "Já existe um produto com este SKU")
		}
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar produto")
	}

	s.invalidateDashboard(ctx, product.BusinessID)

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, businessID, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, NewCatalogErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar produto")
	}
	if product == nil {
		return nil, NewCatalogErrorWithID(ErrProductNotFound, apiErrors.ErrProductNotFound, id, "Produto não encontrado")
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, businessID string, filters domain.ProductFilters) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar produtos")
	}
	return products, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrMissingRequiredData, "Nome do produto não pode ser vazio")
	}
	if (req.Price != nil && *req.Price < 0) || (req.Cost != nil && *req.Cost < 0) {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidFormat, "Preço e custo não podem ser negativos")
	}
	if req.MinStock != nil && *req.MinStock < 0 {
		return nil, NewCatalogError(ErrInvalidProduct, apiErrors.ErrInvalidFormat, "Estoque mínimo não pode ser negativo")
	}

	product, err := s.productRepo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewCatalogError(ErrDuplicateSKU, apiErrors.ErrDuplicateSKU, "Já existe um produto com este SKU")
		}
		return nil, NewCatalogErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.ID, "Falha ao atualizar produto")
	}
	if product == nil {
		return nil, NewCatalogErrorWithID(ErrProductNotFound, apiErrors.ErrProductNotFound, req.ID, "Produto não encontrado")
	}

	s.invalidateDashboard(ctx, req.BusinessID)

	return product, nil
}

// DeactivateProduct desativa o produto sem apagar o histórico de vendas
func (s *Service) DeactivateProduct(ctx context.Context, businessID, id string) error {
	inactive := false
	_, err := s.UpdateProduct(ctx, &domain.UpdateProductRequest{ID: id, BusinessID: businessID, IsActive: &inactive})
	return err
}

// AdjustStock registra uma movimentação manual de estoque
func (s *Service) AdjustStock(ctx context.Context, req *domain.StockAdjustmentRequest) (*domain.InventoryMovement, error) {
	if req.Quantity == 0 {
		return nil, NewCatalogError(ErrInvalidAdjustment, apiErrors.ErrInvalidStockAdjustment, "A quantidade do ajuste não pode ser zero")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, NewCatalogError(ErrInvalidAdjustment, apiErrors.ErrInvalidStockAdjustment, "O motivo do ajuste é obrigatório")
	}

	product, err := s.GetProduct(ctx, req.BusinessID, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.TrackInventory {
		return nil, NewCatalogErrorWithID(ErrInventoryNotTracked, apiErrors.ErrInvalidStockAdjustment, product.ID, "Produto não controla estoque")
	}

	movement := &domain.InventoryMovement{
		ID:         utils.NewUUID(),
		BusinessID: req.BusinessID,
		ProductID:  product.ID,
		UserID:     req.UserID,
		Type:       domain.MovementAdjustment,
		Quantity:   req.Quantity,
		Notes:      &reason,
	}

	if err := s.productRepo.AdjustStock(ctx, movement, false); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, NewCatalogErrorWithID(ErrNegativeStock, apiErrors.ErrInvalidStockAdjustment, product.ID, "O ajuste deixaria o estoque negativo")
		}
		return nil, NewCatalogErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, product.ID, "Falha ao ajustar estoque")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"product_id":     product.ID,
		"quantity":       req.Quantity,
		"previous_stock": movement.PreviousStock,
		"new_stock":      movement.NewStock,
	}).Info("Estoque ajustado")

	s.invalidateDashboard(ctx, req.BusinessID)

	return movement, nil
}

func (s *Service) ListLowStock(ctx context.Context, businessID string) ([]*domain.Product, error) {
	products, err := s.productRepo.ListLowStock(ctx, businessID, defaultLowStockLimit)
	if err != nil {
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar produtos com estoque baixo")
	}
	return products, nil
}

func (s *Service) ListInventoryMovements(ctx context.Context, businessID string, productID *string, page domain.Pagination) ([]*domain.InventoryMovement, error) {
	page.Normalize()

	movements, err := s.productRepo.ListMovements(ctx, businessID, productID, page)
	if err != nil {
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar movimentações de estoque")
	}
	return movements, nil
}

func (s *Service) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	service.Name = strings.TrimSpace(service.Name)
	if err := validateService(service); err != nil {
		return nil, err
	}

	service.ID = utils.NewUUID()
	service.IsActive = true

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar serviço")
	}

	return service, nil
}

// validateService confere preço, duração e a configuração de pacote
func validateService(service *domain.Service) error {
	if service.Name == "" {
		return NewCatalogError(ErrInvalidService, apiErrors.ErrMissingRequiredData, "Nome do serviço é obrigatório")
	}
	if service.DurationMinutes <= 0 {
		return NewCatalogError(ErrInvalidService, apiErrors.ErrInvalidFormat, "A duração deve ser maior que zero")
	}
	if service.Price < 0 {
		return NewCatalogError(ErrInvalidService, apiErrors.ErrInvalidFormat, "O preço não pode ser negativo")
	}
	if c := service.CommissionPercentage; c != nil && (*c < 0 || *c > 100) {
		return NewCatalogError(ErrInvalidService, apiErrors.ErrInvalidCommissionRate, "A comissão deve estar entre 0 e 100")
	}

	if !service.IsPackage {
		service.PackageType = domain.PackageSingle
		service.SessionsCount = 1
		service.MaintenanceSessions = 0
		service.SessionIntervalDays = 0
		service.PackagePrice = nil
		return nil
	}

	switch service.PackageType {
	case domain.PackageMultiSession:
		if service.MaintenanceSessions != 0 {
			return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "Sessões de manutenção só são permitidas em pacotes WITH_MAINTENANCE")
		}
	case domain.PackageWithMaintenance:
		if service.MaintenanceSessions <= 0 {
			return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "Pacotes WITH_MAINTENANCE exigem sessões de manutenção")
		}
	default:
		return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "Tipo de pacote inválido")
	}

	if service.SessionsCount < 2 {
		return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "Pacotes exigem ao menos 2 sessões")
	}
	if service.SessionIntervalDays < 0 {
		return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "O intervalo entre sessões não pode ser negativo")
	}
	if service.PackagePrice != nil && *service.PackagePrice < 0 {
		return NewCatalogError(ErrInvalidPackage, apiErrors.ErrInvalidPackage, "O preço do pacote não pode ser negativo")
	}

	return nil
}

func (s *Service) GetService(ctx context.Context, businessID, id string) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, NewCatalogErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar serviço")
	}
	if service == nil {
		return nil, NewCatalogErrorWithID(ErrServiceNotFound, apiErrors.ErrServiceNotFound, id, "Serviço não encontrado")
	}
	return service, nil
}

func (s *Service) ListServices(ctx context.Context, businessID string, filters domain.ServiceFilters) ([]*domain.Service, error) {
	services, err := s.serviceRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar serviços")
	}
	return services, nil
}

// UpdateService aplica as alterações sobre o serviço atual e revalida o pacote completo
func (s *Service) UpdateService(ctx context.Context, req *domain.UpdateServiceRequest) (*domain.Service, error) {
	service, err := s.GetService(ctx, req.BusinessID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		service.Category = req.Category
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsPackage != nil {
		service.IsPackage = *req.IsPackage
	}
	if req.PackageType != nil {
		service.PackageType = *req.PackageType
	}
	if req.SessionsCount != nil {
		service.SessionsCount = *req.SessionsCount
	}
	if req.MaintenanceSessions != nil {
		service.MaintenanceSessions = *req.MaintenanceSessions
	}
	if req.SessionIntervalDays != nil {
		service.SessionIntervalDays = *req.SessionIntervalDays
	}
	if req.PackagePrice != nil {
		service.PackagePrice = req.PackagePrice
	}
	if req.CommissionPercentage != nil {
		service.CommissionPercentage = req.CommissionPercentage
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := validateService(service); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, NewCatalogErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, service.ID, "Falha ao atualizar serviço")
	}

	return service, nil
}

func (s *Service) DeactivateService(ctx context.Context, businessID, id string) error {
	inactive := false
	_, err := s.UpdateService(ctx, &domain.UpdateServiceRequest{ID: id, BusinessID: businessID, IsActive: &inactive})
	return err
}

func (s *Service) invalidateDashboard(ctx context.Context, businessID string) {
	if err := s.cache.Delete(ctx, cache.BusinessDashboardKey(businessID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache do dashboard do negócio")
	}
}
