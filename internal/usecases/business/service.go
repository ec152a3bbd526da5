package business

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/payment"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type BusinessService interface {
	RegisterBusiness(ctx context.Context, req *domain.RegisterBusinessRequest) (*domain.RegisterBusinessResponse, error)
	GetBusiness(ctx context.Context, claims *domain.Claims, id string) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, claims *domain.Claims, req *domain.UpdateBusinessRequest) (*domain.Business, error)
	ListBusinesses(ctx context.Context, status *domain.BusinessStatus) ([]*domain.Business, error)
	ChangeStatus(ctx context.Context, id string, status domain.BusinessStatus) (*domain.Business, error)
	SuspendExpiredTrials(ctx context.Context) ([]string, error)
}

// PasswordPolicy valida a senha do administrador no cadastro
type PasswordPolicy interface {
	ValidatePasswordStrength(password string) error
}

type Service struct {
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	passwords    PasswordPolicy
	cache        cache.Cache
	cfg          *config.Config
	now          func() time.Time
}

func NewService(
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	passwords PasswordPolicy,
	cacheStore cache.Cache,
	cfg *config.Config,
) BusinessService {
	return &Service{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		passwords:    passwords,
		cache:        cacheStore,
		cfg:          cfg,
		now:          time.Now,
	}
}

// RegisterBusiness cria o negócio em período de teste junto do seu administrador
func (s *Service) RegisterBusiness(ctx context.Context, req *domain.RegisterBusinessRequest) (*domain.RegisterBusinessResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.AdminEmail = normalizeEmail(req.AdminEmail)

	if req.Name == "" || req.Email == "" || req.AdminName == "" || req.AdminEmail == "" || req.AdminPassword == "" {
		return nil, NewBusinessError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome, email, administrador e senha são obrigatórios")
	}

	if err := s.passwords.ValidatePasswordStrength(req.AdminPassword); err != nil {
		return nil, err
	}

	existing, err := s.businessRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar negócios")
	}
	if existing != nil {
		return nil, NewBusinessError(ErrBusinessExists, apiErrors.ErrBusinessAlreadyExists, "Já existe um negócio com este email")
	}

	admin, err := s.userRepo.GetUserByEmail(ctx, req.AdminEmail)
	if err != nil {
		return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar usuários")
	}
	if admin != nil {
		return nil, NewBusinessError(ErrAdminExists, apiErrors.ErrUserAlreadyExists, "Email do administrador já cadastrado")
	}

	code, err := utils.GenerateCode("", 8)
	if err != nil {
		return nil, NewBusinessError(ErrGenerateCode, apiErrors.ErrInternalServer, "Falha ao gerar código do negócio")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar hash da senha")
	}

	business := &domain.Business{
		ID:      utils.NewUUID(),
		Code:    code,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		Status:  domain.BusinessStatusActive,
	}

	if s.cfg.Business.TrialDays > 0 {
		trialEnd := utils.EndOfDay(s.now().AddDate(0, 0, s.cfg.Business.TrialDays))
		business.Status = domain.BusinessStatusTrial
		business.TrialEndsAt = &trialEnd
	}

	admin = &domain.User{
		Name:         strings.TrimSpace(req.AdminName),
		Lastname:     strings.TrimSpace(req.AdminLastname),
		Email:        req.AdminEmail,
		PasswordHash: string(hashedPassword),
		Active:       true,
		RoleID:       domain.RoleBusiness,
	}

	if err := s.businessRepo.CreateWithAdmin(ctx, business, admin, payment.DefaultMethods()); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewBusinessError(ErrBusinessExists, apiErrors.ErrBusinessAlreadyExists, "Negócio ou administrador já cadastrado")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao cadastrar negócio")
		return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cadastrar negócio")
	}

	s.invalidateOwnerDashboard(ctx)

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": business.ID,
		"status":      business.Status,
	}).Info("Negócio cadastrado")

	admin.PasswordHash = ""
	return &domain.RegisterBusinessResponse{Business: business, Admin: admin}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) GetBusiness(ctx context.Context, claims *domain.Claims, id string) (*domain.Business, error) {
	if id == "" {
		return nil, NewBusinessError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "ID do negócio é obrigatório")
	}

	if !claims.CanAccessBusiness(id) {
		return nil, NewBusinessErrorWithID(ErrAccessDenied, apiErrors.ErrBusinessAccessDenied, id, "Sem acesso a este negócio")
	}

	return s.getBusiness(ctx, id)
}

func (s *Service) getBusiness(ctx context.Context, id string) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewBusinessErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar negócio")
	}
	if business == nil {
		return nil, NewBusinessErrorWithID(ErrBusinessNotFound, apiErrors.ErrBusinessNotFound, id, "Negócio não encontrado")
	}
	return business, nil
}

func (s *Service) UpdateBusiness(ctx context.Context, claims *domain.Claims, req *domain.UpdateBusinessRequest) (*domain.Business, error) {
	if req.ID == "" {
		return nil, NewBusinessError(ErrBusinessIDRequired, apiErrors.ErrMissingRequiredData, "ID do negócio é obrigatório")
	}

	if !claims.CanAccessBusiness(req.ID) {
		return nil, NewBusinessErrorWithID(ErrAccessDenied, apiErrors.ErrBusinessAccessDenied, req.ID, "Sem acesso a este negócio")
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, NewBusinessError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Nome não pode ser vazio")
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		existing, err := s.businessRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar negócios")
		}
		if existing != nil && existing.ID != req.ID {
			return nil, NewBusinessError(ErrBusinessExists, apiErrors.ErrBusinessAlreadyExists, "Já existe um negócio com este email")
		}
		req.Email = &email
	}

	business, err := s.businessRepo.Update(ctx, req)
	if err != nil {
		return nil, NewBusinessErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.ID, "Falha ao atualizar negócio")
	}
	if business == nil {
		return nil, NewBusinessErrorWithID(ErrBusinessNotFound, apiErrors.ErrBusinessNotFound, req.ID, "Negócio não encontrado")
	}

	return business, nil
}

func (s *Service) ListBusinesses(ctx context.Context, status *domain.BusinessStatus) ([]*domain.Business, error) {
	if status != nil && !status.IsValid() {
		return nil, NewBusinessError(ErrInvalidStatus, apiErrors.ErrInvalidBusinessStatus, "Status inválido")
	}

	businesses, err := s.businessRepo.List(ctx, status)
	if err != nil {
		return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar negócios")
	}

	return businesses, nil
}

func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.BusinessStatus) (*domain.Business, error) {
	if !status.IsValid() {
		return nil, NewBusinessError(ErrInvalidStatus, apiErrors.ErrInvalidBusinessStatus, "Status inválido")
	}

	business, err := s.getBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	if business.Status == status {
		return business, nil
	}

	if err := s.businessRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, NewBusinessErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao alterar status do negócio")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": id,
		"from":        business.Status,
		"to":          status,
	}).Info("Status do negócio alterado")

	business.Status = status
	s.invalidateOwnerDashboard(ctx)

	return business, nil
}

// SuspendExpiredTrials suspende os negócios cujo período de teste terminou
func (s *Service) SuspendExpiredTrials(ctx context.Context) ([]string, error) {
	ids, err := s.businessRepo.SuspendExpiredTrials(ctx, s.now())
	if err != nil {
		return nil, NewBusinessError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao suspender negócios com teste expirado")
	}

	if len(ids) > 0 {
		s.invalidateOwnerDashboard(ctx)
	}

	return ids, nil
}

func (s *Service) invalidateOwnerDashboard(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.OwnerDashboardKey); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache do dashboard")
	}
}
