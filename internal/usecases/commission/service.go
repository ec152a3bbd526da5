package commission

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/rules"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type CommissionService interface {
	CreateSpecialist(ctx context.Context, specialist *domain.SpecialistProfile) (*domain.SpecialistProfile, error)
	GetSpecialist(ctx context.Context, businessID, id string) (*domain.SpecialistProfile, error)
	ListSpecialists(ctx context.Context, businessID string, onlyActive bool) ([]*domain.SpecialistProfile, error)
	UpdateSpecialist(ctx context.Context, req *domain.UpdateSpecialistRequest) (*domain.SpecialistProfile, error)
	CalculateCommission(ctx context.Context, input *domain.CommissionInput) (*domain.CommissionDetail, error)
	RecordCommission(ctx context.Context, input *domain.CommissionInput) (*domain.CommissionDetail, error)
	GetSummary(ctx context.Context, businessID, specialistID string, from, to *time.Time) (*domain.CommissionSummary, error)
	ListDetails(ctx context.Context, businessID string, filters domain.CommissionFilters) ([]*domain.CommissionDetail, error)
	CreatePaymentRequest(ctx context.Context, req *domain.CreatePaymentRequestRequest) (*domain.CommissionPaymentRequest, error)
	ListPaymentRequests(ctx context.Context, businessID string, specialistID *string, status *domain.PaymentRequestStatus) ([]*domain.CommissionPaymentRequest, error)
	ApprovePaymentRequest(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error)
	RejectPaymentRequest(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error)
	MarkPaymentRequestPaid(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error)
}

type Service struct {
	repo        repository.CommissionRepository
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
	rules       rules.Evaluator
	now         func() time.Time
}

func NewService(repo repository.CommissionRepository, serviceRepo repository.ServiceRepository, userRepo repository.UserRepository, evaluator rules.Evaluator) CommissionService {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		rules:       evaluator,
		now:         time.Now,
	}
}

var specialistRoles = map[int]bool{
	domain.RoleBusiness:               true,
	domain.RoleSpecialist:             true,
	domain.RoleReceptionistSpecialist: true,
}

func validRate(rate *float64) bool {
	return rate == nil || (*rate >= 0 && *rate <= 100)
}

func (s *Service) CreateSpecialist(ctx context.Context, specialist *domain.SpecialistProfile) (*domain.SpecialistProfile, error) {
	if !validRate(specialist.CommissionRate) {
		return nil, NewCommissionError(ErrInvalidRate, apiErrors.ErrInvalidCommissionRate, "O percentual deve estar entre 0 e 100")
	}

	user, err := s.userRepo.GetUserByID(ctx, specialist.UserID)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar usuário")
	}
	if user == nil || user.Deleted || user.BusinessID == nil || *user.BusinessID != specialist.BusinessID || !specialistRoles[user.RoleID] {
		return nil, NewCommissionError(ErrInvalidSpecialistUser, apiErrors.ErrInvalidRequest, "O usuário precisa pertencer ao negócio com papel de especialista")
	}

	existing, err := s.repo.GetSpecialistByUser(ctx, specialist.BusinessID, specialist.UserID)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar especialista")
	}
	if existing != nil {
		return nil, NewSpecialistError(ErrSpecialistExists, apiErrors.ErrSpecialistAlreadyExists, existing.ID, "")
	}

	specialist.ID = utils.NewUUID()
	specialist.IsActive = true
	specialist.UserName = user.Name + " " + user.Lastname

	if err := s.repo.CreateSpecialist(ctx, specialist); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewCommissionError(ErrSpecialistExists, apiErrors.ErrSpecialistAlreadyExists, "")
		}
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar especialista")
	}

	return specialist, nil
}

func (s *Service) GetSpecialist(ctx context.Context, businessID, id string) (*domain.SpecialistProfile, error) {
	specialist, err := s.repo.GetSpecialist(ctx, businessID, id)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar especialista")
	}
	if specialist == nil {
		return nil, NewSpecialistError(ErrSpecialistNotFound, apiErrors.ErrSpecialistNotFound, id, "")
	}
	return specialist, nil
}

func (s *Service) ListSpecialists(ctx context.Context, businessID string, onlyActive bool) ([]*domain.SpecialistProfile, error) {
	specialists, err := s.repo.ListSpecialists(ctx, businessID, onlyActive)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar especialistas")
	}
	return specialists, nil
}

func (s *Service) UpdateSpecialist(ctx context.Context, req *domain.UpdateSpecialistRequest) (*domain.SpecialistProfile, error) {
	if !validRate(req.CommissionRate) {
		return nil, NewCommissionError(ErrInvalidRate, apiErrors.ErrInvalidCommissionRate, "O percentual deve estar entre 0 e 100")
	}

	specialist, err := s.GetSpecialist(ctx, req.BusinessID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Specialization != nil {
		specialist.Specialization = req.Specialization
	}
	if req.CommissionRate != nil {
		specialist.CommissionRate = req.CommissionRate
	}
	if req.IsActive != nil {
		specialist.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateSpecialist(ctx, specialist); err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar especialista")
	}

	return specialist, nil
}

// resolveRate segue a ordem: percentual do serviço, percentual do especialista,
// regra COMMISSION_DEFAULT_PERCENTAGE do negócio e, por fim, zero
func (s *Service) resolveRate(ctx context.Context, input *domain.CommissionInput, specialist *domain.SpecialistProfile) (float64, error) {
	if input.ServiceID != nil {
		service, err := s.serviceRepo.GetByID(ctx, input.BusinessID, *input.ServiceID)
		if err != nil {
			return 0, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar serviço")
		}
		if service != nil && service.CommissionPercentage != nil {
			return *service.CommissionPercentage, nil
		}
	}

	if specialist.CommissionRate != nil {
		return *specialist.CommissionRate, nil
	}

	rate, err := s.rules.GetNumber(ctx, input.BusinessID, domain.RuleCommissionDefaultPercentage, 0)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao consultar percentual padrão de comissão, usando zero")
		return 0, nil
	}
	return rate, nil
}

// CalculateCommission monta a comissão sem gravá-la; usado pelos fluxos que persistem na mesma transação
func (s *Service) CalculateCommission(ctx context.Context, input *domain.CommissionInput) (*domain.CommissionDetail, error) {
	specialist, err := s.GetSpecialist(ctx, input.BusinessID, input.SpecialistID)
	if err != nil {
		return nil, err
	}

	rate, err := s.resolveRate(ctx, input, specialist)
	if err != nil {
		return nil, err
	}

	return &domain.CommissionDetail{
		ID:           utils.NewUUID(),
		BusinessID:   input.BusinessID,
		SpecialistID: specialist.ID,
		Source:       input.Source,
		SourceID:     input.SourceID,
		ServiceID:    input.ServiceID,
		BaseAmount:   utils.RoundWithTwoDecimalPlace(input.BaseAmount),
		Rate:         rate,
		Amount:       utils.PercentageOf(input.BaseAmount, rate),
		Status:       domain.CommissionPending,
	}, nil
}

// RecordCommission calcula e grava a comissão. Valor zero não gera registro.
func (s *Service) RecordCommission(ctx context.Context, input *domain.CommissionInput) (*domain.CommissionDetail, error) {
	detail, err := s.CalculateCommission(ctx, input)
	if err != nil {
		return nil, err
	}
	if detail.Amount <= 0 {
		return nil, nil
	}

	if err := s.repo.CreateDetail(ctx, detail); err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao registrar comissão")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id":   detail.BusinessID,
		"specialist_id": detail.SpecialistID,
		"source":        detail.Source,
		"amount":        detail.Amount,
	}).Info("Comissão registrada")

	return detail, nil
}

func (s *Service) GetSummary(ctx context.Context, businessID, specialistID string, from, to *time.Time) (*domain.CommissionSummary, error) {
	if _, err := s.GetSpecialist(ctx, businessID, specialistID); err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, NewCommissionError(ErrInvalidPeriod, apiErrors.ErrInvalidRequest, "A data inicial deve ser anterior à final")
	}

	summary, err := s.repo.Summary(ctx, businessID, specialistID, from, to)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao calcular resumo de comissões")
	}
	summary.SpecialistID = specialistID

	return summary, nil
}

func (s *Service) ListDetails(ctx context.Context, businessID string, filters domain.CommissionFilters) ([]*domain.CommissionDetail, error) {
	details, err := s.repo.ListDetails(ctx, businessID, filters)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar comissões")
	}
	return details, nil
}

// CreatePaymentRequest reúne as comissões PENDING do período em uma solicitação
func (s *Service) CreatePaymentRequest(ctx context.Context, req *domain.CreatePaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
	if req.PeriodFrom.IsZero() || req.PeriodTo.IsZero() || req.PeriodFrom.After(req.PeriodTo) {
		return nil, NewCommissionError(ErrInvalidPeriod, apiErrors.ErrInvalidRequest, "Informe um período válido")
	}

	if _, err := s.GetSpecialist(ctx, req.BusinessID, req.SpecialistID); err != nil {
		return nil, err
	}

	request := &domain.CommissionPaymentRequest{
		ID:           utils.NewUUID(),
		BusinessID:   req.BusinessID,
		SpecialistID: req.SpecialistID,
		PeriodFrom:   utils.StartOfDay(req.PeriodFrom),
		PeriodTo:     utils.EndOfDay(req.PeriodTo),
		Status:       domain.PaymentRequestSubmitted,
		Notes:        req.Notes,
	}

	if err := s.repo.CreatePaymentRequest(ctx, request); err != nil {
		if errors.Is(err, repository.ErrNoPendingCommissions) {
			return nil, NewSpecialistError(ErrNoPendingCommissions, apiErrors.ErrNoPendingCommissions, req.SpecialistID, "")
		}
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar solicitação de pagamento")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id":   req.BusinessID,
		"specialist_id": req.SpecialistID,
		"total":         request.TotalAmount,
		"details":       request.DetailsCount,
	}).Info("Solicitação de pagamento de comissões criada")

	return request, nil
}

func (s *Service) ListPaymentRequests(ctx context.Context, businessID string, specialistID *string, status *domain.PaymentRequestStatus) ([]*domain.CommissionPaymentRequest, error) {
	requests, err := s.repo.ListPaymentRequests(ctx, businessID, specialistID, status)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar solicitações de pagamento")
	}
	return requests, nil
}

func (s *Service) ApprovePaymentRequest(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
	return s.review(ctx, req, domain.PaymentRequestSubmitted, domain.PaymentRequestApproved, domain.CommissionRequested)
}

// RejectPaymentRequest devolve as comissões da solicitação para PENDING
func (s *Service) RejectPaymentRequest(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
	return s.review(ctx, req, domain.PaymentRequestSubmitted, domain.PaymentRequestRejected, domain.CommissionPending)
}

func (s *Service) MarkPaymentRequestPaid(ctx context.Context, req *domain.ReviewPaymentRequestRequest) (*domain.CommissionPaymentRequest, error) {
	return s.review(ctx, req, domain.PaymentRequestApproved, domain.PaymentRequestPaid, domain.CommissionPaid)
}

func (s *Service) review(ctx context.Context, req *domain.ReviewPaymentRequestRequest, from, to domain.PaymentRequestStatus, detailStatus domain.CommissionStatus) (*domain.CommissionPaymentRequest, error) {
	request, err := s.repo.GetPaymentRequest(ctx, req.BusinessID, req.RequestID)
	if err != nil {
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar solicitação de pagamento")
	}
	if request == nil {
		return nil, NewCommissionError(ErrPaymentRequestNotFound, apiErrors.ErrPaymentRequestNotFound, "")
	}
	if request.Status != from {
		return nil, NewCommissionError(ErrInvalidRequestState, apiErrors.ErrInvalidPaymentRequestState,
			"A solicitação está "+string(request.Status)+" e precisa estar "+string(from))
	}

	reviewedAt := s.now()
	reviewer := req.ReviewerID
	request.Status = to
	request.ReviewedBy = &reviewer
	request.ReviewedAt = &reviewedAt
	if req.PaymentMethod != nil {
		request.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		request.Notes = req.Notes
	}

	if err := s.repo.ReviewPaymentRequest(ctx, request, from, detailStatus); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewCommissionError(ErrInvalidRequestState, apiErrors.ErrInvalidPaymentRequestState, "A solicitação foi alterada por outra operação")
		}
		return nil, NewCommissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar solicitação de pagamento")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": req.BusinessID,
		"request_id":  request.ID,
		"status":      to,
	}).Info("Solicitação de pagamento revisada")

	return request, nil
}
