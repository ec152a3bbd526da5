package cashregister

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type CashRegisterService interface {
	OpenShift(ctx context.Context, req *domain.OpenShiftRequest) (*domain.CashRegisterShift, error)
	GetActiveShift(ctx context.Context, businessID string, userID int) (*domain.CashRegisterShift, error)
	GetShiftSummary(ctx context.Context, businessID, shiftID string) (*domain.ShiftSummary, error)
	CloseShift(ctx context.Context, req *domain.CloseShiftRequest) (*domain.ShiftSummary, error)
	ListShifts(ctx context.Context, businessID string, filters domain.ShiftFilters) (*domain.Page[*domain.CashRegisterShift], error)
}

type Service struct {
	repo repository.CashRegisterRepository
	now  func() time.Time
}

func NewService(repo repository.CashRegisterRepository) CashRegisterService {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) OpenShift(ctx context.Context, req *domain.OpenShiftRequest) (*domain.CashRegisterShift, error) {
	if req.OpeningBalance < 0 {
		return nil, NewShiftError(ErrInvalidBalance, apiErrors.ErrInvalidBalance, "O saldo de abertura não pode ser negativo")
	}

	active, err := s.repo.GetActive(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar turno ativo")
	}
	if active != nil {
		return nil, NewShiftErrorWithID(ErrShiftAlreadyOpen, apiErrors.ErrShiftAlreadyOpen, active.ID, "Feche o turno "+active.ShiftNumber+" antes de abrir outro")
	}

	number, err := utils.GenerateCode("C", 6)
	if err != nil {
		return nil, NewShiftError(ErrGenerateNumber, apiErrors.ErrInternalServer, "")
	}

	shift := &domain.CashRegisterShift{
		ID:             utils.NewUUID(),
		BusinessID:     req.BusinessID,
		UserID:         req.UserID,
		ShiftNumber:    number,
		Status:         domain.ShiftOpen,
		OpenedAt:       s.now(),
		OpeningBalance: utils.RoundWithTwoDecimalPlace(req.OpeningBalance),
		OpeningNotes:   req.OpeningNotes,
	}

	if err := s.repo.Open(ctx, shift); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewShiftError(ErrShiftAlreadyOpen, apiErrors.ErrShiftAlreadyOpen, "Já existe um turno aberto para o usuário")
		}
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao abrir turno")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id":  req.BusinessID,
		"user_id":      req.UserID,
		"shift_number": shift.ShiftNumber,
	}).Info("Turno de caixa aberto")

	return shift, nil
}

func (s *Service) GetActiveShift(ctx context.Context, businessID string, userID int) (*domain.CashRegisterShift, error) {
	shift, err := s.repo.GetActive(ctx, businessID, userID)
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar turno ativo")
	}
	if shift == nil {
		return nil, NewShiftError(ErrShiftNotFound, apiErrors.ErrShiftNotFound, "Nenhum turno aberto")
	}
	return shift, nil
}

// GetShiftSummary agrupa as vendas do turno por forma de pagamento.
// O caixa esperado considera apenas o saldo de abertura e as vendas em dinheiro.
func (s *Service) GetShiftSummary(ctx context.Context, businessID, shiftID string) (*domain.ShiftSummary, error) {
	shift, err := s.repo.GetByID(ctx, businessID, shiftID)
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar turno")
	}
	if shift == nil {
		return nil, NewShiftErrorWithID(ErrShiftNotFound, apiErrors.ErrShiftNotFound, shiftID, "Turno não encontrado")
	}

	return s.summarize(ctx, shift)
}

func (s *Service) summarize(ctx context.Context, shift *domain.CashRegisterShift) (*domain.ShiftSummary, error) {
	byMethod, err := s.repo.SalesByPaymentMethod(ctx, shift.BusinessID, shift.ID)
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao calcular vendas do turno")
	}

	summary := &domain.ShiftSummary{
		Shift:           shift,
		ByPaymentMethod: byMethod,
	}
	for _, m := range byMethod {
		summary.SalesCount += m.Count
		summary.SalesTotal += m.Total
		if m.PaymentMethodType == domain.PaymentMethodCash {
			summary.CashSales += m.Total
		}
	}
	summary.SalesTotal = utils.RoundWithTwoDecimalPlace(summary.SalesTotal)
	summary.CashSales = utils.RoundWithTwoDecimalPlace(summary.CashSales)
	summary.ExpectedCash = utils.RoundWithTwoDecimalPlace(shift.OpeningBalance + summary.CashSales)

	return summary, nil
}

func (s *Service) CloseShift(ctx context.Context, req *domain.CloseShiftRequest) (*domain.ShiftSummary, error) {
	if req.ActualClosingBalance < 0 {
		return nil, NewShiftError(ErrInvalidBalance, apiErrors.ErrInvalidBalance, "O saldo de fechamento não pode ser negativo")
	}

	var (
		shift *domain.CashRegisterShift
		err   error
	)
	if req.ShiftID != "" {
		shift, err = s.repo.GetByID(ctx, req.BusinessID, req.ShiftID)
	} else {
		shift, err = s.repo.GetActive(ctx, req.BusinessID, req.UserID)
	}
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar turno")
	}
	if shift == nil {
		return nil, NewShiftErrorWithID(ErrShiftNotFound, apiErrors.ErrShiftNotFound, req.ShiftID, "Turno não encontrado")
	}
	if shift.Status != domain.ShiftOpen {
		return nil, NewShiftErrorWithID(ErrShiftClosed, apiErrors.ErrShiftClosed, shift.ID, "O turno já foi fechado")
	}

	summary, err := s.summarize(ctx, shift)
	if err != nil {
		return nil, err
	}

	closedAt := s.now()
	expected := summary.ExpectedCash
	actual := utils.RoundWithTwoDecimalPlace(req.ActualClosingBalance)
	difference := utils.RoundWithTwoDecimalPlace(actual - expected)

	shift.ClosedAt = &closedAt
	shift.ExpectedClosingBalance = &expected
	shift.ActualClosingBalance = &actual
	shift.Difference = &difference
	shift.ClosingNotes = req.ClosingNotes

	if err := s.repo.Close(ctx, shift); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewShiftErrorWithID(ErrShiftClosed, apiErrors.ErrShiftClosed, shift.ID, "O turno já foi fechado")
		}
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao fechar turno")
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"business_id":  shift.BusinessID,
		"shift_number": shift.ShiftNumber,
		"difference":   difference,
	})
	if difference != 0 {
		logger.Warn("Turno fechado com diferença de caixa")
	} else {
		logger.Info("Turno de caixa fechado")
	}

	return summary, nil
}

func (s *Service) ListShifts(ctx context.Context, businessID string, filters domain.ShiftFilters) (*domain.Page[*domain.CashRegisterShift], error) {
	filters.Normalize()

	shifts, total, err := s.repo.List(ctx, businessID, filters)
	if err != nil {
		return nil, NewShiftError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar turnos")
	}

	return &domain.Page[*domain.CashRegisterShift]{
		Items:    shifts,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}
