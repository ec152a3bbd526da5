package treatment

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
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const paymentTolerance = 0.005

type TreatmentService interface {
	CreatePlan(ctx context.Context, req *domain.CreateTreatmentPlanRequest) (*domain.TreatmentPlan, error)
	GetPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error)
	ListPlans(ctx context.Context, businessID string, filters domain.TreatmentPlanFilters) ([]*domain.TreatmentPlan, error)
	ScheduleSession(ctx context.Context, req *domain.ScheduleSessionRequest) (*domain.TreatmentSession, error)
	CompleteSession(ctx context.Context, businessID, sessionID string, notes *string) (*domain.TreatmentPlan, error)
	MarkMissed(ctx context.Context, businessID, sessionID string) (*domain.TreatmentSession, error)
	CancelSession(ctx context.Context, businessID, sessionID string) (*domain.TreatmentSession, error)
	RegisterPayment(ctx context.Context, req *domain.RegisterTreatmentPaymentRequest) (*domain.TreatmentPlan, error)
	PausePlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error)
	ResumePlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error)
	CancelPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error)
}

type Service struct {
	repo        repository.TreatmentRepository
	serviceRepo repository.ServiceRepository
	commissions commission.CommissionService
	rules       rules.Evaluator
	cache       cache.Cache
	now         func() time.Time
}

func NewService(
	repo repository.TreatmentRepository,
	serviceRepo repository.ServiceRepository,
	commissions commission.CommissionService,
	evaluator rules.Evaluator,
	cacheStore cache.Cache,
) TreatmentService {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		commissions: commissions,
		rules:       evaluator,
		cache:       cacheStore,
		now:         time.Now,
	}
}

// CreatePlan abre um plano a partir de um serviço do tipo pacote e cria todas as sessões pendentes
func (s *Service) CreatePlan(ctx context.Context, req *domain.CreateTreatmentPlanRequest) (*domain.TreatmentPlan, error) {
	if req.ClientID <= 0 || req.ServiceID == "" {
		return nil, NewTreatmentError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "Informe cliente e serviço")
	}
	if req.PaymentPlan == "" {
		req.PaymentPlan = domain.PaymentPerSession
	}
	if !req.PaymentPlan.IsValid() {
		return nil, NewTreatmentError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "Plano de pagamento inválido")
	}

	service, err := s.serviceRepo.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar serviço")
	}
	if service == nil || !service.IsActive || !service.IsPackage {
		return nil, NewTreatmentErrorWithID(ErrServiceNotPackage, apiErrors.ErrServiceNotPackage, req.ServiceID, "")
	}

	total := service.TotalSessions()
	if total <= 0 {
		return nil, NewTreatmentErrorWithID(ErrServiceNotPackage, apiErrors.ErrServiceNotPackage, service.ID, "O pacote não possui sessões configuradas")
	}

	price := utils.RoundWithTwoDecimalPlace(service.TotalPackagePrice())
	if req.InitialPay < 0 || req.InitialPay > price+paymentTolerance {
		return nil, NewTreatmentError(ErrInvalidPayment, apiErrors.ErrInvalidTreatmentPayment, "O pagamento inicial deve estar entre zero e o valor do plano")
	}
	if req.PaymentPlan == domain.PaymentFullUpfront && utils.RoundWithTwoDecimalPlace(req.InitialPay) != price {
		return nil, NewTreatmentError(ErrInvalidPayment, apiErrors.ErrInvalidTreatmentPayment, "Pagamento à vista exige o valor integral do plano")
	}

	start := req.StartDate
	if start.IsZero() {
		start = s.now()
	}
	expectedEnd := start.AddDate(0, 0, service.SessionIntervalDays*(total-1))

	plan := &domain.TreatmentPlan{
		ID:              utils.NewUUID(),
		BusinessID:      req.BusinessID,
		ClientID:        req.ClientID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		SpecialistID:    req.SpecialistID,
		Status:          domain.PlanActive,
		PlanType:        service.PackageType,
		TotalSessions:   total,
		TotalPrice:      price,
		PaidAmount:      utils.RoundWithTwoDecimalPlace(req.InitialPay),
		PaymentPlan:     req.PaymentPlan,
		StartDate:       start,
		ExpectedEndDate: &expectedEnd,
		Notes:           req.Notes,
		CreatedBy:       req.CreatedBy,
	}

	sessions := buildSessions(plan)
	if err := s.repo.CreatePlan(ctx, plan, sessions); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar plano de tratamento")
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar plano de tratamento")
	}
	plan.Sessions = sessions

	s.invalidateDashboard(ctx, plan.BusinessID)

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": plan.BusinessID,
		"plan_id":     plan.ID,
		"sessions":    total,
		"total_price": price,
	}).Info("Plano de tratamento criado")

	return plan, nil
}

// buildSessions divide o valor do plano entre as sessões; a última absorve a diferença de arredondamento
func buildSessions(plan *domain.TreatmentPlan) []*domain.TreatmentSession {
	perSession := utils.RoundWithTwoDecimalPlace(plan.TotalPrice / float64(plan.TotalSessions))
	sessions := make([]*domain.TreatmentSession, 0, plan.TotalSessions)

	for i := 1; i <= plan.TotalSessions; i++ {
		price := perSession
		if i == plan.TotalSessions {
			price = utils.RoundWithTwoDecimalPlace(plan.TotalPrice - perSession*float64(plan.TotalSessions-1))
		}
		sessions = append(sessions, &domain.TreatmentSession{
			ID:            utils.NewUUID(),
			PlanID:        plan.ID,
			BusinessID:    plan.BusinessID,
			SessionNumber: i,
			Status:        domain.SessionPending,
			SpecialistID:  plan.SpecialistID,
			Price:         price,
		})
	}

	return sessions
}

func (s *Service) GetPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	plan, err := s.getPlan(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	sessions, err := s.repo.GetSessions(ctx, plan.ID)
	if err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar sessões do plano")
	}
	plan.Sessions = sessions

	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context, businessID string, filters domain.TreatmentPlanFilters) ([]*domain.TreatmentPlan, error) {
	plans, err := s.repo.ListPlans(ctx, businessID, filters)
	if err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar planos de tratamento")
	}

	for _, plan := range plans {
		plan.Progress = utils.RoundWithTwoDecimalPlace(plan.ProgressPercentage())
	}

	return plans, nil
}

// ScheduleSession agenda (ou reagenda) uma sessão respeitando a ordem e o intervalo do pacote
func (s *Service) ScheduleSession(ctx context.Context, req *domain.ScheduleSessionRequest) (*domain.TreatmentSession, error) {
	if req.ScheduledAt.IsZero() {
		return nil, NewTreatmentError(ErrInvalidRequest, apiErrors.ErrMissingRequiredData, "Informe a data da sessão")
	}

	session, plan, err := s.sessionWithPlan(ctx, req.BusinessID, req.SessionID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanActive {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "O plano não está ativo")
	}
	switch session.Status {
	case domain.SessionPending, domain.SessionScheduled, domain.SessionMissed:
	default:
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, session.ID, "A sessão não pode ser agendada")
	}

	if session.SessionNumber > 1 {
		if err := s.checkInterval(ctx, plan, session, req.ScheduledAt); err != nil {
			return nil, err
		}
	}

	scheduledAt := req.ScheduledAt
	session.Status = domain.SessionScheduled
	session.ScheduledAt = &scheduledAt
	session.ReminderSent = false
	if req.SpecialistID != nil {
		session.SpecialistID = req.SpecialistID
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao agendar sessão")
	}

	s.invalidateDashboard(ctx, plan.BusinessID)

	return session, nil
}

// checkInterval exige que a sessão anterior (ignorando canceladas) esteja agendada ou concluída
// e que a nova data respeite session_interval_days a partir dela
func (s *Service) checkInterval(ctx context.Context, plan *domain.TreatmentPlan, session *domain.TreatmentSession, at time.Time) error {
	sessions, err := s.repo.GetSessions(ctx, plan.ID)
	if err != nil {
		return NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar sessões do plano")
	}

	var previous *domain.TreatmentSession
	for _, candidate := range sessions {
		if candidate.SessionNumber >= session.SessionNumber || candidate.Status == domain.SessionCancelled {
			continue
		}
		if previous == nil || candidate.SessionNumber > previous.SessionNumber {
			previous = candidate
		}
	}
	if previous == nil {
		return nil
	}

	var reference *time.Time
	switch previous.Status {
	case domain.SessionCompleted:
		reference = previous.CompletedAt
		if reference == nil {
			reference = previous.ScheduledAt
		}
	case domain.SessionScheduled:
		reference = previous.ScheduledAt
	}
	if reference == nil {
		return NewTreatmentErrorWithID(ErrSessionInterval, apiErrors.ErrSessionInterval, previous.ID, "Agende a sessão anterior primeiro")
	}

	interval, err := s.intervalDays(ctx, plan)
	if err != nil {
		return err
	}

	earliest := reference.AddDate(0, 0, interval)
	if at.Before(earliest) {
		return NewTreatmentErrorWithID(ErrSessionInterval, apiErrors.ErrSessionInterval, session.ID,
			"A sessão só pode ser agendada a partir de "+earliest.Format("02/01/2006"))
	}

	return nil
}

func (s *Service) intervalDays(ctx context.Context, plan *domain.TreatmentPlan) (int, error) {
	service, err := s.serviceRepo.GetByID(ctx, plan.BusinessID, plan.ServiceID)
	if err != nil {
		return 0, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar serviço do plano")
	}
	if service == nil {
		return 0, nil
	}
	return service.SessionIntervalDays, nil
}

// CompleteSession conclui a sessão e gera a comissão do especialista. O progresso e a conclusão
// do plano são decididos pelo repositório com o plano travado.
func (s *Service) CompleteSession(ctx context.Context, businessID, sessionID string, notes *string) (*domain.TreatmentPlan, error) {
	session, plan, err := s.sessionWithPlan(ctx, businessID, sessionID)
	if err != nil {
		return nil, err
	}
	if plan.Status != domain.PlanActive || session.Status != domain.SessionScheduled {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, session.ID, "Somente sessões agendadas de planos ativos podem ser concluídas")
	}

	now := s.now()
	session.Status = domain.SessionCompleted
	session.CompletedAt = &now
	if notes != nil {
		session.Notes = notes
	}

	detail, err := s.sessionCommission(ctx, plan, session)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CompleteSession(ctx, session, plan, detail); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, session.ID, "A sessão foi alterada por outra operação")
		}
		log.ForContext(ctx).WithError(err).Error("Erro ao concluir sessão")
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao concluir sessão")
	}

	s.invalidateDashboard(ctx, plan.BusinessID)
	plan.Progress = utils.RoundWithTwoDecimalPlace(plan.ProgressPercentage())

	log.ForContext(ctx).WithFields(log.Fields{
		"plan_id":        plan.ID,
		"session_number": session.SessionNumber,
		"plan_status":    plan.Status,
	}).Info("Sessão de tratamento concluída")

	return plan, nil
}

func (s *Service) sessionCommission(ctx context.Context, plan *domain.TreatmentPlan, session *domain.TreatmentSession) (*domain.CommissionDetail, error) {
	specialistID := session.SpecialistID
	if specialistID == nil {
		specialistID = plan.SpecialistID
	}
	if specialistID == nil || session.Price <= 0 {
		return nil, nil
	}

	serviceID := plan.ServiceID
	detail, err := s.commissions.CalculateCommission(ctx, &domain.CommissionInput{
		BusinessID:   plan.BusinessID,
		SpecialistID: *specialistID,
		Source:       domain.CommissionSourceTreatmentSession,
		SourceID:     session.ID,
		ServiceID:    &serviceID,
		BaseAmount:   session.Price,
	})
	if err != nil {
		return nil, err
	}
	if detail.Amount <= 0 {
		return nil, nil
	}

	return detail, nil
}

func (s *Service) MarkMissed(ctx context.Context, businessID, sessionID string) (*domain.TreatmentSession, error) {
	session, err := s.getSession(ctx, businessID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionScheduled {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, session.ID, "Somente sessões agendadas podem ser marcadas como falta")
	}

	session.Status = domain.SessionMissed
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar sessão")
	}

	return session, nil
}

// CancelSession desmarca a sessão. Com TREATMENT_ALLOW_RESCHEDULE ligada ela volta a ficar pendente,
// senão é cancelada em definitivo.
func (s *Service) CancelSession(ctx context.Context, businessID, sessionID string) (*domain.TreatmentSession, error) {
	session, err := s.getSession(ctx, businessID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionScheduled && session.Status != domain.SessionPending {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, session.ID, "A sessão não pode ser cancelada")
	}

	allowReschedule, err := s.rules.GetBool(ctx, businessID, domain.RuleTreatmentAllowReschedule, true)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao consultar regra de reagendamento, permitindo")
		allowReschedule = true
	}

	if allowReschedule {
		session.Status = domain.SessionPending
		session.ScheduledAt = nil
		session.ReminderSent = false
	} else {
		session.Status = domain.SessionCancelled
	}

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cancelar sessão")
	}

	s.invalidateDashboard(ctx, businessID)

	return session, nil
}

// RegisterPayment soma um pagamento ao plano sem ultrapassar o valor total
func (s *Service) RegisterPayment(ctx context.Context, req *domain.RegisterTreatmentPaymentRequest) (*domain.TreatmentPlan, error) {
	if req.Amount <= 0 {
		return nil, NewTreatmentError(ErrInvalidPayment, apiErrors.ErrInvalidTreatmentPayment, "O valor do pagamento deve ser maior que zero")
	}

	plan, err := s.getPlan(ctx, req.BusinessID, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.Status == domain.PlanCancelled {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "O plano está cancelado")
	}

	amount := utils.RoundWithTwoDecimalPlace(req.Amount)
	if amount > plan.RemainingBalance()+paymentTolerance {
		return nil, NewTreatmentErrorWithID(ErrInvalidPayment, apiErrors.ErrInvalidTreatmentPayment, plan.ID, "O pagamento ultrapassa o saldo do plano")
	}

	var sessionID *string
	if req.SessionID != nil && plan.PaymentPlan == domain.PaymentPerSession {
		session, err := s.getSession(ctx, req.BusinessID, *req.SessionID)
		if err != nil {
			return nil, err
		}
		if session.PlanID != plan.ID {
			return nil, NewTreatmentErrorWithID(ErrSessionNotFound, apiErrors.ErrTreatmentSessionNotFound, session.ID, "A sessão não pertence ao plano")
		}
		sessionID = &session.ID
	}

	if err := s.repo.RegisterPayment(ctx, plan, amount, sessionID); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewTreatmentErrorWithID(ErrInvalidPayment, apiErrors.ErrInvalidTreatmentPayment, plan.ID, "O pagamento ultrapassa o saldo do plano")
		}
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao registrar pagamento")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"plan_id":     plan.ID,
		"amount":      amount,
		"paid_amount": plan.PaidAmount,
	}).Info("Pagamento de plano registrado")

	return plan, nil
}

func (s *Service) PausePlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	return s.transition(ctx, businessID, id, domain.PlanActive, domain.PlanPaused)
}

func (s *Service) ResumePlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	return s.transition(ctx, businessID, id, domain.PlanPaused, domain.PlanActive)
}

func (s *Service) transition(ctx context.Context, businessID, id string, from, to domain.TreatmentPlanStatus) (*domain.TreatmentPlan, error) {
	plan, err := s.getPlan(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if plan.Status != from {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "")
	}

	plan.Status = to
	if err := s.repo.UpdatePlanStatus(ctx, plan, from); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "O plano foi alterado por outra operação")
		}
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar plano")
	}

	s.invalidateDashboard(ctx, businessID)

	return plan, nil
}

// CancelPlan cancela o plano e as sessões pendentes ou agendadas
func (s *Service) CancelPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	plan, err := s.getPlan(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if plan.Status == domain.PlanCompleted || plan.Status == domain.PlanCancelled {
		return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "O plano já foi encerrado")
	}

	from := plan.Status
	now := s.now()
	plan.Status = domain.PlanCancelled
	plan.ActualEndDate = &now

	if err := s.repo.CancelPlan(ctx, plan, from); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, NewTreatmentErrorWithID(ErrInvalidState, apiErrors.ErrInvalidTreatmentState, plan.ID, "O plano foi alterado por outra operação")
		}
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao cancelar plano")
	}

	s.invalidateDashboard(ctx, businessID)

	log.ForContext(ctx).WithField("plan_id", plan.ID).Info("Plano de tratamento cancelado")

	return plan, nil
}

func (s *Service) getPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	plan, err := s.repo.GetPlan(ctx, businessID, id)
	if err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar plano")
	}
	if plan == nil {
		return nil, NewTreatmentErrorWithID(ErrPlanNotFound, apiErrors.ErrTreatmentPlanNotFound, id, "")
	}
	plan.Progress = utils.RoundWithTwoDecimalPlace(plan.ProgressPercentage())
	return plan, nil
}

func (s *Service) getSession(ctx context.Context, businessID, id string) (*domain.TreatmentSession, error) {
	session, err := s.repo.GetSession(ctx, businessID, id)
	if err != nil {
		return nil, NewTreatmentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar sessão")
	}
	if session == nil {
		return nil, NewTreatmentErrorWithID(ErrSessionNotFound, apiErrors.ErrTreatmentSessionNotFound, id, "")
	}
	return session, nil
}

func (s *Service) sessionWithPlan(ctx context.Context, businessID, sessionID string) (*domain.TreatmentSession, *domain.TreatmentPlan, error) {
	session, err := s.getSession(ctx, businessID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	plan, err := s.getPlan(ctx, businessID, session.PlanID)
	if err != nil {
		return nil, nil, err
	}
	return session, plan, nil
}

func (s *Service) invalidateDashboard(ctx context.Context, businessID string) {
	if err := s.cache.Delete(ctx, cache.BusinessDashboardKey(businessID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache do dashboard")
	}
}
