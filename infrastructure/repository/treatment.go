package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const (
	treatmentPlansTable    = "treatment_plans"
	treatmentSessionsTable = "treatment_sessions"
)

var planColumns = []string{
	"tp.id", "tp.business_id", "tp.client_id", "tp.service_id", "sv.name", "tp.specialist_id", "tp.status",
	"tp.plan_type", "tp.total_sessions", "tp.completed_sessions", "tp.total_price", "tp.paid_amount",
	"tp.payment_plan", "tp.start_date", "tp.expected_end_date", "tp.actual_end_date", "tp.notes",
	"tp.created_by", "tp.created_at", "tp.updated_at",
}

var sessionColumns = []string{
	"id", "plan_id", "business_id", "session_number", "status", "scheduled_at", "completed_at",
	"specialist_id", "price", "paid", "paid_at", "notes", "reminder_sent", "created_at", "updated_at",
}

type TreatmentRepository interface {
	CreatePlan(ctx context.Context, plan *domain.TreatmentPlan, sessions []*domain.TreatmentSession) error
	GetPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error)
	ListPlans(ctx context.Context, businessID string, filters domain.TreatmentPlanFilters) ([]*domain.TreatmentPlan, error)
	GetSessions(ctx context.Context, planID string) ([]*domain.TreatmentSession, error)
	GetSession(ctx context.Context, businessID, id string) (*domain.TreatmentSession, error)
	UpdateSession(ctx context.Context, session *domain.TreatmentSession) error
	CompleteSession(ctx context.Context, session *domain.TreatmentSession, plan *domain.TreatmentPlan, commission *domain.CommissionDetail) error
	UpdatePlanStatus(ctx context.Context, plan *domain.TreatmentPlan, from domain.TreatmentPlanStatus) error
	CancelPlan(ctx context.Context, plan *domain.TreatmentPlan, from domain.TreatmentPlanStatus) error
	RegisterPayment(ctx context.Context, plan *domain.TreatmentPlan, amount float64, sessionID *string) error
	ListPendingReminders(ctx context.Context, from, to time.Time) ([]*domain.SessionReminder, error)
	MarkReminderSent(ctx context.Context, sessionID string) error
}

type treatmentRepository struct {
	conn postgres.Conn
}

func NewTreatmentRepository(conn postgres.Conn) TreatmentRepository {
	return &treatmentRepository{conn: conn}
}

// CreatePlan grava o plano e todas as sessões pendentes numa única transação
func (r *treatmentRepository) CreatePlan(ctx context.Context, plan *domain.TreatmentPlan, sessions []*domain.TreatmentSession) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.
			Insert(treatmentPlansTable).
			Columns("id", "business_id", "client_id", "service_id", "specialist_id", "status", "plan_type",
				"total_sessions", "completed_sessions", "total_price", "paid_amount", "payment_plan",
				"start_date", "expected_end_date", "notes", "created_by").
			Values(plan.ID, plan.BusinessID, plan.ClientID, plan.ServiceID, plan.SpecialistID, plan.Status, plan.PlanType,
				plan.TotalSessions, plan.CompletedSessions, plan.TotalPrice, plan.PaidAmount, plan.PaymentPlan,
				plan.StartDate, plan.ExpectedEndDate, plan.Notes, plan.CreatedBy).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir insert de plano: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return err
		}

		if len(sessions) == 0 {
			return nil
		}

		sessionsBuilder := psql.
			Insert(treatmentSessionsTable).
			Columns("id", "plan_id", "business_id", "session_number", "status", "specialist_id", "price", "paid")

		for _, session := range sessions {
			sessionsBuilder = sessionsBuilder.Values(session.ID, plan.ID, plan.BusinessID, session.SessionNumber,
				session.Status, session.SpecialistID, session.Price, session.Paid)
		}

		query, args, err = sessionsBuilder.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir insert de sessões: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

func (r *treatmentRepository) GetPlan(ctx context.Context, businessID, id string) (*domain.TreatmentPlan, error) {
	query, args, err := planSelect().
		Where(squirrel.Eq{"tp.id": id, "tp.business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	plan, err := scanPlan(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar plano de tratamento: %w", err)
	}

	return plan, nil
}

func (r *treatmentRepository) ListPlans(ctx context.Context, businessID string, filters domain.TreatmentPlanFilters) ([]*domain.TreatmentPlan, error) {
	queryBuilder := planSelect().
		Where(squirrel.Eq{"tp.business_id": businessID}).
		OrderBy("tp.created_at DESC")

	if filters.ClientID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"tp.client_id": *filters.ClientID})
	}
	if filters.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"tp.status": *filters.Status})
	}
	if filters.SpecialistID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"tp.specialist_id": *filters.SpecialistID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar planos: %w", err)
	}
	defer rows.Close()

	plans := make([]*domain.TreatmentPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func planSelect() squirrel.SelectBuilder {
	return psql.
		Select(planColumns...).
		From(treatmentPlansTable + " tp").
		Join(servicesTable + " sv ON sv.id = tp.service_id")
}

func (r *treatmentRepository) GetSessions(ctx context.Context, planID string) ([]*domain.TreatmentSession, error) {
	query, args, err := psql.
		Select(sessionColumns...).
		From(treatmentSessionsTable).
		Where(squirrel.Eq{"plan_id": planID}).
		OrderBy("session_number ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar sessões: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.TreatmentSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

func (r *treatmentRepository) GetSession(ctx context.Context, businessID, id string) (*domain.TreatmentSession, error) {
	query, args, err := psql.
		Select(sessionColumns...).
		From(treatmentSessionsTable).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	session, err := scanSession(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar sessão: %w", err)
	}

	return session, nil
}

func (r *treatmentRepository) UpdateSession(ctx context.Context, s *domain.TreatmentSession) error {
	return updateSession(ctx, r.conn, s, nil)
}

func updateSession(ctx context.Context, q postgres.Queryer, s *domain.TreatmentSession, expected *domain.SessionStatus) error {
	queryBuilder := psql.
		Update(treatmentSessionsTable).
		SetMap(map[string]interface{}{
			"status":        s.Status,
			"scheduled_at":  s.ScheduledAt,
			"completed_at":  s.CompletedAt,
			"specialist_id": s.SpecialistID,
			"paid":          s.Paid,
			"paid_at":       s.PaidAt,
			"notes":         s.Notes,
			"reminder_sent": s.ReminderSent,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": s.ID})

	if expected != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *expected})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if expected != nil {
		affected, err := rowsAffected(result)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStaleState
		}
	}

	return nil
}

// CompleteSession conclui a sessão e avança o plano com a linha do plano travada.
// O progresso é incrementado no banco e o plano é concluído quando não restam sessões em aberto;
// plan recebe os valores gravados.
func (r *treatmentRepository) CompleteSession(ctx context.Context, session *domain.TreatmentSession, plan *domain.TreatmentPlan, commission *domain.CommissionDetail) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := lockPlan(ctx, tx, plan.ID, domain.PlanActive); err != nil {
			return err
		}

		scheduled := domain.SessionScheduled
		if err := updateSession(ctx, tx, session, &scheduled); err != nil {
			return err
		}

		var open int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM treatment_sessions WHERE plan_id = $1 AND status IN ($2, $3, $4)",
			plan.ID, domain.SessionPending, domain.SessionScheduled, domain.SessionMissed,
		).Scan(&open)
		if err != nil {
			return err
		}

		status := domain.PlanActive
		var endDate *time.Time
		if open == 0 {
			status = domain.PlanCompleted
			endDate = session.CompletedAt
		}

		err = tx.QueryRowContext(ctx,
			`UPDATE treatment_plans SET completed_sessions = completed_sessions + 1, status = $1,
			actual_end_date = COALESCE($2, actual_end_date), updated_at = NOW()
			WHERE id = $3 AND status = $4
			RETURNING completed_sessions, status, actual_end_date`,
			status, endDate, plan.ID, domain.PlanActive,
		).Scan(&plan.CompletedSessions, &plan.Status, &plan.ActualEndDate)
		if isNoRows(err) {
			return ErrStaleState
		}
		if err != nil {
			return err
		}

		if commission != nil {
			return insertCommission(ctx, tx, commission)
		}

		return nil
	})
}

// lockPlan trava a linha do plano até o fim da transação e confere o status esperado
func lockPlan(ctx context.Context, tx *sql.Tx, planID string, expected domain.TreatmentPlanStatus) error {
	var status domain.TreatmentPlanStatus
	err := tx.QueryRowContext(ctx, "SELECT status FROM treatment_plans WHERE id = $1 FOR UPDATE", planID).Scan(&status)
	if isNoRows(err) {
		return ErrStaleState
	}
	if err != nil {
		return err
	}
	if status != expected {
		return ErrStaleState
	}
	return nil
}

// updatePlanStatus grava a transição apenas se o plano ainda estiver no status de origem
func updatePlanStatus(ctx context.Context, q postgres.Queryer, plan *domain.TreatmentPlan, from domain.TreatmentPlanStatus) error {
	query, args, err := psql.
		Update(treatmentPlansTable).
		Set("status", plan.Status).
		Set("actual_end_date", plan.ActualEndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": plan.ID, "status": from}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleState
	}

	return nil
}

func (r *treatmentRepository) UpdatePlanStatus(ctx context.Context, plan *domain.TreatmentPlan, from domain.TreatmentPlanStatus) error {
	return updatePlanStatus(ctx, r.conn, plan, from)
}

// CancelPlan cancela o plano e as sessões que ainda não aconteceram
func (r *treatmentRepository) CancelPlan(ctx context.Context, plan *domain.TreatmentPlan, from domain.TreatmentPlanStatus) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := updatePlanStatus(ctx, tx, plan, from); err != nil {
			return err
		}

		query, args, err := psql.
			Update(treatmentSessionsTable).
			Set("status", domain.SessionCancelled).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{
				"plan_id": plan.ID,
				"status":  []domain.SessionStatus{domain.SessionPending, domain.SessionScheduled},
			}).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

// RegisterPayment soma o valor ao plano com guarda contra pagamento acima do total
func (r *treatmentRepository) RegisterPayment(ctx context.Context, plan *domain.TreatmentPlan, amount float64, sessionID *string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE treatment_plans SET paid_amount = paid_amount + $1, updated_at = NOW()
			WHERE id = $2 AND paid_amount + $1 <= total_price + 0.005
			RETURNING paid_amount`,
			amount, plan.ID,
		).Scan(&plan.PaidAmount)
		if isNoRows(err) {
			return ErrStaleState
		}
		if err != nil {
			return err
		}

		if sessionID == nil {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE treatment_sessions SET paid = TRUE, paid_at = NOW(), updated_at = NOW() WHERE id = $1 AND plan_id = $2",
			*sessionID, plan.ID,
		)
		return err
	})
}

// ListPendingReminders busca as sessões agendadas na janela informada que ainda não receberam lembrete
func (r *treatmentRepository) ListPendingReminders(ctx context.Context, from, to time.Time) ([]*domain.SessionReminder, error) {
	query, args, err := psql.
		Select(
			"ts.id", "ts.business_id", "b.name", "u.name", "u.phone", "sv.name",
			"ts.session_number", "tp.total_sessions", "ts.scheduled_at",
		).
		From(treatmentSessionsTable + " ts").
		Join(treatmentPlansTable + " tp ON tp.id = ts.plan_id").
		Join(servicesTable + " sv ON sv.id = tp.service_id").
		Join(usersTable + " u ON u.id = tp.client_id").
		Join(businessesTable + " b ON b.id = ts.business_id").
		Where(squirrel.Eq{"ts.status": domain.SessionScheduled, "ts.reminder_sent": false}).
		Where(squirrel.GtOrEq{"ts.scheduled_at": from}).
		Where(squirrel.LtOrEq{"ts.scheduled_at": to}).
		OrderBy("ts.scheduled_at ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lembretes pendentes: %w", err)
	}
	defer rows.Close()

	reminders := make([]*domain.SessionReminder, 0)
	for rows.Next() {
		var item domain.SessionReminder
		if err := rows.Scan(
			&item.SessionID,
			&item.BusinessID,
			&item.BusinessName,
			&item.ClientName,
			&item.ClientPhone,
			&item.ServiceName,
			&item.SessionNumber,
			&item.TotalSessions,
			&item.ScheduledAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, &item)
	}

	return reminders, rows.Err()
}

func (r *treatmentRepository) MarkReminderSent(ctx context.Context, sessionID string) error {
	_, err := r.conn.ExecContext(ctx,
		"UPDATE treatment_sessions SET reminder_sent = TRUE, updated_at = NOW() WHERE id = $1",
		sessionID,
	)
	return err
}

func scanPlan(row scanner) (*domain.TreatmentPlan, error) {
	var p domain.TreatmentPlan
	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.ClientID,
		&p.ServiceID,
		&p.ServiceName,
		&p.SpecialistID,
		&p.Status,
		&p.PlanType,
		&p.TotalSessions,
		&p.CompletedSessions,
		&p.TotalPrice,
		&p.PaidAmount,
		&p.PaymentPlan,
		&p.StartDate,
		&p.ExpectedEndDate,
		&p.ActualEndDate,
		&p.Notes,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSession(row scanner) (*domain.TreatmentSession, error) {
	var s domain.TreatmentSession
	err := row.Scan(
		&s.ID,
		&s.PlanID,
		&s.BusinessID,
		&s.SessionNumber,
		&s.Status,
		&s.ScheduledAt,
		&s.CompletedAt,
		&s.SpecialistID,
		&s.Price,
		&s.Paid,
		&s.PaidAt,
		&s.Notes,
		&s.ReminderSent,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
