package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const (
	specialistProfilesTable = "specialist_profiles"
	commissionDetailsTable  = "commission_details"
	commissionRequestsTable = "commission_payment_requests"
)

// ErrNoPendingCommissions indica que não há comissões pendentes no período pedido
var ErrNoPendingCommissions = errors.New("nenhuma comissão pendente no período")

var specialistColumns = []string{
	"sp.id", "sp.business_id", "sp.user_id", "u.name", "sp.specialization", "sp.commission_rate",
	"sp.is_active", "sp.created_at", "sp.updated_at",
}

var commissionColumns = []string{
	"id", "business_id", "specialist_id", "source", "source_id", "service_id", "base_amount",
	"rate", "amount", "status", "payment_request_id", "created_at", "updated_at",
}

var paymentRequestColumns = []string{
	"r.id", "r.business_id", "r.specialist_id", "r.period_from", "r.period_to", "r.total_amount",
	"r.status", "r.reviewed_by", "r.reviewed_at", "r.payment_method", "r.notes",
	"(SELECT COUNT(*) FROM commission_details cd WHERE cd.payment_request_id = r.id)",
	"r.created_at", "r.updated_at",
}

type CommissionRepository interface {
	CreateSpecialist(ctx context.Context, specialist *domain.SpecialistProfile) error
	GetSpecialist(ctx context.Context, businessID, id string) (*domain.SpecialistProfile, error)
	GetSpecialistByUser(ctx context.Context, businessID string, userID int) (*domain.SpecialistProfile, error)
	ListSpecialists(ctx context.Context, businessID string, onlyActive bool) ([]*domain.SpecialistProfile, error)
	UpdateSpecialist(ctx context.Context, specialist *domain.SpecialistProfile) error
	CreateDetail(ctx context.Context, detail *domain.CommissionDetail) error
	ListDetails(ctx context.Context, businessID string, filters domain.CommissionFilters) ([]*domain.CommissionDetail, error)
	Summary(ctx context.Context, businessID, specialistID string, from, to *time.Time) (*domain.CommissionSummary, error)
	CreatePaymentRequest(ctx context.Context, request *domain.CommissionPaymentRequest) error
	GetPaymentRequest(ctx context.Context, businessID, id string) (*domain.CommissionPaymentRequest, error)
	ListPaymentRequests(ctx context.Context, businessID string, specialistID *string, status *domain.PaymentRequestStatus) ([]*domain.CommissionPaymentRequest, error)
	ReviewPaymentRequest(ctx context.Context, request *domain.CommissionPaymentRequest, from domain.PaymentRequestStatus, detailStatus domain.CommissionStatus) error
}

type commissionRepository struct {
	conn postgres.Conn
}

func NewCommissionRepository(conn postgres.Conn) CommissionRepository {
	return &commissionRepository{conn: conn}
}

func (r *commissionRepository) CreateSpecialist(ctx context.Context, sp *domain.SpecialistProfile) error {
	query, args, err := psql.
		Insert(specialistProfilesTable).
		Columns("id", "business_id", "user_id", "specialization", "commission_rate", "is_active").
		Values(sp.ID, sp.BusinessID, sp.UserID, sp.Specialization, sp.CommissionRate, sp.IsActive).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *commissionRepository) GetSpecialist(ctx context.Context, businessID, id string) (*domain.SpecialistProfile, error) {
	return r.getSpecialist(ctx, squirrel.Eq{"sp.id": id, "sp.business_id": businessID})
}

func (r *commissionRepository) GetSpecialistByUser(ctx context.Context, businessID string, userID int) (*domain.SpecialistProfile, error) {
	return r.getSpecialist(ctx, squirrel.Eq{"sp.user_id": userID, "sp.business_id": businessID})
}

func (r *commissionRepository) getSpecialist(ctx context.Context, where squirrel.Eq) (*domain.SpecialistProfile, error) {
	query, args, err := specialistSelect().Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	specialist, err := scanSpecialist(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar especialista: %w", err)
	}

	return specialist, nil
}

func (r *commissionRepository) ListSpecialists(ctx context.Context, businessID string, onlyActive bool) ([]*domain.SpecialistProfile, error) {
	queryBuilder := specialistSelect().
		Where(squirrel.Eq{"sp.business_id": businessID}).
		OrderBy("u.name ASC")

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"sp.is_active": true})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar especialistas: %w", err)
	}
	defer rows.Close()

	specialists := make([]*domain.SpecialistProfile, 0)
	for rows.Next() {
		specialist, err := scanSpecialist(rows)
		if err != nil {
			return nil, err
		}
		specialists = append(specialists, specialist)
	}

	return specialists, rows.Err()
}

func specialistSelect() squirrel.SelectBuilder {
	return psql.
		Select(specialistColumns...).
		From(specialistProfilesTable + " sp").
		Join(usersTable + " u ON u.id = sp.user_id")
}

func (r *commissionRepository) UpdateSpecialist(ctx context.Context, sp *domain.SpecialistProfile) error {
	query, args, err := psql.
		Update(specialistProfilesTable).
		Set("specialization", sp.Specialization).
		Set("commission_rate", sp.CommissionRate).
		Set("is_active", sp.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sp.ID, "business_id": sp.BusinessID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *commissionRepository) CreateDetail(ctx context.Context, detail *domain.CommissionDetail) error {
	return insertCommission(ctx, r.conn, detail)
}

// insertCommission ignora duplicidade por origem para que reprocessamentos não gerem comissão em dobro
func insertCommission(ctx context.Context, q postgres.Queryer, c *domain.CommissionDetail) error {
	query, args, err := psql.
		Insert(commissionDetailsTable).
		Columns("id", "business_id", "specialist_id", "source", "source_id", "service_id",
			"base_amount", "rate", "amount", "status").
		Values(c.ID, c.BusinessID, c.SpecialistID, c.Source, c.SourceID, c.ServiceID,
			c.BaseAmount, c.Rate, c.Amount, c.Status).
		Suffix("ON CONFLICT (source, source_id, specialist_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de comissão: %w", err)
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}

func cancelCommissionsBySource(ctx context.Context, q postgres.Queryer, source domain.CommissionSource, sourceID string) error {
	query, args, err := psql.
		Update(commissionDetailsTable).
		Set("status", domain.CommissionCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"source": source, "source_id": sourceID, "status": domain.CommissionPending}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}

func (r *commissionRepository) ListDetails(ctx context.Context, businessID string, filters domain.CommissionFilters) ([]*domain.CommissionDetail, error) {
	queryBuilder := psql.
		Select(commissionColumns...).
		From(commissionDetailsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC")

	if filters.SpecialistID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"specialist_id": *filters.SpecialistID})
	}
	if filters.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *filters.Status})
	}
	if filters.StartDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *filters.StartDate})
	}
	if filters.EndDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"created_at": *filters.EndDate})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar comissões: %w", err)
	}
	defer rows.Close()

	details := make([]*domain.CommissionDetail, 0)
	for rows.Next() {
		var d domain.CommissionDetail
		if err := rows.Scan(
			&d.ID,
			&d.BusinessID,
			&d.SpecialistID,
			&d.Source,
			&d.SourceID,
			&d.ServiceID,
			&d.BaseAmount,
			&d.Rate,
			&d.Amount,
			&d.Status,
			&d.PaymentRequestID,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}

	return details, rows.Err()
}

func (r *commissionRepository) Summary(ctx context.Context, businessID, specialistID string, from, to *time.Time) (*domain.CommissionSummary, error) {
	queryBuilder := psql.
		Select(
			"COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0)",
			"COALESCE(SUM(amount) FILTER (WHERE status = 'REQUESTED'), 0)",
			"COALESCE(SUM(amount) FILTER (WHERE status = 'PAID'), 0)",
			"COUNT(*) FILTER (WHERE status = 'PENDING')",
		).
		From(commissionDetailsTable).
		Where(squirrel.Eq{"business_id": businessID, "specialist_id": specialistID})

	if from != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"created_at": *to})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	summary := &domain.CommissionSummary{SpecialistID: specialistID}
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&summary.PendingTotal,
		&summary.RequestedTotal,
		&summary.PaidTotal,
		&summary.PendingCount,
	); err != nil {
		return nil, fmt.Errorf("erro ao consolidar comissões: %w", err)
	}

	return summary, nil
}

// CreatePaymentRequest grava a solicitação e vincula a ela as comissões pendentes do período
func (r *commissionRepository) CreatePaymentRequest(ctx context.Context, req *domain.CommissionPaymentRequest) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.
			Insert(commissionRequestsTable).
			Columns("id", "business_id", "specialist_id", "period_from", "period_to", "total_amount", "status", "notes").
			Values(req.ID, req.BusinessID, req.SpecialistID, req.PeriodFrom, req.PeriodTo, 0, req.Status, req.Notes).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
			return err
		}

		query, args, err = psql.
			Update(commissionDetailsTable).
			Set("status", domain.CommissionRequested).
			Set("payment_request_id", req.ID).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{
				"business_id":   req.BusinessID,
				"specialist_id": req.SpecialistID,
				"status":        domain.CommissionPending,
			}).
			Where(squirrel.GtOrEq{"created_at": req.PeriodFrom}).
			Where(squirrel.LtOrEq{"created_at": req.PeriodTo}).
			Suffix("RETURNING amount").
			ToSql()
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}

		var (
			total float64
			count int
		)
		for rows.Next() {
			var amount float64
			if err := rows.Scan(&amount); err != nil {
				rows.Close()
				return err
			}
			total += amount
			count++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		if count == 0 {
			return ErrNoPendingCommissions
		}
		total = utils.RoundWithTwoDecimalPlace(total)

		_, err = tx.ExecContext(ctx,
			"UPDATE commission_payment_requests SET total_amount = $1 WHERE id = $2",
			total, req.ID,
		)
		if err != nil {
			return err
		}

		req.TotalAmount = total
		req.DetailsCount = count
		return nil
	})
}

func (r *commissionRepository) GetPaymentRequest(ctx context.Context, businessID, id string) (*domain.CommissionPaymentRequest, error) {
	query, args, err := psql.
		Select(paymentRequestColumns...).
		From(commissionRequestsTable + " r").
		Where(squirrel.Eq{"r.id": id, "r.business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	request, err := scanPaymentRequest(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar solicitação de pagamento: %w", err)
	}

	return request, nil
}

func (r *commissionRepository) ListPaymentRequests(ctx context.Context, businessID string, specialistID *string, status *domain.PaymentRequestStatus) ([]*domain.CommissionPaymentRequest, error) {
	queryBuilder := psql.
		Select(paymentRequestColumns...).
		From(commissionRequestsTable + " r").
		Where(squirrel.Eq{"r.business_id": businessID}).
		OrderBy("r.created_at DESC")

	if specialistID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.specialist_id": *specialistID})
	}
	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"r.status": *status})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar solicitações de pagamento: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.CommissionPaymentRequest, 0)
	for rows.Next() {
		request, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

// ReviewPaymentRequest move a solicitação a partir do status esperado e propaga o novo status às comissões vinculadas.
// Comissões que voltam para PENDING são desvinculadas da solicitação.
func (r *commissionRepository) ReviewPaymentRequest(ctx context.Context, req *domain.CommissionPaymentRequest, from domain.PaymentRequestStatus, detailStatus domain.CommissionStatus) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.
			Update(commissionRequestsTable).
			Set("status", req.Status).
			Set("reviewed_by", req.ReviewedBy).
			Set("reviewed_at", req.ReviewedAt).
			Set("payment_method", req.PaymentMethod).
			Set("notes", req.Notes).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": req.ID, "business_id": req.BusinessID, "status": from}).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
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

		detailsBuilder := psql.
			Update(commissionDetailsTable).
			Set("status", detailStatus).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"payment_request_id": req.ID})

		if detailStatus == domain.CommissionPending {
			detailsBuilder = detailsBuilder.Set("payment_request_id", nil)
		}

		query, args, err = detailsBuilder.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

func scanSpecialist(row scanner) (*domain.SpecialistProfile, error) {
	var sp domain.SpecialistProfile
	err := row.Scan(
		&sp.ID,
		&sp.BusinessID,
		&sp.UserID,
		&sp.UserName,
		&sp.Specialization,
		&sp.CommissionRate,
		&sp.IsActive,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func scanPaymentRequest(row scanner) (*domain.CommissionPaymentRequest, error) {
	var req domain.CommissionPaymentRequest
	err := row.Scan(
		&req.ID,
		&req.BusinessID,
		&req.SpecialistID,
		&req.PeriodFrom,
		&req.PeriodTo,
		&req.TotalAmount,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.PaymentMethod,
		&req.Notes,
		&req.DetailsCount,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
