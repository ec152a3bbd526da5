package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const cashRegisterShiftsTable = "cash_register_shifts"

var shiftColumns = []string{
	"id", "business_id", "user_id", "shift_number", "status", "opened_at", "closed_at",
	"opening_balance", "expected_closing_balance", "actual_closing_balance", "difference",
	"opening_notes", "closing_notes", "created_at", "updated_at",
}

type CashRegisterRepository interface {
	Open(ctx context.Context, shift *domain.CashRegisterShift) error
	GetActive(ctx context.Context, businessID string, userID int) (*domain.CashRegisterShift, error)
	GetByID(ctx context.Context, businessID, id string) (*domain.CashRegisterShift, error)
	Close(ctx context.Context, shift *domain.CashRegisterShift) error
	List(ctx context.Context, businessID string, filters domain.ShiftFilters) ([]*domain.CashRegisterShift, int, error)
	SalesByPaymentMethod(ctx context.Context, businessID, shiftID string) ([]*domain.SalesByPaymentMethod, error)
}

type cashRegisterRepository struct {
	conn postgres.Conn
}

func NewCashRegisterRepository(conn postgres.Conn) CashRegisterRepository {
	return &cashRegisterRepository{conn: conn}
}

// Open grava o turno; o índice parcial do banco garante um único turno aberto por usuário e retorna ErrDuplicated
func (r *cashRegisterRepository) Open(ctx context.Context, s *domain.CashRegisterShift) error {
	query, args, err := psql.
		Insert(cashRegisterShiftsTable).
		Columns("id", "business_id", "user_id", "shift_number", "status", "opened_at", "opening_balance", "opening_notes").
		Values(s.ID, s.BusinessID, s.UserID, s.ShiftNumber, s.Status, s.OpenedAt, s.OpeningBalance, s.OpeningNotes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *cashRegisterRepository) GetActive(ctx context.Context, businessID string, userID int) (*domain.CashRegisterShift, error) {
	return r.getOne(ctx, squirrel.Eq{"business_id": businessID, "user_id": userID, "status": domain.ShiftOpen})
}

func (r *cashRegisterRepository) GetByID(ctx context.Context, businessID, id string) (*domain.CashRegisterShift, error) {
	return r.getOne(ctx, squirrel.Eq{"business_id": businessID, "id": id})
}

func (r *cashRegisterRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.CashRegisterShift, error) {
	query, args, err := psql.
		Select(shiftColumns...).
		From(cashRegisterShiftsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	shift, err := scanShift(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar turno de caixa: %w", err)
	}

	return shift, nil
}

func (r *cashRegisterRepository) Close(ctx context.Context, s *domain.CashRegisterShift) error {
	query, args, err := psql.
		Update(cashRegisterShiftsTable).
		Set("status", domain.ShiftClosed).
		Set("closed_at", s.ClosedAt).
		Set("expected_closing_balance", s.ExpectedClosingBalance).
		Set("actual_closing_balance", s.ActualClosingBalance).
		Set("difference", s.Difference).
		Set("closing_notes", s.ClosingNotes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID, "business_id": s.BusinessID, "status": domain.ShiftOpen}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
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

	s.Status = domain.ShiftClosed
	return nil
}

func (r *cashRegisterRepository) List(ctx context.Context, businessID string, filters domain.ShiftFilters) ([]*domain.CashRegisterShift, int, error) {
	filters.Normalize()

	where := squirrel.And{squirrel.Eq{"business_id": businessID}}
	if filters.UserID != nil {
		where = append(where, squirrel.Eq{"user_id": *filters.UserID})
	}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"status": *filters.Status})
	}
	if filters.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"opened_at": *filters.StartDate})
	}
	if filters.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"opened_at": *filters.EndDate})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(cashRegisterShiftsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar turnos: %w", err)
	}

	query, args, err := psql.
		Select(shiftColumns...).
		From(cashRegisterShiftsTable).
		Where(where).
		OrderBy("opened_at DESC").
		Limit(uint64(filters.PageSize)).
		Offset(filters.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao listar turnos: %w", err)
	}
	defer rows.Close()

	shifts := make([]*domain.CashRegisterShift, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, 0, err
		}
		shifts = append(shifts, shift)
	}

	return shifts, total, rows.Err()
}

func (r *cashRegisterRepository) SalesByPaymentMethod(ctx context.Context, businessID, shiftID string) ([]*domain.SalesByPaymentMethod, error) {
	completed := domain.SaleStatusCompleted
	return salesByPaymentMethod(ctx, r.conn, businessID, domain.SaleFilters{
		ShiftID: &shiftID,
		Status:  &completed,
	})
}

func scanShift(row scanner) (*domain.CashRegisterShift, error) {
	var s domain.CashRegisterShift
	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.UserID,
		&s.ShiftNumber,
		&s.Status,
		&s.OpenedAt,
		&s.ClosedAt,
		&s.OpeningBalance,
		&s.ExpectedClosingBalance,
		&s.ActualClosingBalance,
		&s.Difference,
		&s.OpeningNotes,
		&s.ClosingNotes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
