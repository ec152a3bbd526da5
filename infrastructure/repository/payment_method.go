package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const paymentMethodsTable = "payment_methods"

var paymentMethodColumns = []string{
	"id", "business_id", "name", "type", "is_active", "requires_proof", "display_order",
	"bank_info", "deleted", "created_at", "updated_at",
}

type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) error
	GetByID(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error)
	GetByName(ctx context.Context, businessID, name string) (*domain.PaymentMethod, error)
	List(ctx context.Context, businessID string, onlyActive bool) ([]*domain.PaymentMethod, error)
	Update(ctx context.Context, method *domain.PaymentMethod) error
	SetActive(ctx context.Context, businessID, id string, active bool) error
	IsReferenced(ctx context.Context, businessID, id string) (bool, error)
	Delete(ctx context.Context, businessID, id string, soft bool) error
	Reorder(ctx context.Context, businessID string, ids []string) error
}

type paymentMethodRepository struct {
	conn postgres.Conn
}

func NewPaymentMethodRepository(conn postgres.Conn) PaymentMethodRepository {
	return &paymentMethodRepository{conn: conn}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	return insertPaymentMethod(ctx, r.conn, method)
}

func insertPaymentMethod(ctx context.Context, q postgres.Queryer, m *domain.PaymentMethod) error {
	query, args, err := psql.
		Insert(paymentMethodsTable).
		Columns("id", "business_id", "name", "type", "is_active", "requires_proof", "display_order", "bank_info").
		Values(m.ID, m.BusinessID, m.Name, m.Type, m.IsActive, m.RequiresProof, m.DisplayOrder, nullJSON(m.BankInfo)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de meio de pagamento: %w", err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error) {
	return r.getOne(ctx, psql.
		Select(paymentMethodColumns...).
		From(paymentMethodsTable).
		Where(squirrel.Eq{"id": id, "business_id": businessID, "deleted": false}))
}

func (r *paymentMethodRepository) GetByName(ctx context.Context, businessID, name string) (*domain.PaymentMethod, error) {
	return r.getOne(ctx, psql.
		Select(paymentMethodColumns...).
		From(paymentMethodsTable).
		Where(squirrel.Eq{"business_id": businessID, "deleted": false}).
		Where("LOWER(name) = LOWER(?)", name))
}

func (r *paymentMethodRepository) getOne(ctx context.Context, queryBuilder squirrel.SelectBuilder) (*domain.PaymentMethod, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	method, err := scanPaymentMethod(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar meio de pagamento: %w", err)
	}

	return method, nil
}

func (r *paymentMethodRepository) List(ctx context.Context, businessID string, onlyActive bool) ([]*domain.PaymentMethod, error) {
	queryBuilder := psql.
		Select(paymentMethodColumns...).
		From(paymentMethodsTable).
		Where(squirrel.Eq{"business_id": businessID, "deleted": false}).
		OrderBy("display_order ASC", "name ASC")

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar meios de pagamento: %w", err)
	}
	defer rows.Close()

	methods := make([]*domain.PaymentMethod, 0)
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	return methods, rows.Err()
}

func (r *paymentMethodRepository) Update(ctx context.Context, m *domain.PaymentMethod) error {
	query, args, err := psql.
		Update(paymentMethodsTable).
		Set("name", m.Name).
		Set("type", m.Type).
		Set("requires_proof", m.RequiresProof).
		Set("bank_info", nullJSON(m.BankInfo)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID, "business_id": m.BusinessID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return translateError(err)
}

func (r *paymentMethodRepository) SetActive(ctx context.Context, businessID, id string, active bool) error {
	query, args, err := psql.
		Update(paymentMethodsTable).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *paymentMethodRepository) IsReferenced(ctx context.Context, businessID, id string) (bool, error) {
	var exists bool
	err := r.conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM sales WHERE business_id = $1 AND payment_method_id = $2)",
		businessID, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar uso do meio de pagamento: %w", err)
	}
	return exists, nil
}

// Delete remove fisicamente ou apenas marca como excluído quando já há vendas apontando para o meio de pagamento
func (r *paymentMethodRepository) Delete(ctx context.Context, businessID, id string, soft bool) error {
	var (
		query string
		args  []interface{}
		err   error
	)

	if soft {
		query, args, err = psql.
			Update(paymentMethodsTable).
			Set("deleted", true).
			Set("is_active", false).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "business_id": businessID}).
			ToSql()
	} else {
		query, args, err = psql.
			Delete(paymentMethodsTable).
			Where(squirrel.Eq{"id": id, "business_id": businessID}).
			ToSql()
	}
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *paymentMethodRepository) Reorder(ctx context.Context, businessID string, ids []string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for position, id := range ids {
			_, err := tx.ExecContext(ctx,
				"UPDATE payment_methods SET display_order = $1, updated_at = NOW() WHERE id = $2 AND business_id = $3",
				position+1, id, businessID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func scanPaymentMethod(row scanner) (*domain.PaymentMethod, error) {
	var (
		m        domain.PaymentMethod
		bankInfo []byte
	)
	err := row.Scan(
		&m.ID,
		&m.BusinessID,
		&m.Name,
		&m.Type,
		&m.IsActive,
		&m.RequiresProof,
		&m.DisplayOrder,
		&bankInfo,
		&m.Deleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.BankInfo = copyBytes(bankInfo)
	return &m, nil
}
