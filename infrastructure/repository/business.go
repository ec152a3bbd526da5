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

const businessesTable = "businesses"

var businessColumns = []string{
	"id", "code", "name", "email", "phone", "address", "city", "country",
	"status", "trial_ends_at", "created_at", "updated_at",
}

type BusinessRepository interface {
	CreateWithAdmin(ctx context.Context, business *domain.Business, admin *domain.User, methods []*domain.PaymentMethod) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetByEmail(ctx context.Context, email string) (*domain.Business, error)
	List(ctx context.Context, status *domain.BusinessStatus) ([]*domain.Business, error)
	Update(ctx context.Context, req *domain.UpdateBusinessRequest) (*domain.Business, error)
	UpdateStatus(ctx context.Context, id string, status domain.BusinessStatus) error
	SuspendExpiredTrials(ctx context.Context, now time.Time) ([]string, error)
}

type businessRepository struct {
	conn postgres.Conn
}

func NewBusinessRepository(conn postgres.Conn) BusinessRepository {
	return &businessRepository{conn: conn}
}

// CreateWithAdmin grava o negócio, o usuário administrador e os meios de pagamento padrão numa única transação
func (r *businessRepository) CreateWithAdmin(ctx context.Context, business *domain.Business, admin *domain.User, methods []*domain.PaymentMethod) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Insert(businessesTable).
			Columns("id", "code", "name", "email", "phone", "address", "city", "country", "status", "trial_ends_at").
			Values(business.ID, business.Code, business.Name, business.Email, business.Phone, business.Address,
				business.City, business.Country, business.Status, business.TrialEndsAt).
			Suffix("RETURNING created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir insert de negócio: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&business.CreatedAt, &business.UpdatedAt); err != nil {
			return translateError(err)
		}

		admin.BusinessID = &business.ID
		if err := insertUser(ctx, tx, admin); err != nil {
			return err
		}

		for _, method := range methods {
			method.BusinessID = business.ID
			if err := insertPaymentMethod(ctx, tx, method); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *businessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *businessRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Business, error) {
	query, args, err := squirrel.
		Select(businessColumns...).
		From(businessesTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	business, err := scanBusiness(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar negócio: %w", err)
	}

	return business, nil
}

func (r *businessRepository) List(ctx context.Context, status *domain.BusinessStatus) ([]*domain.Business, error) {
	queryBuilder := squirrel.
		Select(businessColumns...).
		From(businessesTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar negócios: %w", err)
	}
	defer rows.Close()

	businesses := make([]*domain.Business, 0)
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}

	return businesses, rows.Err()
}

func (r *businessRepository) Update(ctx context.Context, req *domain.UpdateBusinessRequest) (*domain.Business, error) {
	queryBuilder := squirrel.
		Update(businessesTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		Suffix("RETURNING " + joinColumns(businessColumns)).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}
	if req.Email != nil {
		queryBuilder = queryBuilder.Set("email", *req.Email)
	}
	if req.Phone != nil {
		queryBuilder = queryBuilder.Set("phone", *req.Phone)
	}
	if req.Address != nil {
		queryBuilder = queryBuilder.Set("address", *req.Address)
	}
	if req.City != nil {
		queryBuilder = queryBuilder.Set("city", *req.City)
	}
	if req.Country != nil {
		queryBuilder = queryBuilder.Set("country", *req.Country)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir update: %w", err)
	}

	business, err := scanBusiness(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}

	return business, nil
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id string, status domain.BusinessStatus) error {
	query, args, err := squirrel.
		Update(businessesTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

// SuspendExpiredTrials suspende os negócios cujo período de teste terminou e retorna os ids afetados
func (r *businessRepository) SuspendExpiredTrials(ctx context.Context, now time.Time) ([]string, error) {
	query, args, err := squirrel.
		Update(businessesTable).
		Set("status", domain.BusinessStatusSuspended).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.BusinessStatusTrial}).
		Where(squirrel.Lt{"trial_ends_at": now}).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao suspender negócios em teste: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanBusiness(row scanner) (*domain.Business, error) {
	var b domain.Business
	err := row.Scan(
		&b.ID,
		&b.Code,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.Address,
		&b.City,
		&b.Country,
		&b.Status,
		&b.TrialEndsAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
