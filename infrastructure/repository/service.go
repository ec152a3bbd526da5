package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const servicesTable = "services"

var serviceColumns = []string{
	"id", "business_id", "name", "category", "description", "duration_minutes", "price",
	"is_package", "package_type", "sessions_count", "maintenance_sessions", "session_interval_days",
	"package_price", "commission_percentage", "is_active", "created_at", "updated_at",
}

type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, businessID, id string) (*domain.Service, error)
	List(ctx context.Context, businessID string, filters domain.ServiceFilters) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
}

type serviceRepository struct {
	conn postgres.Conn
}

func NewServiceRepository(conn postgres.Conn) ServiceRepository {
	return &serviceRepository{conn: conn}
}

func (r *serviceRepository) Create(ctx context.Context, s *domain.Service) error {
	query, args, err := squirrel.
		Insert(servicesTable).
		Columns("id", "business_id", "name", "category", "description", "duration_minutes", "price",
			"is_package", "package_type", "sessions_count", "maintenance_sessions", "session_interval_days",
			"package_price", "commission_percentage", "is_active").
		Values(s.ID, s.BusinessID, s.Name, s.Category, s.Description, s.DurationMinutes, s.Price,
			s.IsPackage, s.PackageType, s.SessionsCount, s.MaintenanceSessions, s.SessionIntervalDays,
			s.PackagePrice, s.CommissionPercentage, s.IsActive).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de serviço: %w", err)
	}

	return r.conn.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *serviceRepository) GetByID(ctx context.Context, businessID, id string) (*domain.Service, error) {
	query, args, err := squirrel.
		Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	service, err := scanService(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar serviço: %w", err)
	}

	return service, nil
}

func (r *serviceRepository) List(ctx context.Context, businessID string, filters domain.ServiceFilters) ([]*domain.Service, error) {
	queryBuilder := squirrel.
		Select(serviceColumns...).
		From(servicesTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Category != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"category": *filters.Category})
	}
	if filters.IsActive != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_active": *filters.IsActive})
	}
	if filters.IsPackage != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_package": *filters.IsPackage})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar serviços: %w", err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, rows.Err()
}

// Update grava o estado completo do serviço; a validação do pacote resultante é feita antes, no caso de uso
func (r *serviceRepository) Update(ctx context.Context, s *domain.Service) error {
	query, args, err := squirrel.
		Update(servicesTable).
		SetMap(map[string]interface{}{
			"name":                  s.Name,
			"category":              s.Category,
			"description":           s.Description,
			"duration_minutes":      s.DurationMinutes,
			"price":                 s.Price,
			"is_package":            s.IsPackage,
			"package_type":          s.PackageType,
			"sessions_count":        s.SessionsCount,
			"maintenance_sessions":  s.MaintenanceSessions,
			"session_interval_days": s.SessionIntervalDays,
			"package_price":         s.PackagePrice,
			"commission_percentage": s.CommissionPercentage,
			"is_active":             s.IsActive,
			"updated_at":            squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": s.ID, "business_id": s.BusinessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func scanService(row scanner) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Category,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.IsPackage,
		&s.PackageType,
		&s.SessionsCount,
		&s.MaintenanceSessions,
		&s.SessionIntervalDays,
		&s.PackagePrice,
		&s.CommissionPercentage,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
