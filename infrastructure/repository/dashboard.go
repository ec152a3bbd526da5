package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

// DashboardRepository reúne as consultas agregadas usadas pelos painéis
type DashboardRepository interface {
	CountBusinessesByStatus(ctx context.Context) ([]*domain.BusinessStatusCount, error)
	CountNewBusinesses(ctx context.Context, since time.Time) (int, error)
	PlatformRevenue(ctx context.Context, from, to time.Time) (float64, error)
	MonthlyRevenue(ctx context.Context, from time.Time) ([]*domain.MonthlyRevenue, error)
	BusinessSales(ctx context.Context, businessID string, from, to time.Time) (int, float64, error)
	CountActivePlans(ctx context.Context, businessID string) (int, error)
	CountSessionsScheduled(ctx context.Context, businessID string, from, to time.Time) (int, error)
	TopProducts(ctx context.Context, businessID string, from time.Time, limit uint64) ([]*domain.TopProduct, error)
	SalesByPaymentMethod(ctx context.Context, businessID string, from, to time.Time) ([]*domain.SalesByPaymentMethod, error)
}

type dashboardRepository struct {
	conn postgres.Conn
}

func NewDashboardRepository(conn postgres.Conn) DashboardRepository {
	return &dashboardRepository{conn: conn}
}

func (r *dashboardRepository) CountBusinessesByStatus(ctx context.Context) ([]*domain.BusinessStatusCount, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM businesses GROUP BY status ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("erro ao contar negócios por status: %w", err)
	}
	defer rows.Close()

	counts := make([]*domain.BusinessStatusCount, 0)
	for rows.Next() {
		var item domain.BusinessStatusCount
		if err := rows.Scan(&item.Status, &item.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &item)
	}

	return counts, rows.Err()
}

func (r *dashboardRepository) CountNewBusinesses(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM businesses WHERE created_at >= $1", since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar novos negócios: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) PlatformRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	query, args, err := psql.
		Select("COALESCE(SUM(total), 0)").
		From(salesTable).
		Where(squirrel.Eq{"status": domain.SaleStatusCompleted}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var revenue float64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("erro ao somar receita da plataforma: %w", err)
	}
	return revenue, nil
}

// MonthlyRevenue agrupa a receita da plataforma por mês no formato mm-yyyy a partir da data informada
func (r *dashboardRepository) MonthlyRevenue(ctx context.Context, from time.Time) ([]*domain.MonthlyRevenue, error) {
	query, args, err := psql.
		Select("TO_CHAR(DATE_TRUNC('month', created_at), 'MM-YYYY')", "COALESCE(SUM(total), 0)", "COUNT(*)").
		From(salesTable).
		Where(squirrel.Eq{"status": domain.SaleStatusCompleted}).
		Where(squirrel.GtOrEq{"created_at": from}).
		GroupBy("DATE_TRUNC('month', created_at)").
		OrderBy("DATE_TRUNC('month', created_at) ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar receita mensal: %w", err)
	}
	defer rows.Close()

	series := make([]*domain.MonthlyRevenue, 0)
	for rows.Next() {
		var item domain.MonthlyRevenue
		if err := rows.Scan(&item.Month, &item.Revenue, &item.Sales); err != nil {
			return nil, err
		}
		series = append(series, &item)
	}

	return series, rows.Err()
}

func (r *dashboardRepository) BusinessSales(ctx context.Context, businessID string, from, to time.Time) (int, float64, error) {
	query, args, err := psql.
		Select("COUNT(*)", "COALESCE(SUM(total), 0)").
		From(salesTable).
		Where(squirrel.Eq{"business_id": businessID, "status": domain.SaleStatusCompleted}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return 0, 0, err
	}

	var (
		count int
		total float64
	)
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count, &total); err != nil {
		return 0, 0, fmt.Errorf("erro ao consolidar vendas do negócio: %w", err)
	}
	return count, total, nil
}

func (r *dashboardRepository) CountActivePlans(ctx context.Context, businessID string) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM treatment_plans WHERE business_id = $1 AND status = $2",
		businessID, domain.PlanActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar planos ativos: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountSessionsScheduled(ctx context.Context, businessID string, from, to time.Time) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM treatment_sessions WHERE business_id = $1 AND status = $2 AND scheduled_at >= $3 AND scheduled_at < $4",
		businessID, domain.SessionScheduled, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar sessões agendadas: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) TopProducts(ctx context.Context, businessID string, from time.Time, limit uint64) ([]*domain.TopProduct, error) {
	query, args, err := psql.
		Select("si.product_id", "si.name", "SUM(si.quantity)", "COALESCE(SUM(si.subtotal), 0)").
		From(saleItemsTable + " si").
		Join(salesTable + " s ON s.id = si.sale_id").
		Where(squirrel.Eq{"s.business_id": businessID, "s.status": domain.SaleStatusCompleted}).
		Where(squirrel.GtOrEq{"s.created_at": from}).
		GroupBy("si.product_id", "si.name").
		OrderBy("SUM(si.quantity) DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos mais vendidos: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.TopProduct, 0)
	for rows.Next() {
		var item domain.TopProduct
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.Revenue); err != nil {
			return nil, err
		}
		products = append(products, &item)
	}

	return products, rows.Err()
}

func (r *dashboardRepository) SalesByPaymentMethod(ctx context.Context, businessID string, from, to time.Time) ([]*domain.SalesByPaymentMethod, error) {
	completed := domain.SaleStatusCompleted
	return salesByPaymentMethod(ctx, r.conn, businessID, domain.SaleFilters{
		StartDate: &from,
		EndDate:   &to,
		Status:    &completed,
	})
}
