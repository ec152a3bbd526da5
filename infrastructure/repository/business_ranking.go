package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const (
	businessRankingTable = "business_rankings br"
)

type BusinessRankingRepository interface {
	GetByBusinessID(ctx context.Context, businessID string, month string) (*domain.BusinessRankingItem, error)
	GetRanking(ctx context.Context, month string) ([]*domain.BusinessRankingItem, error)
	SaveOrUpdateRanking(ctx context.Context, rankings []*domain.BusinessRankingItem) error
	RevenueByBusiness(ctx context.Context, from, to time.Time) ([]*domain.BusinessRevenue, error)
}

type businessRankingRepository struct {
	conn postgres.Conn
}

func NewBusinessRankingRepository(conn postgres.Conn) BusinessRankingRepository {
	return &businessRankingRepository{
		conn: conn,
	}
}

func (r *businessRankingRepository) GetRanking(ctx context.Context, month string) ([]*domain.BusinessRankingItem, error) {
	queryBuilder := squirrel.
		Select(
			"br.business_id",
			"br.business_name",
			"br.month",
			"br.revenue",
			"br.sales_count",
			"br.position",
			"br.position_change",
			"br.previous_position",
			"br.updated_at",
		).
		From(businessRankingTable).
		Where(squirrel.Eq{"br.month": month}).
		OrderBy("br.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]*domain.BusinessRankingItem, 0)
	for rows.Next() {
		item, err := scanBusinessRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}
		rankings = append(rankings, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return rankings, nil
}

func (r *businessRankingRepository) GetByBusinessID(ctx context.Context, businessID string, month string) (*domain.BusinessRankingItem, error) {
	query, args, err := squirrel.
		Select("br.business_id, br.business_name, br.month, br.revenue, br.sales_count, br.position, br.position_change, br.previous_position, br.updated_at").
		From(businessRankingTable).
		Where(squirrel.Eq{"br.business_id": businessID, "br.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	ranking, err := scanBusinessRankingItem(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}
	return ranking, nil
}

func (r *businessRankingRepository) SaveOrUpdateRanking(ctx context.Context, rankings []*domain.BusinessRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	// Construir query de inserção em lote
	query := squirrel.StatementBuilder.
		Insert("business_rankings").
		Columns(
			"business_id",
			"month",
			"business_name",
			"revenue",
			"sales_count",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.BusinessID,
			ranking.Month,
			ranking.BusinessName,
			ranking.Revenue,
			ranking.SalesCount,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	// upsert
	query = query.Suffix(`
		ON CONFLICT (business_id, month) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			revenue = EXCLUDED.revenue,
			sales_count = EXCLUDED.sales_count,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

// RevenueByBusiness soma as vendas concluídas no período para cada negócio operante, incluindo os que não venderam
func (r *businessRankingRepository) RevenueByBusiness(ctx context.Context, from, to time.Time) ([]*domain.BusinessRevenue, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT b.id, b.name, COALESCE(SUM(s.total), 0), COUNT(s.id)
		FROM businesses b
		LEFT JOIN sales s ON s.business_id = b.id
			AND s.status = 'COMPLETED'
			AND s.created_at >= $1
			AND s.created_at < $2
		WHERE b.status IN ('ACTIVE', 'TRIAL')
		GROUP BY b.id, b.name`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar receita por negócio: %w", err)
	}
	defer rows.Close()

	revenues := make([]*domain.BusinessRevenue, 0)
	for rows.Next() {
		var item domain.BusinessRevenue
		if err := rows.Scan(&item.BusinessID, &item.BusinessName, &item.Revenue, &item.SalesCount); err != nil {
			return nil, err
		}
		revenues = append(revenues, &item)
	}

	return revenues, rows.Err()
}

func scanBusinessRankingItem(row scanner) (*domain.BusinessRankingItem, error) {
	item := &domain.BusinessRankingItem{}

	err := row.Scan(
		&item.BusinessID,
		&item.BusinessName,
		&item.Month,
		&item.Revenue,
		&item.SalesCount,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
