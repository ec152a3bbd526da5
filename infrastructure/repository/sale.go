package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"

	referenceSale = "SALE"
)

var saleColumns = []string{
	"s.id", "s.business_id", "s.sale_number", "s.client_id", "s.user_id", "s.specialist_id",
	"s.shift_id", "s.payment_method_id", "s.status", "s.subtotal", "s.discount", "s.discount_type",
	"s.discount_value", "s.tax", "s.total", "s.paid_amount", "s.change_amount", "s.notes",
	"s.cancelled_at", "s.cancelled_by", "s.cancel_reason", "s.created_at", "s.updated_at",
}

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale, changes []domain.StockChange, commission *domain.CommissionDetail) error
	Cancel(ctx context.Context, sale *domain.Sale, changes []domain.StockChange, userID int, reason string) error
	GetSoldStock(ctx context.Context, businessID, saleID string) ([]domain.StockChange, error)
	GetByID(ctx context.Context, businessID, id string) (*domain.Sale, error)
	List(ctx context.Context, businessID string, filters domain.SaleFilters) ([]*domain.Sale, int, error)
	ListAll(ctx context.Context, businessID string, filters domain.SaleFilters) ([]*domain.Sale, error)
	Summary(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.SalesSummary, error)
}

type saleRepository struct {
	conn postgres.Conn
}

func NewSaleRepository(conn postgres.Conn) SaleRepository {
	return &saleRepository{conn: conn}
}

// Create grava a venda, os itens, as baixas de estoque, as movimentações e a comissão numa única transação.
// A baixa usa a guarda "stock >= quantidade" e retorna ErrInsufficientStock quando nenhuma linha é afetada.
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale, changes []domain.StockChange, commission *domain.CommissionDetail) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Insert(salesTable).
			Columns("id", "business_id", "sale_number", "client_id", "user_id", "specialist_id", "shift_id",
				"payment_method_id", "status", "subtotal", "discount", "discount_type", "discount_value",
				"tax", "total", "paid_amount", "change_amount", "notes").
			Values(sale.ID, sale.BusinessID, sale.SaleNumber, sale.ClientID, sale.UserID, sale.SpecialistID, sale.ShiftID,
				sale.PaymentMethodID, sale.Status, sale.Subtotal, sale.Discount, sale.DiscountType, sale.DiscountValue,
				sale.Tax, sale.Total, sale.PaidAmount, sale.ChangeAmount, sale.Notes).
			Suffix("RETURNING created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir insert de venda: %w", err)
		}

		if err := tx.QueryRowContext(ctx, query, args...).Scan(&sale.CreatedAt, &sale.UpdatedAt); err != nil {
			return translateError(err)
		}

		if err := insertSaleItems(ctx, tx, sale); err != nil {
			return err
		}

		for _, change := range changes {
			newStock, err := decrementStock(ctx, tx, sale.BusinessID, change)
			if err != nil {
				return err
			}

			if err := insertMovement(ctx, tx, &domain.InventoryMovement{
				ID:            utils.NewUUID(),
				BusinessID:    sale.BusinessID,
				ProductID:     change.ProductID,
				UserID:        sale.UserID,
				Type:          domain.MovementSale,
				Quantity:      -change.Quantity,
				PreviousStock: newStock + change.Quantity,
				NewStock:      newStock,
				ReferenceType: stringRef(referenceSale),
				ReferenceID:   stringRef(sale.ID),
			}); err != nil {
				return err
			}
		}

		if commission != nil {
			if err := insertCommission(ctx, tx, commission); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertSaleItems(ctx context.Context, q postgres.Queryer, sale *domain.Sale) error {
	if len(sale.Items) == 0 {
		return nil
	}

	queryBuilder := squirrel.
		Insert(saleItemsTable).
		Columns("id", "sale_id", "product_id", "name", "quantity", "unit_price", "unit_cost", "discount", "subtotal").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range sale.Items {
		item.SaleID = sale.ID
		queryBuilder = queryBuilder.Values(item.ID, item.SaleID, item.ProductID, item.Name, item.Quantity,
			item.UnitPrice, item.UnitCost, item.Discount, item.Subtotal)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de itens: %w", err)
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}

func decrementStock(ctx context.Context, q postgres.Queryer, businessID string, change domain.StockChange) (int, error) {
	queryBuilder := squirrel.
		Update(productsTable).
		Set("stock", squirrel.Expr("stock - ?", change.Quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": change.ProductID, "business_id": businessID}).
		Suffix("RETURNING stock").
		PlaceholderFormat(squirrel.Dollar)

	if !change.AllowNegative {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"stock": change.Quantity})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	var newStock int
	err = q.QueryRowContext(ctx, query, args...).Scan(&newStock)
	if isNoRows(err) {
		return 0, ErrInsufficientStock
	}
	if err != nil {
		return 0, err
	}

	return newStock, nil
}

func incrementStock(ctx context.Context, q postgres.Queryer, businessID string, change domain.StockChange) (int, error) {
	var newStock int
	err := q.QueryRowContext(ctx,
		"UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2 AND business_id = $3 RETURNING stock",
		change.Quantity, change.ProductID, businessID,
	).Scan(&newStock)
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// Cancel muda o status da venda, devolve o estoque e cancela as comissões pendentes geradas por ela
func (r *saleRepository) Cancel(ctx context.Context, sale *domain.Sale, changes []domain.StockChange, userID int, reason string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now()

		query, args, err := squirrel.
			Update(salesTable).
			Set("status", domain.SaleStatusCancelled).
			Set("cancelled_at", now).
			Set("cancelled_by", userID).
			Set("cancel_reason", reason).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": sale.ID, "business_id": sale.BusinessID, "status": domain.SaleStatusCompleted}).
			PlaceholderFormat(squirrel.Dollar).
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

		for _, change := range changes {
			newStock, err := incrementStock(ctx, tx, sale.BusinessID, change)
			if err != nil {
				return err
			}

			if err := insertMovement(ctx, tx, &domain.InventoryMovement{
				ID:            utils.NewUUID(),
				BusinessID:    sale.BusinessID,
				ProductID:     change.ProductID,
				UserID:        userID,
				Type:          domain.MovementReturn,
				Quantity:      change.Quantity,
				PreviousStock: newStock - change.Quantity,
				NewStock:      newStock,
				ReferenceType: stringRef(referenceSale),
				ReferenceID:   stringRef(sale.ID),
				Notes:         stringRef(reason),
			}); err != nil {
				return err
			}
		}

		if err := cancelCommissionsBySource(ctx, tx, domain.CommissionSourceSale, sale.ID); err != nil {
			return err
		}

		sale.Status = domain.SaleStatusCancelled
		sale.CancelledAt = &now
		sale.CancelledBy = &userID
		sale.CancelReason = &reason

		return nil
	})
}

// GetSoldStock soma as baixas de estoque registradas pela venda, por produto
func (r *saleRepository) GetSoldStock(ctx context.Context, businessID, saleID string) ([]domain.StockChange, error) {
	query, args, err := squirrel.
		Select("product_id", "-SUM(quantity)").
		From(inventoryMovementsTable).
		Where(squirrel.Eq{
			"business_id":    businessID,
			"reference_type": referenceSale,
			"reference_id":   saleID,
			"type":           domain.MovementSale,
		}).
		GroupBy("product_id").
		OrderBy("product_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar baixas da venda: %w", err)
	}
	defer rows.Close()

	changes := make([]domain.StockChange, 0)
	for rows.Next() {
		var change domain.StockChange
		if err := rows.Scan(&change.ProductID, &change.Quantity); err != nil {
			return nil, err
		}
		if change.Quantity > 0 {
			changes = append(changes, change)
		}
	}

	return changes, rows.Err()
}

func (r *saleRepository) GetByID(ctx context.Context, businessID, id string) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable + " s").
		Where(squirrel.Eq{"s.id": id, "s.business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	items, err := r.getItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

func (r *saleRepository) getItems(ctx context.Context, saleID string) ([]*domain.SaleItem, error) {
	query, args, err := squirrel.
		Select("id", "sale_id", "product_id", "name", "quantity", "unit_price", "unit_cost", "discount", "subtotal").
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.SaleItem, 0)
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.Name,
			&item.Quantity,
			&item.UnitPrice,
			&item.UnitCost,
			&item.Discount,
			&item.Subtotal,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *saleRepository) List(ctx context.Context, businessID string, filters domain.SaleFilters) ([]*domain.Sale, int, error) {
	filters.Normalize()

	countQuery, countArgs, err := applySaleFilters(
		squirrel.Select("COUNT(*)").From(salesTable+" s"), businessID, filters,
	).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	queryBuilder := applySaleFilters(squirrel.Select(saleColumns...).From(salesTable+" s"), businessID, filters).
		OrderBy("s.created_at DESC").
		Limit(uint64(filters.PageSize)).
		Offset(filters.Offset())

	sales, err := r.query(ctx, queryBuilder)
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ListAll retorna as vendas do período com os itens, sem paginação
func (r *saleRepository) ListAll(ctx context.Context, businessID string, filters domain.SaleFilters) ([]*domain.Sale, error) {
	queryBuilder := applySaleFilters(squirrel.Select(saleColumns...).From(salesTable+" s"), businessID, filters).
		OrderBy("s.created_at ASC")

	sales, err := r.query(ctx, queryBuilder)
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		items, err := r.getItems(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
	}

	return sales, nil
}

func (r *saleRepository) query(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.Sale, error) {
	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// Summary consolida as vendas do período; o filtro de status é ignorado porque o resumo separa concluídas e canceladas
func (r *saleRepository) Summary(ctx context.Context, businessID string, filters domain.SaleFilters) (*domain.SalesSummary, error) {
	filters.Status = nil

	query, args, err := applySaleFilters(squirrel.Select(
		"COUNT(*) FILTER (WHERE s.status = 'COMPLETED')",
		"COALESCE(SUM(s.total) FILTER (WHERE s.status = 'COMPLETED'), 0)",
		"COALESCE(SUM(s.discount) FILTER (WHERE s.status = 'COMPLETED'), 0)",
		"COALESCE(SUM(s.tax) FILTER (WHERE s.status = 'COMPLETED'), 0)",
		"COUNT(*) FILTER (WHERE s.status = 'CANCELLED')",
	).From(salesTable+" s"), businessID, filters).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	summary := &domain.SalesSummary{}
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&summary.Count,
		&summary.Total,
		&summary.Discount,
		&summary.Tax,
		&summary.CancelledCount,
	); err != nil {
		return nil, fmt.Errorf("erro ao consolidar vendas: %w", err)
	}

	if summary.Count > 0 {
		summary.AverageTicket = utils.RoundWithTwoDecimalPlace(summary.Total / float64(summary.Count))
	}

	completed := domain.SaleStatusCompleted
	filters.Status = &completed
	byMethod, err := salesByPaymentMethod(ctx, r.conn, businessID, filters)
	if err != nil {
		return nil, err
	}
	summary.ByPaymentMethod = byMethod

	return summary, nil
}

func salesByPaymentMethod(ctx context.Context, q postgres.Queryer, businessID string, filters domain.SaleFilters) ([]*domain.SalesByPaymentMethod, error) {
	query, args, err := applySaleFilters(squirrel.
		Select("pm.id", "pm.name", "pm.type", "COUNT(s.id)", "COALESCE(SUM(s.total), 0)").
		From(salesTable+" s").
		Join(paymentMethodsTable+" pm ON pm.id = s.payment_method_id"), businessID, filters).
		GroupBy("pm.id", "pm.name", "pm.type").
		OrderBy("COALESCE(SUM(s.total), 0) DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar vendas por meio de pagamento: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.SalesByPaymentMethod, 0)
	for rows.Next() {
		var item domain.SalesByPaymentMethod
		if err := rows.Scan(&item.PaymentMethodID, &item.PaymentMethodName, &item.PaymentMethodType, &item.Count, &item.Total); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}

	return result, rows.Err()
}

func applySaleFilters(queryBuilder squirrel.SelectBuilder, businessID string, filters domain.SaleFilters) squirrel.SelectBuilder {
	queryBuilder = queryBuilder.Where(squirrel.Eq{"s.business_id": businessID})

	if filters.StartDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"s.created_at": *filters.StartDate})
	}
	if filters.EndDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"s.created_at": *filters.EndDate})
	}
	if filters.Status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.status": *filters.Status})
	}
	if filters.UserID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.user_id": *filters.UserID})
	}
	if filters.SpecialistID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.specialist_id": *filters.SpecialistID})
	}
	if filters.PaymentMethodID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.payment_method_id": *filters.PaymentMethodID})
	}
	if filters.ShiftID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.shift_id": *filters.ShiftID})
	}

	return queryBuilder
}

func scanSale(row scanner) (*domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.ID,
		&s.BusinessID,
		&s.SaleNumber,
		&s.ClientID,
		&s.UserID,
		&s.SpecialistID,
		&s.ShiftID,
		&s.PaymentMethodID,
		&s.Status,
		&s.Subtotal,
		&s.Discount,
		&s.DiscountType,
		&s.DiscountValue,
		&s.Tax,
		&s.Total,
		&s.PaidAmount,
		&s.ChangeAmount,
		&s.Notes,
		&s.CancelledAt,
		&s.CancelledBy,
		&s.CancelReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func stringRef(s string) *string {
	return &s
}
