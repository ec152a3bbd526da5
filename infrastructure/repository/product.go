package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const (
	productsTable           = "products"
	inventoryMovementsTable = "inventory_movements"
)

var productColumns = []string{
	"id", "business_id", "name", "sku", "category", "description", "price", "cost",
	"stock", "min_stock", "track_inventory", "is_active", "created_at", "updated_at",
}

var movementColumns = []string{
	"id", "business_id", "product_id", "user_id", "type", "quantity", "previous_stock",
	"new_stock", "reference_type", "reference_id", "notes", "created_at",
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, businessID, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context, businessID string, filters domain.ProductFilters) ([]*domain.Product, error)
	Update(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error)
	ListLowStock(ctx context.Context, businessID string, limit uint64) ([]*domain.Product, error)
	AdjustStock(ctx context.Context, movement *domain.InventoryMovement, allowNegative bool) error
	ListMovements(ctx context.Context, businessID string, productID *string, page domain.Pagination) ([]*domain.InventoryMovement, error)
}

type productRepository struct {
	conn postgres.Conn
}

func NewProductRepository(conn postgres.Conn) ProductRepository {
	return &productRepository{conn: conn}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("id", "business_id", "name", "sku", "category", "description", "price", "cost",
			"stock", "min_stock", "track_inventory", "is_active").
		Values(p.ID, p.BusinessID, p.Name, p.SKU, p.Category, p.Description, p.Price, p.Cost,
			p.Stock, p.MinStock, p.TrackInventory, p.IsActive).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de produto: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return translateError(err)
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, businessID, id string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	return product, nil
}

// GetByIDs carrega os produtos do negócio indexados pelo id; ids de outros negócios ficam de fora
func (r *productRepository) GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*domain.Product, error) {
	products := make(map[string]*domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID, "id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[product.ID] = product
	}

	return products, rows.Err()
}

func (r *productRepository) List(ctx context.Context, businessID string, filters domain.ProductFilters) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Category != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"category": *filters.Category})
	}
	if filters.IsActive != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"is_active": *filters.IsActive})
	}
	if filters.Search != nil && *filters.Search != "" {
		like := "%" + *filters.Search + "%"
		queryBuilder = queryBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"sku": like},
		})
	}
	if filters.LowStock {
		queryBuilder = queryBuilder.Where("track_inventory = TRUE AND stock <= min_stock")
	}

	return r.query(ctx, queryBuilder)
}

func (r *productRepository) ListLowStock(ctx context.Context, businessID string, limit uint64) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"business_id": businessID, "is_active": true, "track_inventory": true}).
		Where("stock <= min_stock").
		OrderBy("stock ASC", "name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	return r.query(ctx, queryBuilder)
}

func (r *productRepository) query(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.Product, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, req *domain.UpdateProductRequest) (*domain.Product, error) {
	queryBuilder := squirrel.
		Update(productsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID, "business_id": req.BusinessID}).
		Suffix("RETURNING " + joinColumns(productColumns)).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}
	if req.SKU != nil {
		queryBuilder = queryBuilder.Set("sku", *req.SKU)
	}
	if req.Category != nil {
		queryBuilder = queryBuilder.Set("category", *req.Category)
	}
	if req.Description != nil {
		queryBuilder = queryBuilder.Set("description", *req.Description)
	}
	if req.Price != nil {
		queryBuilder = queryBuilder.Set("price", *req.Price)
	}
	if req.Cost != nil {
		queryBuilder = queryBuilder.Set("cost", *req.Cost)
	}
	if req.MinStock != nil {
		queryBuilder = queryBuilder.Set("min_stock", *req.MinStock)
	}
	if req.TrackInventory != nil {
		queryBuilder = queryBuilder.Set("track_inventory", *req.TrackInventory)
	}
	if req.IsActive != nil {
		queryBuilder = queryBuilder.Set("is_active", *req.IsActive)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err)
	}

	return product, nil
}

// AdjustStock trava a linha do produto, aplica a variação e registra a movimentação
func (r *productRepository) AdjustStock(ctx context.Context, movement *domain.InventoryMovement, allowNegative bool) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		var stock int
		err := tx.QueryRowContext(ctx,
			"SELECT stock FROM products WHERE id = $1 AND business_id = $2 FOR UPDATE",
			movement.ProductID, movement.BusinessID,
		).Scan(&stock)
		if err != nil {
			return err
		}

		newStock := stock + movement.Quantity
		if newStock < 0 && !allowNegative {
			return ErrInsufficientStock
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2",
			newStock, movement.ProductID,
		)
		if err != nil {
			return err
		}

		movement.PreviousStock = stock
		movement.NewStock = newStock
		return insertMovement(ctx, tx, movement)
	})
}

func (r *productRepository) ListMovements(ctx context.Context, businessID string, productID *string, page domain.Pagination) ([]*domain.InventoryMovement, error) {
	page.Normalize()

	queryBuilder := squirrel.
		Select(movementColumns...).
		From(inventoryMovementsTable).
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		Limit(uint64(page.PageSize)).
		Offset(page.Offset()).
		PlaceholderFormat(squirrel.Dollar)

	if productID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"product_id": *productID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	defer rows.Close()

	movements := make([]*domain.InventoryMovement, 0)
	for rows.Next() {
		var m domain.InventoryMovement
		if err := rows.Scan(
			&m.ID,
			&m.BusinessID,
			&m.ProductID,
			&m.UserID,
			&m.Type,
			&m.Quantity,
			&m.PreviousStock,
			&m.NewStock,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.Notes,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}

func insertMovement(ctx context.Context, q postgres.Queryer, m *domain.InventoryMovement) error {
	query, args, err := squirrel.
		Insert(inventoryMovementsTable).
		Columns("id", "business_id", "product_id", "user_id", "type", "quantity", "previous_stock",
			"new_stock", "reference_type", "reference_id", "notes").
		Values(m.ID, m.BusinessID, m.ProductID, m.UserID, m.Type, m.Quantity, m.PreviousStock,
			m.NewStock, m.ReferenceType, m.ReferenceID, m.Notes).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir insert de movimentação: %w", err)
	}

	_, err = q.ExecContext(ctx, query, args...)
	return err
}

func scanProduct(row scanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.Name,
		&p.SKU,
		&p.Category,
		&p.Description,
		&p.Price,
		&p.Cost,
		&p.Stock,
		&p.MinStock,
		&p.TrackInventory,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
