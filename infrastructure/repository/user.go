package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/diana0617/beauty-control-api/infrastructure/database/postgres"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

const (
	usersTable = "users"
)

var userColumns = []string{
	"id", "business_id", "name", "lastname", "email", "phone", "password_hash",
	"active", "role_id", "avatar_url", "deleted", "deleted_at", "created_at", "updated_at",
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	ListUser(ctx context.Context, businessID *string) ([]*domain.User, error)
}

type userRepository struct {
	conn postgres.Conn
}

func NewUserRepository(conn postgres.Conn) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := insertUser(ctx, r.conn, user); err != nil {
		return nil, err
	}
	return user, nil
}

// insertUser é compartilhado com o cadastro de negócio, que cria o administrador na mesma transação
func insertUser(ctx context.Context, q postgres.Queryer, user *domain.User) error {
	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("business_id", "name", "lastname", "email", "phone", "password_hash", "active", "role_id").
		Values(user.BusinessID, user.Name, user.Lastname, user.Email, user.Phone, user.PasswordHash, user.Active, user.RoleID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	err = q.QueryRowContext(ctx, usersSQL, usersArgs...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateError(err)
	}

	return nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	queryBuilder := squirrel.
		Update(usersTable).
		Set("active", user.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		queryBuilder = queryBuilder.Set("name", user.Name)
	}

	if user.Lastname != "" {
		queryBuilder = queryBuilder.Set("lastname", user.Lastname)
	}

	if user.Email != "" {
		queryBuilder = queryBuilder.Set("email", user.Email)
	}

	if user.Phone != nil {
		queryBuilder = queryBuilder.Set("phone", user.Phone)
	}

	if user.RoleID != 0 {
		queryBuilder = queryBuilder.Set("role_id", user.RoleID)
	}

	if user.AvatarURL != nil && *user.AvatarURL != "" {
		queryBuilder = queryBuilder.Set("avatar_url", user.AvatarURL)
	}

	if user.Deleted {
		queryBuilder = queryBuilder.Set("deleted", true)
		queryBuilder = queryBuilder.Set("deleted_at", user.DeletedAt)
	}

	usersSQL, usersArgs, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, usersSQL, usersArgs...)
	if err != nil {
		return translateError(err)
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir consulta: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID, "deleted": false})
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.conn.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ListUser(ctx context.Context, businessID *string) ([]*domain.User, error) {
	queryBuilder := squirrel.
		Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if businessID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"business_id": *businessID})
	}

	usersSQL, usersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, usersSQL, usersArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.BusinessID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.AvatarURL,
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
