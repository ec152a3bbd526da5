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
	permissionsTable     = "permissions"
	rolePermissionsTable = "role_permissions"
	userPermissionsTable = "user_permissions"
)

type PermissionRepository interface {
	ListPermissions(ctx context.Context) ([]*domain.Permission, error)
	GetPermission(ctx context.Context, key string) (*domain.Permission, error)
	RoleDefaults(ctx context.Context, roleID int) ([]string, error)
	ListOverrides(ctx context.Context, businessID string, userID int) ([]*domain.UserPermissionOverride, error)
	UpsertOverride(ctx context.Context, override *domain.UserPermissionOverride) error
	DeleteOverrides(ctx context.Context, businessID string, userID int) error
	SavePermissions(ctx context.Context, permissions []*domain.Permission) error
	ReplaceRoleDefaults(ctx context.Context, roleID int, keys []string) error
}

type permissionRepository struct {
	conn postgres.Conn
}

func NewPermissionRepository(conn postgres.Conn) PermissionRepository {
	return &permissionRepository{conn: conn}
}

func (r *permissionRepository) ListPermissions(ctx context.Context) ([]*domain.Permission, error) {
	query, args, err := psql.
		Select("key", "module", "name", "description").
		From(permissionsTable).
		OrderBy("module ASC", "key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar permissões: %w", err)
	}
	defer rows.Close()

	permissions := make([]*domain.Permission, 0)
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.Key, &p.Module, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		permissions = append(permissions, &p)
	}

	return permissions, rows.Err()
}

func (r *permissionRepository) GetPermission(ctx context.Context, key string) (*domain.Permission, error) {
	var p domain.Permission
	err := r.conn.QueryRowContext(ctx,
		"SELECT key, module, name, description FROM permissions WHERE key = $1", key,
	).Scan(&p.Key, &p.Module, &p.Name, &p.Description)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar permissão: %w", err)
	}
	return &p, nil
}

func (r *permissionRepository) RoleDefaults(ctx context.Context, roleID int) ([]string, error) {
	query, args, err := psql.
		Select("permission_key").
		From(rolePermissionsTable).
		Where(squirrel.Eq{"role_id": roleID}).
		OrderBy("permission_key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar permissões do papel: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func (r *permissionRepository) ListOverrides(ctx context.Context, businessID string, userID int) ([]*domain.UserPermissionOverride, error) {
	query, args, err := psql.
		Select("id", "business_id", "user_id", "permission_key", "granted", "granted_by", "notes", "created_at", "updated_at").
		From(userPermissionsTable).
		Where(squirrel.Eq{"business_id": businessID, "user_id": userID}).
		OrderBy("permission_key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar permissões do usuário: %w", err)
	}
	defer rows.Close()

	overrides := make([]*domain.UserPermissionOverride, 0)
	for rows.Next() {
		var o domain.UserPermissionOverride
		if err := rows.Scan(
			&o.ID,
			&o.BusinessID,
			&o.UserID,
			&o.PermissionKey,
			&o.Granted,
			&o.GrantedBy,
			&o.Notes,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		overrides = append(overrides, &o)
	}

	return overrides, rows.Err()
}

func (r *permissionRepository) UpsertOverride(ctx context.Context, o *domain.UserPermissionOverride) error {
	query, args, err := psql.
		Insert(userPermissionsTable).
		Columns("id", "business_id", "user_id", "permission_key", "granted", "granted_by", "notes").
		Values(o.ID, o.BusinessID, o.UserID, o.PermissionKey, o.Granted, o.GrantedBy, o.Notes).
		Suffix(`ON CONFLICT (business_id, user_id, permission_key) DO UPDATE SET
			granted = EXCLUDED.granted,
			granted_by = EXCLUDED.granted_by,
			notes = EXCLUDED.notes,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *permissionRepository) DeleteOverrides(ctx context.Context, businessID string, userID int) error {
	_, err := r.conn.ExecContext(ctx,
		"DELETE FROM user_permissions WHERE business_id = $1 AND user_id = $2",
		businessID, userID,
	)
	return err
}

// SavePermissions faz upsert do catálogo de permissões, usado pela carga inicial
func (r *permissionRepository) SavePermissions(ctx context.Context, permissions []*domain.Permission) error {
	if len(permissions) == 0 {
		return nil
	}

	queryBuilder := psql.
		Insert(permissionsTable).
		Columns("key", "module", "name", "description").
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			module = EXCLUDED.module,
			name = EXCLUDED.name,
			description = EXCLUDED.description`)

	for _, p := range permissions {
		queryBuilder = queryBuilder.Values(p.Key, p.Module, p.Name, p.Description)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	return err
}

func (r *permissionRepository) ReplaceRoleDefaults(ctx context.Context, roleID int, keys []string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM role_permissions WHERE role_id = $1", roleID); err != nil {
			return err
		}

		if len(keys) == 0 {
			return nil
		}

		queryBuilder := psql.Insert(rolePermissionsTable).Columns("role_id", "permission_key")
		for _, key := range keys {
			queryBuilder = queryBuilder.Values(roleID, key)
		}

		query, args, err := queryBuilder.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}
