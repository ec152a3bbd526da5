package permission

import (
	"context"
	"sort"
	"time"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

type PermissionService interface {
	ListPermissions(ctx context.Context) ([]*domain.PermissionGroup, error)
	GetRoleDefaults(ctx context.Context, roleID int) ([]string, error)
	GetUserPermissions(ctx context.Context, businessID string, userID int) (*domain.UserPermissions, error)
	GrantPermission(ctx context.Context, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error)
	RevokePermission(ctx context.Context, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error)
	ResetUserPermissions(ctx context.Context, businessID string, userID int) (*domain.UserPermissions, error)
	HasPermission(ctx context.Context, businessID string, userID, roleID int, key string) (bool, error)
	UpdateRoleDefaults(ctx context.Context, roleID int, keys []string) ([]string, error)
}

type Service struct {
	repo     repository.PermissionRepository
	userRepo repository.UserRepository
	cache    cache.Cache
	ttl      time.Duration
}

func NewService(repo repository.PermissionRepository, userRepo repository.UserRepository, cacheStore cache.Cache, ttl time.Duration) PermissionService {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheStore,
		ttl:      ttl,
	}
}

// hasFullAccess indica os papéis que recebem todas as permissões do catálogo
func hasFullAccess(roleID int) bool {
	return roleID == domain.RoleOwner || roleID == domain.RoleBusiness
}

// ListPermissions agrupa o catálogo por módulo, em ordem alfabética
func (s *Service) ListPermissions(ctx context.Context) ([]*domain.PermissionGroup, error) {
	permissions, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar permissões")
	}

	byModule := make(map[string]*domain.PermissionGroup)
	for _, p := range permissions {
		group, ok := byModule[p.Module]
		if !ok {
			group = &domain.PermissionGroup{Module: p.Module}
			byModule[p.Module] = group
		}
		group.Permissions = append(group.Permissions, p)
	}

	groups := make([]*domain.PermissionGroup, 0, len(byModule))
	for _, group := range byModule {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Module < groups[j].Module })

	return groups, nil
}

func (s *Service) GetRoleDefaults(ctx context.Context, roleID int) ([]string, error) {
	if hasFullAccess(roleID) {
		return s.allKeys(ctx)
	}

	keys, err := s.repo.RoleDefaults(ctx, roleID)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar permissões do papel")
	}
	return keys, nil
}

func (s *Service) GetUserPermissions(ctx context.Context, businessID string, userID int) (*domain.UserPermissions, error) {
	user, err := s.businessUser(ctx, businessID, userID)
	if err != nil {
		return nil, err
	}

	defaults, err := s.GetRoleDefaults(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.ListOverrides(ctx, businessID, userID)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar ajustes de permissão")
	}

	effective := defaults
	if !hasFullAccess(user.RoleID) {
		effective = resolve(defaults, overrides)
	}

	return &domain.UserPermissions{
		UserID:    userID,
		RoleID:    user.RoleID,
		Effective: effective,
		Defaults:  defaults,
		Overrides: overrides,
	}, nil
}

func (s *Service) GrantPermission(ctx context.Context, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error) {
	return s.change(ctx, req, true)
}

func (s *Service) RevokePermission(ctx context.Context, req *domain.PermissionChangeRequest) (*domain.UserPermissions, error) {
	return s.change(ctx, req, false)
}

func (s *Service) change(ctx context.Context, req *domain.PermissionChangeRequest, granted bool) (*domain.UserPermissions, error) {
	user, err := s.businessUser(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}
	if hasFullAccess(user.RoleID) {
		return nil, NewPermissionError(ErrFullAccessRole, apiErrors.ErrInsufficientPrivilege, "Este usuário já possui todas as permissões")
	}

	permission, err := s.repo.GetPermission(ctx, req.PermissionKey)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar permissão")
	}
	if permission == nil {
		return nil, &PermissionError{Err: ErrPermissionNotFound, Code: apiErrors.ErrPermissionNotFound, PermissionKey: req.PermissionKey, Details: "Permissão inexistente: " + req.PermissionKey}
	}

	changedBy := req.ChangedBy
	override := &domain.UserPermissionOverride{
		ID:            utils.NewUUID(),
		BusinessID:    req.BusinessID,
		UserID:        req.UserID,
		PermissionKey: permission.Key,
		Granted:       granted,
		GrantedBy:     &changedBy,
		Notes:         req.Notes,
	}

	if err := s.repo.UpsertOverride(ctx, override); err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar ajuste de permissão")
	}

	s.invalidate(ctx, req.BusinessID, req.UserID)

	log.ForContext(ctx).WithFields(log.Fields{
		"business_id": req.BusinessID,
		"user_id":     req.UserID,
		"permission":  permission.Key,
		"granted":     granted,
	}).Info("Permissão do usuário ajustada")

	return s.GetUserPermissions(ctx, req.BusinessID, req.UserID)
}

// ResetUserPermissions remove os ajustes e devolve o usuário aos padrões do papel
func (s *Service) ResetUserPermissions(ctx context.Context, businessID string, userID int) (*domain.UserPermissions, error) {
	if _, err := s.businessUser(ctx, businessID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteOverrides(ctx, businessID, userID); err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover ajustes de permissão")
	}

	s.invalidate(ctx, businessID, userID)

	return s.GetUserPermissions(ctx, businessID, userID)
}

// HasPermission atende o middleware RequirePermission. O conjunto efetivo fica em cache por usuário.
func (s *Service) HasPermission(ctx context.Context, businessID string, userID, roleID int, key string) (bool, error) {
	if hasFullAccess(roleID) {
		return true, nil
	}

	effective, err := cache.GetOrSet(ctx, s.cache, cache.PermissionsKey(businessID, userID), s.ttl, func(ctx context.Context) ([]string, error) {
		defaults, err := s.repo.RoleDefaults(ctx, roleID)
		if err != nil {
			return nil, err
		}
		overrides, err := s.repo.ListOverrides(ctx, businessID, userID)
		if err != nil {
			return nil, err
		}
		return resolve(defaults, overrides), nil
	})
	if err != nil {
		return false, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao resolver permissões")
	}

	for _, k := range effective {
		if k == key {
			return true, nil
		}
	}
	return false, nil
}

// UpdateRoleDefaults troca as permissões padrão de um papel. Como afeta usuários de
// todos os negócios, descarta o cache de permissões inteiro.
func (s *Service) UpdateRoleDefaults(ctx context.Context, roleID int, keys []string) ([]string, error) {
	if !domain.IsValidRole(roleID) || hasFullAccess(roleID) {
		return nil, NewPermissionError(ErrFullAccessRole, apiErrors.ErrInvalidRequest, "Papel inválido para permissões padrão")
	}

	known, err := s.allKeys(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]bool, len(known))
	for _, key := range known {
		catalog[key] = true
	}

	selected := make([]string, 0, len(keys))
	for _, key := range keys {
		if !catalog[key] {
			return nil, &PermissionError{Err: ErrPermissionNotFound, Code: apiErrors.ErrPermissionNotFound, PermissionKey: key, Details: "Permissão inexistente: " + key}
		}
		selected = append(selected, key)
	}
	normalized := resolve(selected, nil)

	if err := s.repo.ReplaceRoleDefaults(ctx, roleID, normalized); err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar permissões do papel")
	}

	removed, err := s.cache.DeletePrefix(ctx, cache.PermissionsPrefix(""))
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de permissões")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"role_id":       roleID,
		"permissions":   len(normalized),
		"cache_removed": removed,
	}).Info("Permissões padrão do papel atualizadas")

	return normalized, nil
}

func (s *Service) businessUser(ctx context.Context, businessID string, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar usuário")
	}
	if user == nil || user.Deleted || user.BusinessID == nil || *user.BusinessID != businessID {
		return nil, NewPermissionError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado neste negócio")
	}
	return user, nil
}

func (s *Service) allKeys(ctx context.Context) ([]string, error) {
	permissions, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, NewPermissionError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar permissões")
	}

	keys := make([]string, 0, len(permissions))
	for _, p := range permissions {
		keys = append(keys, p.Key)
	}
	return keys, nil
}

func (s *Service) invalidate(ctx context.Context, businessID string, userID int) {
	if err := s.cache.Delete(ctx, cache.PermissionsKey(businessID, userID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de permissões")
	}
}

// resolve aplica os ajustes sobre os padrões: padrões ∪ concedidas − revogadas, ordenado
func resolve(defaults []string, overrides []*domain.UserPermissionOverride) []string {
	set := make(map[string]bool, len(defaults))
	for _, key := range defaults {
		set[key] = true
	}
	for _, o := range overrides {
		if o.Granted {
			set[o.PermissionKey] = true
		} else {
			delete(set, o.PermissionKey)
		}
	}

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
