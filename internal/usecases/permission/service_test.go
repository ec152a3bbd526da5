package permission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/cache"
)

type testDeps struct {
	repo     *mocks.MockPermissionRepository
	userRepo *mocks.MockUserRepository
	store    *cache.MemoryCache
}

func newTestService(t *testing.T) (PermissionService, testDeps) {
	ctrl := gomock.NewController(t)
	deps := testDeps{
		repo:     mocks.NewMockPermissionRepository(ctrl),
		userRepo: mocks.NewMockUserRepository(ctrl),
		store:    cache.NewMemoryCache(100, time.Minute),
	}
	return NewService(deps.repo, deps.userRepo, deps.store, time.Minute), deps
}

func businessUser(roleID int) *domain.User {
	businessID := "biz-1"
	return &domain.User{ID: 10, BusinessID: &businessID, RoleID: roleID, Active: true}
}

func TestResolve(t *testing.T) {
	overrides := []*domain.UserPermissionOverride{
		{PermissionKey: "sales.cancel", Granted: true},
		{PermissionKey: "sales.create", Granted: false},
	}

	effective := resolve([]string{"sales.create", "sales.view"}, overrides)

	assert.Equal(t, []string{"sales.cancel", "sales.view"}, effective)
}

func TestService_ListPermissions(t *testing.T) {
	service, deps := newTestService(t)
	deps.repo.EXPECT().ListPermissions(gomock.Any()).Return([]*domain.Permission{
		{Key: "sales.create", Module: "sales"},
		{Key: "cash.open", Module: "cash"},
		{Key: "sales.cancel", Module: "sales"},
	}, nil)

	groups, err := service.ListPermissions(context.Background())

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "cash", groups[0].Module)
	assert.Equal(t, "sales", groups[1].Module)
	assert.Len(t, groups[1].Permissions, 2)
}

func TestService_HasPermission(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		roleID  int
		key     string
		setup   func(deps testDeps)
		allowed bool
		wantErr bool
	}{
		{
			name:    "Dono do negócio tem acesso total",
			roleID:  domain.RoleBusiness,
			key:     "sales.cancel",
			setup:   func(testDeps) {},
			allowed: true,
		},
		{
			name:   "Permissão padrão do papel",
			roleID: domain.RoleReceptionist,
			key:    "sales.create",
			setup: func(deps testDeps) {
				deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleReceptionist).Return([]string{"sales.create"}, nil)
				deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return(nil, nil)
			},
			allowed: true,
		},
		{
			name:   "Permissão revogada",
			roleID: domain.RoleReceptionist,
			key:    "sales.create",
			setup: func(deps testDeps) {
				deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleReceptionist).Return([]string{"sales.create"}, nil)
				deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return([]*domain.UserPermissionOverride{
					{PermissionKey: "sales.create", Granted: false},
				}, nil)
			},
			allowed: false,
		},
		{
			name:   "Permissão concedida individualmente",
			roleID: domain.RoleSpecialist,
			key:    "cash.close",
			setup: func(deps testDeps) {
				deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleSpecialist).Return(nil, nil)
				deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return([]*domain.UserPermissionOverride{
					{PermissionKey: "cash.close", Granted: true},
				}, nil)
			},
			allowed: true,
		},
		{
			name:   "Falha no banco",
			roleID: domain.RoleSpecialist,
			key:    "cash.close",
			setup: func(deps testDeps) {
				deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleSpecialist).Return(nil, errors.New("conexão perdida"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, deps := newTestService(t)
			tt.setup(deps)

			allowed, err := service.HasPermission(ctx, "biz-1", 10, tt.roleID, tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDatabaseOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestService_HasPermission_UsaCache(t *testing.T) {
	ctx := context.Background()
	service, deps := newTestService(t)

	deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleReceptionist).Return([]string{"sales.create"}, nil).Times(1)
	deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return(nil, nil).Times(1)

	for i := 0; i < 3; i++ {
		allowed, err := service.HasPermission(ctx, "biz-1", 10, domain.RoleReceptionist, "sales.create")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.True(t, deps.store.Has(ctx, cache.PermissionsKey("biz-1", 10)))
}

func TestService_GrantPermission(t *testing.T) {
	ctx := context.Background()
	req := &domain.PermissionChangeRequest{BusinessID: "biz-1", UserID: 10, PermissionKey: "cash.close", ChangedBy: 1}

	t.Run("Concede, invalida o cache e retorna o conjunto efetivo", func(t *testing.T) {
		service, deps := newTestService(t)
		require.NoError(t, deps.store.Set(ctx, cache.PermissionsKey("biz-1", 10), []string{}, 0))

		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 10).Return(businessUser(domain.RoleSpecialist), nil).Times(2)
		deps.repo.EXPECT().GetPermission(gomock.Any(), "cash.close").Return(&domain.Permission{Key: "cash.close", Module: "cash"}, nil)
		deps.repo.EXPECT().UpsertOverride(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *domain.UserPermissionOverride) error {
			assert.True(t, o.Granted)
			assert.Equal(t, 1, *o.GrantedBy)
			return nil
		})
		deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleSpecialist).Return([]string{"treatments.view"}, nil)
		deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return([]*domain.UserPermissionOverride{
			{PermissionKey: "cash.close", Granted: true},
		}, nil)

		perms, err := service.GrantPermission(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, []string{"cash.close", "treatments.view"}, perms.Effective)
		assert.False(t, deps.store.Has(ctx, cache.PermissionsKey("biz-1", 10)))
	})

	t.Run("Usuário de outro negócio", func(t *testing.T) {
		service, deps := newTestService(t)
		other := "biz-2"
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 10).Return(&domain.User{ID: 10, BusinessID: &other, RoleID: domain.RoleSpecialist}, nil)

		_, err := service.GrantPermission(ctx, req)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Usuário com acesso total", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 10).Return(businessUser(domain.RoleBusiness), nil)

		_, err := service.GrantPermission(ctx, req)
		assert.ErrorIs(t, err, ErrFullAccessRole)
	})

	t.Run("Permissão inexistente", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 10).Return(businessUser(domain.RoleSpecialist), nil)
		deps.repo.EXPECT().GetPermission(gomock.Any(), "cash.close").Return(nil, nil)

		_, err := service.GrantPermission(ctx, req)
		assert.ErrorIs(t, err, ErrPermissionNotFound)
	})
}

func TestService_ResetUserPermissions(t *testing.T) {
	ctx := context.Background()
	service, deps := newTestService(t)

	deps.userRepo.EXPECT().GetUserByID(gomock.Any(), 10).Return(businessUser(domain.RoleReceptionist), nil).Times(2)
	deps.repo.EXPECT().DeleteOverrides(gomock.Any(), "biz-1", 10).Return(nil)
	deps.repo.EXPECT().RoleDefaults(gomock.Any(), domain.RoleReceptionist).Return([]string{"sales.create"}, nil)
	deps.repo.EXPECT().ListOverrides(gomock.Any(), "biz-1", 10).Return(nil, nil)

	perms, err := service.ResetUserPermissions(ctx, "biz-1", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"sales.create"}, perms.Effective)
	assert.Empty(t, perms.Overrides)
}

func TestService_UpdateRoleDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("Substitui os padrões e limpa o cache de todos os negócios", func(t *testing.T) {
		service, deps := newTestService(t)
		require.NoError(t, deps.store.Set(ctx, cache.PermissionsKey("biz-1", 10), []string{}, 0))
		require.NoError(t, deps.store.Set(ctx, cache.PermissionsKey("biz-2", 20), []string{}, 0))

		deps.repo.EXPECT().ListPermissions(gomock.Any()).Return([]*domain.Permission{{Key: "sales.create"}, {Key: "sales.view"}}, nil)
		deps.repo.EXPECT().ReplaceRoleDefaults(gomock.Any(), domain.RoleReceptionist, []string{"sales.create", "sales.view"}).Return(nil)

		keys, err := service.UpdateRoleDefaults(ctx, domain.RoleReceptionist, []string{"sales.view", "sales.create", "sales.view"})

		require.NoError(t, err)
		assert.Equal(t, []string{"sales.create", "sales.view"}, keys)
		assert.Equal(t, 0, deps.store.Stats().Keys)
	})

	t.Run("Papel com acesso total não tem padrões editáveis", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.UpdateRoleDefaults(ctx, domain.RoleOwner, []string{"sales.view"})
		assert.ErrorIs(t, err, ErrFullAccessRole)
	})

	t.Run("Chave fora do catálogo", func(t *testing.T) {
		service, deps := newTestService(t)
		deps.repo.EXPECT().ListPermissions(gomock.Any()).Return([]*domain.Permission{{Key: "sales.view"}}, nil)

		_, err := service.UpdateRoleDefaults(ctx, domain.RoleReceptionist, []string{"sales.delete"})
		assert.ErrorIs(t, err, ErrPermissionNotFound)
	})
}
