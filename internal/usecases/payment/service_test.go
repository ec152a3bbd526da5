package payment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
)

func newTestService(t *testing.T) (PaymentMethodService, *mocks.MockPaymentMethodRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPaymentMethodRepository(ctrl)
	return NewService(repo), repo
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		method   *domain.PaymentMethod
		setup    func(repo *mocks.MockPaymentMethodRepository)
		validate func(t *testing.T, method *domain.PaymentMethod, err error)
	}{
		{
			name:   "Transferência sem dados bancários é recusada",
			method: &domain.PaymentMethod{BusinessID: "biz-1", Name: "Pix", Type: domain.PaymentMethodTransfer},
			setup:  func(*mocks.MockPaymentMethodRepository) {},
			validate: func(t *testing.T, _ *domain.PaymentMethod, err error) {
				assert.ErrorIs(t, err, ErrBankInfoRequired)
			},
		},
		{
			name: "Transferência sem número de conta é recusada",
			method: &domain.PaymentMethod{
				BusinessID: "biz-1",
				Name:       "Transferência",
				Type:       domain.PaymentMethodTransfer,
				BankInfo:   json.RawMessage(`{"bank_name":"Banco X"}`),
			},
			setup: func(*mocks.MockPaymentMethodRepository) {},
			validate: func(t *testing.T, _ *domain.PaymentMethod, err error) {
				assert.ErrorIs(t, err, ErrBankInfoRequired)
			},
		},
		{
			name:   "Nome repetido no mesmo negócio",
			method: &domain.PaymentMethod{BusinessID: "biz-1", Name: "Cartão", Type: domain.PaymentMethodCard},
			setup: func(repo *mocks.MockPaymentMethodRepository) {
				repo.EXPECT().GetByName(gomock.Any(), "biz-1", "Cartão").Return(&domain.PaymentMethod{ID: "pm-1"}, nil)
			},
			validate: func(t *testing.T, _ *domain.PaymentMethod, err error) {
				var paymentErr *PaymentError
				require.ErrorAs(t, err, &paymentErr)
				assert.Equal(t, apiErrors.ErrPaymentMethodExists, paymentErr.APICode())
			},
		},
		{
			name: "Cria transferência válida no fim da lista",
			method: &domain.PaymentMethod{
				BusinessID: "biz-1",
				Name:       " Transferência ",
				Type:       domain.PaymentMethodTransfer,
				BankInfo:   json.RawMessage(`{"bank_name":"Banco X","account_number":"123-4"}`),
			},
			setup: func(repo *mocks.MockPaymentMethodRepository) {
				repo.EXPECT().GetByName(gomock.Any(), "biz-1", "Transferência").Return(nil, nil)
				repo.EXPECT().List(gomock.Any(), "biz-1", false).Return([]*domain.PaymentMethod{{ID: "a"}, {ID: "b"}}, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, method *domain.PaymentMethod, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, method.ID)
				assert.Equal(t, "Transferência", method.Name)
				assert.Equal(t, 3, method.DisplayOrder)
				assert.True(t, method.IsActive)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			method, err := service.Create(ctx, tt.method)
			tt.validate(t, method, err)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Meio usado em vendas é removido logicamente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-2").Return(&domain.PaymentMethod{ID: "pm-2", IsActive: true}, nil)
		repo.EXPECT().List(gomock.Any(), "biz-1", true).Return([]*domain.PaymentMethod{{ID: "pm-1"}, {ID: "pm-2"}}, nil)
		repo.EXPECT().IsReferenced(gomock.Any(), "biz-1", "pm-2").Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), "biz-1", "pm-2", true).Return(nil)

		soft, err := service.Delete(ctx, "biz-1", "pm-2")
		require.NoError(t, err)
		assert.True(t, soft)
	})

	t.Run("Último meio ativo não pode ser removido", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-1").Return(&domain.PaymentMethod{ID: "pm-1", IsActive: true}, nil)
		repo.EXPECT().List(gomock.Any(), "biz-1", true).Return([]*domain.PaymentMethod{{ID: "pm-1"}}, nil)

		_, err := service.Delete(ctx, "biz-1", "pm-1")
		assert.ErrorIs(t, err, ErrLastActiveMethod)
	})

	t.Run("Meio inexistente", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().GetByID(gomock.Any(), "biz-1", "x").Return(nil, nil)

		_, err := service.Delete(ctx, "biz-1", "x")
		assert.ErrorIs(t, err, ErrMethodNotFound)
	})
}

func TestService_Toggle(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().GetByID(gomock.Any(), "biz-1", "pm-2").Return(&domain.PaymentMethod{ID: "pm-2", IsActive: false}, nil)
	repo.EXPECT().SetActive(gomock.Any(), "biz-1", "pm-2", true).Return(nil)

	method, err := service.Toggle(context.Background(), "biz-1", "pm-2")
	require.NoError(t, err)
	assert.True(t, method.IsActive)
}

func TestService_Reorder(t *testing.T) {
	ctx := context.Background()
	existing := []*domain.PaymentMethod{{ID: "a"}, {ID: "b"}}

	t.Run("Id desconhecido", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any(), "biz-1", false).Return(existing, nil)

		_, err := service.Reorder(ctx, "biz-1", []string{"b", "z"})
		assert.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("Lista incompleta", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any(), "biz-1", false).Return(existing, nil)

		_, err := service.Reorder(ctx, "biz-1", []string{"b"})
		assert.ErrorIs(t, err, ErrInvalidReorder)
	})

	t.Run("Ordem válida", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().List(gomock.Any(), "biz-1", false).Return(existing, nil)
		repo.EXPECT().Reorder(gomock.Any(), "biz-1", []string{"b", "a"}).Return(nil)
		repo.EXPECT().List(gomock.Any(), "biz-1", false).Return([]*domain.PaymentMethod{{ID: "b"}, {ID: "a"}}, nil)

		methods, err := service.Reorder(ctx, "biz-1", []string{"b", "a"})
		require.NoError(t, err)
		assert.Equal(t, "b", methods[0].ID)
	})
}

func TestService_EnsureDefaults(t *testing.T) {
	service, repo := newTestService(t)
	repo.EXPECT().List(gomock.Any(), "biz-1", false).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m *domain.PaymentMethod) error {
		assert.Equal(t, "biz-1", m.BusinessID)
		assert.Equal(t, domain.PaymentMethodCash, m.Type)
		return nil
	})

	assert.NoError(t, service.EnsureDefaults(context.Background(), "biz-1"))
}
