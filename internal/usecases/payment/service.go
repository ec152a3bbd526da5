package payment

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
	"github.com/diana0617/beauty-control-api/pkg/utils"
)

// Campos exigidos em bank_info para transferências
var requiredBankFields = []string{"bank_name", "account_number"}

type PaymentMethodService interface {
	List(ctx context.Context, businessID string, onlyActive bool) ([]*domain.PaymentMethod, error)
	Get(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error)
	Create(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error)
	Update(ctx context.Context, req *domain.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error)
	Toggle(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error)
	Delete(ctx context.Context, businessID, id string) (bool, error)
	Reorder(ctx context.Context, businessID string, ids []string) ([]*domain.PaymentMethod, error)
	EnsureDefaults(ctx context.Context, businessID string) error
}

type Service struct {
	repo repository.PaymentMethodRepository
}

func NewService(repo repository.PaymentMethodRepository) PaymentMethodService {
	return &Service{repo: repo}
}

// DefaultMethods retorna os meios de pagamento criados junto com um negócio novo
func DefaultMethods() []*domain.PaymentMethod {
	return []*domain.PaymentMethod{
		{
			ID:           utils.NewUUID(),
			Name:         "Dinheiro",
			Type:         domain.PaymentMethodCash,
			IsActive:     true,
			DisplayOrder: 1,
		},
	}
}

func (s *Service) List(ctx context.Context, businessID string, onlyActive bool) ([]*domain.PaymentMethod, error) {
	methods, err := s.repo.List(ctx, businessID, onlyActive)
	if err != nil {
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar meios de pagamento")
	}
	return methods, nil
}

func (s *Service) Get(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error) {
	method, err := s.repo.GetByID(ctx, businessID, id)
	if err != nil {
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao buscar meio de pagamento")
	}
	if method == nil {
		return nil, NewPaymentErrorWithID(ErrMethodNotFound, apiErrors.ErrPaymentMethodNotFound, id, "Meio de pagamento não encontrado")
	}
	return method, nil
}

func (s *Service) Create(ctx context.Context, method *domain.PaymentMethod) (*domain.PaymentMethod, error) {
	method.Name = strings.TrimSpace(method.Name)
	if method.Name == "" {
		return nil, NewPaymentError(ErrInvalidMethod, apiErrors.ErrMissingRequiredData, "Nome é obrigatório")
	}
	if !method.Type.IsValid() {
		return nil, NewPaymentError(ErrInvalidMethod, apiErrors.ErrInvalidPaymentMethod, "Tipo de pagamento inválido")
	}
	if err := validateBankInfo(method.Type, method.BankInfo); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueName(ctx, method.BusinessID, method.Name, ""); err != nil {
		return nil, err
	}

	if method.DisplayOrder <= 0 {
		existing, err := s.repo.List(ctx, method.BusinessID, false)
		if err != nil {
			return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar meios de pagamento")
		}
		method.DisplayOrder = len(existing) + 1
	}

	method.ID = utils.NewUUID()
	method.IsActive = true

	if err := s.repo.Create(ctx, method); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewPaymentError(ErrMethodExists, apiErrors.ErrPaymentMethodExists, "Já existe um meio de pagamento com este nome")
		}
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar meio de pagamento")
	}

	log.ForContext(ctx).WithField("payment_method_id", method.ID).Info("Meio de pagamento criado")

	return method, nil
}

func (s *Service) ensureUniqueName(ctx context.Context, businessID, name, ignoreID string) error {
	existing, err := s.repo.GetByName(ctx, businessID, name)
	if err != nil {
		return NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao verificar nome do meio de pagamento")
	}
	if existing != nil && existing.ID != ignoreID {
		return NewPaymentErrorWithID(ErrMethodExists, apiErrors.ErrPaymentMethodExists, existing.ID, "Já existe um meio de pagamento com este nome")
	}
	return nil
}

func validateBankInfo(methodType domain.PaymentMethodType, bankInfo json.RawMessage) error {
	if len(bankInfo) > 0 && !gjson.ValidBytes(bankInfo) {
		return NewPaymentError(ErrInvalidMethod, apiErrors.ErrInvalidFormat, "bank_info deve ser um JSON válido")
	}

	if methodType != domain.PaymentMethodTransfer {
		return nil
	}

	info := gjson.ParseBytes(bankInfo)
	if !info.IsObject() {
		return NewPaymentError(ErrBankInfoRequired, apiErrors.ErrInvalidPaymentMethod, "Transferências exigem bank_info")
	}

	for _, field := range requiredBankFields {
		if strings.TrimSpace(info.Get(field).String()) == "" {
			return NewPaymentError(ErrBankInfoRequired, apiErrors.ErrInvalidPaymentMethod, "bank_info."+field+" é obrigatório")
		}
	}

	return nil
}

func (s *Service) Update(ctx context.Context, req *domain.UpdatePaymentMethodRequest) (*domain.PaymentMethod, error) {
	method, err := s.Get(ctx, req.BusinessID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewPaymentError(ErrInvalidMethod, apiErrors.ErrMissingRequiredData, "Nome é obrigatório")
		}
		if !strings.EqualFold(name, method.Name) {
			if err := s.ensureUniqueName(ctx, req.BusinessID, name, method.ID); err != nil {
				return nil, err
			}
		}
		method.Name = name
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, NewPaymentError(ErrInvalidMethod, apiErrors.ErrInvalidPaymentMethod, "Tipo de pagamento inválido")
		}
		method.Type = *req.Type
	}

	if req.RequiresProof != nil {
		method.RequiresProof = *req.RequiresProof
	}

	if req.BankInfo != nil {
		method.BankInfo = req.BankInfo
	}

	if err := validateBankInfo(method.Type, method.BankInfo); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, method); err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewPaymentError(ErrMethodExists, apiErrors.ErrPaymentMethodExists, "Já existe um meio de pagamento com este nome")
		}
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao atualizar meio de pagamento")
	}

	return method, nil
}

// Toggle ativa ou desativa o meio de pagamento, sem permitir que o negócio fique sem nenhum ativo
func (s *Service) Toggle(ctx context.Context, businessID, id string) (*domain.PaymentMethod, error) {
	method, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if method.IsActive {
		if err := s.ensureAnotherActive(ctx, businessID, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.SetActive(ctx, businessID, id, !method.IsActive); err != nil {
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao alterar status do meio de pagamento")
	}

	method.IsActive = !method.IsActive
	return method, nil
}

func (s *Service) ensureAnotherActive(ctx context.Context, businessID, id string) error {
	active, err := s.repo.List(ctx, businessID, true)
	if err != nil {
		return NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar meios de pagamento")
	}

	for _, m := range active {
		if m.ID != id {
			return nil
		}
	}

	return NewPaymentErrorWithID(ErrLastActiveMethod, apiErrors.ErrInvalidPaymentMethod, id, "O negócio precisa manter ao menos um meio de pagamento ativo")
}

// Delete remove o meio de pagamento. Quando já foi usado em vendas a remoção é lógica
// para preservar o histórico; o retorno indica se foi esse o caso.
func (s *Service) Delete(ctx context.Context, businessID, id string) (bool, error) {
	method, err := s.Get(ctx, businessID, id)
	if err != nil {
		return false, err
	}

	if method.IsActive {
		if err := s.ensureAnotherActive(ctx, businessID, id); err != nil {
			return false, err
		}
	}

	referenced, err := s.repo.IsReferenced(ctx, businessID, id)
	if err != nil {
		return false, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao verificar uso do meio de pagamento")
	}

	if err := s.repo.Delete(ctx, businessID, id, referenced); err != nil {
		return false, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover meio de pagamento")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"payment_method_id": id,
		"soft":              referenced,
	}).Info("Meio de pagamento removido")

	return referenced, nil
}

func (s *Service) Reorder(ctx context.Context, businessID string, ids []string) ([]*domain.PaymentMethod, error) {
	existing, err := s.repo.List(ctx, businessID, false)
	if err != nil {
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar meios de pagamento")
	}

	known := make(map[string]bool, len(existing))
	for _, m := range existing {
		known[m.ID] = true
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return nil, NewPaymentErrorWithID(ErrInvalidReorder, apiErrors.ErrInvalidRequest, id, "Lista contém meio de pagamento inválido ou repetido")
		}
		seen[id] = true
	}

	if len(ids) != len(existing) {
		return nil, NewPaymentError(ErrInvalidReorder, apiErrors.ErrInvalidRequest, "Informe todos os meios de pagamento do negócio")
	}

	if err := s.repo.Reorder(ctx, businessID, ids); err != nil {
		return nil, NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao reordenar meios de pagamento")
	}

	return s.List(ctx, businessID, false)
}

// EnsureDefaults cria o meio de pagamento em dinheiro para negócios que ainda não têm nenhum
func (s *Service) EnsureDefaults(ctx context.Context, businessID string) error {
	existing, err := s.repo.List(ctx, businessID, false)
	if err != nil {
		return NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar meios de pagamento")
	}
	if len(existing) > 0 {
		return nil
	}

	for _, method := range DefaultMethods() {
		method.BusinessID = businessID
		if err := s.repo.Create(ctx, method); err != nil && !errors.Is(err, repository.ErrDuplicated) {
			return NewPaymentError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar meios de pagamento padrão")
		}
	}

	return nil
}
