package selling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidItems          = errors.New("itens da venda inválidos")
	ErrInvalidDiscount       = errors.New("desconto inválido")
	ErrPaymentMethodNotFound = errors.New("forma de pagamento não encontrada")
	ErrPaymentMethodInactive = errors.New("forma de pagamento inativa")
	ErrShiftRequired         = errors.New("é necessário um turno de caixa aberto")
	ErrProductUnavailable    = errors.New("produto indisponível")
	ErrInsufficientStock     = errors.New("estoque insuficiente")
	ErrInsufficientPayment   = errors.New("valor pago menor que o total")
	ErrSaleNotFound          = errors.New("venda não encontrada")
	ErrSaleAlreadyCancelled  = errors.New("venda já cancelada")
	ErrGenerateNumber        = errors.New("erro ao gerar número da venda")
	ErrExport                = errors.New("erro ao exportar vendas")
	ErrDatabaseOperation     = errors.New("erro ao realizar operação no banco de dados")
)

// SaleError identifica a venda ou o produto envolvido no erro
type SaleError struct {
	Err      error
	Code     string
	EntityID string
	Details  string
}

func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SaleError) Unwrap() error {
	return e.Err
}

func (e *SaleError) APICode() string {
	return e.Code
}

func (e *SaleError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewSaleError(err error, code string, details string) *SaleError {
	return &SaleError{Err: err, Code: code, Details: details}
}

func NewSaleErrorWithID(err error, code string, entityID string, details string) *SaleError {
	return &SaleError{Err: err, Code: code, EntityID: entityID, Details: details}
}
