package payment

import (
	"errors"
	"fmt"
)

var (
	ErrMethodNotFound    = errors.New("meio de pagamento não encontrado")
	ErrMethodExists      = errors.New("já existe um meio de pagamento com este nome")
	ErrInvalidMethod     = errors.New("meio de pagamento inválido")
	ErrBankInfoRequired  = errors.New("dados bancários obrigatórios para transferência")
	ErrInvalidReorder    = errors.New("lista de ordenação inválida")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrLastActiveMethod  = errors.New("o negócio precisa manter ao menos um meio de pagamento ativo")
)

// PaymentError carrega o código da API junto do erro de domínio
type PaymentError struct {
	Err      error
	Code     string
	MethodID string
	Details  string
}

func (e *PaymentError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func (e *PaymentError) APICode() string {
	return e.Code
}

func (e *PaymentError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewPaymentError(err error, code string, details string) *PaymentError {
	return &PaymentError{Err: err, Code: code, Details: details}
}

func NewPaymentErrorWithID(err error, code string, methodID string, details string) *PaymentError {
	return &PaymentError{Err: err, Code: code, MethodID: methodID, Details: details}
}
