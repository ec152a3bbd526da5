package business

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de negócios
var (
	ErrBusinessIDRequired  = errors.New("business ID is required")
	ErrBusinessNotFound    = errors.New("negócio não encontrado")
	ErrBusinessExists      = errors.New("já existe um negócio com este email")
	ErrAdminExists         = errors.New("email do administrador já cadastrado")
	ErrInvalidStatus       = errors.New("status de negócio inválido")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrAccessDenied        = errors.New("acesso negado ao negócio")
	ErrGenerateCode        = errors.New("erro ao gerar código do negócio")
	ErrDatabaseOperation   = errors.New("database operation error")
)

// BusinessError é um erro com contexto adicional para negócios
type BusinessError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	BusinessID string // ID do negócio envolvido (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *BusinessError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *BusinessError) Unwrap() error {
	return e.Err
}

func (e *BusinessError) APICode() string {
	return e.Code
}

func (e *BusinessError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

// NewBusinessError cria um novo BusinessError
func NewBusinessError(err error, code string, details string) *BusinessError {
	return &BusinessError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewBusinessErrorWithID cria um novo BusinessError com ID do negócio
func NewBusinessErrorWithID(err error, code string, businessID string, details string) *BusinessError {
	return &BusinessError{
		Err:        err,
		Code:       code,
		BusinessID: businessID,
		Details:    details,
	}
}
