package permission

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionNotFound = errors.New("permissão não encontrada")
	ErrUserNotFound       = errors.New("usuário não encontrado no negócio")
	ErrFullAccessRole     = errors.New("papel possui acesso total e não aceita ajustes")
	ErrDatabaseOperation  = errors.New("erro ao realizar operação no banco de dados")
)

// PermissionError carrega a chave da permissão envolvida e o código da API
type PermissionError struct {
	Err           error
	Code          string
	PermissionKey string
	Details       string
}

func (e *PermissionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

func (e *PermissionError) APICode() string {
	return e.Code
}

func (e *PermissionError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewPermissionError(err error, code string, details string) *PermissionError {
	return &PermissionError{Err: err, Code: code, Details: details}
}
