package rules

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateNotFound  = errors.New("template de regra não encontrado")
	ErrTemplateExists    = errors.New("já existe um template com esta chave")
	ErrTemplateInUse     = errors.New("template em uso por negócios")
	ErrInvalidTemplate   = errors.New("template de regra inválido")
	ErrInvalidValue      = errors.New("valor de regra inválido")
	ErrDependency        = errors.New("dependência de regra não satisfeita")
	ErrConflict          = errors.New("regra conflita com outra regra ativa")
	ErrNotCustomizable   = errors.New("regra não permite personalização")
	ErrAlreadyAssigned   = errors.New("regra já atribuída ao negócio")
	ErrNotAssigned       = errors.New("regra não atribuída ao negócio")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// RuleError carrega a chave da regra envolvida e o código da API
type RuleError struct {
	Err     error
	Code    string
	RuleKey string
	Details string
}

func (e *RuleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func (e *RuleError) APICode() string {
	return e.Code
}

func (e *RuleError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewRuleError(err error, code string, details string) *RuleError {
	return &RuleError{Err: err, Code: code, Details: details}
}

func NewRuleErrorWithKey(err error, code string, key string, details string) *RuleError {
	return &RuleError{Err: err, Code: code, RuleKey: key, Details: details}
}
