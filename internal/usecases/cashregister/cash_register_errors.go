package cashregister

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound     = errors.New("turno de caixa não encontrado")
	ErrShiftAlreadyOpen  = errors.New("já existe um turno aberto para o usuário")
	ErrShiftClosed       = errors.New("turno de caixa já fechado")
	ErrInvalidBalance    = errors.New("saldo inválido")
	ErrGenerateNumber    = errors.New("erro ao gerar número do turno")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type ShiftError struct {
	Err     error
	Code    string
	ShiftID string
	Details string
}

func (e *ShiftError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ShiftError) Unwrap() error {
	return e.Err
}

func (e *ShiftError) APICode() string {
	return e.Code
}

func (e *ShiftError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewShiftError(err error, code string, details string) *ShiftError {
	return &ShiftError{Err: err, Code: code, Details: details}
}

func NewShiftErrorWithID(err error, code string, shiftID string, details string) *ShiftError {
	return &ShiftError{Err: err, Code: code, ShiftID: shiftID, Details: details}
}
