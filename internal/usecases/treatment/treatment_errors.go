package treatment

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound      = errors.New("plano de tratamento não encontrado")
	ErrSessionNotFound   = errors.New("sessão de tratamento não encontrada")
	ErrInvalidState      = errors.New("operação inválida para o estado atual")
	ErrSessionInterval   = errors.New("intervalo mínimo entre sessões não respeitado")
	ErrInvalidPayment    = errors.New("pagamento inválido")
	ErrServiceNotPackage = errors.New("serviço não é um pacote ativo")
	ErrInvalidRequest    = errors.New("dados do plano inválidos")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

type TreatmentError struct {
	Err      error
	Code     string
	EntityID string
	Details  string
}

func (e *TreatmentError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TreatmentError) Unwrap() error {
	return e.Err
}

func (e *TreatmentError) APICode() string {
	return e.Code
}

func (e *TreatmentError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewTreatmentError(err error, code string, details string) *TreatmentError {
	return &TreatmentError{Err: err, Code: code, Details: details}
}

func NewTreatmentErrorWithID(err error, code string, entityID string, details string) *TreatmentError {
	return &TreatmentError{Err: err, Code: code, EntityID: entityID, Details: details}
}
