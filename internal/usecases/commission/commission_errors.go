package commission

import (
	"errors"
	"fmt"
)

var (
	ErrSpecialistNotFound     = errors.New("especialista não encontrado")
	ErrSpecialistExists       = errors.New("usuário já possui perfil de especialista")
	ErrInvalidSpecialistUser  = errors.New("usuário não pode ser especialista neste negócio")
	ErrInvalidRate            = errors.New("percentual de comissão inválido")
	ErrInvalidPeriod          = errors.New("período inválido")
	ErrNoPendingCommissions   = errors.New("nenhuma comissão pendente no período")
	ErrPaymentRequestNotFound = errors.New("solicitação de pagamento não encontrada")
	ErrInvalidRequestState    = errors.New("solicitação de pagamento em estado inválido")
	ErrDatabaseOperation      = errors.New("erro ao realizar operação no banco de dados")
)

type CommissionError struct {
	Err          error
	Code         string
	SpecialistID string
	Details      string
}

func (e *CommissionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CommissionError) Unwrap() error {
	return e.Err
}

func (e *CommissionError) APICode() string {
	return e.Code
}

func (e *CommissionError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewCommissionError(err error, code string, details string) *CommissionError {
	return &CommissionError{Err: err, Code: code, Details: details}
}

func NewSpecialistError(err error, code string, specialistID string, details string) *CommissionError {
	return &CommissionError{Err: err, Code: code, SpecialistID: specialistID, Details: details}
}
