package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrBusinessRequired  = errors.New("negócio não informado")
	ErrDatabaseOperation = errors.New("erro ao consolidar métricas do painel")
)

type DashboardError struct {
	Err     error
	Code    string
	Details string
}

func (e *DashboardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DashboardError) Unwrap() error {
	return e.Err
}

func (e *DashboardError) APICode() string {
	return e.Code
}

func (e *DashboardError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewDashboardError(err error, code string, details string) *DashboardError {
	return &DashboardError{Err: err, Code: code, Details: details}
}
