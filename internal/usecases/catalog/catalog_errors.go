package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound     = errors.New("produto não encontrado")
	ErrServiceNotFound     = errors.New("serviço não encontrado")
	ErrInvalidProduct      = errors.New("produto inválido")
	ErrInvalidService      = errors.New("serviço inválido")
	ErrInvalidPackage      = errors.New("configuração de pacote inválida")
	ErrDuplicateSKU        = errors.New("SKU já cadastrado")
	ErrInvalidAdjustment   = errors.New("ajuste de estoque inválido")
	ErrInventoryNotTracked = errors.New("produto não controla estoque")
	ErrNegativeStock       = errors.New("o ajuste deixaria o estoque negativo")
	ErrDatabaseOperation   = errors.New("erro ao realizar operação no banco de dados")
)

// CatalogError é o erro dos fluxos de produtos e serviços
type CatalogError struct {
	Err      error
	Code     string
	EntityID string
	Details  string
}

func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func (e *CatalogError) APICode() string {
	return e.Code
}

func (e *CatalogError) APIMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

func NewCatalogError(err error, code string, details string) *CatalogError {
	return &CatalogError{Err: err, Code: code, Details: details}
}

func NewCatalogErrorWithID(err error, code string, entityID string, details string) *CatalogError {
	return &CatalogError{Err: err, Code: code, EntityID: entityID, Details: details}
}
