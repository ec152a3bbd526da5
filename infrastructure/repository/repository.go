// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

//go:generate mockgen -source=user.go -destination=mocks/user_mock.go -package=mocks
//go:generate mockgen -source=business.go -destination=mocks/business_mock.go -package=mocks
//go:generate mockgen -source=product.go -destination=mocks/product_mock.go -package=mocks
//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
//go:generate mockgen -source=sale.go -destination=mocks/sale_mock.go -package=mocks
//go:generate mockgen -source=treatment.go -destination=mocks/treatment_mock.go -package=mocks
//go:generate mockgen -source=rule.go -destination=mocks/rule_mock.go -package=mocks
//go:generate mockgen -source=permission.go -destination=mocks/permission_mock.go -package=mocks
//go:generate mockgen -source=payment_method.go -destination=mocks/payment_method_mock.go -package=mocks
//go:generate mockgen -source=cash_register.go -destination=mocks/cash_register_mock.go -package=mocks
//go:generate mockgen -source=commission.go -destination=mocks/commission_mock.go -package=mocks
//go:generate mockgen -source=dashboard.go -destination=mocks/dashboard_mock.go -package=mocks
//go:generate mockgen -source=business_ranking.go -destination=mocks/business_ranking_mock.go -package=mocks

var (
	// ErrInsufficientStock é retornado quando a baixa condicional de estoque não afeta nenhuma linha
	ErrInsufficientStock = errors.New("estoque insuficiente")
	// ErrStaleState indica que o registro mudou de estado entre a leitura e a escrita
	ErrStaleState = errors.New("registro alterado por outra operação")
	// ErrDuplicated indica violação de unicidade
	ErrDuplicated = errors.New("registro duplicado")
)

const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type scanner interface {
	Scan(dest ...interface{}) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// translateError converte erros do driver para os erros do pacote
func translateError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicated
	}
	return err
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func rowsAffected(result sql.Result) (int64, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// nullJSON evita gravar um JSON vazio como string vazia em colunas JSONB
func nullJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
