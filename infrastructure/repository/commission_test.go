package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionRepository_CreatePaymentRequest(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)

	newRequest := func() *domain.CommissionPaymentRequest {
		return &domain.CommissionPaymentRequest{
			ID:           "req-1",
			BusinessID:   "biz-1",
			SpecialistID: "sp-1",
			PeriodFrom:   from,
			PeriodTo:     to,
			Status:       domain.PaymentRequestSubmitted,
		}
	}

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, req *domain.CommissionPaymentRequest, err error)
	}{
		{
			name: "total arredondado em duas casas",
			setup: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO commission_payment_requests").
					WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
				mock.ExpectQuery("UPDATE commission_details SET status").
					WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(0.1).AddRow(0.2).AddRow(10.004))
				mock.ExpectExec(`UPDATE commission_payment_requests SET total_amount = \$1 WHERE id = \$2`).
					WithArgs(10.3, "req-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			validate: func(t *testing.T, req *domain.CommissionPaymentRequest, err error) {
				require.NoError(t, err)
				assert.Equal(t, 10.3, req.TotalAmount)
				assert.Equal(t, 3, req.DetailsCount)
			},
		},
		{
			name: "sem comissões pendentes no período",
			setup: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO commission_payment_requests").
					WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
				mock.ExpectQuery("UPDATE commission_details SET status").
					WillReturnRows(sqlmock.NewRows([]string{"amount"}))
				mock.ExpectRollback()
			},
			validate: func(t *testing.T, req *domain.CommissionPaymentRequest, err error) {
				assert.ErrorIs(t, err, ErrNoPendingCommissions)
				assert.Zero(t, req.TotalAmount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			repo := NewCommissionRepository(conn)
			tt.setup(mock)

			req := newRequest()
			err := repo.CreatePaymentRequest(context.Background(), req)

			tt.validate(t, req, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
