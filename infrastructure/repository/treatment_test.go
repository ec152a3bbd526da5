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

func TestTreatmentRepository_CompleteSession(t *testing.T) {
	completedAt := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	newSession := func() *domain.TreatmentSession {
		return &domain.TreatmentSession{
			ID:          "s-2",
			PlanID:      "plan-1",
			Status:      domain.SessionCompleted,
			CompletedAt: &completedAt,
		}
	}

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, plan *domain.TreatmentPlan, err error)
	}{
		{
			name: "incrementa o progresso com o plano travado",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT status FROM treatment_plans WHERE id = \$1 FOR UPDATE`).
					WithArgs("plan-1").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
				mock.ExpectExec("UPDATE treatment_sessions SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM treatment_sessions`).
					WithArgs("plan-1", domain.SessionPending, domain.SessionScheduled, domain.SessionMissed).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectQuery(`UPDATE treatment_plans SET completed_sessions = completed_sessions \+ 1`).
					WithArgs(domain.PlanActive, nil, "plan-1", domain.PlanActive).
					WillReturnRows(sqlmock.NewRows([]string{"completed_sessions", "status", "actual_end_date"}).
						AddRow(2, "ACTIVE", nil))
				mock.ExpectCommit()
			},
			validate: func(t *testing.T, plan *domain.TreatmentPlan, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, plan.CompletedSessions)
				assert.Equal(t, domain.PlanActive, plan.Status)
				assert.Nil(t, plan.ActualEndDate)
			},
		},
		{
			name: "sem sessões em aberto conclui o plano",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT status FROM treatment_plans").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
				mock.ExpectExec("UPDATE treatment_sessions SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM treatment_sessions`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`UPDATE treatment_plans SET completed_sessions = completed_sessions \+ 1`).
					WithArgs(domain.PlanCompleted, &completedAt, "plan-1", domain.PlanActive).
					WillReturnRows(sqlmock.NewRows([]string{"completed_sessions", "status", "actual_end_date"}).
						AddRow(3, "COMPLETED", completedAt))
				mock.ExpectCommit()
			},
			validate: func(t *testing.T, plan *domain.TreatmentPlan, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, plan.CompletedSessions)
				assert.Equal(t, domain.PlanCompleted, plan.Status)
				require.NotNil(t, plan.ActualEndDate)
				assert.Equal(t, completedAt, *plan.ActualEndDate)
			},
		},
		{
			name: "plano que deixou de estar ativo",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT status FROM treatment_plans").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("CANCELLED"))
				mock.ExpectRollback()
			},
			validate: func(t *testing.T, plan *domain.TreatmentPlan, err error) {
				assert.ErrorIs(t, err, ErrStaleState)
				assert.Equal(t, 1, plan.CompletedSessions)
			},
		},
		{
			name: "sessão concluída por outra requisição",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT status FROM treatment_plans").
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("ACTIVE"))
				mock.ExpectExec("UPDATE treatment_sessions SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			validate: func(t *testing.T, plan *domain.TreatmentPlan, err error) {
				assert.ErrorIs(t, err, ErrStaleState)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			repo := NewTreatmentRepository(conn)
			tt.setup(mock)

			plan := &domain.TreatmentPlan{ID: "plan-1", Status: domain.PlanActive, CompletedSessions: 1, TotalSessions: 3}
			err := repo.CompleteSession(context.Background(), newSession(), plan, nil)

			tt.validate(t, plan, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTreatmentRepository_UpdatePlanStatus(t *testing.T) {
	t.Run("grava a transição a partir do status esperado", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewTreatmentRepository(conn)

		mock.ExpectExec(`UPDATE treatment_plans SET status = \$1, actual_end_date = \$2, updated_at = NOW\(\) WHERE id = \$3 AND status = \$4`).
			WithArgs(domain.PlanPaused, nil, "plan-1", domain.PlanActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePlanStatus(context.Background(), &domain.TreatmentPlan{ID: "plan-1", Status: domain.PlanPaused}, domain.PlanActive)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("plano alterado por outra operação", func(t *testing.T) {
		conn, mock := newMockConn(t)
		repo := NewTreatmentRepository(conn)

		mock.ExpectExec("UPDATE treatment_plans SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePlanStatus(context.Background(), &domain.TreatmentPlan{ID: "plan-1", Status: domain.PlanPaused}, domain.PlanActive)

		assert.ErrorIs(t, err, ErrStaleState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
