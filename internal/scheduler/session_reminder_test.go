package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp"
	whatsappmocks "github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/mocks"
	"github.com/diana0617/beauty-control-api/infrastructure/repository/mocks"
	"github.com/diana0617/beauty-control-api/internal/domain"
)

func newReminderService(ctrl *gomock.Controller, now time.Time) (*SessionReminderService, *mocks.MockTreatmentRepository, *whatsappmocks.MockWhatsAppIntegrator) {
	repo := mocks.NewMockTreatmentRepository(ctrl)
	integrator := whatsappmocks.NewMockWhatsAppIntegrator(ctrl)

	service := &SessionReminderService{
		config: SessionReminderConfig{
			JobConfig:  JobConfig{CronSchedule: "0 * * * *", SyncEnabled: true},
			HoursAhead: 24,
		},
		treatmentRepo: repo,
		whatsapp:      integrator,
		now:           func() time.Time { return now },
	}

	return service, repo, integrator
}

func reminder(id string) *domain.SessionReminder {
	phone := "5511999990000"
	return &domain.SessionReminder{
		SessionID:   id,
		BusinessID:  "biz-1",
		ClientName:  "Ana",
		ClientPhone: &phone,
		ServiceName: "Limpeza de pele",
	}
}

func TestSessionReminderService_SendReminders(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	window := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		setup    func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator)
		expected *ReminderResult
		wantErr  bool
	}{
		{
			name: "Sem sessões na janela - nada é enviado",
			setup: func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator) {
				repo.EXPECT().ListPendingReminders(gomock.Any(), now, window).Return([]*domain.SessionReminder{}, nil)
			},
			expected: &ReminderResult{},
		},
		{
			name: "Envio com sucesso marca o lembrete",
			setup: func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator) {
				repo.EXPECT().ListPendingReminders(gomock.Any(), now, window).
					Return([]*domain.SessionReminder{reminder("s-1"), reminder("s-2")}, nil)
				integrator.EXPECT().SendSessionReminder(gomock.Any(), gomock.Any()).Return("msg-id", nil).Times(2)
				repo.EXPECT().MarkReminderSent(gomock.Any(), "s-1").Return(nil)
				repo.EXPECT().MarkReminderSent(gomock.Any(), "s-2").Return(nil)
			},
			expected: &ReminderResult{Found: 2, Sent: 2},
		},
		{
			name: "Telefone inválido é descartado e marcado, falha de envio fica pendente",
			setup: func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator) {
				invalid := reminder("s-invalid")
				failing := reminder("s-fail")
				repo.EXPECT().ListPendingReminders(gomock.Any(), now, window).
					Return([]*domain.SessionReminder{invalid, failing}, nil)
				integrator.EXPECT().SendSessionReminder(gomock.Any(), invalid).Return("", whatsapp.ErrInvalidPhone)
				integrator.EXPECT().SendSessionReminder(gomock.Any(), failing).Return("", errors.New("timeout"))
				repo.EXPECT().MarkReminderSent(gomock.Any(), "s-invalid").Return(nil)
			},
			expected: &ReminderResult{Found: 2, Skipped: 1, Failed: 1},
		},
		{
			name: "Integração desabilitada não marca o lembrete",
			setup: func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator) {
				repo.EXPECT().ListPendingReminders(gomock.Any(), now, window).
					Return([]*domain.SessionReminder{reminder("s-1")}, nil)
				integrator.EXPECT().SendSessionReminder(gomock.Any(), gomock.Any()).Return("", whatsapp.ErrDisabled)
			},
			expected: &ReminderResult{Found: 1, Skipped: 1},
		},
		{
			name: "Erro ao buscar sessões",
			setup: func(repo *mocks.MockTreatmentRepository, integrator *whatsappmocks.MockWhatsAppIntegrator) {
				repo.EXPECT().ListPendingReminders(gomock.Any(), now, window).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, repo, integrator := newReminderService(ctrl, now)
			tt.setup(repo, integrator)

			result, err := service.SendReminders(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.Equal(t, now, status["last_sync_completed_at"])
			assert.Equal(t, 24, status["hours_ahead"])
		})
	}
}

func TestSessionReminderService_ExecucaoConcorrenteIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _ := newReminderService(ctrl, time.Now())
	service.syncRunning = true

	result, err := service.SendReminders(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, result)
}
