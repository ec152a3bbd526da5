package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	businessmocks "github.com/diana0617/beauty-control-api/internal/usecases/business/mocks"
	rankingmocks "github.com/diana0617/beauty-control-api/internal/usecases/ranking/mocks"
)

func TestTrialExpirationService_ExpireTrials(t *testing.T) {
	now := time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ids      []string
		err      error
		expected []string
		wantErr  bool
	}{
		{
			name:     "Negócios vencidos são suspensos",
			ids:      []string{"biz-1", "biz-2"},
			expected: []string{"biz-1", "biz-2"},
		},
		{
			name:     "Nenhum negócio vencido",
			ids:      []string{},
			expected: []string{},
		},
		{
			name:    "Erro ao suspender",
			err:     errors.New("falha"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			businessService := businessmocks.NewMockBusinessService(ctrl)
			businessService.EXPECT().SuspendExpiredTrials(gomock.Any()).Return(tt.ids, tt.err)

			service := &TrialExpirationService{
				config:          JobConfig{CronSchedule: "0 3 * * *", SyncEnabled: true},
				businessService: businessService,
				now:             func() time.Time { return now },
			}

			ids, err := service.ExpireTrials(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "falha", service.GetStatus()["last_sync_error"])
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, "", service.GetStatus()["last_sync_error"])
		})
	}
}

func TestBusinessRankingService_UpdateBusinessRanking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 5, 10, 6, 0, 0, 0, time.UTC)
	expected := []*domain.BusinessRankingItem{{BusinessID: "biz-1", Position: 1}}

	rankingService := rankingmocks.NewMockRankingService(ctrl)
	rankingService.EXPECT().UpdateRanking(gomock.Any(), now).Return(expected, nil)

	service := &BusinessRankingService{
		config:         JobConfig{CronSchedule: "0 6 * * *", SyncEnabled: true},
		rankingService: rankingService,
		now:            func() time.Time { return now },
	}

	rankings, err := service.UpdateBusinessRanking(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, rankings)

	status := service.GetStatus()
	assert.Equal(t, "0 6 * * *", status["sync_cron"])
	assert.Equal(t, now, status["last_sync_started_at"])
}

func TestNewServices_ConfiguracaoCarregada(t *testing.T) {
	cfg := &config.Config{}
	cfg.TrialExpiration.CronSchedule = "0 3 * * *"
	cfg.TrialExpiration.Enabled = false
	cfg.BusinessRanking.CronSchedule = "0 6 * * *"
	cfg.BusinessRanking.Enabled = true

	trial := NewTrialExpirationService(nil, cfg)
	ranking := NewBusinessRankingService(nil, cfg)

	assert.Equal(t, false, trial.GetStatus()["sync_enabled"])
	assert.Equal(t, "0 6 * * *", ranking.GetStatus()["sync_cron"])

	// cron desabilitada não agenda nada
	assert.NoError(t, trial.Start(context.Background()))
	assert.Equal(t, 0, len(trial.scheduler.Jobs()))
}
