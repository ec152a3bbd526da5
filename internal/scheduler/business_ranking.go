package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/internal/usecases/ranking"
	"github.com/diana0617/beauty-control-api/pkg/metrics"
)

// BusinessRankingService recalcula o ranking mensal de receita dos negócios
type BusinessRankingService struct {
	scheduler      *gocron.Scheduler
	config         JobConfig
	rankingService ranking.RankingService
	now            func() time.Time
	syncState
}

func NewBusinessRankingService(rankingService ranking.RankingService, cfg *config.Config) *BusinessRankingService {
	rankingConfig := JobConfig{
		CronSchedule: cfg.BusinessRanking.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.BusinessRanking.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rankingConfig.CronSchedule,
		"sync_enabled":  rankingConfig.SyncEnabled,
	}).Info("Configuração do agendador do ranking de negócios carregada")

	return &BusinessRankingService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         rankingConfig,
		rankingService: rankingService,
		now:            time.Now,
	}
}

func (s *BusinessRankingService) Start(ctx context.Context) error {
	return schedule(ctx, s.scheduler, JobBusinessRanking, s.config, func() {
		if _, err := s.UpdateBusinessRanking(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de negócios")
		}
	})
}

func (s *BusinessRankingService) UpdateBusinessRanking(ctx context.Context) ([]*domain.BusinessRankingItem, error) {
	if !s.begin(s.now()) {
		logrus.Warn("Atualização do ranking de negócios já está em execução")
		return nil, nil
	}

	start := time.Now()
	rankings, err := s.rankingService.UpdateRanking(ctx, s.now())
	metrics.RecordJobRun(JobBusinessRanking, time.Since(start), err)
	s.end(s.now(), err)

	return rankings, err
}

// TriggerManualSync inicia manualmente a atualização do ranking
func (s *BusinessRankingService) TriggerManualSync() {
	if s.running() {
		logrus.Info("Atualização do ranking já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando atualização manual do ranking de negócios")
	go func() {
		if _, err := s.UpdateBusinessRanking(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do ranking de negócios")
		}
	}()
}

func (s *BusinessRankingService) GetStatus() map[string]any {
	return s.status(s.config)
}
