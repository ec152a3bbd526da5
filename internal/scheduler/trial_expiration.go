package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/usecases/business"
	"github.com/diana0617/beauty-control-api/pkg/metrics"
)

// TrialExpirationService suspende diariamente os negócios com período de teste vencido
type TrialExpirationService struct {
	scheduler       *gocron.Scheduler
	config          JobConfig
	businessService business.BusinessService
	now             func() time.Time
	syncState
}

func NewTrialExpirationService(businessService business.BusinessService, cfg *config.Config) *TrialExpirationService {
	trialConfig := JobConfig{
		CronSchedule: cfg.TrialExpiration.CronSchedule,
		SyncEnabled:  cfg.TrialExpiration.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": trialConfig.CronSchedule,
		"sync_enabled":  trialConfig.SyncEnabled,
	}).Info("Configuração do agendador de expiração de teste carregada")

	return &TrialExpirationService{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          trialConfig,
		businessService: businessService,
		now:             time.Now,
	}
}

func (s *TrialExpirationService) Start(ctx context.Context) error {
	return schedule(ctx, s.scheduler, JobTrialExpiration, s.config, func() {
		if _, err := s.ExpireTrials(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na expiração de períodos de teste")
		}
	})
}

// ExpireTrials retorna os ids dos negócios suspensos nesta execução
func (s *TrialExpirationService) ExpireTrials(ctx context.Context) ([]string, error) {
	if !s.begin(s.now()) {
		logrus.Warn("Expiração de períodos de teste já está em execução")
		return nil, nil
	}

	start := time.Now()
	ids, err := s.businessService.SuspendExpiredTrials(ctx)
	metrics.RecordJobRun(JobTrialExpiration, time.Since(start), err)
	s.end(s.now(), err)

	if err != nil {
		return nil, err
	}

	logrus.WithField("suspended", len(ids)).Info("Expiração de períodos de teste concluída")

	return ids, nil
}

// TriggerManualSync inicia manualmente a expiração de períodos de teste
func (s *TrialExpirationService) TriggerManualSync() {
	if s.running() {
		logrus.Info("Expiração de períodos de teste já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando expiração manual de períodos de teste")
	go func() {
		if _, err := s.ExpireTrials(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na expiração manual de períodos de teste")
		}
	}()
}

func (s *TrialExpirationService) GetStatus() map[string]any {
	return s.status(s.config)
}
