// Package scheduler contém os agendadores das rotinas periódicas da plataforma
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

const (
	JobSessionReminder = "session-reminder"
	JobTrialExpiration = "trial-expiration"
	JobBusinessRanking = "business-ranking"
)

// Job é o contrato comum usado pelo main e pelos handlers de cron
type Job interface {
	Start(ctx context.Context) error
	TriggerManualSync()
	GetStatus() map[string]any
}

type JobConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// syncState guarda o estado de execução de um agendador; impede duas execuções simultâneas
type syncState struct {
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func (s *syncState) begin(now time.Time) bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = now
	return true
}

func (s *syncState) end(now time.Time, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = now
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
}

func (s *syncState) running() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

func (s *syncState) status(cfg JobConfig) map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           cfg.SyncEnabled,
		"sync_cron":              cfg.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}

// schedule registra a função na expressão cron e para o agendador quando o contexto for cancelado
func schedule(ctx context.Context, scheduler *gocron.Scheduler, name string, cfg JobConfig, run func()) error {
	if !cfg.SyncEnabled {
		logrus.WithField("job", name).Info("Cron desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"job":  name,
		"cron": cfg.CronSchedule,
	}).Info("Iniciando cron")

	if _, err := scheduler.Cron(cfg.CronSchedule).Do(run); err != nil {
		return fmt.Errorf("erro ao agendar %s: %w", name, err)
	}

	scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.WithField("job", name).Info("Parando cron")
		scheduler.Stop()
	}()

	return nil
}
