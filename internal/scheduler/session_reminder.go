package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp"
	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/pkg/metrics"
)

const reminderConcurrency = 4

type SessionReminderConfig struct {
	JobConfig
	HoursAhead int
}

type ReminderResult struct {
	Found   int `json:"found"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SessionReminderService avisa por WhatsApp os clientes com sessões agendadas nas próximas horas
type SessionReminderService struct {
	scheduler     *gocron.Scheduler
	config        SessionReminderConfig
	treatmentRepo repository.TreatmentRepository
	whatsapp      whatsapp.WhatsAppIntegrator
	now           func() time.Time
	syncState
}

func NewSessionReminderService(
	treatmentRepo repository.TreatmentRepository,
	whatsappService whatsapp.WhatsAppIntegrator,
	cfg *config.Config,
) *SessionReminderService {
	reminderConfig := SessionReminderConfig{
		JobConfig: JobConfig{
			CronSchedule: cfg.SessionReminder.CronSchedule,
			SyncEnabled:  cfg.SessionReminder.Enabled,
		},
		HoursAhead: cfg.SessionReminder.HoursAhead,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reminderConfig.CronSchedule,
		"hours_ahead":   reminderConfig.HoursAhead,
		"sync_enabled":  reminderConfig.SyncEnabled,
	}).Info("Configuração do agendador de lembretes de sessão carregada")

	return &SessionReminderService{
		scheduler:     gocron.NewScheduler(time.Local),
		config:        reminderConfig,
		treatmentRepo: treatmentRepo,
		whatsapp:      whatsappService,
		now:           time.Now,
	}
}

func (s *SessionReminderService) Start(ctx context.Context) error {
	return schedule(ctx, s.scheduler, JobSessionReminder, s.config.JobConfig, func() {
		if _, err := s.SendReminders(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no envio de lembretes de sessão")
		}
	})
}

// SendReminders envia os lembretes pendentes da janela [agora, agora + HoursAhead].
// Telefone inválido marca o lembrete como enviado; falhas de envio ficam para a próxima execução.
func (s *SessionReminderService) SendReminders(ctx context.Context) (*ReminderResult, error) {
	if !s.begin(s.now()) {
		logrus.Warn("Envio de lembretes de sessão já está em execução")
		return nil, nil
	}

	start := time.Now()
	result, err := s.sendReminders(ctx)
	metrics.RecordJobRun(JobSessionReminder, time.Since(start), err)
	s.end(s.now(), err)

	return result, err
}

func (s *SessionReminderService) sendReminders(ctx context.Context) (*ReminderResult, error) {
	from := s.now()
	to := from.Add(time.Duration(s.config.HoursAhead) * time.Hour)

	reminders, err := s.treatmentRepo.ListPendingReminders(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar sessões para lembrete")
	}

	result := &ReminderResult{Found: len(reminders)}
	if len(reminders) == 0 {
		return result, nil
	}

	var sent, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reminderConcurrency)

	for _, reminder := range reminders {
		reminder := reminder
		g.Go(func() error {
			logger := logrus.WithFields(logrus.Fields{
				"session_id":  reminder.SessionID,
				"business_id": reminder.BusinessID,
			})

			_, err := s.whatsapp.SendSessionReminder(gctx, reminder)
			switch {
			case errors.Is(err, whatsapp.ErrDisabled):
				skipped.Add(1)
				return nil
			case errors.Is(err, whatsapp.ErrInvalidPhone):
				skipped.Add(1)
				logger.Warn("Cliente sem telefone válido, lembrete descartado")
			case err != nil:
				failed.Add(1)
				logger.WithError(err).Error("Erro ao enviar lembrete de sessão")
				return nil
			default:
				sent.Add(1)
			}

			if err := s.treatmentRepo.MarkReminderSent(gctx, reminder.SessionID); err != nil {
				logger.WithError(err).Error("Erro ao marcar lembrete como enviado")
			}
			return nil
		})
	}

	_ = g.Wait()

	result.Sent = int(sent.Load())
	result.Skipped = int(skipped.Load())
	result.Failed = int(failed.Load())

	logrus.WithFields(logrus.Fields{
		"found":   result.Found,
		"sent":    result.Sent,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("Envio de lembretes de sessão concluído")

	return result, nil
}

// TriggerManualSync inicia manualmente o envio de lembretes
func (s *SessionReminderService) TriggerManualSync() {
	if s.running() {
		logrus.Info("Envio de lembretes já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando envio manual de lembretes de sessão")
	go func() {
		if _, err := s.SendReminders(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no envio manual de lembretes de sessão")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *SessionReminderService) GetStatus() map[string]any {
	status := s.status(s.config.JobConfig)
	status["hours_ahead"] = s.config.HoursAhead
	return status
}
