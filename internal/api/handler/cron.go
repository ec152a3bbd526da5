package handler

import (
	"net/http"

	"github.com/diana0617/beauty-control-api/internal/scheduler"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSessionReminder = scheduler.JobSessionReminder
	CronJobTypeTrialExpiration = scheduler.JobTrialExpiration
	CronJobTypeBusinessRanking = scheduler.JobBusinessRanking
	CronJobTypeAll             = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SessionReminderService *scheduler.SessionReminderService
	TrialExpirationService *scheduler.TrialExpirationService
	BusinessRankingService *scheduler.BusinessRankingService
}

func (s CronJobServices) jobs() map[string]scheduler.Job {
	jobs := make(map[string]scheduler.Job, 3)
	if s.SessionReminderService != nil {
		jobs[CronJobTypeSessionReminder] = s.SessionReminderService
	}
	if s.TrialExpirationService != nil {
		jobs[CronJobTypeTrialExpiration] = s.TrialExpirationService
	}
	if s.BusinessRankingService != nil {
		jobs[CronJobTypeBusinessRanking] = s.BusinessRankingService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - RunCronJob")

		cronType := pathParam(r, "type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}

		case CronJobTypeSessionReminder, CronJobTypeTrialExpiration, CronJobTypeBusinessRanking:
			job, exists := jobs[cronType]
			if !exists {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço "+cronType+" não disponível", nil)
				return
			}
			job.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: session-reminder, trial-expiration, business-ranking, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("INIT - GetCronStatus")

		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
