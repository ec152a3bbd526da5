package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	whatsappdomain "github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/domain"
	"github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/whatsappclient"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	ErrDisabled     = errors.New("envio de whatsapp desabilitado")
	ErrInvalidPhone = errors.New("telefone inválido para whatsapp")
)

type WhatsAppIntegrator interface {
	SendSessionReminder(ctx context.Context, reminder *domain.SessionReminder) (string, error)
}

type WhatsAppService struct {
	cfg    *config.Config
	Client whatsappclient.Client
}

func New(cfg *config.Config, client whatsappclient.Client) WhatsAppIntegrator {
	return &WhatsAppService{
		cfg:    cfg,
		Client: client,
	}
}

// SendSessionReminder envia o lembrete da sessão e retorna o id da mensagem aceita pela API
func (s *WhatsAppService) SendSessionReminder(ctx context.Context, reminder *domain.SessionReminder) (string, error) {
	if !s.cfg.WhatsApp.Enabled {
		return "", ErrDisabled
	}

	if reminder.ClientPhone == nil {
		return "", ErrInvalidPhone
	}

	phone := NormalizePhone(*reminder.ClientPhone)
	if len(phone) < 10 {
		return "", ErrInvalidPhone
	}

	resp, err := s.Client.SendText(ctx, phone, BuildReminderMessage(reminder))
	if err != nil {
		var apiErr *whatsappdomain.APIError
		if errors.As(err, &apiErr) && apiErr.Response.IsTokenExpired() {
			logrus.WithField("session_id", reminder.SessionID).Error("whatsapp: token de acesso expirado")
		}
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"session_id": reminder.SessionID,
		"message_id": resp.MessageID(),
	}).Debug("whatsapp: lembrete enviado")

	return resp.MessageID(), nil
}

// BuildReminderMessage monta o texto do lembrete enviado ao cliente
func BuildReminderMessage(r *domain.SessionReminder) string {
	return fmt.Sprintf(
		"Olá %s! Lembrete da sua sessão %d de %d de %s em %s, dia %s às %s.",
		r.ClientName,
		r.SessionNumber,
		r.TotalSessions,
		r.ServiceName,
		r.BusinessName,
		r.ScheduledAt.Format("02/01/2006"),
		r.ScheduledAt.Format("15:04"),
	)
}

// NormalizePhone mantém apenas os dígitos do telefone
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
