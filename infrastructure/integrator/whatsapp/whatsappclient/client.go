package whatsappclient

import (
	"context"
	"net/http"
	"time"

	whatsappdomain "github.com/diana0617/beauty-control-api/infrastructure/integrator/whatsapp/domain"
	"github.com/diana0617/beauty-control-api/internal/config"
)

type Client interface {
	SendText(ctx context.Context, to, body string) (*whatsappdomain.SendMessageResponse, error)
}

type WhatsAppClient struct {
	httpClient *http.Client
	config     *config.WhatsApp
}

func NewClient(cfg *config.Config) Client {
	return &WhatsAppClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		config: &cfg.WhatsApp,
	}
}
